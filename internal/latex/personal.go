package latex

import (
	"fmt"
	"strings"

	"github.com/blagoySimandov/cvtex/internal/curriculum"
)

// PersonalData renders the moderncv header commands. Contact handles and
// URLs are passed through unescaped since moderncv wraps them in links.
func (r *Renderer) PersonalData(p *curriculum.PersonalData) string {
	lines := []string{"% personal data"}

	first, family, _ := strings.Cut(strings.TrimSpace(p.Name), " ")
	lines = append(lines, fmt.Sprintf(`\firstname{\LARGE %s}`, r.text(first)))
	if family = strings.TrimSpace(family); family != "" {
		lines = append(lines, fmt.Sprintf(`\familyname{\LARGE %s}`, r.text(family)))
	}
	if p.Title != "" {
		lines = append(lines, fmt.Sprintf(`\title{%s}`, r.text(p.Title)))
	}
	for _, m := range p.Mobile {
		lines = append(lines, fmt.Sprintf(`\mobile{%s}`, r.text(m)))
	}
	for _, e := range p.Email {
		lines = append(lines, fmt.Sprintf(`\email{%s}`, e))
	}

	socials := []struct{ kind, handle string }{
		{"github", p.Github},
		{"gitlab", p.Gitlab},
		{"linkedin", p.Linkedin},
		{"twitter", p.Twitter},
	}
	for _, s := range socials {
		if s.handle != "" {
			lines = append(lines, fmt.Sprintf(`\social[%s]{%s}`, s.kind, s.handle))
		}
	}
	for _, page := range p.Webpage {
		if len(page) != 2 {
			continue
		}
		lines = append(lines, fmt.Sprintf(`\extrainfo{\homepagesymbol %s \url{%s}}`, r.text(page[0]), page[1]))
	}
	return strings.Join(lines, "\n")
}

// Language renders one spoken language line.
func (r *Renderer) Language(l *curriculum.Language) string {
	return fmt.Sprintf(`\cvitemwithcomment{%s}{%s}{%s}`, r.text(l.Language), r.text(l.Level), r.text(l.Comment))
}
