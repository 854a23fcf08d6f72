package latex

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/blagoySimandov/cvtex/internal/curriculum"
)

// ErrInvalidPreamble is returned when the preamble is not valid UTF-8 text.
var ErrInvalidPreamble = errors.New("preamble is not valid UTF-8")

// Document assembles the complete LaTeX source: preamble, personal data,
// then education, experience, the optional skills summary and languages
// inside the document environment. Empty sections are left out.
func (r *Renderer) Document(cv *curriculum.Curriculum, preamble []byte) (string, error) {
	if !utf8.Valid(preamble) {
		return "", fmt.Errorf("%w: invalid sequence at byte %d", ErrInvalidPreamble, invalidOffset(preamble))
	}

	output := []string{
		string(preamble),
		r.PersonalData(&cv.PersonalData),
		"",
		`\begin{document}`,
		`\makecvtitle`,
	}
	output = append(output, r.entrySection(r.opts.Sections.Education, cv.Education)...)
	output = append(output, r.entrySection(r.opts.Sections.Experience, cv.Experiences)...)
	if r.opts.SkillsSection {
		if section := r.SkillsSection(cv.Skills(r.now())); section != "" {
			output = append(output, section, "")
		}
	}
	if len(cv.Languages) > 0 {
		output = append(output, fmt.Sprintf(`\section{%s}`, r.text(r.opts.Sections.Languages)))
		for i := range cv.Languages {
			output = append(output, r.Language(&cv.Languages[i]))
		}
		output = append(output, "")
	}
	output = append(output, `\end{document}`, "")
	return strings.Join(output, "\n"), nil
}

func (r *Renderer) entrySection(title string, entries []curriculum.Entry) []string {
	if len(entries) == 0 {
		return nil
	}
	lines := []string{fmt.Sprintf(`\section{%s}`, r.text(title))}
	for i := range entries {
		lines = append(lines, r.Entry(&entries[i]), "")
	}
	return lines
}

// SkillsSection renders the aggregated skills, one line per non-empty
// category in the configured order.
func (r *Renderer) SkillsSection(skills curriculum.SkillSet) string {
	if r.opts.RoundSkills {
		skills = skills.Rounded()
	}
	lines := []string{fmt.Sprintf(`\section{%s}`, r.text(r.opts.Sections.Skills))}
	for _, cs := range skills.Report(r.opts.Categories) {
		items := make([]string, len(cs.Skills))
		for i, s := range cs.Skills {
			items[i] = r.text(s.Name)
			if !s.Duration.IsZero() {
				items[i] += fmt.Sprintf(" (%s)", s.Duration)
			}
		}
		lines = append(lines, fmt.Sprintf(`\cvitem{%s}{%s}`, cs.Category.Label(), strings.Join(items, ", ")))
	}
	if len(lines) == 1 {
		return ""
	}
	return strings.Join(lines, "\n")
}

func invalidOffset(b []byte) int {
	for i := 0; i < len(b); {
		r, size := utf8.DecodeRune(b[i:])
		if r == utf8.RuneError && size <= 1 {
			return i
		}
		i += size
	}
	return len(b)
}
