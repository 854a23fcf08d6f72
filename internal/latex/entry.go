package latex

import (
	"fmt"
	"strings"

	"github.com/blagoySimandov/cvtex/internal/curriculum"
)

const dateSeparator = "--"

// DateLabel joins the beginning and end years of an entry, e.g. "2019--2022".
// Missing dates are left out; an entry without dates gets an empty label.
func DateLabel(e *curriculum.Entry) string {
	var dates []string
	if e.Beginning != nil {
		dates = append(dates, e.Beginning.YearLabel())
	}
	if e.End != nil {
		dates = append(dates, e.End.YearLabel())
	}
	return strings.Join(dates, dateSeparator)
}

// siblingLayout is measured once per group of direct siblings before any of
// them is rendered, so that their date columns line up.
type siblingLayout struct {
	widest int
}

func measureSiblings(entries []curriculum.Entry) siblingLayout {
	var l siblingLayout
	for i := range entries {
		if n := len(DateLabel(&entries[i])); n > l.widest {
			l.widest = n
		}
	}
	return l
}

// margin is the directive prefixed to each sibling. Wider labels get a
// smaller negative margin.
func (l siblingLayout) margin(base float64) string {
	if l.widest == 0 || base <= 0 {
		return ""
	}
	return fmt.Sprintf(`\hspace*{-%.2fcm}`, base/float64(l.widest))
}

// Entry renders e and its whole subtree as one \cventry.
func (r *Renderer) Entry(e *curriculum.Entry) string {
	var body strings.Builder
	if e.Description != nil {
		body.WriteString(r.Description(e.Description))
	}
	if len(e.Children) > 0 {
		margin := measureSiblings(e.Children).margin(r.opts.NestedMarginBase)
		for i := range e.Children {
			body.WriteString("\n")
			body.WriteString(margin)
			body.WriteString(r.Entry(&e.Children[i]))
		}
	}
	return fmt.Sprintf(`\cventry{%s}{%s}{%s}{%s}{%s}{%s}`,
		DateLabel(e),
		r.text(e.Heading()),
		r.text(e.Institution),
		r.optional(e.City),
		r.optional(e.Grade),
		body.String(),
	)
}

// Description renders the context text followed by the skill list, one item
// per non-empty category.
func (r *Renderer) Description(d *curriculum.Description) string {
	lines := []string{"%"}
	if d.Context != "" {
		lines = append(lines, r.text(d.Context))
	}
	var items []string
	for _, c := range r.opts.Categories {
		list := d.List(c)
		if len(list) == 0 {
			continue
		}
		skills := make([]string, len(list))
		for i, s := range list {
			skills[i] = r.text(s)
		}
		items = append(items, fmt.Sprintf("\\item[%s] %s", c.Label(), strings.Join(skills, ", ")))
	}
	if len(items) > 0 {
		lines = append(lines, `\begin{description}`)
		lines = append(lines, items...)
		lines = append(lines, `\end{description}`)
	}
	return strings.Join(lines, "\n")
}
