// Package latex renders a curriculum as moderncv LaTeX source.
//
// Rendering is pure: the renderer never touches the filesystem and the
// reference time used for skill totals comes from Options.
package latex

import (
	_ "embed"
	"strings"
	"time"

	"github.com/blagoySimandov/cvtex/internal/curriculum"
)

// DefaultPreamble is the moderncv preamble used when none is configured.
//
//go:embed preamble.tex
var DefaultPreamble []byte

// Sections holds the headings of the document sections.
type Sections struct {
	Education  string
	Experience string
	Languages  string
	Skills     string
}

// Options configures a Renderer.
type Options struct {
	// Categories lists the skill categories to display, in display order.
	Categories []curriculum.Category

	// RoundSkills rounds accumulated skill durations to whole years.
	RoundSkills bool

	// SkillsSection adds a skills summary between experience and languages.
	SkillsSection bool

	// RawLaTeX disables escaping of free text.
	RawLaTeX bool

	// NestedMarginBase is divided by the widest date label of a sibling
	// group to size the negative margin (in cm) applied to nested entries.
	NestedMarginBase float64

	Sections Sections

	// Now is the reference time for ongoing entries. Zero means time.Now.
	Now time.Time
}

// DefaultOptions returns the options used when no configuration is given.
func DefaultOptions() Options {
	return Options{
		Categories:       curriculum.Categories(),
		RoundSkills:      true,
		NestedMarginBase: 12,
		Sections: Sections{
			Education:  "Education",
			Experience: "Professional experience",
			Languages:  "Languages",
			Skills:     "Skills",
		},
	}
}

// Renderer converts curriculum values to LaTeX fragments.
type Renderer struct {
	opts Options
}

// New creates a renderer. Missing categories fall back to the canonical order.
func New(opts Options) *Renderer {
	if opts.Categories == nil {
		opts.Categories = curriculum.Categories()
	}
	return &Renderer{opts: opts}
}

func (r *Renderer) now() time.Time {
	if r.opts.Now.IsZero() {
		return time.Now()
	}
	return r.opts.Now
}

var escaper = strings.NewReplacer(
	`\`, `\textbackslash{}`,
	`{`, `\textbraceleft{}`,
	`}`, `\textbraceright{}`,
	`&`, `\&`,
	`%`, `\%`,
	`$`, `\$`,
	`#`, `\#`,
	`_`, `\_`,
	`~`, `\textasciitilde{}`,
	`^`, `\textasciicircum{}`,
)

// Escape makes s safe to place inside a LaTeX argument. The result never
// contains an unmatched brace.
func Escape(s string) string {
	return escaper.Replace(s)
}

func (r *Renderer) text(s string) string {
	if r.opts.RawLaTeX {
		return s
	}
	return Escape(s)
}

func (r *Renderer) optional(s *string) string {
	if s == nil {
		return ""
	}
	return r.text(*s)
}
