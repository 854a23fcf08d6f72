// Package config loads cvtex settings from a TOML file with environment
// overrides.
//
// Lookup order:
//   - the path given with --config
//   - ./cvtex.toml
//   - built-in defaults
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/blagoySimandov/cvtex/internal/curriculum"
	"github.com/blagoySimandov/cvtex/internal/latex"
	"github.com/blagoySimandov/cvtex/internal/pdf"
)

// DefaultFile is the configuration file looked up in the working directory.
const DefaultFile = "cvtex.toml"

// Config is the complete cvtex configuration.
type Config struct {
	// Preamble is a path to a LaTeX preamble. Empty uses the embedded one.
	Preamble string `toml:"preamble"`
	// OutputDir receives .tex and .pdf files. Empty writes next to the input.
	OutputDir string `toml:"output_dir"`

	Render RenderConfig `toml:"render"`
	PDF    PDFConfig    `toml:"pdf"`
	Log    LogConfig    `toml:"log"`
}

// RenderConfig controls the generated LaTeX.
type RenderConfig struct {
	RoundSkills      bool    `toml:"round_skills"`
	SkillsSection    bool    `toml:"skills_section"`
	RawLaTeX         bool    `toml:"raw_latex"`
	NestedMarginBase float64 `toml:"nested_margin_base"`
	// Categories restricts and orders the displayed skill categories, by
	// description key or label. Empty shows all six.
	Categories []string `toml:"categories"`

	SectionEducation  string `toml:"section_education"`
	SectionExperience string `toml:"section_experience"`
	SectionLanguages  string `toml:"section_languages"`
	SectionSkills     string `toml:"section_skills"`
}

// PDFConfig selects the external TeX engine.
type PDFConfig struct {
	Engine  string        `toml:"engine"`
	Timeout time.Duration `toml:"timeout"`
}

// LogConfig configures the zap logger.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `toml:"level"`
	// File enables a rotating JSON log file in addition to the console.
	File       string `toml:"file"`
	MaxSizeMB  int    `toml:"max_size_mb"`
	MaxBackups int    `toml:"max_backups"`
}

// Default returns the built-in configuration.
func Default() *Config {
	opts := latex.DefaultOptions()
	return &Config{
		Render: RenderConfig{
			RoundSkills:       opts.RoundSkills,
			NestedMarginBase:  opts.NestedMarginBase,
			SectionEducation:  opts.Sections.Education,
			SectionExperience: opts.Sections.Experience,
			SectionLanguages:  opts.Sections.Languages,
			SectionSkills:     opts.Sections.Skills,
		},
		PDF: PDFConfig{
			Engine:  "pdflatex",
			Timeout: 2 * time.Minute,
		},
		Log: LogConfig{
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
	}
}

// Load reads path, or ./cvtex.toml when path is empty. A missing default file
// is not an error; a missing explicit path is.
func Load(path string) (*Config, error) {
	cfg := Default()
	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			cfg.ApplyEnvOverrides()
			return cfg, cfg.Validate()
		}
		return nil, fmt.Errorf("failed to load config %s: %w", path, err)
	}

	cfg.ApplyEnvOverrides()
	return cfg, cfg.Validate()
}

// ApplyEnvOverrides applies CVTEX_* environment variables.
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("CVTEX_PREAMBLE"); v != "" {
		c.Preamble = v
	}
	if v := os.Getenv("CVTEX_OUTPUT_DIR"); v != "" {
		c.OutputDir = v
	}
	if v := os.Getenv("CVTEX_ENGINE"); v != "" {
		c.PDF.Engine = v
	}
	if v := os.Getenv("CVTEX_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
}

// ValidationError describes an invalid configuration value.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("config %s: %s", e.Field, e.Message)
}

// Validate checks the configuration and returns every problem found.
func (c *Config) Validate() error {
	var errs []error
	if _, err := c.Categories(); err != nil {
		errs = append(errs, ValidationError{"render.categories", err.Error()})
	}
	if c.Render.NestedMarginBase < 0 {
		errs = append(errs, ValidationError{"render.nested_margin_base", "must not be negative"})
	}
	if _, err := pdf.New(c.PDF.Engine); err != nil {
		errs = append(errs, ValidationError{"pdf.engine", err.Error()})
	}
	if c.PDF.Timeout <= 0 {
		errs = append(errs, ValidationError{"pdf.timeout", "must be positive"})
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, ValidationError{"log.level", fmt.Sprintf("unknown level %q", c.Log.Level)})
	}
	return errors.Join(errs...)
}

// Categories resolves the configured category list.
func (c *Config) Categories() ([]curriculum.Category, error) {
	if len(c.Render.Categories) == 0 {
		return curriculum.Categories(), nil
	}
	out := make([]curriculum.Category, 0, len(c.Render.Categories))
	for _, name := range c.Render.Categories {
		cat, err := curriculum.ParseCategory(name)
		if err != nil {
			return nil, err
		}
		out = append(out, cat)
	}
	return out, nil
}

// LatexOptions converts the render settings into renderer options.
func (c *Config) LatexOptions(now time.Time) (latex.Options, error) {
	cats, err := c.Categories()
	if err != nil {
		return latex.Options{}, err
	}
	return latex.Options{
		Categories:       cats,
		RoundSkills:      c.Render.RoundSkills,
		SkillsSection:    c.Render.SkillsSection,
		RawLaTeX:         c.Render.RawLaTeX,
		NestedMarginBase: c.Render.NestedMarginBase,
		Sections: latex.Sections{
			Education:  c.Render.SectionEducation,
			Experience: c.Render.SectionExperience,
			Languages:  c.Render.SectionLanguages,
			Skills:     c.Render.SectionSkills,
		},
		Now: now,
	}, nil
}

// LoadPreamble returns the configured preamble, or the embedded default.
func (c *Config) LoadPreamble() ([]byte, error) {
	if c.Preamble == "" {
		return latex.DefaultPreamble, nil
	}
	content, err := os.ReadFile(c.Preamble)
	if err != nil {
		return nil, fmt.Errorf("failed to read preamble: %w", err)
	}
	return content, nil
}
