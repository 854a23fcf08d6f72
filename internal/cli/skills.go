package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/blagoySimandov/cvtex/internal/curriculum"
	"github.com/blagoySimandov/cvtex/internal/yaml"
)

var (
	categoryStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	skillStyle    = lipgloss.NewStyle().PaddingLeft(2)
	durationStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

type skillsFlags struct {
	format    string
	raw       bool
	education bool
	write     bool
}

func newSkillsCmd(a *app) *cobra.Command {
	var f skillsFlags
	cmd := &cobra.Command{
		Use:   "skills <input>",
		Short: "Report how long each skill has been used",
		Long: `Skills aggregates the skill tags of every experience, including nested roles,
and prints the accumulated duration per skill. Durations are rounded to whole
years unless --raw is given or round_skills is disabled.

With --write the report is stored under a "skills" key of the input YAML file,
keeping the rest of the file as it is.`,
		Args: exactlyOneInput,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.skills(args[0], f)
		},
	}
	cmd.Flags().StringVarP(&f.format, "format", "f", "text", "output format: text, yaml or json")
	cmd.Flags().BoolVar(&f.raw, "raw", false, "do not round durations")
	cmd.Flags().BoolVar(&f.education, "education", false, "include education entries")
	cmd.Flags().BoolVarP(&f.write, "write", "w", false, "store the report in the input file")
	return cmd
}

func (a *app) skills(input string, f skillsFlags) error {
	content, cv, err := a.load(input)
	if err != nil {
		return err
	}
	cats, err := a.cfg.Categories()
	if err != nil {
		return withCode(ExitConfigError, err)
	}

	now := a.now()
	set := cv.Skills(now)
	if f.education {
		set.Merge(curriculum.Skills(cv.Education, now))
	}
	if a.cfg.Render.RoundSkills && !f.raw {
		set = set.Rounded()
	}
	report := set.Report(cats)

	if f.write {
		return a.writeReport(input, content, report)
	}

	switch f.format {
	case "text":
		_, err = io.WriteString(a.out, formatReport(report))
	case "yaml":
		var out []byte
		out, err = yaml.Encode(map[string]interface{}{"skills": report})
		if err == nil {
			_, err = a.out.Write(out)
		}
	case "json":
		var out []byte
		out, err = json.MarshalIndent(report, "", "  ")
		if err == nil {
			_, err = fmt.Fprintln(a.out, string(out))
		}
	default:
		return withCode(ExitUsageError, fmt.Errorf("unknown format %q: expected text, yaml or json", f.format))
	}
	return err
}

func (a *app) writeReport(input string, content []byte, report []curriculum.CategorySkills) error {
	switch {
	case input == "-":
		return withCode(ExitUsageError, fmt.Errorf("--write needs an input file"))
	case strings.EqualFold(filepath.Ext(input), ".json"):
		return withCode(ExitUsageError, fmt.Errorf("--write only supports YAML files, %s is JSON", input))
	}
	updated, err := yaml.UpdateYAML(content, "skills", report)
	if err != nil {
		return fmt.Errorf("failed to update %s: %w", input, err)
	}
	if err := os.WriteFile(input, updated, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	a.log.Info("stored skill report", zap.String("path", input), zap.Int("categories", len(report)))
	return nil
}

// formatReport lays out one block per category with aligned durations.
func formatReport(report []curriculum.CategorySkills) string {
	if len(report) == 0 {
		return "no skills found\n"
	}
	width := 0
	for _, cs := range report {
		for _, s := range cs.Skills {
			if w := lipgloss.Width(s.Name); w > width {
				width = w
			}
		}
	}

	var sb strings.Builder
	for i, cs := range report {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(categoryStyle.Render(cs.Category.Label()))
		sb.WriteString("\n")
		for _, s := range cs.Skills {
			name := s.Name + strings.Repeat(" ", width-lipgloss.Width(s.Name))
			sb.WriteString(skillStyle.Render(name + "  " + durationStyle.Render(s.Duration.String())))
			sb.WriteString("\n")
		}
	}
	return sb.String()
}
