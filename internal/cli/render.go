package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/blagoySimandov/cvtex/internal/curriculum"
	"github.com/blagoySimandov/cvtex/internal/latex"
	"github.com/blagoySimandov/cvtex/internal/pdf"
	"github.com/blagoySimandov/cvtex/internal/yaml"
)

type renderFlags struct {
	output        string
	pdf           bool
	engine        string
	skillsSection bool
}

func newRenderCmd(a *app) *cobra.Command {
	var f renderFlags
	cmd := &cobra.Command{
		Use:   "render <input>",
		Short: "Render a curriculum to LaTeX (and PDF with --pdf)",
		Long: `Render reads a curriculum in YAML or JSON and writes the LaTeX source next to
the input (or into output_dir / --output). Use "-" to read standard input;
the LaTeX is then written to standard output unless --output is given.`,
		Args: exactlyOneInput,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.render(cmd.Context(), cmd, args[0], f)
		},
	}
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "path of the generated .tex file")
	cmd.Flags().BoolVar(&f.pdf, "pdf", false, "compile the generated LaTeX to PDF")
	cmd.Flags().StringVar(&f.engine, "engine", "", "TeX engine to use with --pdf (default from config)")
	cmd.Flags().BoolVar(&f.skillsSection, "skills-section", false, "add an aggregated skills section")
	return cmd
}

func (a *app) readInput(input string) ([]byte, error) {
	if input == "-" {
		content, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read standard input: %w", err)
		}
		return content, nil
	}
	content, err := os.ReadFile(input)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return content, nil
}

// load reads and decodes input, logging data-quality warnings.
func (a *app) load(input string) ([]byte, *curriculum.Curriculum, error) {
	content, err := a.readInput(input)
	if err != nil {
		return nil, nil, err
	}
	cv, err := yaml.Decode(content)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to decode %s: %w", input, err)
	}
	for _, w := range cv.Warnings() {
		a.log.Warn(w.Message, zap.String("entry", w.Field))
	}
	a.log.Debug("curriculum decoded",
		zap.String("input", input),
		zap.Int("education", len(cv.Education)),
		zap.Int("experiences", len(cv.Experiences)),
		zap.Int("languages", len(cv.Languages)))
	return content, cv, nil
}

func (a *app) render(ctx context.Context, cmd *cobra.Command, input string, f renderFlags) error {
	_, cv, err := a.load(input)
	if err != nil {
		return err
	}

	opts, err := a.cfg.LatexOptions(a.now())
	if err != nil {
		return withCode(ExitConfigError, err)
	}
	if cmd.Flags().Changed("skills-section") {
		opts.SkillsSection = f.skillsSection
	}
	preamble, err := a.cfg.LoadPreamble()
	if err != nil {
		return withCode(ExitConfigError, err)
	}

	tex, err := latex.New(opts).Document(cv, preamble)
	if err != nil {
		return fmt.Errorf("failed to render %s: %w", input, err)
	}

	texPath := a.texPath(input, f.output)
	if texPath == "" {
		if f.pdf {
			return withCode(ExitUsageError, fmt.Errorf("--pdf needs --output when reading standard input"))
		}
		_, err := io.WriteString(a.out, tex)
		return err
	}

	if err := os.MkdirAll(filepath.Dir(texPath), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(texPath, []byte(tex), 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	a.log.Info("wrote LaTeX", zap.String("path", texPath))

	if !f.pdf {
		return nil
	}
	engineName := a.cfg.PDF.Engine
	if f.engine != "" {
		engineName = f.engine
	}
	return a.compile(ctx, engineName, texPath)
}

func (a *app) compile(ctx context.Context, engineName, texPath string) error {
	engine, err := pdf.New(engineName)
	if err != nil {
		return withCode(ExitEngineError, err)
	}
	return a.compileWith(ctx, engine, texPath)
}

func (a *app) compileWith(ctx context.Context, engine pdf.Engine, texPath string) error {
	ctx, cancel := context.WithTimeout(ctx, a.cfg.PDF.Timeout)
	defer cancel()

	a.log.Info("compiling PDF", zap.String("engine", engine.Name()), zap.Duration("timeout", a.cfg.PDF.Timeout))
	pdfPath, err := engine.Compile(ctx, texPath, filepath.Dir(texPath))
	if err != nil {
		return withCode(ExitEngineError, err)
	}
	a.log.Info("wrote PDF", zap.String("path", pdfPath))
	return nil
}

// texPath picks where the LaTeX goes: the explicit output, the configured
// output directory, or next to the input. It is empty for stdin without -o.
func (a *app) texPath(input, output string) string {
	if output != "" {
		return output
	}
	if input == "-" {
		return ""
	}
	name := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input)) + ".tex"
	if a.cfg.OutputDir != "" {
		return filepath.Join(a.cfg.OutputDir, name)
	}
	return filepath.Join(filepath.Dir(input), name)
}
