// Package pdf drives an external TeX engine to turn generated LaTeX into PDF.
package pdf

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
)

var (
	// ErrEngineNotFound is returned when the engine binary is not on PATH.
	ErrEngineNotFound = errors.New("TeX engine not found")
	// ErrUnknownEngine is returned by New for an unsupported engine name.
	ErrUnknownEngine = errors.New("unknown TeX engine")
)

// Engine compiles a .tex file into a PDF.
type Engine interface {
	Name() string
	// Compile writes the PDF for texPath into outDir and returns its path.
	Compile(ctx context.Context, texPath, outDir string) (string, error)
}

type argsFunc func(texPath, outDir string) []string

func latexArgs(texPath, outDir string) []string {
	return []string{"-interaction=nonstopmode", "-halt-on-error", "-output-directory=" + outDir, texPath}
}

var engines = map[string]argsFunc{
	"pdflatex": latexArgs,
	"xelatex":  latexArgs,
	"lualatex": latexArgs,
	"latexmk": func(texPath, outDir string) []string {
		return []string{"-pdf", "-interaction=nonstopmode", "-output-directory=" + outDir, texPath}
	},
	"tectonic": func(texPath, outDir string) []string {
		return []string{"--outdir", outDir, texPath}
	},
}

// Engines lists the supported engine names.
func Engines() []string {
	names := make([]string, 0, len(engines))
	for name := range engines {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

type runFunc func(ctx context.Context, name string, args ...string) ([]byte, error)

func run(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}

// CommandEngine runs a TeX engine binary.
type CommandEngine struct {
	name     string
	args     argsFunc
	lookPath func(string) (string, error)
	run      runFunc
}

// New returns the engine registered under name.
func New(name string) (*CommandEngine, error) {
	args, ok := engines[name]
	if !ok {
		return nil, fmt.Errorf("%w %q (supported: %s)", ErrUnknownEngine, name, strings.Join(Engines(), ", "))
	}
	return &CommandEngine{name: name, args: args, lookPath: exec.LookPath, run: run}, nil
}

func (e *CommandEngine) Name() string {
	return e.name
}

// Available reports whether the engine binary can be found.
func (e *CommandEngine) Available() bool {
	_, err := e.lookPath(e.name)
	return err == nil
}

func (e *CommandEngine) Compile(ctx context.Context, texPath, outDir string) (string, error) {
	bin, err := e.lookPath(e.name)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrEngineNotFound, e.name)
	}
	out, err := e.run(ctx, bin, e.args(texPath, outDir)...)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", fmt.Errorf("%s interrupted: %w", e.name, ctxErr)
		}
		return "", fmt.Errorf("%s failed: %w\n%s", e.name, err, tail(out, 20))
	}
	base := strings.TrimSuffix(filepath.Base(texPath), filepath.Ext(texPath))
	return filepath.Join(outDir, base+".pdf"), nil
}

// tail keeps the last n lines of engine output, where TeX reports errors.
func tail(out []byte, n int) string {
	lines := bytes.Split(bytes.TrimRight(out, "\n"), []byte("\n"))
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return string(bytes.Join(lines, []byte("\n")))
}
