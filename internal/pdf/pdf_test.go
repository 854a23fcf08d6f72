package pdf

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeEngine(t *testing.T, name string, runErr error, output string) (*CommandEngine, *[]string) {
	t.Helper()
	e, err := New(name)
	require.NoError(t, err)
	var called []string
	e.lookPath = func(bin string) (string, error) { return "/usr/bin/" + bin, nil }
	e.run = func(ctx context.Context, bin string, args ...string) ([]byte, error) {
		called = append([]string{bin}, args...)
		return []byte(output), runErr
	}
	return e, &called
}

func TestNewRejectsUnknownEngine(t *testing.T) {
	_, err := New("word")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownEngine))
	assert.Contains(t, err.Error(), "pdflatex")
}

func TestCompileArguments(t *testing.T) {
	e, called := fakeEngine(t, "pdflatex", nil, "")
	pdf, err := e.Compile(context.Background(), "/tmp/cv/jessica.tex", "/tmp/out")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/out/jessica.pdf", pdf)
	assert.Equal(t, []string{
		"/usr/bin/pdflatex", "-interaction=nonstopmode", "-halt-on-error",
		"-output-directory=/tmp/out", "/tmp/cv/jessica.tex",
	}, *called)

	e, called = fakeEngine(t, "tectonic", nil, "")
	_, err = e.Compile(context.Background(), "cv.tex", "out")
	require.NoError(t, err)
	assert.Equal(t, []string{"/usr/bin/tectonic", "--outdir", "out", "cv.tex"}, *called)
}

func TestCompileMissingBinary(t *testing.T) {
	e, err := New("xelatex")
	require.NoError(t, err)
	e.lookPath = func(string) (string, error) { return "", errors.New("not found") }

	assert.False(t, e.Available())
	_, err = e.Compile(context.Background(), "cv.tex", ".")
	assert.True(t, errors.Is(err, ErrEngineNotFound))
}

func TestCompileFailureKeepsLogTail(t *testing.T) {
	var log strings.Builder
	for i := 0; i < 50; i++ {
		fmt.Fprintf(&log, "line %d\n", i)
	}
	log.WriteString("! Undefined control sequence.\n")
	e, _ := fakeEngine(t, "lualatex", errors.New("exit status 1"), log.String())

	_, err := e.Compile(context.Background(), "cv.tex", ".")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Undefined control sequence")
	assert.NotContains(t, err.Error(), "line 10\n")
}

func TestCompileCancelled(t *testing.T) {
	e, _ := fakeEngine(t, "latexmk", errors.New("signal: killed"), "")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := e.Compile(ctx, "cv.tex", ".")
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestEngines(t *testing.T) {
	assert.Equal(t, []string{"latexmk", "lualatex", "pdflatex", "tectonic", "xelatex"}, Engines())
}
