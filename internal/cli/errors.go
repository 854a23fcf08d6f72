package cli

import (
	"errors"

	"github.com/blagoySimandov/cvtex/internal/curriculum"
	"github.com/blagoySimandov/cvtex/internal/latex"
	"github.com/blagoySimandov/cvtex/internal/pdf"
	"github.com/blagoySimandov/cvtex/internal/yaml"
)

// Exit codes returned by Execute.
const (
	ExitSuccess       = 0
	ExitGeneralError  = 1
	ExitUsageError    = 2
	ExitConfigError   = 3
	ExitInputError    = 4
	ExitEngineError   = 5
	ExitPreambleError = 6
)

// exitError tags an error with the process exit code it should produce.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func withCode(code int, err error) error {
	if err == nil {
		return nil
	}
	return &exitError{code: code, err: err}
}

// ExitCode maps an error returned by a command to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var coded *exitError
	if errors.As(err, &coded) {
		return coded.code
	}

	var (
		validation curriculum.ValidationErrors
		decode     *yaml.DecodeError
		decodeAll  yaml.DecodeErrors
	)
	switch {
	case errors.As(err, &validation), errors.As(err, &decode), errors.As(err, &decodeAll):
		return ExitInputError
	case errors.Is(err, latex.ErrInvalidPreamble):
		return ExitPreambleError
	case errors.Is(err, pdf.ErrEngineNotFound), errors.Is(err, pdf.ErrUnknownEngine):
		return ExitEngineError
	}
	return ExitGeneralError
}
