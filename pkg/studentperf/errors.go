package studentperf

import (
	"errors"
	"fmt"

	"github.com/ukaji3/studentperf-go/pkg/studentperf/metrics"
)

// ErrEmptyInput indicates there was no text to parse.
var ErrEmptyInput = errors.New("no input: paste or upload CSV")

// ErrMalformedHeader indicates the header has no subject columns.
var ErrMalformedHeader = errors.New("CSV must have at least Name + 1 subject")

// ErrNoData indicates an operation needs a loaded table and none is loaded.
var ErrNoData = errors.New("no data")

// ErrUnknownSort indicates an unsupported sort mode.
var ErrUnknownSort = metrics.ErrUnknownSort

// InputError represents a failure to obtain or accept input text.
type InputError struct {
	Source string // file path, "stdin", "cache" or "request"
	Err    error
}

func (e *InputError) Error() string {
	return fmt.Sprintf("input error (%s): %v", e.Source, e.Err)
}

func (e *InputError) Unwrap() error {
	return e.Err
}

// NewInputError creates a new InputError.
func NewInputError(source string, err error) *InputError {
	return &InputError{
		Source: source,
		Err:    err,
	}
}
