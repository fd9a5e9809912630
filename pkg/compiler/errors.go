package compiler

import (
	"errors"
	"fmt"
)

// ErrIO marks filesystem failures. Callers can match the whole class
// with errors.Is regardless of which operation failed.
var ErrIO = errors.New("i/o failure")

// IOError describes a failed filesystem operation on the output side of
// a run. Read-side failures surface as osconf.LoadError instead, so the
// two directions stay distinguishable.
type IOError struct {
	Op   string // Operation that failed ("write", "rename", "mkdir")
	Path string // Path the operation touched
	Err  error  // Underlying error
}

// Error implements the error interface.
func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap exposes both the ErrIO class marker and the underlying cause,
// so errors.Is finds either.
func (e *IOError) Unwrap() []error {
	return []error{ErrIO, e.Err}
}

// NewIOError creates a new IOError.
func NewIOError(op, path string, err error) *IOError {
	return &IOError{Op: op, Path: path, Err: err}
}
