package requests

import (
	"errors"
	"fmt"
)

// ErrNilArgument is the identity for nil-request contract violations, for
// use with errors.Is.
var ErrNilArgument = errors.New("nil argument")

// NilArgumentError reports a nil command or query passed to an operation
// handler. It marks a caller bug, distinct from request validation
// failures, and its text is stable so callers and tests can match on it.
type NilArgumentError struct {
	Param string
}

// NewNilArgumentError returns a contract-violation error for the named
// parameter.
func NewNilArgumentError(param string) *NilArgumentError {
	return &NilArgumentError{Param: param}
}

func (e *NilArgumentError) Error() string {
	return fmt.Sprintf("Value cannot be null. (Parameter '%s')", e.Param)
}

func (e *NilArgumentError) Is(target error) bool {
	return target == ErrNilArgument
}
