package grb

import (
	"errors"
	"fmt"
)

// ErrType marks failures where an argument has the wrong type or container
// shape (wrong chunks container, non-numeric chunk entry, duplicate rest
// placeholder, non-integer or nested slice where a flat one is required).
var ErrType = errors.New("invalid argument type")

// ErrValue marks failures where an argument has the right type but an invalid
// value (mismatched dimensionality, negative chunk size, negative resolved
// rest placeholder, unknown order spelling).
var ErrValue = errors.New("invalid argument value")

var errNotInitialized = errors.New("GraphBLAS library not initialized")

func typeErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrType, fmt.Sprintf(format, args...))
}

func valueErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValue, fmt.Sprintf(format, args...))
}

// APIError carries a non-success GraphBLAS return code, the name of the C
// call that produced it, and the error string reported by the library when
// one was available.
type APIError struct {
	Info Info
	Op   string
	Msg  string
}

func (e *APIError) Error() string {
	if e.Msg != "" {
		return fmt.Sprintf("%s failed: %s: %s", e.Op, e.Info, e.Msg)
	}
	return fmt.Sprintf("%s failed: %s", e.Op, e.Info)
}

func apiError(op string, info Info) error {
	return &APIError{Info: info, Op: op}
}
