package model

import (
	"errors"
	"fmt"
)

// Kind classifies a failure into the tool's error taxonomy.
// The kind decides propagation: extraction failures are collected per
// chunk and reported together, every other kind aborts the run.
type Kind string

const (
	InputError         Kind = "InputError"         // missing or unreadable document
	ConfigurationError Kind = "ConfigurationError" // invalid chunk bound, unknown provider, ...
	AuthError          Kind = "AuthError"          // credential failure against the LLM service
	ExtractionError    Kind = "ExtractionError"    // per-chunk LLM call or response failure
	AlignmentError     Kind = "AlignmentError"     // alignment call failure
	PathError          Kind = "PathError"          // output directory missing or unwritable
)

// Error carries a taxonomy kind alongside the underlying cause.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewError creates a taxonomy error without an underlying cause.
func NewError(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// WrapError attaches a taxonomy kind to an underlying error.
func WrapError(kind Kind, err error, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...), Err: err}
}

// KindOf returns the taxonomy kind of err, or "" if err carries none.
// The innermost tagged error wins when kinds are nested.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		if inner := KindOf(e.Err); inner != "" {
			return inner
		}
		return e.Kind
	}
	return ""
}

// IsKind reports whether err (or anything it wraps) has the given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	for target := err; errors.As(target, &e); target = e.Err {
		if e.Kind == kind {
			return true
		}
	}
	return false
}
