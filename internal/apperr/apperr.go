// Package apperr defines the application error taxonomy shared by services
// and mapped to HTTP statuses at the boundary.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an application error
type Kind int

const (
	// Internal is an unexpected data-access or infrastructure failure
	Internal Kind = iota
	// NotFound means a referenced entity does not exist
	NotFound
	// InvalidInput means a malformed payload or out-of-range value
	InvalidInput
	// InvalidTransition means a status change not permitted from the current state
	InvalidTransition
	// Conflict means the operation clashes with existing state (open work,
	// duplicate serial number, duplicate name)
	Conflict
)

// Error carries a kind plus a human-readable message
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates an error of the given kind
func New(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a kind and message to an underlying error
func Wrap(kind Kind, err error, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Err: err}
}

// KindOf extracts the kind of err, defaulting to Internal
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return Internal
}

// Is reports whether err carries the given kind
func Is(err error, kind Kind) bool {
	var ae *Error
	return errors.As(err, &ae) && ae.Kind == kind
}
