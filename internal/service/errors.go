// Package service implements the reservation platform's core operations:
// capacity-checked table creation, the invitation lifecycle, and the
// reservation consistency rules. Services know nothing about HTTP; they
// take typed arguments and return classified errors that the handler
// layer translates into status codes.
package service

import "fmt"

// Kind classifies a service failure. The numeric values are stable and
// part of the service contract; handlers map each kind to exactly one
// HTTP status regardless of which operation raised it.
type Kind int

const (
	KindNotFound Kind = iota + 1
	KindForbidden
	KindConflict
	KindValidation
	KindUnauthorized
	KindInternal
)

// Error is the classified failure type returned by every service
// operation. Message is safe to show to clients; Err, when set, carries
// the underlying storage failure for logging.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf extracts the kind from an error, defaulting to KindInternal for
// anything that is not a classified *Error.
func KindOf(err error) Kind {
	if se, ok := err.(*Error); ok {
		return se.Kind
	}
	return KindInternal
}

func notFound(msg string) *Error     { return &Error{Kind: KindNotFound, Message: msg} }
func forbidden(msg string) *Error    { return &Error{Kind: KindForbidden, Message: msg} }
func conflict(msg string) *Error     { return &Error{Kind: KindConflict, Message: msg} }
func validation(msg string) *Error   { return &Error{Kind: KindValidation, Message: msg} }
func unauthorized(msg string) *Error { return &Error{Kind: KindUnauthorized, Message: msg} }

// internalErr wraps an unanticipated lower-level failure. These must be
// logged by the boundary, never silently swallowed.
func internalErr(msg string, err error) *Error {
	return &Error{Kind: KindInternal, Message: msg, Err: err}
}

// invalid converts an entity validation error into a classified error,
// preserving the entity's message.
func invalid(err error) *Error {
	return &Error{Kind: KindValidation, Message: err.Error()}
}
