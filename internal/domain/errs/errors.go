// Package errs holds the error kinds shared by the domain packages. The HTTP
// layer maps a kind to a status code; the message is safe to show to clients.
package errs

import "errors"

var (
	ErrInvalid      = errors.New("invalid input")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
)

type Error struct {
	Kind error
	Msg  string
}

func (e *Error) Error() string { return e.Msg }

func (e *Error) Unwrap() error { return e.Kind }

func Invalid(msg string) *Error      { return &Error{Kind: ErrInvalid, Msg: msg} }
func Unauthorized(msg string) *Error { return &Error{Kind: ErrUnauthorized, Msg: msg} }
func Forbidden(msg string) *Error    { return &Error{Kind: ErrForbidden, Msg: msg} }
func NotFound(msg string) *Error     { return &Error{Kind: ErrNotFound, Msg: msg} }
func Conflict(msg string) *Error     { return &Error{Kind: ErrConflict, Msg: msg} }

// Message returns the client-facing message of a domain error, or fallback.
func Message(err error, fallback string) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Msg
	}
	return fallback
}
