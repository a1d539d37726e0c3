package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error so controllers can map it to an HTTP status.
type Kind int

const (
	KindInternal Kind = iota
	KindNotFound
	KindForbidden
	KindBadRequest
)

// Error is a domain error with a user-facing message.
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

func NotFound(msg string) error   { return &Error{Kind: KindNotFound, Message: msg} }
func Forbidden(msg string) error  { return &Error{Kind: KindForbidden, Message: msg} }
func BadRequest(msg string) error { return &Error{Kind: KindBadRequest, Message: msg} }

func Internal(msg string, err error) error {
	return &Error{Kind: KindInternal, Message: msg, Err: err}
}

// KindOf returns the Kind of err, or KindInternal for unclassified errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

func IsKind(err error, kind Kind) bool { return KindOf(err) == kind }

// Message returns the user-facing message of err. Unclassified errors get a
// generic message so internals never leak to the client.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "internal server error"
}

// HTTPStatus maps an error Kind to the status code controllers respond with.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindNotFound:
		return http.StatusNotFound
	case KindForbidden:
		return http.StatusForbidden
	case KindBadRequest:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
