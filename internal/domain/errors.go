package domain

import (
	"errors"
	"fmt"
)

type ErrorKind string

const (
	KindUnauthorized      ErrorKind = "UNAUTHORIZED"
	KindForbidden         ErrorKind = "FORBIDDEN"
	KindNotFound          ErrorKind = "NOT_FOUND"
	KindInvalidRequest    ErrorKind = "INVALID_REQUEST"
	KindRoomUnavailable   ErrorKind = "ROOM_UNAVAILABLE"
	KindFlightUnavailable ErrorKind = "FLIGHT_UNAVAILABLE"
	KindAlreadyConfirmed  ErrorKind = "ALREADY_CONFIRMED"
	KindInvalidState      ErrorKind = "INVALID_STATE"
	KindUpstream          ErrorKind = "UPSTREAM_ERROR"
	KindInternal          ErrorKind = "INTERNAL"
)

// Error carries a stable kind and a message that is safe to show to callers.
// Err keeps the underlying cause for logs only.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func NewError(kind ErrorKind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Errorf(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches cause to a new error of the given kind.
func Wrap(kind ErrorKind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Err: cause}
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error of the same kind, so errors.Is(err, ErrNotFound) works.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Message == "" || t.Message == e.Message)
}

var (
	ErrUnauthorized      = &Error{Kind: KindUnauthorized}
	ErrForbidden         = &Error{Kind: KindForbidden}
	ErrNotFound          = &Error{Kind: KindNotFound}
	ErrInvalidRequest    = &Error{Kind: KindInvalidRequest}
	ErrRoomUnavailable   = &Error{Kind: KindRoomUnavailable}
	ErrFlightUnavailable = &Error{Kind: KindFlightUnavailable}
	ErrAlreadyConfirmed  = &Error{Kind: KindAlreadyConfirmed}
	ErrInvalidState      = &Error{Kind: KindInvalidState}
	ErrUpstream          = &Error{Kind: KindUpstream}
	ErrInternal          = &Error{Kind: KindInternal}
)

// KindOf returns the kind of err, or KindInternal for errors outside the taxonomy.
func KindOf(err error) ErrorKind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindInternal
}

// MessageOf returns the caller-safe message of err.
func MessageOf(err error) string {
	var de *Error
	if errors.As(err, &de) && de.Kind != KindInternal {
		return de.Message
	}
	return "internal server error"
}
