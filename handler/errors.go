package handler

import (
	"errors"
	"net/http"
)

// Package-level errors for common failure scenarios
var (
	// ErrNilResponse indicates a handler returned nil instead of a Response
	ErrNilResponse = errors.New("handler returned nil response")
)

// Kind is the closed set of error categories an envelope can carry.
type Kind string

const (
	KindInvalidInput Kind = "invalid_input"
	KindNotFound     Kind = "not_found"
	KindConflict     Kind = "conflict"
	KindInternal     Kind = "internal"
)

// Status maps the kind to its HTTP status code.
// Unknown kinds are treated as internal errors.
func (k Kind) Status() int {
	switch k {
	case KindInvalidInput:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Error is a classified, client-facing error.
// Message is safe to show to the caller; Err keeps the underlying cause for logs.
// Code overrides the status derived from Kind when non-zero.
type Error struct {
	Kind    Kind
	Message string
	Code    int
	Err     error
}

// Error implements the error interface.
func (e Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap exposes the underlying cause to errors.Is / errors.As.
func (e Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an Error with the same kind and message.
// It lets predefined errors be matched after WithMessage or Wrap.
func (e Error) Is(target error) bool {
	t, ok := target.(Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind && e.Message == t.Message
}

// Status returns the HTTP status code for the error.
func (e Error) Status() int {
	if e.Code != 0 {
		return e.Code
	}
	return e.Kind.Status()
}

// WithMessage returns a copy of the error with Message replaced.
func (e Error) WithMessage(message string) Error {
	e.Message = message
	return e
}

// Wrap returns a copy of the error carrying cause for logging.
func (e Error) Wrap(cause error) Error {
	e.Err = cause
	return e
}

// NewError creates a classified error.
//
// Example:
//
//	err := handler.NewError(handler.KindConflict, "Email already exists")
func NewError(kind Kind, message string) Error {
	return Error{Kind: kind, Message: message}
}

// InvalidInput creates a 400 error with the given message.
func InvalidInput(message string) Error {
	return NewError(KindInvalidInput, message)
}

// NotFound creates a 404 error with the given message.
func NotFound(message string) Error {
	return NewError(KindNotFound, message)
}

// Conflict creates a 409 error with the given message.
func Conflict(message string) Error {
	return NewError(KindConflict, message)
}

// Predefined errors shared by the router, binders and handlers.
var (
	ErrNotFound        = NotFound("Not found")
	ErrInvalidJSON     = InvalidInput("Invalid JSON body")
	ErrPayloadTooLarge = Error{Kind: KindInvalidInput, Message: "Payload too large", Code: http.StatusRequestEntityTooLarge}
	ErrInternal        = NewError(KindInternal, "Internal server error")
	ErrTimeout         = Error{Kind: KindInternal, Message: "Request timed out", Code: http.StatusGatewayTimeout}
)
