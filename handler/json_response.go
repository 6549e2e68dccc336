package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrymomot/edgeworker/binder"
)

// Envelope is the uniform JSON body returned by API handlers.
// Success implies Error is nil; failure implies Data is nil.
type Envelope struct {
	Success bool         `json:"success"`
	Data    any          `json:"data"`
	Error   *ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
}

// jsonResponse implements Response for JSON rendering
type jsonResponse struct {
	status int
	body   Envelope
}

// Render encodes the body before touching w, so an encoding failure leaves
// the response unwritten for the error handler.
func (j jsonResponse) Render(w http.ResponseWriter, r *http.Request) error {
	body, err := json.Marshal(j.body)
	if err != nil {
		return fmt.Errorf("encode response: %w", err)
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(j.status)
	_, err = w.Write(append(body, '\n'))
	return err
}

// JSONOption configures JSON response
type JSONOption func(*jsonResponse)

// WithJSONStatus sets custom HTTP status code
func WithJSONStatus(status int) JSONOption {
	return func(r *jsonResponse) {
		r.status = status
	}
}

// JSON creates a success envelope carrying v.
// A nil v renders as "data": null, which is how delete confirmations look.
//
// Example:
//
//	return handler.JSON(user, handler.WithJSONStatus(http.StatusCreated))
func JSON(v any, opts ...JSONOption) Response {
	r := &jsonResponse{
		status: http.StatusOK,
		body: Envelope{
			Success: true,
			Data:    v,
		},
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// JSONError creates a failure envelope from err.
// Classified errors (Error) keep their kind and message; anything else is
// reported as a generic internal error so driver details never leak.
func JSONError(err error, opts ...JSONOption) Response {
	e := Classify(err)
	r := &jsonResponse{
		status: e.Status(),
		body: Envelope{
			Success: false,
			Error: &ErrorDetail{
				Kind:    e.Kind,
				Message: e.Message,
			},
		},
	}

	// Options can override status
	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Classify converts any error into a client-facing Error.
func Classify(err error) Error {
	if err == nil {
		return ErrInternal
	}

	var e Error
	if errors.As(err, &e) {
		return e
	}

	switch {
	case errors.Is(err, binder.ErrBodyTooLarge):
		return ErrPayloadTooLarge.Wrap(err)
	case errors.Is(err, binder.ErrInvalidJSON):
		return ErrInvalidJSON.Wrap(err)
	case errors.Is(err, binder.ErrInvalidPath):
		return InvalidInput("Invalid path parameter").Wrap(err)
	case errors.Is(err, context.DeadlineExceeded):
		return ErrTimeout.Wrap(err)
	}

	return ErrInternal.Wrap(err)
}

// failResponse hands its error back to Wrap's error handler.
type failResponse struct {
	err error
}

func (f failResponse) Render(http.ResponseWriter, *http.Request) error {
	if f.err == nil {
		return ErrInternal
	}
	return f.err
}

// Fail defers err to the route's error handler, which logs the cause and
// renders the failure envelope. Use it instead of JSONError when the failure
// should show up in the logs.
//
// Example:
//
//	user, err := store.Get(ctx, req.ID)
//	if err != nil {
//		return handler.Fail(err)
//	}
func Fail(err error) Response {
	return failResponse{err: err}
}
