package binder

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// JSON creates a JSON body binder function.
// Content-Type is not enforced and unknown fields are ignored, so clients
// that omit the header or send extra keys are still accepted.
//
// Example:
//
//	rt.Post("/api/users", handler.Wrap(create,
//		handler.WithBinder[handler.Context, createRequest](binder.JSON()),
//	))
func JSON() func(r *http.Request, v any) error {
	return DecodeJSON
}

// DecodeJSON decodes the request body into v.
// An empty body, malformed JSON and trailing data are reported as ErrInvalidJSON.
// Bodies cut off by http.MaxBytesReader are reported as ErrBodyTooLarge.
func DecodeJSON(r *http.Request, v any) error {
	if r.Body == nil {
		return fmt.Errorf("%w: empty body", ErrInvalidJSON)
	}

	decoder := json.NewDecoder(r.Body)
	if err := decoder.Decode(v); err != nil {
		return decodeError(err)
	}

	// Ensure entire body was consumed
	var extra json.RawMessage
	if err := decoder.Decode(&extra); !errors.Is(err, io.EOF) {
		if err != nil {
			if tooLarge := decodeError(err); errors.Is(tooLarge, ErrBodyTooLarge) {
				return tooLarge
			}
		}
		return fmt.Errorf("%w: unexpected data after JSON value", ErrInvalidJSON)
	}

	return nil
}

func decodeError(err error) error {
	var maxErr *http.MaxBytesError
	switch {
	case errors.As(err, &maxErr):
		return fmt.Errorf("%w: limit is %d bytes", ErrBodyTooLarge, maxErr.Limit)
	case errors.Is(err, io.EOF):
		return fmt.Errorf("%w: empty body", ErrInvalidJSON)
	default:
		return fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
}
