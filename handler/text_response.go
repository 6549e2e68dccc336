package handler

import (
	"io"
	"net/http"
)

// textResponse implements Response for plain text bodies
type textResponse struct {
	status int
	body   string
}

func (t textResponse) Render(w http.ResponseWriter, r *http.Request) error {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(t.status)
	_, err := io.WriteString(w, t.body)
	return err
}

// TextOption configures text response
type TextOption func(*textResponse)

// WithTextStatus sets custom HTTP status code
func WithTextStatus(status int) TextOption {
	return func(r *textResponse) {
		r.status = status
	}
}

// Text creates a plain text response with status 200 by default.
// Use it for endpoints that deliberately opt out of the JSON envelope.
//
// Example:
//
//	return handler.Text("Not found", handler.WithTextStatus(http.StatusNotFound))
func Text(body string, opts ...TextOption) Response {
	r := &textResponse{
		status: http.StatusOK,
		body:   body,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}
