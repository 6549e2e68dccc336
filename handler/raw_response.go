package handler

import (
	"bytes"
	"io"
	"net/http"
	"strconv"
)

// DefaultContentType is used when a raw body has no known media type.
const DefaultContentType = "application/octet-stream"

// rawResponse streams an arbitrary body with an explicit content type
type rawResponse struct {
	status      int
	contentType string
	size        int64
	body        io.Reader
}

// Render copies the body to the client and closes it when it is an io.Closer.
func (r rawResponse) Render(w http.ResponseWriter, req *http.Request) error {
	if c, ok := r.body.(io.Closer); ok {
		defer func() { _ = c.Close() }()
	}

	contentType := r.contentType
	if contentType == "" {
		contentType = DefaultContentType
	}

	w.Header().Set("Content-Type", contentType)
	if r.size >= 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(r.size, 10))
	}
	w.WriteHeader(r.status)

	if r.body == nil {
		return nil
	}

	_, err := io.Copy(w, r.body)
	return err
}

// Raw creates a 200 response with data as the body.
// An empty contentType falls back to application/octet-stream.
func Raw(data []byte, contentType string) Response {
	return rawResponse{
		status:      http.StatusOK,
		contentType: contentType,
		size:        int64(len(data)),
		body:        bytes.NewReader(data),
	}
}

// Stream creates a 200 response that copies body to the client.
// Pass a negative size when the length is unknown.
// Bodies implementing io.Closer are closed after rendering.
func Stream(body io.Reader, contentType string, size int64) Response {
	return rawResponse{
		status:      http.StatusOK,
		contentType: contentType,
		size:        size,
		body:        body,
	}
}
