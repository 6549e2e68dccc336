package binder

import (
	"net/http"
	"net/textproto"
)

// Header creates a request header binder function.
// Tag values are canonicalized, so `header:"content-type"` and
// `header:"Content-Type"` bind the same header.
//
// Example:
//
//	type uploadRequest struct {
//		Key         string `path:"key"`
//		ContentType string `header:"Content-Type"`
//	}
func Header() func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		values := make(map[string][]string, len(r.Header))
		for k, vs := range r.Header {
			values[textproto.CanonicalMIMEHeaderKey(k)] = vs
		}
		return bindToStruct(v, "header", values, ErrInvalidHeader, textproto.CanonicalMIMEHeaderKey)
	}
}
