package binder

import (
	"net/http"
)

// Query creates a query parameter binder function.
//
// It supports struct tags for custom parameter names:
//   - `query:"name"` - binds to query parameter "name"
//   - `query:"-"` - skips the field
//
// Fields without a query tag are skipped so one request struct can mix sources.
// Parse failures of typed fields return ErrInvalidQuery; declare fields as string
// when a handler wants to apply its own fallback instead.
//
// Example:
//
//	type listRequest struct {
//		Page  string `query:"page"`
//		Limit string `query:"limit"`
//	}
func Query() func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		return bindToStruct(v, "query", r.URL.Query(), ErrInvalidQuery)
	}
}
