package binder

import (
	"fmt"
	"net/http"
)

// Path creates a path parameter binder function using the provided extractor.
// The extractor is called with the name from each `path:"name"` tag.
// Empty values leave the field untouched.
//
// Example:
//
//	type getRequest struct {
//		ID string `path:"id"`
//	}
//
//	rt.Get("/api/users/:id", handler.Wrap(get,
//		handler.WithBinder[handler.Context, getRequest](binder.Path(router.Param)),
//	))
func Path(extractor func(r *http.Request, name string) string) func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		if extractor == nil {
			return fmt.Errorf("%w: extractor function is nil", ErrInvalidPath)
		}

		return eachTaggedField(v, "path", ErrInvalidPath, func(name string) (string, bool) {
			value := extractor(r, name)
			return value, value != ""
		})
	}
}
