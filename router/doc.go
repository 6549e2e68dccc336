// Package router implements the worker's request router.
//
// Routes are registered with a method and a pattern such as "/api/users/:id".
// A request matches a route when the method is equal, the number of path segments
// is equal, every literal segment is equal and every parameter segment is non-empty.
// The first registered route that matches wins, so more specific routes must be
// registered before overlapping parameter routes.
//
//	rt := router.New()
//	rt.Get("/api/users/:id", func(w http.ResponseWriter, r *http.Request) {
//		id := router.Param(r, "id")
//		...
//	})
//
// Request segments are percent-decoded before matching and trailing slashes are
// ignored. Requests matching no route receive a 404 JSON envelope.
package router
