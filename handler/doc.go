// Package handler provides type-safe HTTP request handling for the worker API.
//
// Handlers are generic functions that receive a bound request value and return a
// Response. Wrap adapts them to http.HandlerFunc, running binders first and routing
// binding or rendering failures through an ErrorHandler:
//
//	type createRequest struct {
//		Name  string `json:"name"`
//		Email string `json:"email"`
//	}
//
//	func create(ctx handler.Context, req createRequest) handler.Response {
//		user, err := svc.Create(ctx, req.Name, req.Email)
//		if err != nil {
//			return handler.JSONError(err)
//		}
//		return handler.JSON(user, handler.WithJSONStatus(http.StatusCreated))
//	}
//
//	rt.Post("/api/users", handler.Wrap(create,
//		handler.WithBinder[handler.Context, createRequest](binder.JSON()),
//	))
//
// # Responses
//
// Every API response is one of a small set of shapes:
//
//	handler.JSON(data)              // {"success":true,"data":...,"error":null}
//	handler.JSONError(err)          // {"success":false,"data":null,"error":{"kind":...,"message":...}}
//	handler.Text("hello")           // text/plain
//	handler.Raw(b, "image/png")     // raw bytes with explicit content type
//	handler.Stream(rc, ct, size)    // streamed body, closed after rendering
//
// # Errors
//
// Failures are classified into a closed set of kinds, each with a fixed status:
//
//	invalid_input -> 400
//	not_found     -> 404
//	conflict      -> 409
//	internal      -> 500
//
// Handlers return typed errors built with InvalidInput, NotFound, Conflict or
// NewError. Any error that is not an Error is reported as internal with a generic
// message, so storage driver details are only ever logged.
package handler
