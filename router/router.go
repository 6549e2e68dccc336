package router

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/dmitrymomot/edgeworker/handler"
)

// Router maps (method, pattern) pairs to handlers.
// Routes are matched in registration order and the first match wins.
// Patterns are slash-separated; segments starting with ':' bind a named parameter.
//
// Router is safe for concurrent use once registration is complete.
// Registering routes while serving requests is not supported.
type Router struct {
	routes     []route
	middleware []func(http.Handler) http.Handler
	notFound   http.Handler
}

type route struct {
	method   string
	pattern  string
	segments []segment
	handler  http.Handler
}

type segment struct {
	value   string
	isParam bool
}

// Option configures a Router.
type Option func(*Router)

// WithNotFound replaces the handler used for requests no route matches.
func WithNotFound(h http.Handler) Option {
	return func(rt *Router) {
		if h != nil {
			rt.notFound = h
		}
	}
}

// New creates an empty Router.
// Unmatched requests get a 404 JSON envelope unless WithNotFound is given.
func New(opts ...Option) *Router {
	rt := &Router{
		notFound: http.HandlerFunc(notFound),
	}
	for _, opt := range opts {
		opt(rt)
	}
	return rt
}

func notFound(w http.ResponseWriter, r *http.Request) {
	_ = handler.JSONError(handler.ErrNotFound).Render(w, r)
}

// Use appends middleware run for every request after matching.
// Middleware can read the matched pattern with Pattern; it is empty for unmatched requests.
func (rt *Router) Use(mw ...func(http.Handler) http.Handler) {
	rt.middleware = append(rt.middleware, mw...)
}

// Handle registers h for method and pattern.
// It panics on a malformed pattern, an empty method or a nil handler.
func (rt *Router) Handle(method, pattern string, h http.Handler) {
	if method == "" {
		panic("router: empty method")
	}
	if h == nil {
		panic("router: nil handler for " + pattern)
	}

	segments, err := parsePattern(pattern)
	if err != nil {
		panic(err)
	}

	rt.routes = append(rt.routes, route{
		method:   strings.ToUpper(method),
		pattern:  pattern,
		segments: segments,
		handler:  h,
	})
}

// Get registers a GET route.
func (rt *Router) Get(pattern string, h http.HandlerFunc) {
	rt.Handle(http.MethodGet, pattern, h)
}

// Post registers a POST route.
func (rt *Router) Post(pattern string, h http.HandlerFunc) {
	rt.Handle(http.MethodPost, pattern, h)
}

// Put registers a PUT route.
func (rt *Router) Put(pattern string, h http.HandlerFunc) {
	rt.Handle(http.MethodPut, pattern, h)
}

// Delete registers a DELETE route.
func (rt *Router) Delete(pattern string, h http.HandlerFunc) {
	rt.Handle(http.MethodDelete, pattern, h)
}

// ServeHTTP dispatches the request to the first matching route.
func (rt *Router) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	next := rt.notFound
	info := &routeInfo{}

	if parts, ok := splitPath(r.URL.EscapedPath()); ok {
		for i := range rt.routes {
			if params, matched := rt.routes[i].match(r.Method, parts); matched {
				next = rt.routes[i].handler
				info.pattern = rt.routes[i].pattern
				info.params = params
				break
			}
		}
	}

	for i := len(rt.middleware) - 1; i >= 0; i-- {
		next = rt.middleware[i](next)
	}

	next.ServeHTTP(w, r.WithContext(withRouteInfo(r.Context(), info)))
}

func (rt route) match(method string, parts []string) (map[string]string, bool) {
	if rt.method != method || len(rt.segments) != len(parts) {
		return nil, false
	}

	var params map[string]string
	for i, seg := range rt.segments {
		if !seg.isParam {
			if seg.value != parts[i] {
				return nil, false
			}
			continue
		}
		if parts[i] == "" {
			return nil, false
		}
		if params == nil {
			params = make(map[string]string, len(rt.segments))
		}
		params[seg.value] = parts[i]
	}

	return params, true
}

// parsePattern validates pattern and splits it into segments.
func parsePattern(pattern string) ([]segment, error) {
	if !strings.HasPrefix(pattern, "/") {
		return nil, fmt.Errorf("%w: %q must start with '/'", ErrInvalidPattern, pattern)
	}

	trimmed := strings.Trim(pattern, "/")
	if trimmed == "" {
		return nil, nil
	}

	raw := strings.Split(trimmed, "/")
	segments := make([]segment, 0, len(raw))
	seen := make(map[string]struct{})

	for _, s := range raw {
		if s == "" {
			return nil, fmt.Errorf("%w: %q has an empty segment", ErrInvalidPattern, pattern)
		}

		name, isParam := strings.CutPrefix(s, ":")
		if !isParam {
			segments = append(segments, segment{value: s})
			continue
		}

		if name == "" {
			return nil, fmt.Errorf("%w: %q has an unnamed parameter", ErrInvalidPattern, pattern)
		}
		if _, dup := seen[name]; dup {
			return nil, fmt.Errorf("%w: %q repeats parameter %q", ErrInvalidPattern, pattern, name)
		}
		seen[name] = struct{}{}
		segments = append(segments, segment{value: name, isParam: true})
	}

	return segments, nil
}

// splitPath splits an escaped request path into decoded segments.
// Leading and trailing slashes are ignored. Invalid escapes report false.
func splitPath(escaped string) ([]string, bool) {
	trimmed := strings.Trim(escaped, "/")
	if trimmed == "" {
		return nil, true
	}

	parts := strings.Split(trimmed, "/")
	for i, p := range parts {
		decoded, err := url.PathUnescape(p)
		if err != nil {
			return nil, false
		}
		parts[i] = decoded
	}

	return parts, true
}
