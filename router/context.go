package router

import (
	"context"
	"net/http"
)

type contextKey struct{}

type routeInfo struct {
	pattern string
	params  map[string]string
}

func withRouteInfo(ctx context.Context, info *routeInfo) context.Context {
	return context.WithValue(ctx, contextKey{}, info)
}

func infoFromRequest(r *http.Request) *routeInfo {
	if r == nil {
		return nil
	}
	info, _ := r.Context().Value(contextKey{}).(*routeInfo)
	return info
}

// Param returns the decoded value of the named path parameter,
// or "" when the request was not routed or the pattern has no such parameter.
// Its signature matches binder.Path extractors.
func Param(r *http.Request, name string) string {
	if info := infoFromRequest(r); info != nil {
		return info.params[name]
	}
	return ""
}

// Pattern returns the pattern of the matched route, or "" when nothing matched.
func Pattern(r *http.Request) string {
	if info := infoFromRequest(r); info != nil {
		return info.pattern
	}
	return ""
}
