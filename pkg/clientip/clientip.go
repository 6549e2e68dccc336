package clientip

import (
	"net"
	"net/http"
	"net/netip"
	"strings"
)

// DefaultHeaders are consulted in order before falling back to RemoteAddr.
// Edge proxies set the first three; X-Forwarded-For and X-Real-IP cover
// generic reverse proxies.
var DefaultHeaders = []string{
	"CF-Connecting-IP",
	"Fastly-Client-IP",
	"True-Client-IP",
	"X-Forwarded-For",
	"X-Real-IP",
}

// Resolver extracts the originating client address from a request.
type Resolver struct {
	headers []string
}

// NewResolver creates a resolver trusting headers in the given order.
// With no headers only RemoteAddr is used.
func NewResolver(headers ...string) *Resolver {
	return &Resolver{headers: headers}
}

// Resolve returns the first valid address from the trusted headers, then
// from RemoteAddr. It returns "" when nothing parses.
// X-Forwarded-For style lists yield their first valid entry.
func (res *Resolver) Resolve(r *http.Request) string {
	for _, h := range res.headers {
		v := r.Header.Get(h)
		if v == "" {
			continue
		}
		for part := range strings.SplitSeq(v, ",") {
			if ip := normalize(part); ip != "" {
				return ip
			}
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return normalize(r.RemoteAddr)
	}
	return normalize(host)
}

// GetIP resolves the client address using DefaultHeaders.
func GetIP(r *http.Request) string {
	return NewResolver(DefaultHeaders...).Resolve(r)
}

func normalize(s string) string {
	addr, err := netip.ParseAddr(strings.TrimSpace(s))
	if err != nil {
		return ""
	}
	return addr.Unmap().WithZone("").String()
}
