package httpserver

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/edgeworker/pkg/logger"
)

// Check is a named readiness probe for one dependency.
type Check struct {
	Name string
	Fn   func(context.Context) error
}

// HealthCheckHandler returns a HTTP handler usable for liveness and readiness probes.
//
//   - Liveness: with no checks the handler returns 200 OK with body "ALIVE".
//   - Readiness: every check runs with the request context bounded by timeout;
//     if all succeed the handler returns 200 "READY", otherwise 503 "NOT_READY".
//
// A zero timeout leaves the request context unbounded.
func HealthCheckHandler(log *slog.Logger, timeout time.Duration, checks ...Check) http.HandlerFunc {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")

		if len(checks) == 0 {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ALIVE"))
			return
		}

		ctx := r.Context()
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}

		for _, c := range checks {
			if err := c.Fn(ctx); err != nil {
				log.ErrorContext(ctx, "readiness check failed",
					slog.String("check", c.Name),
					logger.Error(err),
					logger.Component("healthcheck"),
				)
				w.WriteHeader(http.StatusServiceUnavailable)
				_, _ = w.Write([]byte("NOT_READY"))
				return
			}
		}

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("READY"))
	}
}
