package main

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/edgeworker/pkg/clientip"
	"github.com/dmitrymomot/edgeworker/pkg/httpserver"
	"github.com/dmitrymomot/edgeworker/pkg/logger"
	"github.com/dmitrymomot/edgeworker/pkg/metrics"
	"github.com/dmitrymomot/edgeworker/pkg/requestid"
	"github.com/dmitrymomot/edgeworker/router"
	"github.com/dmitrymomot/edgeworker/svc/compute"
	"github.com/dmitrymomot/edgeworker/svc/files"
	"github.com/dmitrymomot/edgeworker/svc/kv"
	"github.com/dmitrymomot/edgeworker/svc/system"
	"github.com/dmitrymomot/edgeworker/svc/users"
)

// newHandler assembles the HTTP surface: operational routes on a chi mux and
// the API routes on the worker router behind it.
func newHandler(cfg Config, s *Services, log *slog.Logger) http.Handler {
	m := metrics.New(metrics.WithNamespace(cfg.MetricsNamespace), metrics.WithProcessMetrics())

	rt := router.New()
	rt.Use(m.Middleware(router.Pattern))

	system.NewHandlers(nil).Register(rt)
	users.NewHandlers(users.NewSQLStore(s.DB, s.IsDuplicate), users.WithLogger(log)).Register(rt)
	kv.NewHandlers(s.KV,
		kv.WithTTL(cfg.KVTTL),
		kv.WithMaxValueSize(cfg.MaxUploadSize),
		kv.WithLogger(log),
	).Register(rt)
	files.NewHandlers(s.Blob,
		files.WithMaxUploadSize(cfg.MaxUploadSize),
		files.WithLogger(log),
	).Register(rt)
	compute.NewHandler(log).Register(rt)

	mux := chi.NewRouter()
	mux.Use(
		requestid.Middleware,
		clientip.Middleware,
		logger.Middleware(log),
		middleware.Recoverer,
		middleware.Timeout(cfg.RequestTimeout),
	)

	mux.Get("/ready", httpserver.HealthCheckHandler(log, cfg.ReadyTimeout, s.Checks...))
	mux.Handle("/metrics", m.Handler())
	mux.Handle("/", rt)
	mux.Handle("/*", rt)

	return mux
}
