// Package httpserver wraps net/http with graceful shutdown, configurable
// timeouts, lifecycle hooks and health-check handlers.
//
// Run binds the listener, runs start hooks and serves until the context is
// cancelled, SIGINT/SIGTERM arrives or Shutdown is called. Shutdown waits for
// in-flight requests up to the configured deadline and then runs stop hooks.
// Start and shutdown failures wrap ErrStart and ErrShutdown.
//
//	srv := httpserver.NewFromConfig(cfg.HTTP, httpserver.WithLogger(log))
//	if err := srv.Run(ctx, mux); err != nil {
//		log.Error("server failed", logger.Error(err))
//	}
//
// HealthCheckHandler serves liveness ("ALIVE") without checks and readiness
// ("READY" / "NOT_READY") when named dependency checks are supplied.
package httpserver
