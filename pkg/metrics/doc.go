// Package metrics exposes Prometheus HTTP request metrics.
//
// Collectors live on their own registry, so several instances can coexist in
// tests without clashing on the global default registry.
//
//	m := metrics.New(metrics.WithNamespace("edgeworker"))
//	rt.Use(m.Middleware(router.Pattern))
//	mux.Handle("/metrics", m.Handler())
package metrics
