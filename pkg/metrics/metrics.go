package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// UnmatchedPattern labels requests that did not match any route.
// It keeps label cardinality bounded when clients probe random paths.
const UnmatchedPattern = "unmatched"

// Labeler returns the route pattern used as the "pattern" label.
type Labeler func(r *http.Request) string

// Metrics holds HTTP request collectors on a dedicated registry.
type Metrics struct {
	registry *prometheus.Registry
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	inFlight prometheus.Gauge
}

// Option configures Metrics.
type Option func(*options)

type options struct {
	namespace      string
	buckets        []float64
	processMetrics bool
}

// WithNamespace prefixes every metric name.
func WithNamespace(ns string) Option {
	return func(o *options) {
		o.namespace = ns
	}
}

// WithBuckets overrides the latency histogram buckets (seconds).
func WithBuckets(buckets []float64) Option {
	return func(o *options) {
		if len(buckets) > 0 {
			o.buckets = buckets
		}
	}
}

// WithProcessMetrics registers the Go runtime and process collectors.
func WithProcessMetrics() Option {
	return func(o *options) {
		o.processMetrics = true
	}
}

// New creates the collectors and registers them on a fresh registry.
func New(opts ...Option) *Metrics {
	o := &options{buckets: prometheus.DefBuckets}
	for _, opt := range opts {
		opt(o)
	}

	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: o.namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests by method, route pattern and status code.",
		}, []string{"method", "pattern", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: o.namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by method and route pattern.",
			Buckets:   o.buckets,
		}, []string{"method", "pattern"}),
		inFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: o.namespace,
			Subsystem: "http",
			Name:      "requests_in_flight",
			Help:      "HTTP requests currently being served.",
		}),
	}

	m.registry.MustRegister(m.requests, m.duration, m.inFlight)
	if o.processMetrics {
		m.registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}

	return m
}

// Registry exposes the underlying registry so callers can add collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Middleware records request count, latency and in-flight requests.
// The pattern label comes from labeler and is read after the request was
// served, so it works with routers that resolve the route inside next.
func (m *Metrics) Middleware(labeler Labeler) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			m.inFlight.Inc()
			defer m.inFlight.Dec()

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			pattern := UnmatchedPattern
			if labeler != nil {
				if p := labeler(r); p != "" {
					pattern = p
				}
			}

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}

			method := methodLabel(r.Method)
			m.requests.WithLabelValues(method, pattern, strconv.Itoa(status)).Inc()
			m.duration.WithLabelValues(method, pattern).Observe(time.Since(start).Seconds())
		})
	}
}

// OtherMethod labels requests whose method is not a standard API verb.
const OtherMethod = "OTHER"

func methodLabel(method string) string {
	switch method {
	case http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodHead, http.MethodOptions:
		return method
	default:
		return OtherMethod
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
