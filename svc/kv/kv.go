package kv

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/edgeworker/binder"
	"github.com/dmitrymomot/edgeworker/handler"
	"github.com/dmitrymomot/edgeworker/router"
)

// DefaultTTL is how long cached values live unless configured otherwise.
const DefaultTTL = time.Hour

// Store is the key/value contract used by the cache routes.
// pkg/redis.Storage and pkg/cache.Store both satisfy it.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, val []byte, ttl time.Duration) error
}

// Handlers serves /api/cached/:key.
type Handlers struct {
	store      Store
	ttl        time.Duration
	maxSize    int64
	errHandler handler.ErrorHandler[handler.Context]
}

// Option configures Handlers.
type Option func(*Handlers)

// WithTTL sets the expiration applied to every stored value.
func WithTTL(ttl time.Duration) Option {
	return func(h *Handlers) {
		if ttl > 0 {
			h.ttl = ttl
		}
	}
}

// WithMaxValueSize caps accepted request bodies. Zero means no cap.
func WithMaxValueSize(n int64) Option {
	return func(h *Handlers) {
		h.maxSize = n
	}
}

// WithLogger logs failed requests through handler.NewErrorHandler.
func WithLogger(log *slog.Logger) Option {
	return func(h *Handlers) {
		h.errHandler = handler.NewErrorHandler(log)
	}
}

// NewHandlers creates cache handlers backed by store.
func NewHandlers(store Store, opts ...Option) *Handlers {
	h := &Handlers{store: store, ttl: DefaultTTL}
	for _, opt := range opts {
		opt(h)
	}
	if h.errHandler == nil {
		h.errHandler = handler.NewErrorHandler(slog.New(slog.DiscardHandler))
	}
	return h
}

// Register mounts the cache routes on rt.
func (h *Handlers) Register(rt *router.Router) {
	rt.Get("/api/cached/:key", handler.Wrap(h.Get,
		handler.WithBinder[handler.Context, GetRequest](binder.Path(router.Param)),
		handler.ErrorHandlerFor[GetRequest](h.errHandler),
	))
	rt.Put("/api/cached/:key", handler.Wrap(h.Set,
		handler.WithBinders[handler.Context, SetRequest](binder.Path(router.Param), binder.Body(h.maxSize)),
		handler.ErrorHandlerFor[SetRequest](h.errHandler),
	))
}

// GetRequest binds the cache key.
type GetRequest struct {
	Key string `path:"key"`
}

// SetRequest binds the cache key and the raw value.
type SetRequest struct {
	Key   string `path:"key"`
	Value []byte `body:"raw"`
}

// Get answers with the cached value as plain text.
func (h *Handlers) Get(ctx handler.Context, req GetRequest) handler.Response {
	val, ok, err := h.store.Get(ctx, req.Key)
	if err != nil {
		return handler.Fail(err)
	}
	if !ok {
		return handler.Text("Not found", handler.WithTextStatus(http.StatusNotFound))
	}
	return handler.Text(string(val))
}

// Set stores the request body, overwriting any previous value.
func (h *Handlers) Set(ctx handler.Context, req SetRequest) handler.Response {
	if err := h.store.Set(ctx, req.Key, req.Value, h.ttl); err != nil {
		return handler.Fail(err)
	}
	return handler.Text("Cached")
}
