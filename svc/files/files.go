package files

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/edgeworker/binder"
	"github.com/dmitrymomot/edgeworker/handler"
	"github.com/dmitrymomot/edgeworker/pkg/file"
	"github.com/dmitrymomot/edgeworker/router"
)

// DefaultMaxUploadSize caps upload bodies unless configured otherwise.
const DefaultMaxUploadSize int64 = 10 << 20

// Store is the blob contract used by the file routes.
// file.LocalStorage and file.S3Storage both satisfy it.
type Store interface {
	Get(ctx context.Context, key string) (*file.Object, error)
	Put(ctx context.Context, key string, data []byte, contentType string) error
}

// Handlers serves /api/files/:key.
type Handlers struct {
	store      Store
	maxSize    int64
	errHandler handler.ErrorHandler[handler.Context]
}

// Option configures Handlers.
type Option func(*Handlers)

// WithMaxUploadSize caps upload bodies; larger uploads answer 413.
func WithMaxUploadSize(n int64) Option {
	return func(h *Handlers) {
		if n > 0 {
			h.maxSize = n
		}
	}
}

// WithLogger logs failed requests through handler.NewErrorHandler.
func WithLogger(log *slog.Logger) Option {
	return func(h *Handlers) {
		h.errHandler = handler.NewErrorHandler(log)
	}
}

// NewHandlers creates file handlers backed by store.
func NewHandlers(store Store, opts ...Option) *Handlers {
	h := &Handlers{store: store, maxSize: DefaultMaxUploadSize}
	for _, opt := range opts {
		opt(h)
	}
	if h.errHandler == nil {
		h.errHandler = handler.NewErrorHandler(slog.New(slog.DiscardHandler))
	}
	return h
}

// Register mounts the file routes on rt.
func (h *Handlers) Register(rt *router.Router) {
	rt.Get("/api/files/:key", handler.Wrap(h.Get,
		handler.WithBinder[handler.Context, GetRequest](binder.Path(router.Param)),
		handler.ErrorHandlerFor[GetRequest](h.errHandler),
	))
	rt.Put("/api/files/:key", handler.Wrap(h.Upload,
		handler.WithBinders[handler.Context, UploadRequest](
			binder.Path(router.Param),
			binder.Header(),
			binder.Body(h.maxSize),
		),
		handler.ErrorHandlerFor[UploadRequest](h.errHandler),
	))
}

// GetRequest binds the object key.
type GetRequest struct {
	Key string `path:"key"`
}

// UploadRequest binds the object key, its content type and the raw bytes.
type UploadRequest struct {
	Key         string `path:"key"`
	ContentType string `header:"Content-Type"`
	Data        []byte `body:"raw"`
}

// Get streams the stored object with its content type.
func (h *Handlers) Get(ctx handler.Context, req GetRequest) handler.Response {
	obj, err := h.store.Get(ctx, req.Key)
	if err != nil {
		if errors.Is(err, file.ErrFileNotFound) {
			return handler.Text("Not found", handler.WithTextStatus(http.StatusNotFound))
		}
		return handler.Fail(classify(err))
	}

	contentType := obj.ContentType
	if contentType == "" {
		contentType = file.DefaultContentType
	}
	return handler.Stream(obj.Body, contentType, obj.Size)
}

// Upload stores the request body under the key.
func (h *Handlers) Upload(ctx handler.Context, req UploadRequest) handler.Response {
	contentType := req.ContentType
	if contentType == "" {
		contentType = file.DefaultContentType
	}

	if err := h.store.Put(ctx, req.Key, req.Data, contentType); err != nil {
		return handler.Fail(classify(err))
	}
	return handler.Text("Uploaded")
}

func classify(err error) error {
	if errors.Is(err, file.ErrInvalidKey) {
		return handler.InvalidInput("Invalid file key").Wrap(err)
	}
	return err
}
