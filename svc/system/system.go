package system

import (
	"encoding/json"
	"time"

	"github.com/dmitrymomot/edgeworker/handler"
	"github.com/dmitrymomot/edgeworker/router"
)

// Banner is the body served at the root path.
const Banner = "Edge Worker API v1.0"

// Health is the body of GET /health.
type Health struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// Handlers serves the index and liveness routes.
type Handlers struct {
	now func() time.Time
}

// NewHandlers creates system handlers. A nil now uses time.Now.
func NewHandlers(now func() time.Time) *Handlers {
	if now == nil {
		now = time.Now
	}
	return &Handlers{now: now}
}

// Register mounts / and /health on rt.
func (h *Handlers) Register(rt *router.Router) {
	rt.Get("/", handler.Wrap(h.Index))
	rt.Get("/health", handler.Wrap(h.Health))
}

// Index answers with the API banner.
func (h *Handlers) Index(handler.Context, struct{}) handler.Response {
	return handler.Text(Banner)
}

// Health reports liveness as plain JSON, outside the envelope.
func (h *Handlers) Health(handler.Context, struct{}) handler.Response {
	body, err := json.Marshal(Health{
		Status:    "healthy",
		Timestamp: h.now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return handler.Fail(err)
	}
	return handler.Raw(body, "application/json")
}
