package users

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/edgeworker/binder"
	"github.com/dmitrymomot/edgeworker/handler"
	"github.com/dmitrymomot/edgeworker/pkg/validator"
	"github.com/dmitrymomot/edgeworker/router"
)

var (
	errMissingField = errors.New("missing required field")
	errNotFound     = handler.NotFound("User not found")
	errEmailTaken   = handler.Conflict("Email already exists")
)

const (
	msgNameMissing = "Name is required"
	msgNameEmpty   = "Name cannot be empty"
	msgEmail       = "Invalid email"
)

// Handlers serves the /api/users routes.
type Handlers struct {
	store      Store
	now        func() time.Time
	newID      func() string
	errHandler handler.ErrorHandler[handler.Context]
}

// Option configures Handlers.
type Option func(*Handlers)

// WithClock overrides the time source used for created_at.
func WithClock(now func() time.Time) Option {
	return func(h *Handlers) {
		if now != nil {
			h.now = now
		}
	}
}

// WithIDGenerator overrides user id generation.
func WithIDGenerator(fn func() string) Option {
	return func(h *Handlers) {
		if fn != nil {
			h.newID = fn
		}
	}
}

// WithLogger logs failed requests through handler.NewErrorHandler.
func WithLogger(log *slog.Logger) Option {
	return func(h *Handlers) {
		h.errHandler = handler.NewErrorHandler(log)
	}
}

// NewHandlers creates user handlers backed by store.
func NewHandlers(store Store, opts ...Option) *Handlers {
	h := &Handlers{
		store: store,
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(h)
	}
	if h.errHandler == nil {
		h.errHandler = handler.NewErrorHandler(slog.New(slog.DiscardHandler))
	}
	return h
}

// Register mounts the user routes on rt.
func (h *Handlers) Register(rt *router.Router) {
	rt.Get("/api/users", handler.Wrap(h.List,
		handler.WithBinder[handler.Context, ListRequest](binder.Query()),
		handler.ErrorHandlerFor[ListRequest](h.errHandler),
	))
	rt.Post("/api/users", handler.Wrap(h.Create,
		handler.WithBinder[handler.Context, CreateRequest](binder.JSON()),
		handler.ErrorHandlerFor[CreateRequest](h.errHandler),
	))
	rt.Get("/api/users/:id", handler.Wrap(h.Get,
		handler.WithBinder[handler.Context, IDRequest](binder.Path(router.Param)),
		handler.ErrorHandlerFor[IDRequest](h.errHandler),
	))
	rt.Put("/api/users/:id", handler.Wrap(h.Update,
		handler.WithBinder[handler.Context, IDRequest](binder.Path(router.Param)),
		handler.ErrorHandlerFor[IDRequest](h.errHandler),
	))
	rt.Delete("/api/users/:id", handler.Wrap(h.Delete,
		handler.WithBinder[handler.Context, IDRequest](binder.Path(router.Param)),
		handler.ErrorHandlerFor[IDRequest](h.errHandler),
	))
}

// ListRequest carries raw pagination params; bad values fall back to defaults.
type ListRequest struct {
	Page  string `query:"page"`
	Limit string `query:"limit"`
}

// CreateRequest is the body of POST /api/users. Both fields must be present.
type CreateRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// UnmarshalJSON rejects bodies that omit name or email or set them to null,
// so they surface as malformed JSON rather than as a validation failure.
func (r *CreateRequest) UnmarshalJSON(b []byte) error {
	var raw struct {
		Name  *string `json:"name"`
		Email *string `json:"email"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	switch {
	case raw.Name == nil:
		return fmt.Errorf("%w: name", errMissingField)
	case raw.Email == nil:
		return fmt.Errorf("%w: email", errMissingField)
	}
	r.Name, r.Email = *raw.Name, *raw.Email
	return nil
}

// UpdateRequest is the body of PUT /api/users/:id. Nil fields are left untouched.
type UpdateRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}

// IDRequest binds the :id path parameter.
type IDRequest struct {
	ID string `path:"id"`
}

// List returns a page of users with the total count.
// The count is read separately from the page and may be stale under concurrent writes.
func (h *Handlers) List(ctx handler.Context, req ListRequest) handler.Response {
	page := min(parsePositive(req.Page, DefaultPage), MaxPage)
	limit := min(parsePositive(req.Limit, DefaultLimit), MaxLimit)

	items, err := h.store.List(ctx, limit, Offset(page, limit))
	if err != nil {
		return handler.Fail(err)
	}

	total, err := h.store.Count(ctx)
	if err != nil {
		return handler.Fail(err)
	}

	return handler.JSON(Page{
		Data:  items,
		Page:  page,
		Limit: limit,
		Total: total,
	})
}

// Create validates and inserts a new user.
func (h *Handlers) Create(ctx handler.Context, req CreateRequest) handler.Response {
	err := validator.Apply(
		validator.RequiredString("name", req.Name).WithMessage(msgNameMissing),
		validator.LooseEmail("email", req.Email).WithMessage(msgEmail),
	)
	if err != nil {
		return handler.Fail(invalid(err))
	}

	user := User{
		ID:        h.newID(),
		Name:      strings.TrimSpace(req.Name),
		Email:     strings.ToLower(req.Email),
		CreatedAt: timestamp(h.now()),
	}

	if err := h.store.Create(ctx, user); err != nil {
		return handler.Fail(storeError(err))
	}

	return handler.JSON(user, handler.WithJSONStatus(http.StatusCreated))
}

// Get returns a single user.
func (h *Handlers) Get(ctx handler.Context, req IDRequest) handler.Response {
	user, err := h.store.Get(ctx, req.ID)
	if err != nil {
		return handler.Fail(storeError(err))
	}
	return handler.JSON(user)
}

// Update applies a partial update. The user must exist before the body is
// parsed, so an unknown id is reported as 404 even for a malformed body.
func (h *Handlers) Update(ctx handler.Context, req IDRequest) handler.Response {
	user, err := h.store.Get(ctx, req.ID)
	if err != nil {
		return handler.Fail(storeError(err))
	}

	var body UpdateRequest
	if err := binder.DecodeJSON(ctx.Request(), &body); err != nil {
		return handler.Fail(err)
	}

	if body.Name != nil {
		if !validator.IsNonEmptyAfterTrim(*body.Name) {
			return handler.Fail(handler.InvalidInput(msgNameEmpty))
		}
		user.Name = strings.TrimSpace(*body.Name)
	}

	if body.Email != nil {
		if !validator.LooksLikeEmail(*body.Email) {
			return handler.Fail(handler.InvalidInput(msgEmail))
		}
		user.Email = strings.ToLower(*body.Email)
	}

	if err := h.store.Update(ctx, user); err != nil {
		return handler.Fail(storeError(err))
	}

	return handler.JSON(user)
}

// Delete removes a user; success carries null data.
func (h *Handlers) Delete(ctx handler.Context, req IDRequest) handler.Response {
	if err := h.store.Delete(ctx, req.ID); err != nil {
		return handler.Fail(storeError(err))
	}
	return handler.JSON(nil)
}

func storeError(err error) error {
	switch {
	case errors.Is(err, ErrUserNotFound):
		return errNotFound.Wrap(err)
	case errors.Is(err, ErrEmailTaken):
		return errEmailTaken.Wrap(err)
	default:
		return err
	}
}

func invalid(err error) error {
	if first, ok := validator.ExtractValidationErrors(err).First(); ok {
		return handler.InvalidInput(first.Message).Wrap(err)
	}
	return handler.ErrInternal.Wrap(err)
}

// parsePositive parses s as a positive integer, returning def otherwise.
func parsePositive(s string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return def
	}
	return n
}
