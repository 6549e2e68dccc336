package handler_test

import (
	"bytes"
	"errors"
	"log/slog"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/edgeworker/binder"
	"github.com/dmitrymomot/edgeworker/handler"
)

type createRequest struct {
	Name string `json:"name"`
}

func TestWrap(t *testing.T) {
	t.Parallel()

	t.Run("binds and renders", func(t *testing.T) {
		t.Parallel()
		h := handler.HandlerFunc[handler.Context, createRequest](func(ctx handler.Context, req createRequest) handler.Response {
			return handler.JSON(req.Name, handler.WithJSONStatus(http.StatusCreated))
		})

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Ann"}`))
		handler.Wrap(h, handler.WithBinder[handler.Context, createRequest](binder.JSON()))(w, r)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.JSONEq(t, `{"success":true,"data":"Ann","error":null}`, w.Body.String())
	})

	t.Run("binder failure uses envelope", func(t *testing.T) {
		t.Parallel()
		called := false
		h := handler.HandlerFunc[handler.Context, createRequest](func(ctx handler.Context, req createRequest) handler.Response {
			called = true
			return handler.JSON(nil)
		})

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{oops`))
		handler.Wrap(h, handler.WithBinder[handler.Context, createRequest](binder.JSON()))(w, r)

		assert.False(t, called)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"success":false,"data":null,"error":{"kind":"invalid_input","message":"Invalid JSON body"}}`, w.Body.String())
	})

	t.Run("not applicable binder is skipped", func(t *testing.T) {
		t.Parallel()
		h := handler.HandlerFunc[handler.Context, createRequest](func(ctx handler.Context, req createRequest) handler.Response {
			return handler.Text("ok")
		})

		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("raw"))
		handler.Wrap(h, handler.WithBinders[handler.Context, createRequest](binder.Body(0)))(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "ok", w.Body.String())
	})

	t.Run("nil response", func(t *testing.T) {
		t.Parallel()
		h := handler.HandlerFunc[handler.Context, createRequest](func(ctx handler.Context, req createRequest) handler.Response {
			return nil
		})

		w := httptest.NewRecorder()
		handler.Wrap(h)(w, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})

	t.Run("decorators run outermost first", func(t *testing.T) {
		t.Parallel()
		var order []string
		mark := func(name string) handler.Decorator[handler.Context, createRequest] {
			return func(next handler.HandlerFunc[handler.Context, createRequest]) handler.HandlerFunc[handler.Context, createRequest] {
				return func(ctx handler.Context, req createRequest) handler.Response {
					order = append(order, name)
					return next(ctx, req)
				}
			}
		}
		h := handler.HandlerFunc[handler.Context, createRequest](func(ctx handler.Context, req createRequest) handler.Response {
			order = append(order, "handler")
			return handler.Text("")
		})

		w := httptest.NewRecorder()
		handler.Wrap(h, handler.WithDecorators(mark("first"), mark("second")))(w, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, []string{"first", "second", "handler"}, order)
	})
}

func TestNewErrorHandler(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		err     error
		status  int
		level   string
		message string
	}{
		{"client error logs warn", handler.InvalidInput("Invalid email"), http.StatusBadRequest, "WARN", "Invalid email"},
		{"internal error hides cause", errors.New("disk on fire"), http.StatusInternalServerError, "ERROR", "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			log := slog.New(slog.NewTextHandler(&buf, nil))
			h := handler.HandlerFunc[handler.Context, createRequest](func(ctx handler.Context, req createRequest) handler.Response {
				return handler.JSON(nil)
			})
			failing := func(r *http.Request, v any) error { return tt.err }

			w := httptest.NewRecorder()
			handler.Wrap(h,
				handler.WithBinder[handler.Context, createRequest](failing),
				handler.ErrorHandlerFor[createRequest](handler.NewErrorHandler(log)),
			)(w, httptest.NewRequest(http.MethodGet, "/x", nil))

			require.Equal(t, tt.status, w.Code)
			assert.Contains(t, w.Body.String(), tt.message)
			assert.NotContains(t, w.Body.String(), "disk on fire")
			assert.Contains(t, buf.String(), "level="+tt.level)
			assert.Contains(t, buf.String(), "path=/x")
		})
	}
}

func TestFail(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, nil))
	h := handler.HandlerFunc[handler.Context, createRequest](func(ctx handler.Context, req createRequest) handler.Response {
		return handler.Fail(handler.Conflict("Email already exists").Wrap(errors.New("unique violation")))
	})

	w := httptest.NewRecorder()
	handler.Wrap(h, handler.ErrorHandlerFor[createRequest](handler.NewErrorHandler(log)))(w, httptest.NewRequest(http.MethodPost, "/api/users", nil))

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.JSONEq(t, `{"success":false,"data":null,"error":{"kind":"conflict","message":"Email already exists"}}`, w.Body.String())
	assert.Contains(t, buf.String(), "unique violation")
}

func TestWrapEncodeFailure(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, nil))
	h := handler.HandlerFunc[handler.Context, createRequest](func(ctx handler.Context, req createRequest) handler.Response {
		return handler.JSON(map[string]float64{"result": math.NaN()})
	})

	w := httptest.NewRecorder()
	handler.Wrap(h, handler.ErrorHandlerFor[createRequest](handler.NewErrorHandler(log)))(w, httptest.NewRequest(http.MethodGet, "/x", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"success":false,"data":null,"error":{"kind":"internal","message":"Internal server error"}}`, w.Body.String())
	assert.Contains(t, buf.String(), "encode response")
}
