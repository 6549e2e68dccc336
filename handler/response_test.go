package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
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

func decodeEnvelope(t *testing.T, body []byte) map[string]any {
	t.Helper()
	var got map[string]any
	require.NoError(t, json.Unmarshal(body, &got))
	return got
}

func TestJSON(t *testing.T) {
	t.Parallel()

	t.Run("success envelope", func(t *testing.T) {
		t.Parallel()
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/", nil)

		err := handler.JSON(map[string]string{"id": "123"}).Render(w, r)
		require.NoError(t, err)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))
		assert.Equal(t, map[string]any{
			"success": true,
			"data":    map[string]any{"id": "123"},
			"error":   nil,
		}, decodeEnvelope(t, w.Body.Bytes()))
	})

	t.Run("nil data", func(t *testing.T) {
		t.Parallel()
		w := httptest.NewRecorder()

		require.NoError(t, handler.JSON(nil).Render(w, httptest.NewRequest(http.MethodDelete, "/", nil)))
		assert.JSONEq(t, `{"success":true,"data":null,"error":null}`, w.Body.String())
	})

	t.Run("custom status", func(t *testing.T) {
		t.Parallel()
		w := httptest.NewRecorder()

		resp := handler.JSON("ok", handler.WithJSONStatus(http.StatusCreated))
		require.NoError(t, resp.Render(w, httptest.NewRequest(http.MethodPost, "/", nil)))
		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("unencodable data leaves response unwritten", func(t *testing.T) {
		t.Parallel()
		w := httptest.NewRecorder()

		err := handler.JSON(math.Inf(1)).Render(w, httptest.NewRequest(http.MethodGet, "/", nil))
		require.Error(t, err)
		assert.False(t, w.Flushed)
		assert.Zero(t, w.Body.Len())
		assert.Empty(t, w.Header().Get("Content-Type"))
	})
}

func TestJSONError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		err     error
		status  int
		kind    string
		message string
	}{
		{"invalid input", handler.InvalidInput("Name is required"), http.StatusBadRequest, "invalid_input", "Name is required"},
		{"not found", handler.NotFound("User not found"), http.StatusNotFound, "not_found", "User not found"},
		{"conflict", handler.Conflict("Email already exists"), http.StatusConflict, "conflict", "Email already exists"},
		{"wrapped classified", errors.Join(errors.New("ctx"), handler.NotFound("gone")), http.StatusNotFound, "not_found", "gone"},
		{"unclassified", errors.New("pq: connection refused"), http.StatusInternalServerError, "internal", "Internal server error"},
		{"invalid json", binder.ErrInvalidJSON, http.StatusBadRequest, "invalid_input", "Invalid JSON body"},
		{"too large", binder.ErrBodyTooLarge, http.StatusRequestEntityTooLarge, "invalid_input", "Payload too large"},
		{"deadline exceeded", fmt.Errorf("cache get: %w", context.DeadlineExceeded), http.StatusGatewayTimeout, "internal", "Request timed out"},
		{"nil", nil, http.StatusInternalServerError, "internal", "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodGet, "/", nil)

			require.NoError(t, handler.JSONError(tt.err).Render(w, r))
			assert.Equal(t, tt.status, w.Code)

			got := decodeEnvelope(t, w.Body.Bytes())
			assert.Equal(t, false, got["success"])
			assert.Nil(t, got["data"])
			assert.Equal(t, map[string]any{"kind": tt.kind, "message": tt.message}, got["error"])
		})
	}
}

func TestErrorIs(t *testing.T) {
	t.Parallel()

	err := handler.ErrNotFound.Wrap(errors.New("no rows"))
	assert.ErrorIs(t, err, handler.ErrNotFound)
	assert.NotErrorIs(t, err, handler.ErrInvalidJSON)
	assert.Equal(t, "Not found: no rows", err.Error())
	assert.Equal(t, http.StatusNotFound, err.Status())
}

func TestText(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	resp := handler.Text("Not found", handler.WithTextStatus(http.StatusNotFound))
	require.NoError(t, resp.Render(w, httptest.NewRequest(http.MethodGet, "/", nil)))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "text/plain; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Equal(t, "Not found", w.Body.String())
}

type closeTracker struct {
	io.Reader
	closed bool
}

func (c *closeTracker) Close() error {
	c.closed = true
	return nil
}

func TestRawAndStream(t *testing.T) {
	t.Parallel()

	t.Run("raw with default content type", func(t *testing.T) {
		t.Parallel()
		w := httptest.NewRecorder()
		require.NoError(t, handler.Raw([]byte{1, 2, 3}, "").Render(w, httptest.NewRequest(http.MethodGet, "/", nil)))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, handler.DefaultContentType, w.Header().Get("Content-Type"))
		assert.Equal(t, "3", w.Header().Get("Content-Length"))
		assert.Equal(t, []byte{1, 2, 3}, w.Body.Bytes())
	})

	t.Run("stream closes body", func(t *testing.T) {
		t.Parallel()
		body := &closeTracker{Reader: strings.NewReader("png-bytes")}
		w := httptest.NewRecorder()

		require.NoError(t, handler.Stream(body, "image/png", -1).Render(w, httptest.NewRequest(http.MethodGet, "/", nil)))
		assert.True(t, body.closed)
		assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
		assert.Empty(t, w.Header().Get("Content-Length"))
		assert.Equal(t, "png-bytes", w.Body.String())
	})
}
