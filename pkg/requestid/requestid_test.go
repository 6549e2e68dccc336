package requestid_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/edgeworker/pkg/requestid"
)

func TestMiddleware(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		header string
		keep   bool
	}{
		{"missing header", "", false},
		{"valid id", "abc-123_XYZ", true},
		{"uuid", "550e8400-e29b-41d4-a716-446655440000", true},
		{"invalid characters", "id with spaces", false},
		{"markup", "<script>alert(1)</script>", false},
		{"too long", strings.Repeat("a", 129), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var seen string
			h := requestid.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				seen = requestid.FromContext(r.Context())
			}))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set(requestid.Header, tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			require.NotEmpty(t, seen)
			assert.Equal(t, seen, rec.Header().Get(requestid.Header))
			if tt.keep {
				assert.Equal(t, tt.header, seen)
				return
			}
			_, err := uuid.Parse(seen)
			assert.NoError(t, err)
		})
	}
}

func TestContext(t *testing.T) {
	t.Parallel()

	ctx := requestid.WithContext(context.Background(), "test-id")
	assert.Equal(t, "test-id", requestid.FromContext(ctx))
	assert.Empty(t, requestid.FromContext(context.Background()))

	attr, ok := requestid.LoggerExtractor()(ctx)
	require.True(t, ok)
	assert.Equal(t, "request_id", attr.Key)
	assert.Equal(t, "test-id", attr.Value.String())

	_, ok = requestid.LoggerExtractor()(context.Background())
	assert.False(t, ok)
}
