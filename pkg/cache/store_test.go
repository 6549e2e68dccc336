package cache_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/edgeworker/pkg/cache"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestStore(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("missing key", func(t *testing.T) {
		t.Parallel()
		s := cache.NewStore(0)
		val, ok, err := s.Get(ctx, "nope")
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Nil(t, val)
	})

	t.Run("overwrite", func(t *testing.T) {
		t.Parallel()
		s := cache.NewStore(10)
		require.NoError(t, s.Set(ctx, "k", []byte("v1"), time.Hour))
		require.NoError(t, s.Set(ctx, "k", []byte("v2"), time.Hour))

		val, ok, err := s.Get(ctx, "k")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, []byte("v2"), val)
	})

	t.Run("empty value is stored", func(t *testing.T) {
		t.Parallel()
		s := cache.NewStore(10)
		require.NoError(t, s.Set(ctx, "k", nil, 0))

		val, ok, err := s.Get(ctx, "k")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, []byte{}, val)
	})

	t.Run("expires after ttl", func(t *testing.T) {
		t.Parallel()
		clock := &fakeClock{now: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
		s := cache.NewStore(10, cache.WithClock(clock.Now))
		require.NoError(t, s.Set(ctx, "k", []byte("v"), time.Hour))

		clock.Advance(59 * time.Minute)
		_, ok, _ := s.Get(ctx, "k")
		assert.True(t, ok)

		clock.Advance(time.Minute)
		_, ok, _ = s.Get(ctx, "k")
		assert.False(t, ok)
		assert.Zero(t, s.Len())
	})

	t.Run("expired read keeps a value written meanwhile", func(t *testing.T) {
		t.Parallel()
		current := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
		var (
			s     *cache.Store
			armed bool
		)
		// The clock is read after the stale entry was loaded; a Set at that
		// point lands between the read and the expiry cleanup.
		now := func() time.Time {
			if armed {
				armed = false
				require.NoError(t, s.Set(ctx, "k", []byte("fresh"), time.Hour))
			}
			return current
		}
		s = cache.NewStore(10, cache.WithClock(now))
		require.NoError(t, s.Set(ctx, "k", []byte("stale"), time.Hour))

		current = current.Add(2 * time.Hour)
		armed = true
		_, ok, err := s.Get(ctx, "k")
		require.NoError(t, err)
		assert.False(t, ok)

		val, ok, err := s.Get(ctx, "k")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, []byte("fresh"), val)
	})

	t.Run("values are copied", func(t *testing.T) {
		t.Parallel()
		s := cache.NewStore(10)
		in := []byte("abc")
		require.NoError(t, s.Set(ctx, "k", in, 0))
		in[0] = 'x'

		out, _, _ := s.Get(ctx, "k")
		assert.Equal(t, "abc", string(out))
		out[0] = 'y'

		again, _, _ := s.Get(ctx, "k")
		assert.Equal(t, "abc", string(again))
	})

	t.Run("delete", func(t *testing.T) {
		t.Parallel()
		s := cache.NewStore(10)
		require.NoError(t, s.Set(ctx, "k", []byte("v"), 0))
		require.NoError(t, s.Delete(ctx, "k"))
		_, ok, _ := s.Get(ctx, "k")
		assert.False(t, ok)
	})

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()
		s := cache.NewStore(10)
		cctx, cancel := context.WithCancel(ctx)
		cancel()

		assert.ErrorIs(t, s.Set(cctx, "k", []byte("v"), 0), context.Canceled)
		_, _, err := s.Get(cctx, "k")
		assert.ErrorIs(t, err, context.Canceled)
	})
}
