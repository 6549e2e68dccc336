package redis_test

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/edgeworker/pkg/redis"
)

// memoryHook answers GET/SET/DEL/PING in memory so no server is needed.
type memoryHook struct {
	mu   sync.Mutex
	data map[string]string
	ttls map[string]string
	fail error
}

func newMemoryHook() *memoryHook {
	return &memoryHook{data: map[string]string{}, ttls: map[string]string{}}
}

func (h *memoryHook) DialHook(next goredis.DialHook) goredis.DialHook {
	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		return nil, errors.New("dial disabled in tests")
	}
}

func (h *memoryHook) ProcessPipelineHook(next goredis.ProcessPipelineHook) goredis.ProcessPipelineHook {
	return next
}

func (h *memoryHook) ProcessHook(next goredis.ProcessHook) goredis.ProcessHook {
	return func(ctx context.Context, cmd goredis.Cmder) error {
		h.mu.Lock()
		defer h.mu.Unlock()

		if h.fail != nil {
			cmd.SetErr(h.fail)
			return h.fail
		}

		args := cmd.Args()
		key := ""
		if len(args) > 1 {
			key = fmt.Sprint(args[1])
		}

		switch c := cmd.(type) {
		case *goredis.StringCmd:
			v, ok := h.data[key]
			if !ok {
				c.SetErr(goredis.Nil)
				return goredis.Nil
			}
			c.SetVal(v)
		case *goredis.StatusCmd:
			if cmd.Name() == "set" {
				switch v := args[2].(type) {
				case []byte:
					h.data[key] = string(v)
				default:
					h.data[key] = fmt.Sprint(v)
				}
				if len(args) > 4 {
					h.ttls[key] = fmt.Sprint(args[3], " ", args[4])
				}
			}
			c.SetVal("OK")
		case *goredis.IntCmd:
			_, ok := h.data[key]
			delete(h.data, key)
			if ok {
				c.SetVal(1)
			}
		}
		return nil
	}
}

func newClient(t *testing.T) (*goredis.Client, *memoryHook) {
	t.Helper()
	client := goredis.NewClient(&goredis.Options{Addr: "127.0.0.1:0"})
	hook := newMemoryHook()
	client.AddHook(hook)
	t.Cleanup(func() { _ = client.Close() })
	return client, hook
}

func TestStorage(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("missing key", func(t *testing.T) {
		t.Parallel()
		client, _ := newClient(t)
		s := redis.NewStorage(client)

		val, ok, err := s.Get(ctx, "nope")
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Nil(t, val)
	})

	t.Run("set then get with prefix and ttl", func(t *testing.T) {
		t.Parallel()
		client, hook := newClient(t)
		s := redis.NewStorage(client, redis.WithKeyPrefix("kv:"))

		require.NoError(t, s.Set(ctx, "greeting", []byte("hello"), time.Hour))
		val, ok, err := s.Get(ctx, "greeting")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, []byte("hello"), val)

		assert.Contains(t, hook.data, "kv:greeting")
		assert.Equal(t, "ex 3600", hook.ttls["kv:greeting"])
	})

	t.Run("overwrite and empty value", func(t *testing.T) {
		t.Parallel()
		client, _ := newClient(t)
		s := redis.NewStorage(client)

		require.NoError(t, s.Set(ctx, "k", []byte("v1"), 0))
		require.NoError(t, s.Set(ctx, "k", []byte{}, 0))

		val, ok, err := s.Get(ctx, "k")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Empty(t, val)
	})

	t.Run("delete", func(t *testing.T) {
		t.Parallel()
		client, _ := newClient(t)
		s := redis.NewStorage(client)

		require.NoError(t, s.Set(ctx, "k", []byte("v"), 0))
		require.NoError(t, s.Delete(ctx, "k"))
		_, ok, err := s.Get(ctx, "k")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("backend failure", func(t *testing.T) {
		t.Parallel()
		client, hook := newClient(t)
		hook.fail = errors.New("connection reset")
		s := redis.NewStorage(client)

		_, _, err := s.Get(ctx, "k")
		assert.ErrorIs(t, err, redis.ErrStorage)
		assert.ErrorIs(t, s.Set(ctx, "k", []byte("v"), 0), redis.ErrStorage)
	})
}

func TestHealthcheck(t *testing.T) {
	t.Parallel()

	client, hook := newClient(t)
	check := redis.Healthcheck(client)
	s := redis.NewStorage(client)
	require.NoError(t, check(context.Background()))
	require.NoError(t, s.Healthcheck(context.Background()))

	hook.fail = errors.New("down")
	assert.ErrorIs(t, check(context.Background()), redis.ErrHealthcheckFailed)
	assert.ErrorIs(t, s.Healthcheck(context.Background()), redis.ErrHealthcheckFailed)
}

func TestConnectValidation(t *testing.T) {
	t.Parallel()

	_, err := redis.Connect(context.Background(), redis.Config{})
	assert.ErrorIs(t, err, redis.ErrEmptyConnectionURL)

	_, err = redis.Connect(context.Background(), redis.Config{ConnectionURL: "://bad", ConnectTimeout: time.Second})
	assert.ErrorIs(t, err, redis.ErrFailedToParseRedisConnString)
}
