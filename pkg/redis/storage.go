package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Storage is a byte-oriented key/value store backed by Redis.
// Every key is prefixed with the configured namespace.
type Storage struct {
	client redis.UniversalClient
	prefix string
}

// StorageOption configures a Storage.
type StorageOption func(*Storage)

// WithKeyPrefix namespaces all keys written and read by the storage.
func WithKeyPrefix(prefix string) StorageOption {
	return func(s *Storage) {
		s.prefix = prefix
	}
}

func NewStorage(client redis.UniversalClient, opts ...StorageOption) *Storage {
	s := &Storage{client: client}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get returns the value stored under key.
// A missing key reports found == false with a nil error.
func (s *Storage) Get(ctx context.Context, key string) ([]byte, bool, error) {
	val, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("%w: get %q: %w", ErrStorage, key, err)
	}
	return val, true, nil
}

// Set stores val under key, replacing any previous value.
// Empty values are stored as-is. A zero ttl keeps the key until it is overwritten.
func (s *Storage) Set(ctx context.Context, key string, val []byte, ttl time.Duration) error {
	if err := s.client.Set(ctx, s.prefix+key, val, ttl).Err(); err != nil {
		return fmt.Errorf("%w: set %q: %w", ErrStorage, key, err)
	}
	return nil
}

// Delete removes key. Deleting a missing key is not an error.
func (s *Storage) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.prefix+key).Err(); err != nil {
		return fmt.Errorf("%w: delete %q: %w", ErrStorage, key, err)
	}
	return nil
}

func (s *Storage) Close() error {
	return s.client.Close()
}
