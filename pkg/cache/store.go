package cache

import (
	"bytes"
	"context"
	"time"
)

// DefaultCapacity bounds the in-memory store when no capacity is configured.
const DefaultCapacity = 10_000

type item struct {
	value     []byte
	expiresAt time.Time
}

func (i item) expired(now time.Time) bool {
	return !i.expiresAt.IsZero() && !now.Before(i.expiresAt)
}

// Store is an in-process key/value store with per-key TTLs.
// It is bounded by an LRU so memory stays flat; expired entries are dropped on read.
// Values are copied on the way in and out so callers cannot mutate stored bytes.
type Store struct {
	lru *LRUCache[string, item]
	now func() time.Time
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// NewStore creates a Store holding at most capacity keys.
// A non-positive capacity uses DefaultCapacity.
func NewStore(capacity int, opts ...StoreOption) *Store {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	s := &Store{
		lru: NewLRUCache[string, item](capacity),
		now: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get returns the value for key, or found == false when it is absent or expired.
func (s *Store) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	it, ok := s.lru.Get(key)
	if !ok {
		return nil, false, nil
	}
	if now := s.now(); it.expired(now) {
		// A concurrent Set may have replaced the entry since it was read.
		s.lru.RemoveIf(key, func(cur item) bool { return cur.expired(now) })
		return nil, false, nil
	}
	return bytes.Clone(it.value), true, nil
}

// Set stores val under key, replacing any previous value.
// A zero ttl keeps the key until it is overwritten or evicted.
func (s *Store) Set(ctx context.Context, key string, val []byte, ttl time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	it := item{value: bytes.Clone(val)}
	if it.value == nil {
		it.value = []byte{}
	}
	if ttl > 0 {
		it.expiresAt = s.now().Add(ttl)
	}
	s.lru.Put(key, it)
	return nil
}

// Delete removes key. Deleting a missing key is not an error.
func (s *Store) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.lru.Remove(key)
	return nil
}

// Len reports the number of stored keys, including expired ones not yet read.
func (s *Store) Len() int {
	return s.lru.Len()
}
