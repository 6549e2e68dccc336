// Package cache provides in-process caching primitives.
//
// LRUCache is a generic, thread-safe least-recently-used cache. Store builds a
// byte-oriented key/value store with per-key TTLs on top of it and satisfies the
// same Get/Set contract as the Redis storage, so the worker can run without an
// external cache:
//
//	kv := cache.NewStore(10_000)
//	_ = kv.Set(ctx, "greeting", []byte("hello"), time.Hour)
//	val, ok, _ := kv.Get(ctx, "greeting")
package cache
