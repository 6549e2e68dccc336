// Package redis connects to Redis and exposes it as a byte-oriented
// key/value Storage with per-key TTLs.
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	kv := redis.NewStorage(client, redis.WithKeyPrefix(cfg.KeyPrefix))
//
// Connect retries the initial ping, and Healthcheck returns a probe suitable for
// httpserver readiness checks.
package redis
