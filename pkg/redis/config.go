package redis

import "time"

type Config struct {
	ConnectionURL  string        `env:"REDIS_URL" envDefault:"redis://localhost:6379/0" validate:"required"` // redis://:password@host:6379/0
	KeyPrefix      string        `env:"REDIS_KEY_PREFIX" envDefault:"kv:"`                                   // KeyPrefix namespaces every cache key.
	RetryAttempts  int           `env:"REDIS_RETRY_ATTEMPTS" envDefault:"3" validate:"gte=1"`
	RetryInterval  time.Duration `env:"REDIS_RETRY_INTERVAL" envDefault:"2s"`
	ConnectTimeout time.Duration `env:"REDIS_CONNECT_TIMEOUT" envDefault:"15s" validate:"gt=0"`
}
