package main

import (
	"time"

	"github.com/dmitrymomot/edgeworker/pkg/environment"
)

// Backend drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
	DriverRedis    = "redis"
	DriverLocal    = "local"
	DriverS3       = "s3"
)

// Config is the application-level configuration.
// Backend-specific settings are loaded from their own packages once a driver is chosen.
type Config struct {
	Env         environment.Environment `env:"APP_ENV" envDefault:"development"`
	ServiceName string                  `env:"SERVICE_NAME" envDefault:"edgeworker" validate:"required"`

	DatabaseDriver string `env:"DATABASE_DRIVER" envDefault:"sqlite" validate:"oneof=sqlite postgres"`
	KVDriver       string `env:"KV_DRIVER" envDefault:"memory" validate:"oneof=memory redis"`
	BlobDriver     string `env:"BLOB_DRIVER" envDefault:"local" validate:"oneof=local s3"`

	KVTTL            time.Duration `env:"KV_TTL" envDefault:"1h" validate:"gt=0"`
	KVMemoryCapacity int           `env:"KV_MEMORY_CAPACITY" envDefault:"10000" validate:"gte=1"`
	MaxUploadSize    int64         `env:"MAX_UPLOAD_SIZE" envDefault:"10485760" validate:"gt=0"`
	RequestTimeout   time.Duration `env:"REQUEST_TIMEOUT" envDefault:"30s" validate:"gt=0"`
	ReadyTimeout     time.Duration `env:"READY_TIMEOUT" envDefault:"3s" validate:"gte=0"`
	MetricsNamespace string        `env:"METRICS_NAMESPACE" envDefault:"edgeworker"`
}
