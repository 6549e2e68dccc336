package sqlite

import "time"

type Config struct {
	Path            string        `env:"SQLITE_PATH" envDefault:"edgeworker.db" validate:"required"` // Path is a file path or ":memory:".
	BusyTimeout     time.Duration `env:"SQLITE_BUSY_TIMEOUT" envDefault:"5s" validate:"gte=0"`
	MaxOpenConns    int           `env:"SQLITE_MAX_OPEN_CONNS" envDefault:"4" validate:"gte=1"`
	MigrationsTable string        `env:"SQLITE_MIGRATIONS_TABLE" envDefault:"schema_migrations"`
}
