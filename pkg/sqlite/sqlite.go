package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/url"

	"github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3/database"

	"github.com/dmitrymomot/edgeworker/pkg/migrate"
)

// DriverName is the database/sql driver registered by mattn/go-sqlite3.
const DriverName = "sqlite3"

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

var (
	ErrFailedToOpenDB    = errors.New("failed to open sqlite database")
	ErrHealthcheckFailed = errors.New("sqlite healthcheck failed")
)

// Open opens the database at cfg.Path with foreign keys and WAL enabled and pings it.
// In-memory databases are limited to a single connection, since every new
// connection to ":memory:" would see an empty database.
func Open(ctx context.Context, cfg Config) (*sql.DB, error) {
	if cfg.Path == "" {
		return nil, errors.Join(ErrFailedToOpenDB, errors.New("empty path"))
	}

	db, err := sql.Open(DriverName, dsn(cfg))
	if err != nil {
		return nil, errors.Join(ErrFailedToOpenDB, err)
	}

	if cfg.Path == MemoryPath {
		db.SetMaxOpenConns(1)
	} else if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, errors.Join(ErrFailedToOpenDB, err)
	}

	return db, nil
}

func dsn(cfg Config) string {
	q := url.Values{}
	q.Set("_foreign_keys", "on")
	if cfg.BusyTimeout > 0 {
		q.Set("_busy_timeout", fmt.Sprint(cfg.BusyTimeout.Milliseconds()))
	}
	if cfg.Path != MemoryPath {
		q.Set("_journal_mode", "WAL")
	}
	return "file:" + cfg.Path + "?" + q.Encode()
}

// Migrate applies the SQL migrations in fsys using the sqlite3 dialect.
func Migrate(ctx context.Context, db *sql.DB, fsys fs.FS, cfg Config, log *slog.Logger) error {
	return migrate.Up(ctx, db, database.DialectSQLite3, fsys, cfg.MigrationsTable, log)
}

// IsDuplicateKeyError reports whether err is a UNIQUE or PRIMARY KEY constraint violation.
func IsDuplicateKeyError(err error) bool {
	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
		sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
}

// Healthcheck returns a readiness probe that pings db.
func Healthcheck(db *sql.DB) func(context.Context) error {
	return func(ctx context.Context) error {
		if err := db.PingContext(ctx); err != nil {
			return errors.Join(ErrHealthcheckFailed, err)
		}
		return nil
	}
}
