package pg

import (
	"context"
	"database/sql"
	"io/fs"
	"log/slog"

	"github.com/pressly/goose/v3/database"

	"github.com/dmitrymomot/edgeworker/pkg/migrate"
)

// Migrate applies the SQL migrations in fsys using the postgres dialect.
func Migrate(ctx context.Context, db *sql.DB, fsys fs.FS, cfg Config, log *slog.Logger) error {
	return migrate.Up(ctx, db, database.DialectPostgres, fsys, cfg.MigrationsTable, log)
}
