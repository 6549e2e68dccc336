package migrate

import (
	"context"
	"database/sql"
	"errors"
	"io/fs"
	"log/slog"

	"github.com/pressly/goose/v3"
	"github.com/pressly/goose/v3/database"

	"github.com/dmitrymomot/edgeworker/pkg/logger"
)

// DefaultTable is the goose version table used when none is configured.
const DefaultTable = "schema_migrations"

var (
	ErrFailedToApplyMigrations = errors.New("failed to apply migrations")
	ErrNoMigrations            = errors.New("no migration files found")
)

// Up applies every pending SQL migration found at the root of fsys.
// Each applied file is logged at info level. A nil log discards output.
func Up(ctx context.Context, db *sql.DB, dialect database.Dialect, fsys fs.FS, table string, log *slog.Logger) error {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	if table == "" {
		table = DefaultTable
	}

	store, err := database.NewStore(dialect, table)
	if err != nil {
		return errors.Join(ErrFailedToApplyMigrations, err)
	}

	provider, err := goose.NewProvider("", db, fsys, goose.WithStore(store))
	if err != nil {
		if errors.Is(err, goose.ErrNoMigrations) {
			return errors.Join(ErrFailedToApplyMigrations, ErrNoMigrations)
		}
		return errors.Join(ErrFailedToApplyMigrations, err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return errors.Join(ErrFailedToApplyMigrations, err)
	}

	for _, res := range results {
		log.InfoContext(ctx, "migration applied",
			slog.Int64("version", res.Source.Version),
			slog.String("file", res.Source.Path),
			logger.Duration(res.Duration),
			logger.Component("migrate"),
		)
	}

	return nil
}
