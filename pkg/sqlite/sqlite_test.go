package sqlite_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/edgeworker/pkg/sqlite"
)

var migrations = fstest.MapFS{
	"00001_items.sql": &fstest.MapFile{Data: []byte(`-- +goose Up
CREATE TABLE items (id TEXT PRIMARY KEY, name TEXT NOT NULL UNIQUE);

-- +goose Down
DROP TABLE items;
`)},
}

func TestOpenMigrateAndConstraints(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	cfg := sqlite.Config{Path: sqlite.MemoryPath}

	db, err := sqlite.Open(ctx, cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, sqlite.Migrate(ctx, db, migrations, cfg, nil))
	require.NoError(t, sqlite.Migrate(ctx, db, migrations, cfg, nil), "migrations are idempotent")

	_, err = db.ExecContext(ctx, `INSERT INTO items (id, name) VALUES ($1, $2)`, "1", "a")
	require.NoError(t, err)

	_, err = db.ExecContext(ctx, `INSERT INTO items (id, name) VALUES ($1, $2)`, "2", "a")
	require.Error(t, err)
	assert.True(t, sqlite.IsDuplicateKeyError(err))

	_, err = db.ExecContext(ctx, `INSERT INTO items (id, name) VALUES ($1, $2)`, "1", "b")
	require.Error(t, err)
	assert.True(t, sqlite.IsDuplicateKeyError(err))

	assert.False(t, sqlite.IsDuplicateKeyError(errors.New("other")))
	assert.False(t, sqlite.IsDuplicateKeyError(nil))

	require.NoError(t, sqlite.Healthcheck(db)(ctx))
}

func TestOpenFile(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	db, err := sqlite.Open(ctx, sqlite.Config{Path: filepath.Join(t.TempDir(), "worker.db"), MaxOpenConns: 2})
	require.NoError(t, err)
	require.NoError(t, db.Close())

	assert.ErrorIs(t, sqlite.Healthcheck(db)(ctx), sqlite.ErrHealthcheckFailed)
}

func TestOpenEmptyPath(t *testing.T) {
	t.Parallel()

	_, err := sqlite.Open(context.Background(), sqlite.Config{})
	assert.ErrorIs(t, err, sqlite.ErrFailedToOpenDB)
}
