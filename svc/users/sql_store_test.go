package users_test

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/edgeworker/pkg/sqlite"
	"github.com/dmitrymomot/edgeworker/svc/users"
)

func openDB(t *testing.T) *sql.DB {
	t.Helper()
	ctx := context.Background()
	cfg := sqlite.Config{Path: sqlite.MemoryPath}

	db, err := sqlite.Open(ctx, cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, sqlite.Migrate(ctx, db, users.Migrations(), cfg, nil))
	return db
}

func newStore(t *testing.T) *users.SQLStore {
	t.Helper()
	return users.NewSQLStore(openDB(t), sqlite.IsDuplicateKeyError)
}

func TestSQLStoreCRUD(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := newStore(t)

	u := users.User{ID: "u1", Name: "Ann", Email: "ann@example.com", CreatedAt: "2026-01-01T00:00:00Z"}
	require.NoError(t, store.Create(ctx, u))

	got, err := store.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, u, got)

	u.Name = "Annie"
	require.NoError(t, store.Update(ctx, u))
	got, err = store.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "Annie", got.Name)

	require.NoError(t, store.Delete(ctx, "u1"))
	_, err = store.Get(ctx, "u1")
	assert.ErrorIs(t, err, users.ErrUserNotFound)
	assert.ErrorIs(t, store.Delete(ctx, "u1"), users.ErrUserNotFound)
	assert.ErrorIs(t, store.Update(ctx, u), users.ErrUserNotFound)
}

func TestSQLStoreUniqueEmail(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := newStore(t)

	require.NoError(t, store.Create(ctx, users.User{ID: "a", Name: "A", Email: "a@x.io", CreatedAt: "2026-01-01T00:00:00Z"}))
	require.NoError(t, store.Create(ctx, users.User{ID: "b", Name: "B", Email: "b@x.io", CreatedAt: "2026-01-01T00:00:00Z"}))

	err := store.Create(ctx, users.User{ID: "c", Name: "C", Email: "a@x.io", CreatedAt: "2026-01-01T00:00:00Z"})
	assert.ErrorIs(t, err, users.ErrEmailTaken)

	err = store.Update(ctx, users.User{ID: "b", Name: "B", Email: "a@x.io"})
	assert.ErrorIs(t, err, users.ErrEmailTaken)
}

func TestSQLStoreListAndCount(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := newStore(t)

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := range 25 {
		require.NoError(t, store.Create(ctx, users.User{
			ID:        fmt.Sprintf("id-%02d", i),
			Name:      fmt.Sprintf("user %d", i),
			Email:     fmt.Sprintf("u%d@example.com", i),
			CreatedAt: base.Add(time.Duration(i) * time.Minute).Format(time.RFC3339),
		}))
	}

	total, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 25, total)

	first, err := store.List(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, first, 10)
	assert.Equal(t, "id-24", first[0].ID, "newest first")

	last, err := store.List(ctx, 10, users.Offset(3, 10))
	require.NoError(t, err)
	require.Len(t, last, 5)
	assert.Equal(t, "id-00", last[4].ID)

	empty, err := store.List(ctx, 10, users.Offset(4, 10))
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestSQLStoreCanceledContext(t *testing.T) {
	t.Parallel()
	store := newStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.Count(ctx)
	assert.ErrorIs(t, err, users.ErrStore)
}

func TestOffset(t *testing.T) {
	t.Parallel()

	for page := 1; page <= 5; page++ {
		for _, limit := range []int{1, 10, 100} {
			assert.Equal(t, (page-1)*limit, users.Offset(page, limit))
		}
	}
}
