// Package users implements the /api/users CRUD routes on a SQL store.
//
// Handlers validate input before touching the store and map store errors to
// envelope kinds: ErrUserNotFound becomes not_found, ErrEmailTaken becomes
// conflict. Email uniqueness is enforced only by the UNIQUE constraint in the
// embedded migrations, so concurrent creates cannot both succeed.
//
//	db, _ := sqlite.Open(ctx, cfg)
//	_ = sqlite.Migrate(ctx, db, users.Migrations(), cfg, log)
//	users.NewHandlers(users.NewSQLStore(db, sqlite.IsDuplicateKeyError)).Register(rt)
package users
