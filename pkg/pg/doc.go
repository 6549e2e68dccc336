// Package pg connects to PostgreSQL through pgx and adapts it for database/sql
// based stores.
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	db := pg.OpenDB(pool)
//	if err := pg.Migrate(ctx, db, migrations, cfg, log); err != nil {
//		return err
//	}
//
// IsDuplicateKeyError detects unique constraint violations so stores can map
// them to conflicts, and Healthcheck plugs into readiness probes.
package pg
