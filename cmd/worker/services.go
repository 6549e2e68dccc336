package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dmitrymomot/edgeworker/pkg/cache"
	"github.com/dmitrymomot/edgeworker/pkg/config"
	"github.com/dmitrymomot/edgeworker/pkg/file"
	"github.com/dmitrymomot/edgeworker/pkg/httpserver"
	"github.com/dmitrymomot/edgeworker/pkg/logger"
	"github.com/dmitrymomot/edgeworker/pkg/pg"
	"github.com/dmitrymomot/edgeworker/pkg/redis"
	"github.com/dmitrymomot/edgeworker/pkg/sqlite"
	"github.com/dmitrymomot/edgeworker/svc/files"
	"github.com/dmitrymomot/edgeworker/svc/kv"
	"github.com/dmitrymomot/edgeworker/svc/users"
)

var ErrUnknownDriver = errors.New("unknown driver")

// Services are the bound services injected into the handlers.
type Services struct {
	DB          *sql.DB
	IsDuplicate users.DuplicateChecker
	KV          kv.Store
	Blob        files.Store
	Checks      []httpserver.Check

	closers []func() error
}

// Close releases every opened backend in reverse order.
func (s *Services) Close() error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		errs = append(errs, s.closers[i]())
	}
	s.closers = nil
	return errors.Join(errs...)
}

func (s *Services) onClose(fn func() error) {
	s.closers = append(s.closers, fn)
}

// openServices connects the configured backends and applies migrations.
// On error everything opened so far is closed.
func openServices(ctx context.Context, cfg Config, log *slog.Logger) (_ *Services, err error) {
	s := &Services{}
	defer func() {
		if err != nil {
			_ = s.Close()
		}
	}()

	if err := s.openDatabase(ctx, cfg.DatabaseDriver, log); err != nil {
		return nil, err
	}
	if err := s.openKV(ctx, cfg, log); err != nil {
		return nil, err
	}
	if err := s.openBlob(ctx, cfg.BlobDriver, log); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *Services) openDatabase(ctx context.Context, driver string, log *slog.Logger) error {
	switch driver {
	case DriverPostgres:
		var pgCfg pg.Config
		if err := config.Load(&pgCfg); err != nil {
			return fmt.Errorf("postgres config: %w", err)
		}
		pool, err := pg.Connect(ctx, pgCfg)
		if err != nil {
			return err
		}
		s.onClose(func() error { pool.Close(); return nil })

		db := pg.OpenDB(pool)
		s.onClose(db.Close)
		if err := pg.Migrate(ctx, db, users.Migrations(), pgCfg, log); err != nil {
			return err
		}

		s.DB, s.IsDuplicate = db, pg.IsDuplicateKeyError
		s.Checks = append(s.Checks, httpserver.Check{Name: "postgres", Fn: pg.Healthcheck(pool)})

	case DriverSQLite:
		var liteCfg sqlite.Config
		if err := config.Load(&liteCfg); err != nil {
			return fmt.Errorf("sqlite config: %w", err)
		}
		db, err := sqlite.Open(ctx, liteCfg)
		if err != nil {
			return err
		}
		s.onClose(db.Close)
		if err := sqlite.Migrate(ctx, db, users.Migrations(), liteCfg, log); err != nil {
			return err
		}

		s.DB, s.IsDuplicate = db, sqlite.IsDuplicateKeyError
		s.Checks = append(s.Checks, httpserver.Check{Name: "sqlite", Fn: sqlite.Healthcheck(db)})

	default:
		return fmt.Errorf("%w: database %q", ErrUnknownDriver, driver)
	}

	log.Info("database ready", logger.Driver(driver), logger.Component("bootstrap"))
	return nil
}

func (s *Services) openKV(ctx context.Context, cfg Config, log *slog.Logger) error {
	switch cfg.KVDriver {
	case DriverRedis:
		var redisCfg redis.Config
		if err := config.Load(&redisCfg); err != nil {
			return fmt.Errorf("redis config: %w", err)
		}
		client, err := redis.Connect(ctx, redisCfg)
		if err != nil {
			return err
		}
		storage := redis.NewStorage(client, redis.WithKeyPrefix(redisCfg.KeyPrefix))
		s.onClose(storage.Close)

		s.KV = storage
		s.Checks = append(s.Checks, httpserver.Check{Name: "redis", Fn: storage.Healthcheck})

	case DriverMemory:
		s.KV = cache.NewStore(cfg.KVMemoryCapacity)

	default:
		return fmt.Errorf("%w: kv %q", ErrUnknownDriver, cfg.KVDriver)
	}

	log.Info("kv store ready", logger.Driver(cfg.KVDriver), logger.Component("bootstrap"))
	return nil
}

func (s *Services) openBlob(ctx context.Context, driver string, log *slog.Logger) error {
	switch driver {
	case DriverS3:
		var s3Cfg file.S3Config
		if err := config.Load(&s3Cfg); err != nil {
			return fmt.Errorf("s3 config: %w", err)
		}
		storage, err := file.NewS3Storage(ctx, s3Cfg)
		if err != nil {
			return err
		}

		s.Blob = storage
		s.Checks = append(s.Checks, httpserver.Check{Name: "s3", Fn: storage.Healthcheck})

	case DriverLocal:
		var localCfg file.LocalConfig
		if err := config.Load(&localCfg); err != nil {
			return fmt.Errorf("local blob config: %w", err)
		}
		storage, err := file.NewLocalStorage(localCfg)
		if err != nil {
			return err
		}

		s.Blob = storage
		s.Checks = append(s.Checks, httpserver.Check{Name: "blob", Fn: storage.Healthcheck})

	default:
		return fmt.Errorf("%w: blob %q", ErrUnknownDriver, driver)
	}

	log.Info("blob store ready", logger.Driver(driver), logger.Component("bootstrap"))
	return nil
}
