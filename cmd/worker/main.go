// Command worker serves the edge worker API.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/dmitrymomot/edgeworker/pkg/clientip"
	"github.com/dmitrymomot/edgeworker/pkg/config"
	"github.com/dmitrymomot/edgeworker/pkg/httpserver"
	"github.com/dmitrymomot/edgeworker/pkg/logger"
	"github.com/dmitrymomot/edgeworker/pkg/requestid"
)

func main() {
	var cfg Config
	config.MustLoad(&cfg)

	log := logger.New(
		logger.WithEnvironment(cfg.Env, cfg.ServiceName),
		logger.WithContextExtractors(requestid.LoggerExtractor(), clientip.LoggerExtractor()),
	)

	if err := run(context.Background(), cfg, log); err != nil {
		log.Error("worker stopped", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg Config, log *slog.Logger) error {
	var srvCfg httpserver.Config
	if err := config.Load(&srvCfg); err != nil {
		return err
	}

	services, err := openServices(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := services.Close(); err != nil {
			log.Error("failed to close services", logger.Error(err))
		}
	}()

	server := httpserver.NewFromConfig(srvCfg, httpserver.WithLogger(log))
	return server.Run(ctx, newHandler(cfg, services, log))
}
