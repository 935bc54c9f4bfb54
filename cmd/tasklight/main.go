package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/tasklight/tasklight/internal/bootstrap"
)

func main() {
	ctx := context.Background()
	logger := bootstrap.InitLogger()
	if err := run(ctx, logger); err != nil {
		logger.ErrorContext(ctx, "fatal error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger) error {
	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		return err
	}
	cfgPtr := &cfg

	logger.InfoContext(ctx, "starting tasklight",
		"dev", cfg.IsDev,
		"services", cfg.Services,
		"addr", cfg.HTTP.Addr,
	)

	if err = bootstrap.ValidateServiceConfig(cfgPtr); err != nil {
		return err
	}

	db, err := bootstrap.ConnectDB(bootstrap.DatabaseConfig{DBConfig: cfg.Postgres, Logger: logger})
	if err != nil {
		return err
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			logger.ErrorContext(ctx, "close database failed", "error", cerr)
		}
	}()

	if err = bootstrap.MigrateDB(ctx, db, cfg.Postgres, logger); err != nil {
		return err
	}

	services, err := bootstrap.NewServices(bootstrap.ServiceDeps{
		Config: cfgPtr,
		DB:     db,
		Logger: logger,
	})
	if err != nil {
		return err
	}

	return bootstrap.Run(ctx, cfgPtr, services, logger)
}
