package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/tasklight/tasklight/config"
	"github.com/tasklight/tasklight/internal/seed"
)

// Run starts every enabled service and blocks until SIGINT/SIGTERM or the
// first fatal service error, then shuts the rest down.
func Run(ctx context.Context, cfg *config.AppConfig, services ServiceContainer, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Clear any already-lapsed accounts before traffic arrives, then make
	// sure an administrator exists.
	if _, err := services.Reaper.ReapOnce(ctx); err != nil {
		return fmt.Errorf("initial reap: %w", err)
	}
	if err := seed.EnsureAdmin(ctx, services.AccountRepo, cfg.Auth.SeedAdmin, logger); err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}

	g, ctx := errgroup.WithContext(ctx)

	if cfg.IsHTTPServerEnabled() {
		server, err := StartHTTPServer(&HTTPServerConfig{
			Config:   cfg,
			Services: services,
			Logger:   logger,
		})
		if err != nil {
			return fmt.Errorf("start HTTP server: %w", err)
		}
		g.Go(func() error {
			<-ctx.Done()
			ShutdownHTTPServer(context.Background(), server, logger)
			return nil
		})
	}

	if cfg.IsReaperEnabled() {
		g.Go(func() error {
			return services.Reaper.Run(ctx)
		})
	}

	logger.Info("tasklight running", "services", cfg.Services)
	return g.Wait()
}
