package bootstrap

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"time"

	tasklight "github.com/tasklight/tasklight"
	"github.com/tasklight/tasklight/config"
	httpx "github.com/tasklight/tasklight/internal/http"
)

// HTTPServerConfig contains configuration for the HTTP server.
type HTTPServerConfig struct {
	Config   *config.AppConfig
	Services ServiceContainer
	Logger   *slog.Logger
}

// StartHTTPServer creates and starts the HTTP server.
// Returns the server instance for graceful shutdown.
func StartHTTPServer(cfg *HTTPServerConfig) (*http.Server, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	templateFS, staticFS, err := webAssets(cfg.Config.IsDev)
	if err != nil {
		return nil, err
	}

	router, err := httpx.NewRouter(httpx.RouterServices{
		Auth:         cfg.Services.Auth,
		Tasks:        cfg.Services.Tasks,
		Accounts:     cfg.Services.Accounts,
		CookieDomain: cfg.Config.HTTP.CookieDomain,
		TemplateFS:   templateFS,
		StaticFS:     staticFS,
		Logger:       logger,
	})
	if err != nil {
		return nil, fmt.Errorf("build router: %w", err)
	}

	// Order: Recover -> Logging -> Router
	handler := httpx.Recover(logger)(httpx.Logging(logger)(router))

	return startServer(logger, handler, cfg.Config.HTTP.Addr), nil
}

// webAssets selects the template and static filesystems. Dev mode reads
// from disk so edits show up without a rebuild; production serves the
// embedded copies.
func webAssets(isDev bool) (fs.FS, fs.FS, error) {
	if isDev {
		return os.DirFS("web/templates"), os.DirFS("web/static"), nil
	}

	templateFS, err := fs.Sub(tasklight.TemplateFS, "web/templates")
	if err != nil {
		return nil, nil, fmt.Errorf("sub template fs: %w", err)
	}
	staticFS, err := fs.Sub(tasklight.StaticFS, "web/static")
	if err != nil {
		return nil, nil, fmt.Errorf("sub static fs: %w", err)
	}
	return templateFS, staticFS, nil
}

func startServer(logger *slog.Logger, handler http.Handler, addr string) *http.Server {
	// Guard against empty addr to avoid listening on Go default
	if addr == "" {
		addr = ":8080"
	}

	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info("starting HTTP server", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server failed", "error", err)
		}
	}()

	return server
}

// ShutdownHTTPServer drains in-flight requests with a timeout.
func ShutdownHTTPServer(ctx context.Context, server *http.Server, logger *slog.Logger) {
	if server == nil {
		return
	}
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown failed", "error", err)
		return
	}
	logger.Info("HTTP server stopped")
}
