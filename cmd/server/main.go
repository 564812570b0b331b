// Command server runs the proposal HTTP API: catalog, live quotes, drafts,
// client lookup and proposal creation.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/exposeprofi/proposals/app"
	"github.com/exposeprofi/proposals/internal/config"
	"github.com/exposeprofi/proposals/server"
)

const shutdownTimeout = 30 * time.Second

func main() {
	os.Exit(run())
}

func run() int {
	application, err := app.New()
	if err != nil {
		slog.New(slog.NewTextHandler(os.Stderr, nil)).Error("failed to start proposal service", "error", err)
		return 1
	}
	defer application.Close()

	logger := application.Logger
	srv, err := server.New(application.Config, logger, application.Handlers)
	if err != nil {
		logger.Error("failed to build http server", "error", err)
		return 1
	}
	logger.Info("proposal service starting", describe(application.Config)...)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() { serveErr <- srv.Run() }()

	select {
	case err := <-serveErr:
		if err != nil {
			logger.Error("http server stopped", "error", err)
			return 1
		}
		return 0
	case <-ctx.Done():
	}

	logger.Info("shutting down, draining in-flight requests and notifications")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Close(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
		return 1
	}
	return 0
}

// describe lists where the running instance reads and keeps its data.
func describe(cfg *config.Config) []any {
	catalogSource := cfg.CatalogPath
	if catalogSource == "" {
		catalogSource = "embedded"
	}
	storage := "memory"
	if cfg.DatabaseURL != "" {
		storage = "postgres"
	}
	var notifications []string
	if cfg.NotifyWebhookURL != "" {
		notifications = append(notifications, "webhook")
	}
	if cfg.EmailNotificationsEnabled() {
		notifications = append(notifications, cfg.NotifyEmailProvider)
	}
	return []any{
		"port", cfg.Port,
		"catalog", catalogSource,
		"proposal_storage", storage,
		"draft_store", cfg.DraftStoreProvider,
		"client_cache", cfg.CacheProvider,
		"notifications", notifications,
	}
}
