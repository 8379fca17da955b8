// Package server initializes and runs the storefront data server.
// It selects a snapshot storage backend, starts the HTTP API, and handles
// graceful shutdown on OS signals.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/vietcraft/storefront/internal/logging"
	"github.com/vietcraft/storefront/internal/server/config"
	"github.com/vietcraft/storefront/internal/server/httpapi"
	"github.com/vietcraft/storefront/internal/server/storage"
)

type App struct {
	config *config.Config
	logger logging.Logger
	server *httpapi.Server
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	slog := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(slog)

	st, err := newSnapshotStore(ctx, c, logger)
	if err != nil {
		return nil, fmt.Errorf("storage init error: %w", err)
	}

	srv := httpapi.New(c.EndpointAddrHTTP, st, logger)

	return &App{config: c, logger: logger, server: srv}, nil
}

func newSnapshotStore(ctx context.Context, c *config.Config, logger logging.Logger) (storage.SnapshotStore, error) {
	switch c.StorageDriver {
	case "file", "":
		return storage.NewFileStore(c.DataDir, c.BackupKeep, logger)
	case "s3":
		return storage.NewS3Store(ctx, c, logger)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", c.StorageDriver)
	}
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "addr", app.config.EndpointAddrHTTP, "driver", app.config.StorageDriver)

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := app.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			app.logger.Error(ctx, err.Error())
			cancelFunc()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), app.config.ShutdownTimeout)
	defer cancel()
	if err := app.server.Shutdown(shutdownCtx); err != nil {
		app.logger.Error(shutdownCtx, "shutdown error", "err", err)
	}

	wg.Wait()
	app.logger.Info(context.Background(), "Server stopped")
}
