// Package main implements the entry point for the shelf API server, which
// manages authors and books behind authenticated, rate limited JSON routes.
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"

	"github.com/joho/godotenv"

	"github.com/phrazzld/shelf-api/internal/config"
	"github.com/phrazzld/shelf-api/internal/platform/logger"
	"github.com/phrazzld/shelf-api/internal/platform/telemetry"
	"github.com/phrazzld/shelf-api/internal/ratelimit"
)

// main initializes configuration, logging, tracing, the database and the
// counter store, then serves HTTP until SIGINT or SIGTERM.
func main() {
	if err := run(context.Background()); err != nil {
		log.Fatalf("shelf-api: %v", err)
	}
}

func run(ctx context.Context) error {
	// A missing .env file is fine; the environment may be set elsewhere.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load .env file: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	l := logger.Setup(cfg.Server.LogLevel)
	l.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"database_driver", cfg.Database.Driver)

	shutdownTracer, err := telemetry.Setup(cfg.Telemetry, nil, l)
	if err != nil {
		return fmt.Errorf("failed to set up telemetry: %w", err)
	}
	defer func() {
		if err := shutdownTracer(context.Background()); err != nil {
			l.Error("failed to flush traces", "error", err)
		}
	}()

	db, dialect, err := setupAppDatabase(ctx, cfg, l)
	if err != nil {
		return err
	}

	counter, err := ratelimit.NewRedisCounter(ctx, cfg.Redis.URL)
	if err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to connect to the counter store: %w", err)
	}
	l.Info("Counter store connected")

	app, err := newApplication(cfg, l, db, dialect, counter)
	if err != nil {
		_ = counter.Close()
		_ = db.Close()
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	l.Info("Application initialized successfully")
	return app.Run(ctx)
}
