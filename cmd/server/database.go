package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/shelf-api/internal/config"
	"github.com/phrazzld/shelf-api/internal/platform/sqlstore"
)

// setupAppDatabase connects to the configured database and brings its
// schema up to date.
func setupAppDatabase(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*sql.DB, sqlstore.Dialect, error) {
	db, dialect, err := sqlstore.Open(ctx, cfg.Database.Driver, cfg.Database.URL, sqlstore.PoolOptions{
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: 5 * time.Minute,
	})
	if err != nil {
		return nil, nil, err
	}
	logger.Info("Database connection established", "driver", dialect.Name())

	version, err := sqlstore.Migrate(ctx, db, dialect, logger)
	if err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("failed to apply migrations: %w", err)
	}
	logger.Info("Database schema ready", "version", version)

	return db, dialect, nil
}
