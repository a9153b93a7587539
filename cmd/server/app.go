package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"

	"github.com/phrazzld/shelf-api/internal/api"
	"github.com/phrazzld/shelf-api/internal/config"
	"github.com/phrazzld/shelf-api/internal/platform/sqlstore"
	"github.com/phrazzld/shelf-api/internal/ratelimit"
	"github.com/phrazzld/shelf-api/internal/service"
	"github.com/phrazzld/shelf-api/internal/service/auth"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	counter ratelimit.Counter
	limiter *ratelimit.Limiter
	tokens  auth.TokenService

	userService   service.UserService
	authorService service.AuthorService
	bookService   service.BookService

	uploads *api.UploadHandler
}

// newApplication creates a new application instance with all dependencies initialized.
// The database and counter store must already be connected; cleanup closes them.
func newApplication(
	cfg *config.Config,
	logger *slog.Logger,
	db *sql.DB,
	dialect sqlstore.Dialect,
	counter ratelimit.Counter,
) (*application, error) {
	app := &application{
		config:  cfg,
		logger:  logger,
		db:      db,
		counter: counter,
	}

	var err error
	app.tokens, err = auth.NewTokenService(cfg.Auth.JWTSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize token service: %w", err)
	}
	logger.Info("Token service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	app.limiter, err = ratelimit.NewLimiter(counter, cfg.RateLimit.Window(), cfg.RateLimit.MaxRequests, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize rate limiter: %w", err)
	}

	userStore := sqlstore.NewUserStore(db, dialect, logger)
	authorStore := sqlstore.NewAuthorStore(db, dialect, logger)
	bookStore := sqlstore.NewBookStore(db, dialect, logger)

	app.userService = service.NewUserService(
		userStore,
		auth.NewBcryptHasher(cfg.Auth.BcryptCost),
		app.tokens,
		cfg.Auth.TokenLifetime(),
		db,
		logger,
	)
	app.authorService = service.NewAuthorService(authorStore, db, logger)
	app.bookService = service.NewBookService(bookStore, authorStore, db, logger)

	app.uploads, err = api.NewUploadHandler(api.UploadOptions{
		Dir:       cfg.Upload.Dir,
		MaxBytes:  cfg.Upload.MaxBytes,
		Width:     cfg.Upload.Width,
		Quality:   cfg.Upload.Quality,
		MaxPixels: cfg.Upload.MaxPixels,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize uploads: %w", err)
	}

	return app, nil
}

// Run serves HTTP until ctx is canceled or a shutdown signal arrives.
func (app *application) Run(ctx context.Context) error {
	if err := app.startHTTPServer(ctx, app.setupRouter()); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if c, ok := app.counter.(io.Closer); ok {
		if err := c.Close(); err != nil {
			app.logger.Error("Error closing counter store", "error", err)
		}
	}

	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}

	app.logger.Info("Application shutdown completed")
}
