package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/shelf-api/internal/domain"
	"github.com/phrazzld/shelf-api/internal/platform/logger"
	"github.com/phrazzld/shelf-api/internal/store"
)

// UserStore implements store.UserStore.
type UserStore struct {
	db      store.DBTX
	dialect Dialect
	logger  *slog.Logger
}

var _ store.UserStore = (*UserStore)(nil)

// NewUserStore creates a UserStore over a connection or transaction.
// If logger is nil, the default logger is used.
func NewUserStore(db store.DBTX, d Dialect, logger *slog.Logger) *UserStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &UserStore{
		db:      db,
		dialect: d,
		logger:  logger.With(slog.String("component", "user_store")),
	}
}

// WithTx implements store.UserStore.
func (s *UserStore) WithTx(tx *sql.Tx) store.UserStore {
	return &UserStore{db: tx, dialect: s.dialect, logger: s.logger}
}

// Create implements store.UserStore.
func (s *UserStore) Create(ctx context.Context, u *domain.User) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := u.Validate(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	query := s.dialect.Rebind(`
		INSERT INTO users (username, email, password_hash, role, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		RETURNING id
	`)
	err := s.db.QueryRowContext(ctx, query,
		u.Username, u.Email, u.HashedPassword, u.Role, u.CreatedAt, u.UpdatedAt,
	).Scan(&u.ID)
	if err != nil {
		err = MapError(err)
		if errors.Is(err, store.ErrDuplicate) {
			return store.ErrUserExists
		}
		return store.NewStoreError("user", "create", "insert failed", err)
	}

	log.Info("user created", slog.Int64("user_id", u.ID))
	return nil
}

// GetByEmail implements store.UserStore.
func (s *UserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := s.dialect.Rebind(`
		SELECT id, username, email, password_hash, role, created_at, updated_at
		FROM users
		WHERE email = ?
	`)

	var u domain.User
	err := s.db.QueryRowContext(ctx, query, email).Scan(
		&u.ID, &u.Username, &u.Email, &u.HashedPassword, &u.Role, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrUserNotFound
		}
		return nil, store.NewStoreError("user", "get", "query failed", MapError(err))
	}
	return &u, nil
}

// ExistsByEmailOrUsername implements store.UserStore.
func (s *UserStore) ExistsByEmailOrUsername(ctx context.Context, email, username string) (bool, error) {
	var exists bool
	query := s.dialect.Rebind(`SELECT EXISTS (SELECT 1 FROM users WHERE email = ? OR username = ?)`)
	if err := s.db.QueryRowContext(ctx, query, email, username).Scan(&exists); err != nil {
		return false, store.NewStoreError("user", "exists", "query failed", MapError(err))
	}
	return exists, nil
}
