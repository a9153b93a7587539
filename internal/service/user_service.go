package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/phrazzld/shelf-api/internal/domain"
	"github.com/phrazzld/shelf-api/internal/platform/logger"
	"github.com/phrazzld/shelf-api/internal/redact"
	"github.com/phrazzld/shelf-api/internal/service/auth"
	"github.com/phrazzld/shelf-api/internal/store"
)

// RegisterInput holds the fields of a new account.
type RegisterInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResult is a signed access token and the account it was issued for.
type LoginResult struct {
	Token string
	User  *domain.User
}

// UserService registers accounts and issues access tokens.
type UserService interface {
	// Register creates an account. An email or username already in use
	// fails with AUTH_USER_EXISTS.
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)

	// Login checks the credentials and signs a token. Unknown emails and
	// wrong passwords both fail with AUTH_INVALID_CREDENTIALS.
	Login(ctx context.Context, email, password string) (*LoginResult, error)
}

// UserServiceImpl implements the UserService interface
type UserServiceImpl struct {
	users    store.UserStore
	hasher   auth.PasswordHasher
	tokens   auth.TokenService
	tokenTTL time.Duration
	db       *sql.DB
	logger   *slog.Logger
}

var _ UserService = (*UserServiceImpl)(nil)

// NewUserService creates a new UserService
func NewUserService(
	users store.UserStore,
	hasher auth.PasswordHasher,
	tokens auth.TokenService,
	tokenTTL time.Duration,
	db *sql.DB,
	logger *slog.Logger,
) *UserServiceImpl {
	if logger == nil {
		logger = slog.Default()
	}
	return &UserServiceImpl{
		users:    users,
		hasher:   hasher,
		tokens:   tokens,
		tokenTTL: tokenTTL,
		db:       db,
		logger:   logger.With("component", "user_service"),
	}
}

// Register implements UserService.
// Known duplicates are rejected before the password is hashed; the check is
// repeated with the insert in one transaction.
func (s *UserServiceImpl) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	username, email := domain.NormalizeIdentity(in.Username, in.Email)
	exists, err := s.users.ExistsByEmailOrUsername(ctx, email, username)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if exists {
		log.Debug("attempted to register an existing user", "username", username)
		return nil, errUserExists()
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := domain.NewUser(in.Username, in.Email, hash, time.Now())
	if err != nil {
		if f := domainFailure(err); f != nil {
			return nil, f
		}
		return nil, fmt.Errorf("failed to build user: %w", err)
	}

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txUsers := s.users.WithTx(tx)

		exists, err := txUsers.ExistsByEmailOrUsername(ctx, user.Email, user.Username)
		if err != nil {
			return err
		}
		if exists {
			return store.ErrUserExists
		}
		return txUsers.Create(ctx, user)
	})
	if err != nil {
		if errors.Is(err, store.ErrUserExists) {
			log.Debug("attempted to register an existing user",
				"username", user.Username)
			return nil, errUserExists()
		}
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	log.Info("user registered", "user_id", user.ID)
	return user, nil
}

// Login implements UserService.
func (s *UserServiceImpl) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := s.users.GetByEmail(ctx, strings.ToLower(email))
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			log.Debug("login for unknown email")
			return nil, errInvalidCredentials()
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if err := s.hasher.Compare(user.HashedPassword, password); err != nil {
		log.Debug("login with wrong password",
			"user_id", user.ID,
			"error", redact.Error(err))
		return nil, errInvalidCredentials()
	}

	p := user.Principal()
	token, err := s.tokens.Sign(ctx, auth.Claims{
		UserID:   p.ID,
		Username: p.Username,
		Email:    p.Email,
		Role:     p.Role,
	}, s.tokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	log.Info("user logged in", "user_id", user.ID)
	return &LoginResult{Token: token, User: user}, nil
}
