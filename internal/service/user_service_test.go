package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/phrazzld/shelf-api/internal/apperr"
	"github.com/phrazzld/shelf-api/internal/domain"
	"github.com/phrazzld/shelf-api/internal/mocks"
	"github.com/phrazzld/shelf-api/internal/service"
	"github.com/phrazzld/shelf-api/internal/service/auth"
	"github.com/phrazzld/shelf-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserService_Register(t *testing.T) {
	t.Parallel()

	t.Run("creates user with hashed password", func(t *testing.T) {
		t.Parallel()

		db, mock := newMockDB(t)
		mock.ExpectBegin()
		mock.ExpectCommit()

		var created *domain.User
		users := &mocks.MockUserStore{
			CreateFn: func(_ context.Context, u *domain.User) error {
				u.ID = 3
				created = u
				return nil
			},
		}
		svc := service.NewUserService(users, &mocks.MockPasswordHasher{}, &mocks.MockTokenService{}, time.Hour, db, nil)

		u, err := svc.Register(context.Background(), service.RegisterInput{Username: "reader", Email: "Reader@Example.com", Password: "secret1"})
		require.NoError(t, err)
		assert.Equal(t, int64(3), u.ID)
		assert.Equal(t, "reader@example.com", u.Email)
		assert.Equal(t, "hashed:secret1", created.HashedPassword)
		assert.Equal(t, domain.RoleUser, u.Role)
		assert.Equal(t, 1, users.TxCount)
	})

	t.Run("existing email or username skips hashing", func(t *testing.T) {
		t.Parallel()

		db, _ := newMockDB(t)

		var checked []string
		users := &mocks.MockUserStore{
			ExistsByEmailOrUsernameFn: func(_ context.Context, email, username string) (bool, error) {
				checked = append(checked, email, username)
				return true, nil
			},
			CreateFn: func(context.Context, *domain.User) error {
				t.Error("create must not be called")
				return nil
			},
		}
		hasher := &mocks.MockPasswordHasher{
			HashFn: func(string) (string, error) {
				t.Error("hash must not be called for a known user")
				return "", nil
			},
		}
		svc := service.NewUserService(users, hasher, &mocks.MockTokenService{}, time.Hour, db, nil)

		_, err := svc.Register(context.Background(), service.RegisterInput{Username: " reader ", Email: "R@Example.com", Password: "secret1"})
		assertFailure(t, err, http.StatusBadRequest, apperr.CodeUserExists)
		f, _ := apperr.As(err)
		assert.Equal(t, service.MessageUserExists, f.Message())
		assert.Equal(t, []string{"r@example.com", "reader"}, checked)
		assert.Zero(t, users.TxCount)
	})

	t.Run("duplicate registered concurrently", func(t *testing.T) {
		t.Parallel()

		db, mock := newMockDB(t)
		mock.ExpectBegin()
		mock.ExpectRollback()

		calls := 0
		users := &mocks.MockUserStore{
			ExistsByEmailOrUsernameFn: func(context.Context, string, string) (bool, error) {
				calls++
				return calls > 1, nil
			},
		}
		svc := service.NewUserService(users, &mocks.MockPasswordHasher{}, &mocks.MockTokenService{}, time.Hour, db, nil)

		_, err := svc.Register(context.Background(), service.RegisterInput{Username: "reader", Email: "r@example.com", Password: "secret1"})
		assertFailure(t, err, http.StatusBadRequest, apperr.CodeUserExists)
		assert.Equal(t, 2, calls)
	})

	t.Run("unique violation on insert", func(t *testing.T) {
		t.Parallel()

		db, mock := newMockDB(t)
		mock.ExpectBegin()
		mock.ExpectRollback()

		users := &mocks.MockUserStore{
			CreateFn: func(context.Context, *domain.User) error { return store.ErrUserExists },
		}
		svc := service.NewUserService(users, &mocks.MockPasswordHasher{}, &mocks.MockTokenService{}, time.Hour, db, nil)

		_, err := svc.Register(context.Background(), service.RegisterInput{Username: "reader", Email: "r@example.com", Password: "secret1"})
		assertFailure(t, err, http.StatusBadRequest, apperr.CodeUserExists)
	})

	t.Run("store failure is not a failure", func(t *testing.T) {
		t.Parallel()

		db, _ := newMockDB(t)

		users := &mocks.MockUserStore{
			ExistsByEmailOrUsernameFn: func(context.Context, string, string) (bool, error) {
				return false, errors.New("connection reset")
			},
		}
		svc := service.NewUserService(users, &mocks.MockPasswordHasher{}, &mocks.MockTokenService{}, time.Hour, db, nil)

		_, err := svc.Register(context.Background(), service.RegisterInput{Username: "reader", Email: "r@example.com", Password: "secret1"})
		require.Error(t, err)
		_, isFailure := apperr.As(err)
		assert.False(t, isFailure)
	})
}

func TestUserService_Login(t *testing.T) {
	t.Parallel()

	stored := &domain.User{ID: 9, Username: "reader", Email: "reader@example.com", HashedPassword: "hashed:secret1", Role: "user"}
	users := &mocks.MockUserStore{
		GetByEmailFn: func(_ context.Context, email string) (*domain.User, error) {
			if email == stored.Email {
				return stored, nil
			}
			return nil, store.ErrUserNotFound
		},
	}

	var signed auth.Claims
	var ttl time.Duration
	tokens := &mocks.MockTokenService{
		SignFn: func(_ context.Context, c auth.Claims, d time.Duration) (string, error) {
			signed, ttl = c, d
			return "signed-token", nil
		},
	}
	svc := service.NewUserService(users, &mocks.MockPasswordHasher{}, tokens, 90*time.Minute, nil, nil)

	res, err := svc.Login(context.Background(), "Reader@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "signed-token", res.Token)
	assert.Equal(t, stored, res.User)
	assert.Equal(t, auth.Claims{UserID: 9, Username: "reader", Email: "reader@example.com", Role: "user"}, signed)
	assert.Equal(t, 90*time.Minute, ttl)

	_, err = svc.Login(context.Background(), "reader@example.com", "wrong")
	assertFailure(t, err, http.StatusBadRequest, apperr.CodeInvalidCredentials)

	_, err = svc.Login(context.Background(), "nobody@example.com", "secret1")
	assertFailure(t, err, http.StatusBadRequest, apperr.CodeInvalidCredentials)
}
