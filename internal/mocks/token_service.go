package mocks

import (
	"context"
	"time"

	"github.com/phrazzld/shelf-api/internal/service/auth"
)

// MockTokenService implements auth.TokenService for testing.
type MockTokenService struct {
	SignFn   func(ctx context.Context, claims auth.Claims, ttl time.Duration) (string, error)
	VerifyFn func(ctx context.Context, token string) (*auth.Claims, error)

	// Defaults used when the function fields are nil.
	Token     string
	Claims    *auth.Claims
	SignErr   error
	VerifyErr error
}

var _ auth.TokenService = (*MockTokenService)(nil)

// Sign implements auth.TokenService.
func (m *MockTokenService) Sign(ctx context.Context, claims auth.Claims, ttl time.Duration) (string, error) {
	if m.SignFn != nil {
		return m.SignFn(ctx, claims, ttl)
	}
	return m.Token, m.SignErr
}

// Verify implements auth.TokenService.
func (m *MockTokenService) Verify(ctx context.Context, token string) (*auth.Claims, error) {
	if m.VerifyFn != nil {
		return m.VerifyFn(ctx, token)
	}
	if m.Claims == nil && m.VerifyErr == nil {
		return nil, auth.ErrInvalidToken
	}
	return m.Claims, m.VerifyErr
}
