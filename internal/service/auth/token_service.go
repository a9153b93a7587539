package auth

import (
	"context"
	"time"
)

// TokenService issues and verifies signed access tokens.
type TokenService interface {
	// Sign creates a signed token carrying the given identity that expires after ttl.
	Sign(ctx context.Context, claims Claims, ttl time.Duration) (string, error)

	// Verify checks the token's signature, algorithm and validity window and
	// returns the identity it carries. Every failure wraps ErrInvalidToken,
	// ErrExpiredToken or ErrTokenNotYetValid.
	Verify(ctx context.Context, token string) (*Claims, error)
}

// Claims is the identity carried by an access token.
type Claims struct {
	UserID   int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`

	// Registered claims, filled by Sign and Verify.
	IssuedAt  time.Time `json:"-"`
	ExpiresAt time.Time `json:"-"`
	ID        string    `json:"-"`
}
