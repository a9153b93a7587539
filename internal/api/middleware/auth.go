package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/phrazzld/shelf-api/internal/api/shared"
	"github.com/phrazzld/shelf-api/internal/apperr"
	"github.com/phrazzld/shelf-api/internal/domain"
	"github.com/phrazzld/shelf-api/internal/platform/logger"
	"github.com/phrazzld/shelf-api/internal/redact"
	"github.com/phrazzld/shelf-api/internal/service/auth"
)

const (
	MessageNoToken      = "Access Denied: No token provided"
	MessageInvalidToken = "Access Denied: Invalid or expired token"
)

// Authenticator verifies bearer tokens and attaches the caller's principal
// to the request context.
type Authenticator struct {
	tokens auth.TokenService
}

// NewAuthenticator creates an Authenticator with the given dependencies.
func NewAuthenticator(tokens auth.TokenService) *Authenticator {
	return &Authenticator{tokens: tokens}
}

// Stage authenticates r. A missing or non-bearer credential fails with 401
// NO_TOKEN; any verification failure fails with 403 INVALID_TOKEN.
func (a *Authenticator) Stage(_ http.ResponseWriter, r *http.Request) (*http.Request, error) {
	token, ok := bearerToken(r.Header.Get("Authorization"))
	if !ok {
		return nil, apperr.New(http.StatusUnauthorized, apperr.CodeNoToken, MessageNoToken)
	}

	ctx := r.Context()
	claims, err := a.tokens.Verify(ctx, token)
	if err != nil {
		logger.FromContext(ctx).Debug("token rejected",
			slog.String("error", redact.Error(err)))
		return nil, apperr.New(http.StatusForbidden, apperr.CodeInvalidToken, MessageInvalidToken)
	}

	p := &domain.Principal{
		ID:       claims.UserID,
		Username: claims.Username,
		Email:    claims.Email,
		Role:     claims.Role,
	}
	ctx = shared.WithPrincipal(ctx, p)
	ctx = logger.WithLogger(ctx, logger.FromContext(ctx).With(slog.Int64("user_id", p.ID)))

	return r.WithContext(ctx), nil
}

// bearerToken extracts the token from an "Authorization: Bearer <token>" header.
func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", false
	}
	return token, true
}
