package middleware

import (
	"context"
	"net/http"

	"github.com/phrazzld/shelf-api/internal/api/shared"
	"github.com/phrazzld/shelf-api/internal/domain"
	"github.com/phrazzld/shelf-api/internal/ratelimit"
)

// Admitter decides whether a principal may make another request.
type Admitter interface {
	Admit(ctx context.Context, p *domain.Principal, peer string) (ratelimit.Quota, error)
}

// RateLimiter applies the per-principal quota to authenticated requests.
type RateLimiter struct {
	limiter Admitter
}

// NewRateLimiter creates a RateLimiter stage over limiter.
func NewRateLimiter(limiter Admitter) *RateLimiter {
	return &RateLimiter{limiter: limiter}
}

// Stage counts r against its principal's quota and writes the rate limit
// headers. It must run after the Authenticator; without a principal the
// client address is used as the key.
func (m *RateLimiter) Stage(w http.ResponseWriter, r *http.Request) (*http.Request, error) {
	p, _ := shared.GetPrincipal(r.Context())

	quota, err := m.limiter.Admit(r.Context(), p, shared.ClientIP(r))
	if quota.Limit > 0 {
		quota.Headers(w.Header())
	}
	if err != nil {
		return nil, err
	}
	return r, nil
}
