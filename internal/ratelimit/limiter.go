package ratelimit

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/phrazzld/shelf-api/internal/apperr"
	"github.com/phrazzld/shelf-api/internal/domain"
	"github.com/phrazzld/shelf-api/internal/platform/logger"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const (
	// KeyPrefix namespaces quota keys in the counter store.
	KeyPrefix = "rate_limit:"

	// MessageTooManyRequests is returned to callers over their quota.
	MessageTooManyRequests = "Too many requests from this user, please try again after some time."
)

const tracerName = "github.com/phrazzld/shelf-api/internal/ratelimit"

// Quota describes a caller's standing in the current window.
type Quota struct {
	Limit     int64
	Remaining int64
	Reset     time.Duration

	// Exceeded is set when the request that produced this quota was rejected.
	Exceeded bool
}

// Headers writes the X-RateLimit-* headers, plus Retry-After when the
// request was rejected.
func (q Quota) Headers(h http.Header) {
	reset := strconv.FormatInt(int64((q.Reset+time.Second-1)/time.Second), 10)
	h.Set("X-RateLimit-Limit", strconv.FormatInt(q.Limit, 10))
	h.Set("X-RateLimit-Remaining", strconv.FormatInt(q.Remaining, 10))
	h.Set("X-RateLimit-Reset", reset)
	if q.Exceeded {
		h.Set("Retry-After", reset)
	}
}

// Limiter admits at most limit requests per key in each window.
type Limiter struct {
	counter Counter
	window  time.Duration
	max     int64
	logger  *slog.Logger
}

// NewLimiter creates a Limiter over counter.
// If logger is nil, the default logger is used.
func NewLimiter(counter Counter, window time.Duration, limit int, logger *slog.Logger) (*Limiter, error) {
	if counter == nil {
		return nil, fmt.Errorf("rate limit counter cannot be nil")
	}
	if window <= 0 {
		return nil, fmt.Errorf("rate limit window must be positive, got %s", window)
	}
	if limit <= 0 {
		return nil, fmt.Errorf("rate limit max must be positive, got %d", limit)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Limiter{
		counter: counter,
		window:  window,
		max:     int64(limit),
		logger:  logger.With(slog.String("component", "rate_limiter")),
	}, nil
}

// Key returns the counter key for a principal, falling back to the peer
// address when the principal is missing.
func Key(p *domain.Principal, peer string) string {
	if p == nil || p.ID <= 0 {
		return KeyPrefix + "ip:" + peer
	}
	return KeyPrefix + strconv.FormatInt(p.ID, 10)
}

// Admit counts one request for the principal. It returns a 429 Failure
// along with the exhausted quota once the window's budget is spent, and an
// Unhandled Failure when the counter store cannot be reached.
func (l *Limiter) Admit(ctx context.Context, p *domain.Principal, peer string) (Quota, error) {
	log := logger.FromContextOrDefault(ctx, l.logger)

	key := Key(p, peer)
	if p == nil || p.ID <= 0 {
		// Requests behind one address now share a quota.
		log.Warn("rate limiting by peer address, no principal on request",
			slog.String("peer", peer))
	}

	ctx, span := otel.Tracer(tracerName).Start(ctx, "ratelimit.Admit")
	defer span.End()
	span.SetAttributes(
		attribute.String("ratelimit.key", key),
		attribute.Int64("ratelimit.max", l.max),
	)

	hit, err := l.counter.Increment(ctx, key, l.window)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "counter increment failed")
		return Quota{}, apperr.Unhandled(ctx, fmt.Errorf("rate limit counter: %w", err))
	}

	quota := Quota{
		Limit:     l.max,
		Remaining: max(l.max-hit.Count, 0),
		Reset:     hit.TTL,
	}
	span.SetAttributes(attribute.Int64("ratelimit.count", hit.Count))

	if hit.Count > l.max {
		quota.Exceeded = true
		span.SetStatus(codes.Error, "quota exceeded")
		log.Debug("rate limit exceeded",
			slog.String("key", key),
			slog.Int64("count", hit.Count),
			slog.Duration("reset", hit.TTL))
		return quota, apperr.New(http.StatusTooManyRequests, apperr.CodeTooManyRequests, MessageTooManyRequests)
	}

	return quota, nil
}
