package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Hit is the state of a window right after an increment.
type Hit struct {
	// Count is the number of requests seen in the current window, including this one.
	Count int64

	// TTL is the time left until the window resets.
	TTL time.Duration
}

// Counter atomically increments a per-key count whose window starts at the
// first hit and lasts for window.
type Counter interface {
	Increment(ctx context.Context, key string, window time.Duration) (Hit, error)
}

// incrementScript bumps the count and returns it with the remaining TTL in
// milliseconds. The expiry is only set when the window opens, or when a key
// was somehow left without one.
var incrementScript = redis.NewScript(`
local count = redis.call("INCR", KEYS[1])
local ttl = redis.call("PTTL", KEYS[1])
if count == 1 or ttl < 0 then
	redis.call("PEXPIRE", KEYS[1], ARGV[1])
	ttl = tonumber(ARGV[1])
end
return {count, ttl}
`)

// RedisCounter is a Counter backed by Redis.
type RedisCounter struct {
	client redis.UniversalClient
}

var _ Counter = (*RedisCounter)(nil)

// NewRedisCounter connects to the Redis server at url (redis:// or rediss://)
// and verifies the connection with a PING.
func NewRedisCounter(ctx context.Context, url string) (*RedisCounter, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return &RedisCounter{client: client}, nil
}

// NewRedisCounterFromClient wraps an existing client. The caller keeps
// ownership of the client's lifecycle unless it calls Close.
func NewRedisCounterFromClient(client redis.UniversalClient) *RedisCounter {
	return &RedisCounter{client: client}
}

// Increment implements Counter.
func (c *RedisCounter) Increment(ctx context.Context, key string, window time.Duration) (Hit, error) {
	if window <= 0 {
		return Hit{}, errors.New("rate limit window must be positive")
	}

	vals, err := incrementScript.Run(ctx, c.client, []string{key}, window.Milliseconds()).Int64Slice()
	if err != nil {
		return Hit{}, fmt.Errorf("failed to increment %s: %w", key, err)
	}
	if len(vals) != 2 {
		return Hit{}, fmt.Errorf("unexpected increment reply for %s: %v", key, vals)
	}

	return Hit{
		Count: vals[0],
		TTL:   time.Duration(vals[1]) * time.Millisecond,
	}, nil
}

// Close releases the underlying connection pool.
func (c *RedisCounter) Close() error {
	return c.client.Close()
}
