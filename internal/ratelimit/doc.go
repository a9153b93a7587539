// Package ratelimit enforces a fixed-window request quota per principal.
//
// Counts live in a Counter shared by every API instance. RedisCounter is the
// production implementation; it increments and sets the window expiry in a
// single Lua script so concurrent requests never lose an increment or leave
// a key without a TTL.
package ratelimit
