package cache

import (
	"context"
	"time"
)

// Client is the cache handle the services depend on. It mirrors Cache
// so callers never reach into the backend directly; the counters store
// layers encryption on top of it.
type Client interface {
	// GetCache returns the underlying Cache implementation.
	GetCache() Cache

	// Get retrieves a value by key. Returns nil, nil when missing.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value with a TTL. A zero ttl applies the default.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a key. Returns true when the key existed.
	Delete(ctx context.Context, key string) (bool, error)

	// DeletePattern removes all keys matching the pattern.
	DeletePattern(ctx context.Context, pattern string) (int64, error)

	// Ping checks that the cache connection is alive.
	Ping(ctx context.Context) error

	// Close closes the cache client connection.
	Close() error
}
