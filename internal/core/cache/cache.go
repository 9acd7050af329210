// Package cache defines the cache interfaces and type constants. The
// cache holds encrypted per-session conversation counters and is safe
// to lose; counters regenerate from zero on the next turn.
package cache

import (
	"context"
	"time"
)

// Cache defines the low-level cache operations.
type Cache interface {
	// Get retrieves a value by key. Returns nil, nil when the key does
	// not exist.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value with a TTL. A zero ttl applies the default.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a key. Returns true when the key existed.
	Delete(ctx context.Context, key string) (bool, error)

	// DeletePattern removes all keys matching the pattern and returns
	// the number deleted. Used to drop an agent's counters in bulk.
	DeletePattern(ctx context.Context, pattern string) (int64, error)

	// Ping checks that the cache connection is alive.
	Ping(ctx context.Context) error

	// Close closes the cache connection.
	Close() error
}
