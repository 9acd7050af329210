package cache

// Type selects the cache backend, from the CACHE_TYPE setting.
type Type string

const (
	// TypeRedis is the Redis cache backend.
	TypeRedis Type = "redis"
)
