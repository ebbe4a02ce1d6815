package cache

import (
	"context"
	"time"
)

// Cache is the contract for the cache layer.
// Values are stored as JSON so any serialisable value can be cached.
type Cache interface {
	// Get loads key into dest.
	// found is false on a miss, in which case dest is left untouched.
	Get(ctx context.Context, key string, dest interface{}) (bool, error)

	// Set stores value under key with the given TTL
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	Delete(ctx context.Context, keys ...string) error

	// DeletePattern removes every key matching a glob pattern (e.g. "ingredients:*")
	DeletePattern(ctx context.Context, pattern string) error

	Ping(ctx context.Context) error
}
