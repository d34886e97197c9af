package cache

import (
	"context"
	"time"
)

// Cache is the contract repositories use for read-through caching.
// Implementations: Redis for deployments, in-process memory as fallback.
type Cache interface {
	// Get decodes the cached value into dest.
	// found=false means a miss and dest is untouched.
	Get(ctx context.Context, key string, dest interface{}) (bool, error)

	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error

	// DeletePattern removes every key matching a glob such as "articles:list:*".
	DeletePattern(ctx context.Context, pattern string) error

	Ping(ctx context.Context) error
}
