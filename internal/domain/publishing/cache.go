package publishing

import (
	"context"
	"time"
)

// PlatformStateCache caches the merged platform state list served to clients.
// A nil slice with a nil error signals a cache miss.
type PlatformStateCache interface {
	// Get retrieves the cached platform states
	Get(ctx context.Context) ([]Platform, error)

	// Set stores the platform states with the given TTL
	Set(ctx context.Context, platforms []Platform, ttl time.Duration) error

	// Invalidate removes the cached platform states
	Invalidate(ctx context.Context) error

	// Close releases any resources held by the cache
	Close() error
}
