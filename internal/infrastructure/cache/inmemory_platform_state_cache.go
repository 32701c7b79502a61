package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/zencrm/backend/internal/domain/publishing"
)

// InMemoryPlatformStateCache implements PlatformStateCache using in-memory storage.
// Suitable for single-instance deployments and as a fallback when Redis is unavailable.
type InMemoryPlatformStateCache struct {
	mu         sync.RWMutex
	platforms  []publishing.Platform
	expiresAt  time.Time
	defaultTTL time.Duration
	logger     *zap.Logger

	// Stats for monitoring
	hits   int64
	misses int64
}

// InMemoryPlatformStateCacheOption is a functional option for configuring the cache
type InMemoryPlatformStateCacheOption func(*InMemoryPlatformStateCache)

// WithInMemoryTTL sets the default TTL for cached platform states
func WithInMemoryTTL(ttl time.Duration) InMemoryPlatformStateCacheOption {
	return func(c *InMemoryPlatformStateCache) {
		if ttl > 0 {
			c.defaultTTL = ttl
		}
	}
}

// WithInMemoryLogger sets the logger for the cache
func WithInMemoryLogger(logger *zap.Logger) InMemoryPlatformStateCacheOption {
	return func(c *InMemoryPlatformStateCache) {
		c.logger = logger
	}
}

// NewInMemoryPlatformStateCache creates a new in-memory platform state cache
func NewInMemoryPlatformStateCache(opts ...InMemoryPlatformStateCacheOption) *InMemoryPlatformStateCache {
	cache := &InMemoryPlatformStateCache{
		defaultTTL: defaultPlatformStateTTL,
		logger:     zap.NewNop(),
	}

	for _, opt := range opts {
		opt(cache)
	}

	return cache
}

// Get retrieves the cached platform states
func (c *InMemoryPlatformStateCache) Get(ctx context.Context) ([]publishing.Platform, error) {
	c.mu.RLock()
	platforms, expiresAt := c.platforms, c.expiresAt
	c.mu.RUnlock()

	if platforms == nil || time.Now().After(expiresAt) {
		atomic.AddInt64(&c.misses, 1)
		c.logger.Debug("Cache miss for platform state")
		return nil, nil
	}

	atomic.AddInt64(&c.hits, 1)
	c.logger.Debug("Cache hit for platform state", zap.Int("platforms", len(platforms)))

	// Copy to keep callers from mutating the cached slice
	out := make([]publishing.Platform, len(platforms))
	copy(out, platforms)
	return out, nil
}

// Set stores the platform states with the given TTL
func (c *InMemoryPlatformStateCache) Set(ctx context.Context, platforms []publishing.Platform, ttl time.Duration) error {
	if platforms == nil {
		return nil
	}

	if ttl == 0 {
		ttl = c.defaultTTL
	}

	stored := make([]publishing.Platform, len(platforms))
	copy(stored, platforms)

	c.mu.Lock()
	c.platforms = stored
	c.expiresAt = time.Now().Add(ttl)
	c.mu.Unlock()

	c.logger.Debug("Cached platform state",
		zap.Int("platforms", len(platforms)),
		zap.Duration("ttl", ttl))
	return nil
}

// Invalidate removes the cached platform states
func (c *InMemoryPlatformStateCache) Invalidate(ctx context.Context) error {
	c.mu.Lock()
	c.platforms = nil
	c.expiresAt = time.Time{}
	c.mu.Unlock()

	c.logger.Debug("Invalidated platform state cache")
	return nil
}

// Close releases any resources held by the cache
func (c *InMemoryPlatformStateCache) Close() error {
	return c.Invalidate(context.Background())
}

// Stats returns hit and miss counters for monitoring
func (c *InMemoryPlatformStateCache) Stats() (hits, misses int64) {
	return atomic.LoadInt64(&c.hits), atomic.LoadInt64(&c.misses)
}

// Ensure InMemoryPlatformStateCache implements PlatformStateCache
var _ publishing.PlatformStateCache = (*InMemoryPlatformStateCache)(nil)
