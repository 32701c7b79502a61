package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/zencrm/backend/internal/domain/publishing"
)

// platformStateKey is the Redis key holding the merged platform state list
const platformStateKey = "publishing:platform_state"

// defaultPlatformStateTTL bounds staleness after credential changes on other instances
const defaultPlatformStateTTL = 5 * time.Minute

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// RedisPlatformStateCache implements PlatformStateCache using Redis
type RedisPlatformStateCache struct {
	client     *redis.Client
	ownsClient bool // true if we created the client and should close it
	defaultTTL time.Duration
	logger     *zap.Logger
}

// RedisPlatformStateCacheOption is a functional option for configuring the cache
type RedisPlatformStateCacheOption func(*RedisPlatformStateCache)

// WithCacheTTL sets the default TTL for cached platform states
func WithCacheTTL(ttl time.Duration) RedisPlatformStateCacheOption {
	return func(c *RedisPlatformStateCache) {
		if ttl > 0 {
			c.defaultTTL = ttl
		}
	}
}

// WithCacheLogger sets the logger for the cache
func WithCacheLogger(logger *zap.Logger) RedisPlatformStateCacheOption {
	return func(c *RedisPlatformStateCache) {
		c.logger = logger
	}
}

// NewRedisPlatformStateCache creates a new Redis-based platform state cache
func NewRedisPlatformStateCache(cfg RedisConfig, opts ...RedisPlatformStateCacheOption) (*RedisPlatformStateCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	cache := &RedisPlatformStateCache{
		client:     client,
		ownsClient: true, // We created this client, so we own it
		defaultTTL: defaultPlatformStateTTL,
		logger:     zap.NewNop(),
	}

	for _, opt := range opts {
		opt(cache)
	}

	return cache, nil
}

// NewRedisPlatformStateCacheWithClient creates a cache with an existing Redis client
// Note: The caller retains ownership of the client and is responsible for closing it
func NewRedisPlatformStateCacheWithClient(client *redis.Client, opts ...RedisPlatformStateCacheOption) *RedisPlatformStateCache {
	cache := &RedisPlatformStateCache{
		client:     client,
		ownsClient: false, // Client is shared, don't close it
		defaultTTL: defaultPlatformStateTTL,
		logger:     zap.NewNop(),
	}

	for _, opt := range opts {
		opt(cache)
	}

	return cache
}

// Get retrieves the cached platform states
func (c *RedisPlatformStateCache) Get(ctx context.Context) ([]publishing.Platform, error) {
	data, err := c.client.Get(ctx, platformStateKey).Bytes()
	if err == redis.Nil {
		// Cache miss
		c.logger.Debug("Cache miss for platform state")
		return nil, nil
	}
	if err != nil {
		c.logger.Error("Failed to get platform state from cache", zap.Error(err))
		return nil, fmt.Errorf("failed to get platform state from cache: %w", err)
	}

	var platforms []publishing.Platform
	if err := json.Unmarshal(data, &platforms); err != nil {
		c.logger.Error("Failed to unmarshal platform state", zap.Error(err))
		// Delete corrupted cache entry
		_ = c.client.Del(ctx, platformStateKey)
		return nil, fmt.Errorf("failed to unmarshal platform state: %w", err)
	}

	c.logger.Debug("Cache hit for platform state", zap.Int("platforms", len(platforms)))
	return platforms, nil
}

// Set stores the platform states with the given TTL
func (c *RedisPlatformStateCache) Set(ctx context.Context, platforms []publishing.Platform, ttl time.Duration) error {
	if platforms == nil {
		return nil
	}

	if ttl == 0 {
		ttl = c.defaultTTL
	}

	data, err := json.Marshal(platforms)
	if err != nil {
		c.logger.Error("Failed to marshal platform state", zap.Error(err))
		return fmt.Errorf("failed to marshal platform state: %w", err)
	}

	if err := c.client.Set(ctx, platformStateKey, data, ttl).Err(); err != nil {
		c.logger.Error("Failed to set platform state in cache", zap.Error(err))
		return fmt.Errorf("failed to set platform state in cache: %w", err)
	}

	c.logger.Debug("Cached platform state",
		zap.Int("platforms", len(platforms)),
		zap.Duration("ttl", ttl))
	return nil
}

// Invalidate removes the cached platform states
func (c *RedisPlatformStateCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, platformStateKey).Err(); err != nil {
		c.logger.Error("Failed to invalidate platform state cache", zap.Error(err))
		return fmt.Errorf("failed to invalidate platform state cache: %w", err)
	}

	c.logger.Debug("Invalidated platform state cache")
	return nil
}

// Close releases any resources held by the cache
func (c *RedisPlatformStateCache) Close() error {
	// Only close client if we own it
	if c.ownsClient {
		return c.client.Close()
	}
	return nil
}

// GetClient returns the underlying Redis client (for testing/monitoring)
func (c *RedisPlatformStateCache) GetClient() *redis.Client {
	return c.client
}

// Ensure RedisPlatformStateCache implements PlatformStateCache
var _ publishing.PlatformStateCache = (*RedisPlatformStateCache)(nil)
