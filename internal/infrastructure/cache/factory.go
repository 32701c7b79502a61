package cache

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/zencrm/backend/internal/domain/publishing"
	"github.com/zencrm/backend/internal/infrastructure/config"
)

// PlatformStateCacheFactory creates platform state caches based on configuration
type PlatformStateCacheFactory struct {
	redisConfig           config.RedisConfig
	ttl                   time.Duration
	logger                *zap.Logger
	allowInMemoryFallback bool
}

// PlatformStateCacheFactoryOption is a functional option for configuring the factory
type PlatformStateCacheFactoryOption func(*PlatformStateCacheFactory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) PlatformStateCacheFactoryOption {
	return func(f *PlatformStateCacheFactory) {
		f.logger = logger
	}
}

// WithTTL sets the default TTL for cached platform states
func WithTTL(ttl time.Duration) PlatformStateCacheFactoryOption {
	return func(f *PlatformStateCacheFactory) {
		f.ttl = ttl
	}
}

// WithInMemoryFallback controls whether to fall back to an in-memory cache when Redis is unavailable
// Default is true (allow fallback)
func WithInMemoryFallback(allow bool) PlatformStateCacheFactoryOption {
	return func(f *PlatformStateCacheFactory) {
		f.allowInMemoryFallback = allow
	}
}

// NewPlatformStateCacheFactory creates a new factory
func NewPlatformStateCacheFactory(cfg config.RedisConfig, opts ...PlatformStateCacheFactoryOption) *PlatformStateCacheFactory {
	f := &PlatformStateCacheFactory{
		redisConfig:           cfg,
		ttl:                   defaultPlatformStateTTL,
		logger:                zap.NewNop(),
		allowInMemoryFallback: true, // Default to allowing fallback
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// CreateRedisCache creates a Redis-based platform state cache
func (f *PlatformStateCacheFactory) CreateRedisCache() (publishing.PlatformStateCache, error) {
	redisCfg := RedisConfig{
		Host:     f.redisConfig.Host,
		Port:     f.redisConfig.Port,
		Password: f.redisConfig.Password,
		DB:       f.redisConfig.DB,
	}

	cache, err := NewRedisPlatformStateCache(redisCfg,
		WithCacheTTL(f.ttl),
		WithCacheLogger(f.logger),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create Redis platform state cache: %w", err)
	}

	return cache, nil
}

// CreateInMemoryCache creates an in-memory platform state cache
// This is suitable for single-instance deployments and testing
// WARNING: In-memory caches do not share state across process instances,
// which can delay credential changes becoming visible in distributed deployments
func (f *PlatformStateCacheFactory) CreateInMemoryCache() publishing.PlatformStateCache {
	return NewInMemoryPlatformStateCache(
		WithInMemoryTTL(f.ttl),
		WithInMemoryLogger(f.logger),
	)
}

// CreateCache creates a platform state cache based on whether Redis is available.
// When Redis is disabled in the configuration the in-memory cache is used directly;
// otherwise it tries Redis first and falls back to in-memory if allowed.
func (f *PlatformStateCacheFactory) CreateCache() (publishing.PlatformStateCache, error) {
	if !f.redisConfig.Enabled {
		f.logger.Info("Redis disabled, using in-memory platform state cache")
		return f.CreateInMemoryCache(), nil
	}

	cache, err := f.CreateRedisCache()
	if err == nil {
		f.logger.Info("using Redis platform state cache")
		return cache, nil
	}

	if !f.allowInMemoryFallback {
		return nil, fmt.Errorf("Redis required for platform state cache but unavailable: %w", err)
	}

	f.logger.Warn("Redis unavailable, falling back to in-memory platform state cache. "+
		"Credential changes may take longer to propagate in distributed deployments.",
		zap.Error(err),
	)
	return f.CreateInMemoryCache(), nil
}
