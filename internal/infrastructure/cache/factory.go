package cache

import (
	"fmt"

	"github.com/canteen/client/internal/domain/menu"
	"github.com/canteen/client/internal/infrastructure/config"
	"go.uber.org/zap"
)

// Factory creates the catalog cache named by configuration
type Factory struct {
	cfg                   config.CacheConfig
	logger                *zap.Logger
	allowInMemoryFallback bool
}

// FactoryOption configures a Factory
type FactoryOption func(*Factory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) FactoryOption {
	return func(f *Factory) {
		f.logger = logger
	}
}

// WithInMemoryFallback controls whether an unreachable Redis falls back to
// the in-memory cache. Default is true.
func WithInMemoryFallback(allow bool) FactoryOption {
	return func(f *Factory) {
		f.allowInMemoryFallback = allow
	}
}

// NewFactory creates a new factory
func NewFactory(cfg config.CacheConfig, opts ...FactoryOption) *Factory {
	f := &Factory{
		cfg:                   cfg,
		logger:                zap.NewNop(),
		allowInMemoryFallback: true,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Create returns a Redis cache when configured and reachable, otherwise an
// in-memory cache
func (f *Factory) Create() (menu.Cache, error) {
	if f.cfg.Type != "redis" {
		return NewInMemoryCatalogCache(f.cfg.TTL), nil
	}

	c, err := NewRedisCatalogCache(f.cfg.Redis, f.cfg.TTL)
	if err == nil {
		f.logger.Info("using Redis catalog cache", zap.String("addr", f.cfg.Redis.Addr()))
		return c, nil
	}
	if !f.allowInMemoryFallback {
		return nil, fmt.Errorf("redis catalog cache unavailable: %w", err)
	}
	f.logger.Warn("Redis unavailable, falling back to in-memory catalog cache", zap.Error(err))
	return NewInMemoryCatalogCache(f.cfg.TTL), nil
}
