package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/canteen/client/internal/domain/menu"
	"github.com/canteen/client/internal/infrastructure/config"
	"github.com/redis/go-redis/v9"
)

const defaultCatalogKey = "canteen:menu:catalog"

// RedisCatalogCache shares the catalog between kiosks through Redis
type RedisCatalogCache struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

// NewRedisCatalogCache connects to Redis and verifies the connection
func NewRedisCatalogCache(cfg config.RedisConfig, ttl time.Duration) (*RedisCatalogCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return NewRedisCatalogCacheWithClient(client, "", ttl), nil
}

// NewRedisCatalogCacheWithClient wraps an existing client
func NewRedisCatalogCacheWithClient(client *redis.Client, key string, ttl time.Duration) *RedisCatalogCache {
	if key == "" {
		key = defaultCatalogKey
	}
	return &RedisCatalogCache{client: client, key: key, ttl: ttl}
}

// Get returns the cached catalog, or nil on a miss
func (c *RedisCatalogCache) Get(ctx context.Context) (*menu.Catalog, error) {
	data, err := c.client.Get(ctx, c.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read cached catalog: %w", err)
	}
	return decodeCatalog(data)
}

// Set stores the catalog with the cache TTL
func (c *RedisCatalogCache) Set(ctx context.Context, catalog *menu.Catalog) error {
	data, err := encodeCatalog(catalog)
	if err != nil {
		return err
	}
	if err := c.client.Set(ctx, c.key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache catalog: %w", err)
	}
	return nil
}

// Close closes the Redis client
func (c *RedisCatalogCache) Close() error {
	return c.client.Close()
}
