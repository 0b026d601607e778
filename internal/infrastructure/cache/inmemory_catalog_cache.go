package cache

import (
	"context"
	"sync"
	"time"

	"github.com/canteen/client/internal/domain/menu"
)

// InMemoryCatalogCache holds one catalog for a TTL in process memory
type InMemoryCatalogCache struct {
	mu        sync.RWMutex
	catalog   *menu.Catalog
	expiresAt time.Time
	ttl       time.Duration
	now       func() time.Time
}

// NewInMemoryCatalogCache creates an in-memory cache
func NewInMemoryCatalogCache(ttl time.Duration) *InMemoryCatalogCache {
	return &InMemoryCatalogCache{ttl: ttl, now: time.Now}
}

// Get returns the cached catalog unless it has expired
func (c *InMemoryCatalogCache) Get(_ context.Context) (*menu.Catalog, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.catalog == nil || !c.now().Before(c.expiresAt) {
		return nil, nil
	}
	return c.catalog, nil
}

// Set stores catalog
func (c *InMemoryCatalogCache) Set(_ context.Context, catalog *menu.Catalog) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.catalog = catalog
	c.expiresAt = c.now().Add(c.ttl)
	return nil
}

// Invalidate drops the cached catalog
func (c *InMemoryCatalogCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.catalog = nil
}
