package cache

import (
	"context"
	"sync"

	"resilient-route-service/internal/ports"
)

// MemoryRouteCache is an in-process cache for single-instance deployments
// and tests. Same overwrite semantics as the Redis implementation.
type MemoryRouteCache struct {
	mu      sync.RWMutex
	entries map[string]ports.CacheEntry
}

func NewMemoryRouteCache() *MemoryRouteCache {
	return &MemoryRouteCache{entries: make(map[string]ports.CacheEntry)}
}

func (c *MemoryRouteCache) Put(_ context.Context, key string, entry ports.CacheEntry) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry
	return nil
}

func (c *MemoryRouteCache) Get(_ context.Context, key string) (ports.CacheEntry, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.entries[key]
	return entry, ok, nil
}

func (c *MemoryRouteCache) Clear(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]ports.CacheEntry)
	return nil
}

func (c *MemoryRouteCache) Close() error {
	return nil
}
