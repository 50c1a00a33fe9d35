package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryCache is an in-process Store used when Redis is disabled or
// unreachable
type MemoryCache struct {
	items *gocache.Cache
}

// NewMemoryCache creates a cache that purges expired entries every
// cleanupInterval
func NewMemoryCache(cleanupInterval time.Duration) *MemoryCache {
	return &MemoryCache{
		items: gocache.New(gocache.NoExpiration, cleanupInterval),
	}
}

// Get retrieves a copy of a cached value
func (c *MemoryCache) Get(_ context.Context, key string) ([]byte, error) {
	v, ok := c.items.Get(key)
	if !ok {
		return nil, ErrCacheMiss
	}
	return append([]byte(nil), v.([]byte)...), nil
}

// SetWithTTL stores a copy of value. A non-positive ttl never expires.
func (c *MemoryCache) SetWithTTL(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = gocache.NoExpiration
	}
	c.items.Set(key, append([]byte(nil), value...), ttl)
	return nil
}

// HealthCheck always succeeds
func (c *MemoryCache) HealthCheck(context.Context) error {
	return nil
}

// Len returns the number of entries, including expired ones not yet purged
func (c *MemoryCache) Len() int {
	return c.items.ItemCount()
}
