package cache

import (
	"context"
	"errors"
	"time"
)

// ErrCacheMiss indicates the key was not found in cache
var ErrCacheMiss = errors.New("cache miss")

// Store caches raw response bodies with a per-entry TTL
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
	HealthCheck(ctx context.Context) error
}
