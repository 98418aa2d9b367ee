package cache

import (
	"context"
	"errors"
	"time"
)

// ErrCacheMiss marks an absent or expired entry. It is internal to the cache
// layer; callers treat it as a plain miss.
var ErrCacheMiss = errors.New("cache miss")

// Store is a TTL-bearing key-value store. Implementations must treat expired
// entries identically to absent ones.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
