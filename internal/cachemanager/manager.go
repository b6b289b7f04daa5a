// Package cachemanager provides a typed TTL cache used for read-mostly
// backend data such as artifacts.
package cachemanager

import (
	"context"
	"time"
)

// CacheManager is the interface consumers depend on, enabling mock
// substitution in tests.
type CacheManager[K comparable, V any] interface {
	Get(ctx context.Context, key K) (V, bool)
	GetWithRefresh(ctx context.Context, key K, ttl time.Duration) (V, bool)
	Set(ctx context.Context, key K, value V, ttl time.Duration)
	Delete(ctx context.Context, keys ...K) error
	Flush(ctx context.Context) error
}
