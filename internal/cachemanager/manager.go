package cachemanager

import (
	"context"
	"fmt"
)

// Key is a comparable cache key with a stable string form. The string form
// is what string-keyed backends store under.
type Key interface {
	comparable
	fmt.Stringer
}

// CacheManager is a typed key-value cache. Implementations are safe for
// concurrent use; each Set is a single-key update.
type CacheManager[K Key, V any] interface {
	Get(ctx context.Context, key K) (V, bool)
	Set(ctx context.Context, key K, value V)
	Delete(ctx context.Context, keys ...K) error
	Flush(ctx context.Context) error
	Len() int
}

// New returns an unbounded in-memory manager when capacity is zero and a
// fixed-capacity LRU manager otherwise.
func New[K Key, V any](useCase string, capacity int) (CacheManager[K, V], error) {
	if capacity <= 0 {
		return NewInMemoryCacheManager[K, V](useCase, NoExpiration, NoCleanup), nil
	}
	return NewLRUCacheManager[K, V](useCase, capacity)
}
