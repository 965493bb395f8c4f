package cachemanager

import (
	"context"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/easypresenter/easypresenter/internal/log"
)

// LRUCacheManager is a fixed-capacity CacheManager evicting the least
// recently used entry. Entries are never mutated, only replaced or evicted.
type LRUCacheManager[K Key, V any] struct {
	useCase string
	cache   *lru.Cache[K, V]
}

// NewLRUCacheManager creates a manager holding at most capacity entries.
func NewLRUCacheManager[K Key, V any](useCase string, capacity int) (*LRUCacheManager[K, V], error) {
	c, err := lru.NewWithEvict(capacity, func(key K, _ V) {
		log.Debug(log.CatCache, "evicted", "cache", useCase, "key", key)
	})
	if err != nil {
		return nil, fmt.Errorf("creating %s lru cache: %w", useCase, err)
	}
	return &LRUCacheManager[K, V]{useCase: useCase, cache: c}, nil
}

func (c *LRUCacheManager[K, V]) Get(ctx context.Context, key K) (V, bool) {
	return c.cache.Get(key)
}

func (c *LRUCacheManager[K, V]) Set(ctx context.Context, key K, value V) {
	c.cache.Add(key, value)
}

func (c *LRUCacheManager[K, V]) Delete(ctx context.Context, keys ...K) error {
	for _, key := range keys {
		c.cache.Remove(key)
	}
	return nil
}

func (c *LRUCacheManager[K, V]) Flush(ctx context.Context) error {
	c.cache.Purge()
	return nil
}

func (c *LRUCacheManager[K, V]) Len() int {
	return c.cache.Len()
}
