package cachemanager

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

type testKey string

func (k testKey) String() string { return string(k) }

type chapterKey struct {
	version, book, chapter int
}

func (k chapterKey) String() string {
	return fmt.Sprintf("%d:%d:%d", k.version, k.book, k.chapter)
}

type ExampleStruct struct {
	ID   int
	Name string
}

func TestNewInMemoryCacheManager(t *testing.T) {
	require.NotPanics(t, func() {
		NewInMemoryCacheManager[testKey, string]("test", NoExpiration, NoCleanup)
	})
}

func TestInMemoryCacheManager_GetExistingValue_StructKey(t *testing.T) {
	cache := NewInMemoryCacheManager[chapterKey, []ExampleStruct]("chapters", NoExpiration, NoCleanup)
	key := chapterKey{version: 1, book: 4, chapter: 3}
	example := []ExampleStruct{{ID: 1, Name: "apple"}}

	cache.Set(context.Background(), key, example)

	got, ok := cache.Get(context.Background(), key)
	require.True(t, ok)
	require.Equal(t, example, got)

	_, ok = cache.Get(context.Background(), chapterKey{version: 2, book: 4, chapter: 3})
	require.False(t, ok)
}

func TestInMemoryCacheManager_GetWithNoExistingValue(t *testing.T) {
	cache := NewInMemoryCacheManager[testKey, string]("food-cache", NoExpiration, NoCleanup)

	got, ok := cache.Get(context.Background(), "food")
	require.False(t, ok)
	require.Empty(t, got)
}

func TestInMemoryCacheManager_GetWithExistingInvalidValueType(t *testing.T) {
	cache := NewInMemoryCacheManager[testKey, string]("food-cache", NoExpiration, NoCleanup)

	cache.cache.SetDefault("food", 123)

	got, ok := cache.Get(context.Background(), "food")
	require.False(t, ok)
	require.Empty(t, got)
}

func TestInMemoryCacheManager_DeleteAndFlush(t *testing.T) {
	ctx := context.Background()
	cache := NewInMemoryCacheManager[testKey, string]("food-cache", NoExpiration, NoCleanup)

	require.NoError(t, cache.Delete(ctx))

	cache.Set(ctx, "food", "apple")
	cache.Set(ctx, "drink", "juice")
	require.Equal(t, 2, cache.Len())

	require.NoError(t, cache.Delete(ctx, "food"))
	_, ok := cache.Get(ctx, "food")
	require.False(t, ok)
	require.Equal(t, 1, cache.Len())

	require.NoError(t, cache.Flush(ctx))
	require.Equal(t, 0, cache.Len())
}

func TestInMemoryCacheManager_SetOverwrites(t *testing.T) {
	ctx := context.Background()
	cache := NewInMemoryCacheManager[testKey, string]("food-cache", NoExpiration, NoCleanup)

	cache.Set(ctx, "food", "apple")
	cache.Set(ctx, "food", "pear")

	got, ok := cache.Get(ctx, "food")
	require.True(t, ok)
	require.Equal(t, "pear", got)
	require.Equal(t, 1, cache.Len())
}

func TestNew_PicksBackendByCapacity(t *testing.T) {
	unbounded, err := New[testKey, string]("test", 0)
	require.NoError(t, err)
	require.IsType(t, &InMemoryCacheManager[testKey, string]{}, unbounded)

	bounded, err := New[testKey, string]("test", 2)
	require.NoError(t, err)
	require.IsType(t, &LRUCacheManager[testKey, string]{}, bounded)
}
