package chapters

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/easypresenter/easypresenter/internal/scripture"
)

var johnThree = scripture.ChapterKey{VersionID: 1, Book: 43, Chapter: 3}

func TestCache_SecondRequestIsAHit(t *testing.T) {
	cache, _ := newTestCache(t, 2, 8)

	var fetches atomic.Int32
	fetch := func(ctx context.Context, key scripture.ChapterKey) ([]scripture.Verse, error) {
		fetches.Add(1)
		return numbered(key.Chapter, 36), nil
	}

	got := make(chan []scripture.Verse, 2)
	deliver := func(v []scripture.Verse) { got <- v }

	require.NoError(t, cache.GetOrLoad(context.Background(), johnThree, fetch, deliver))
	first := receive(t, got)
	require.Len(t, first, 36)

	require.NoError(t, cache.GetOrLoad(context.Background(), johnThree, fetch, deliver))
	second := receive(t, got)

	require.Equal(t, first, second)
	require.Equal(t, int32(1), fetches.Load())

	stats := cache.Stats()
	require.Equal(t, uint64(1), stats.Hits)
	require.Equal(t, uint64(1), stats.Misses)
	require.Equal(t, 1, stats.Entries)
}

func TestCache_HitDeliversACopy(t *testing.T) {
	cache, _ := newTestCache(t, 1, 4)
	fetch := func(ctx context.Context, key scripture.ChapterKey) ([]scripture.Verse, error) {
		return numbered(3, 3), nil
	}

	got := make(chan []scripture.Verse, 2)
	require.NoError(t, cache.GetOrLoad(context.Background(), johnThree, fetch, func(v []scripture.Verse) { got <- v }))
	first := receive(t, got)
	first[0].Text = "changed"

	require.NoError(t, cache.GetOrLoad(context.Background(), johnThree, fetch, func(v []scripture.Verse) { got <- v }))
	require.Equal(t, "texto", receive(t, got)[0].Text)
}

func TestCache_ConcurrentMissesStoreEqualResults(t *testing.T) {
	cache, _ := newTestCache(t, 4, 8)

	var fetches atomic.Int32
	release := make(chan struct{})
	fetch := func(ctx context.Context, key scripture.ChapterKey) ([]scripture.Verse, error) {
		fetches.Add(1)
		<-release
		return numbered(key.Chapter, 21), nil
	}

	got := make(chan []scripture.Verse, 2)
	deliver := func(v []scripture.Verse) { got <- v }
	require.NoError(t, cache.GetOrLoad(context.Background(), johnThree, fetch, deliver))
	require.NoError(t, cache.GetOrLoad(context.Background(), johnThree, fetch, deliver))
	close(release)

	a := receive(t, got)
	b := receive(t, got)
	require.Equal(t, a, b)
	require.Equal(t, int32(2), fetches.Load(), "no single-flight deduplication")
	require.Equal(t, 1, cache.Stats().Entries)
}

func TestCache_FetchErrorDeliversEmptyAndIsNotCached(t *testing.T) {
	cache, _ := newTestCache(t, 1, 4)

	var fetches atomic.Int32
	fetch := func(ctx context.Context, key scripture.ChapterKey) ([]scripture.Verse, error) {
		if fetches.Add(1) == 1 {
			return nil, errors.New("database is locked")
		}
		return numbered(key.Chapter, 5), nil
	}

	got := make(chan []scripture.Verse, 2)
	deliver := func(v []scripture.Verse) { got <- v }

	require.NoError(t, cache.GetOrLoad(context.Background(), johnThree, fetch, deliver))
	empty := receive(t, got)
	require.NotNil(t, empty)
	require.Empty(t, empty)
	require.Equal(t, uint64(1), cache.Stats().Failures)
	require.Equal(t, 0, cache.Stats().Entries)

	require.NoError(t, cache.GetOrLoad(context.Background(), johnThree, fetch, deliver))
	require.Len(t, receive(t, got), 5)
	require.Equal(t, int32(2), fetches.Load())
}

func TestCache_FetchPanicDeliversEmpty(t *testing.T) {
	cache, _ := newTestCache(t, 1, 4)
	fetch := func(ctx context.Context, key scripture.ChapterKey) ([]scripture.Verse, error) {
		panic("driver exploded")
	}

	got := make(chan []scripture.Verse, 1)
	require.NoError(t, cache.GetOrLoad(context.Background(), johnThree, fetch, func(v []scripture.Verse) { got <- v }))
	require.Empty(t, receive(t, got))
	require.Equal(t, 0, cache.Stats().Entries)
}

func TestCache_QueueFullSkipsCallback(t *testing.T) {
	cache, pool := newTestCache(t, 1, 1)

	started := make(chan struct{}, 3)
	release := make(chan struct{})
	fetch := func(ctx context.Context, key scripture.ChapterKey) ([]scripture.Verse, error) {
		started <- struct{}{}
		<-release
		return numbered(key.Chapter, 2), nil
	}

	var mu sync.Mutex
	delivered := map[int]int{}
	got := make(chan struct{}, 3)
	deliverFor := func(chapter int) Callback {
		return func(v []scripture.Verse) {
			mu.Lock()
			delivered[chapter]++
			mu.Unlock()
			got <- struct{}{}
		}
	}

	key := func(chapter int) scripture.ChapterKey {
		return scripture.ChapterKey{VersionID: 1, Book: 1, Chapter: chapter}
	}

	require.NoError(t, cache.GetOrLoad(context.Background(), key(1), fetch, deliverFor(1)))
	receive(t, started)
	require.NoError(t, cache.GetOrLoad(context.Background(), key(2), fetch, deliverFor(2)))
	require.Equal(t, 1, pool.Queued())

	err := cache.GetOrLoad(context.Background(), key(3), fetch, deliverFor(3))
	require.ErrorIs(t, err, ErrQueueFull)

	close(release)
	receive(t, got)
	receive(t, got)

	mu.Lock()
	defer mu.Unlock()
	require.Equal(t, map[int]int{1: 1, 2: 1}, delivered)
}

func TestCache_ClosedPool(t *testing.T) {
	cache, pool := newTestCache(t, 1, 1)
	pool.Close()

	err := cache.GetOrLoad(context.Background(), johnThree, func(ctx context.Context, key scripture.ChapterKey) ([]scripture.Verse, error) {
		return nil, nil
	}, func([]scripture.Verse) { t.Error("callback must not run") })
	require.ErrorIs(t, err, ErrPoolClosed)
}

func TestCache_Flush(t *testing.T) {
	cache, _ := newTestCache(t, 1, 4)
	fetch := func(ctx context.Context, key scripture.ChapterKey) ([]scripture.Verse, error) {
		return numbered(1, 1), nil
	}
	got := make(chan []scripture.Verse, 1)
	require.NoError(t, cache.GetOrLoad(context.Background(), johnThree, fetch, func(v []scripture.Verse) { got <- v }))
	receive(t, got)

	require.NoError(t, cache.Flush(context.Background()))
	require.Equal(t, 0, cache.Stats().Entries)
}

func TestLoader_FetchWrapsErrors(t *testing.T) {
	source := &countingSource{chapters: map[scripture.ChapterKey][]scripture.Verse{johnThree: numbered(3, 36)}}
	loader := NewLoader(source)

	verses, err := loader.Fetch(context.Background(), johnThree)
	require.NoError(t, err)
	require.Len(t, verses, 36)

	_, err = NewLoader(failingSource{}).Fetch(context.Background(), johnThree)
	require.ErrorContains(t, err, "fetching chapter 1:43:3")
	require.ErrorIs(t, err, errOffline)
}

var errOffline = errors.New("offline")

type failingSource struct{}

func (failingSource) FetchVerses(ctx context.Context, versionID int64, book, chapter int) ([]scripture.Verse, error) {
	return nil, errOffline
}
