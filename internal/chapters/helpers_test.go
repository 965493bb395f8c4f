package chapters

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/easypresenter/easypresenter/internal/cachemanager"
	"github.com/easypresenter/easypresenter/internal/scripture"
)

const waitTimeout = 2 * time.Second

func startLoop(t *testing.T) *LoopDispatcher {
	t.Helper()
	d := NewLoopDispatcher()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		_ = d.Run(ctx)
		close(done)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})
	return d
}

func newTestCache(t *testing.T, workers, queue int) (*Cache, *Pool) {
	t.Helper()
	pool := NewPool(workers, queue)
	t.Cleanup(pool.Close)
	store := cachemanager.NewInMemoryCacheManager[scripture.ChapterKey, []scripture.Verse]("chapters", cachemanager.NoExpiration, cachemanager.NoCleanup)
	return NewCache(store, pool, startLoop(t), nil), pool
}

func receive[T any](t *testing.T, ch chan T) T {
	t.Helper()
	select {
	case v := <-ch:
		return v
	case <-time.After(waitTimeout):
		t.Fatal("timed out waiting for delivery")
	}
	var zero T
	return zero
}

func numbered(chapter, n int) []scripture.Verse {
	verses := make([]scripture.Verse, n)
	for i := range verses {
		verses[i] = scripture.Verse{Chapter: chapter, Number: i + 1, Text: "texto"}
	}
	return verses
}

// countingSource is an in-memory VerseSource that counts reads.
type countingSource struct {
	mu       sync.Mutex
	chapters map[scripture.ChapterKey][]scripture.Verse
	calls    atomic.Int32
}

func (s *countingSource) FetchVerses(ctx context.Context, versionID int64, book, chapter int) ([]scripture.Verse, error) {
	s.calls.Add(1)
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.chapters[scripture.ChapterKey{VersionID: versionID, Book: book, Chapter: chapter}], nil
}

func (s *countingSource) ListBooks(ctx context.Context, versionID int64) ([]scripture.BookSummary, error) {
	s.calls.Add(1)
	s.mu.Lock()
	defer s.mu.Unlock()

	maxChapter := map[int]int{}
	for key := range s.chapters {
		if key.VersionID == versionID && key.Chapter > maxChapter[key.Book] {
			maxChapter[key.Book] = key.Chapter
		}
	}
	var books []scripture.BookSummary
	for _, b := range scripture.Books() {
		if m, ok := maxChapter[b.ID]; ok {
			books = append(books, scripture.BookSummary{Number: b.ID, Name: b.Name, MaxChapter: m})
		}
	}
	return books, nil
}
