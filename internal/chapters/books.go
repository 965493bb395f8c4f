package chapters

import (
	"context"
	"strconv"

	"github.com/easypresenter/easypresenter/internal/cachemanager"
	"github.com/easypresenter/easypresenter/internal/scripture"
)

// BookSource lists the books of a version with their chapter counts.
type BookSource interface {
	ListBooks(ctx context.Context, versionID int64) ([]scripture.BookSummary, error)
}

// VersionKey keys per-version data.
type VersionKey int64

func (k VersionKey) String() string {
	return strconv.FormatInt(int64(k), 10)
}

// BookCatalog caches book lists per version. Failed reads are not cached.
type BookCatalog struct {
	cache *cachemanager.ReadThroughCache[VersionKey, []scripture.BookSummary, int64]
}

func NewBookCatalog(source BookSource) *BookCatalog {
	store := cachemanager.NewInMemoryCacheManager[VersionKey, []scripture.BookSummary]("books", cachemanager.NoExpiration, cachemanager.NoCleanup)
	return &BookCatalog{
		cache: cachemanager.NewReadThroughCache[VersionKey, []scripture.BookSummary, int64](store, source.ListBooks),
	}
}

// Books returns the books available in a version, ordered by book number.
func (b *BookCatalog) Books(ctx context.Context, versionID int64) ([]scripture.BookSummary, error) {
	return b.cache.Get(ctx, VersionKey(versionID), versionID)
}

// MaxChapter returns the last chapter of book in a version.
func (b *BookCatalog) MaxChapter(ctx context.Context, versionID int64, book int) (int, bool) {
	books, err := b.Books(ctx, versionID)
	if err != nil {
		return 0, false
	}
	for _, summary := range books {
		if summary.Number == book {
			return summary.MaxChapter, true
		}
	}
	return 0, false
}

// Invalidate forgets the cached list of a version.
func (b *BookCatalog) Invalidate(ctx context.Context, versionID int64) error {
	return b.cache.Invalidate(ctx, VersionKey(versionID))
}
