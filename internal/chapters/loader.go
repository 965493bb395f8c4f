package chapters

import (
	"context"
	"fmt"

	"github.com/easypresenter/easypresenter/internal/scripture"
)

// VerseSource reads one chapter of one version, ordered by verse number.
type VerseSource interface {
	FetchVerses(ctx context.Context, versionID int64, book, chapter int) ([]scripture.Verse, error)
}

// Loader fetches chapters from the scripture datastore. Fetching is
// idempotent, so concurrent misses may recompute the same chapter.
type Loader struct {
	source VerseSource
}

// NewLoader returns a Loader reading chapters from source.
func NewLoader(source VerseSource) *Loader {
	return &Loader{source: source}
}

// Fetch satisfies FetchFunc.
func (l *Loader) Fetch(ctx context.Context, key scripture.ChapterKey) ([]scripture.Verse, error) {
	verses, err := l.source.FetchVerses(ctx, key.VersionID, key.Book, key.Chapter)
	if err != nil {
		return nil, fmt.Errorf("fetching chapter %s: %w", key, err)
	}
	return verses, nil
}
