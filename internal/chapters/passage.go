package chapters

import (
	"context"
	"errors"
	"fmt"

	"github.com/easypresenter/easypresenter/internal/scripture"
)

// ErrNoVersion is returned when a passage is requested with no active
// version.
var ErrNoVersion = errors.New("no active scripture version")

// Passage is a delivered chapter filtered from the requested verse.
type Passage struct {
	Reference  scripture.Reference
	Key        scripture.ChapterKey
	Generation uint64
	// Verses holds the verses numbered from Reference.VerseFrom on.
	Verses []scripture.Verse
}

// Focus returns the first verse of the passage, the one to project.
func (p Passage) Focus() (scripture.Verse, bool) {
	if len(p.Verses) == 0 {
		return scripture.Verse{}, false
	}
	return p.Verses[0], true
}

// ProjectionReference renders "<Book> <chapter>:<verse>".
func ProjectionReference(ref scripture.Reference, verse int) string {
	return fmt.Sprintf("%s:%d", ref.Title(), verse)
}

// RequestPassage loads ref under the selection's active version and delivers
// the filtered passage tagged with gen.
func RequestPassage(ctx context.Context, cache *Cache, sel *scripture.Selection, ref scripture.Reference, gen uint64, fetch FetchFunc, deliver func(Passage)) error {
	key, ok := sel.KeyFor(ref)
	if !ok {
		return ErrNoVersion
	}

	return cache.GetOrLoad(ctx, key, fetch, func(verses []scripture.Verse) {
		deliver(Passage{
			Reference:  ref,
			Key:        key,
			Generation: gen,
			Verses:     scripture.FilterFrom(verses, ref.VerseFrom),
		})
	})
}
