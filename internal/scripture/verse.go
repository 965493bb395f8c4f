package scripture

import "fmt"

// Verse is one verse of a loaded chapter.
type Verse struct {
	Chapter int
	Number  int
	Text    string
}

// ChapterKey identifies one chapter of one version. It is comparable and is
// used directly as a cache key.
type ChapterKey struct {
	VersionID int64
	Book      int
	Chapter   int
}

// String renders the key as "version:book:chapter".
func (k ChapterKey) String() string {
	return fmt.Sprintf("%d:%d:%d", k.VersionID, k.Book, k.Chapter)
}

// FilterFrom returns the verses numbered from or later, in their original
// order. The result is empty when from exceeds the last verse number.
func FilterFrom(verses []Verse, from int) []Verse {
	filtered := make([]Verse, 0, len(verses))
	for _, v := range verses {
		if v.Number >= from {
			filtered = append(filtered, v)
		}
	}
	return filtered
}

// BookSummary describes a book available in a version.
type BookSummary struct {
	Number     int
	Name       string
	MaxChapter int
}

// VerseRecord is a fully addressed verse as stored in or imported into a
// scripture datastore.
type VerseRecord struct {
	Book     int
	BookName string
	Chapter  int
	Verse    int
	Text     string
}
