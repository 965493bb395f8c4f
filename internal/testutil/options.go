package testutil

import (
	"fmt"

	"github.com/easypresenter/easypresenter/internal/scripture"
)

// versionData holds a version and its verses to be inserted.
type versionData struct {
	name   string
	verses []scripture.VerseRecord
}

// VersionOption adds content to a version.
type VersionOption func(*versionData)

// Chapter adds verses 1..count of book chapter. Verse text is
// "<book> <chapter>:<verse>" so tests can assert on it.
func Chapter(book, chapter, count int) VersionOption {
	return func(v *versionData) {
		b, _ := scripture.BookByID(book)
		for n := 1; n <= count; n++ {
			v.verses = append(v.verses, scripture.VerseRecord{
				Book:     book,
				BookName: b.Name,
				Chapter:  chapter,
				Verse:    n,
				Text:     VerseText(b.Name, chapter, n),
			})
		}
	}
}

// Verse adds a single verse with explicit text.
func Verse(book, chapter, verse int, text string) VersionOption {
	return func(v *versionData) {
		b, _ := scripture.BookByID(book)
		v.verses = append(v.verses, scripture.VerseRecord{
			Book:     book,
			BookName: b.Name,
			Chapter:  chapter,
			Verse:    verse,
			Text:     text,
		})
	}
}

// VerseText is the text Chapter generates for a verse.
func VerseText(bookName string, chapter, verse int) string {
	return fmt.Sprintf("%s %d:%d", bookName, chapter, verse)
}

// songData holds a song to be inserted.
type songData struct {
	title  string
	lyrics string
}
