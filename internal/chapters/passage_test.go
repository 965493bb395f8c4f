package chapters

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/easypresenter/easypresenter/internal/scripture"
)

func TestRequestPassage_EndToEnd(t *testing.T) {
	cache, _ := newTestCache(t, 2, 8)
	revelation := scripture.ChapterKey{VersionID: 7, Book: 66, Chapter: 21}
	source := &countingSource{chapters: map[scripture.ChapterKey][]scripture.Verse{revelation: numbered(21, 27)}}
	loader := NewLoader(source)

	sel := scripture.NewSelection(scripture.LoadVersions([]scripture.VersionRow{
		{ID: 3, Name: "NTV"},
		{ID: 7, Name: "Reina Valera 1960"},
	}))
	ref, ok := scripture.NewParser(scripture.NewBookIndex()).Parse("apocalipsis 21 4")
	require.True(t, ok)
	require.Equal(t, 66, ref.Book.ID)
	require.Equal(t, 21, ref.Chapter)

	var gens Generations
	gen := gens.Next(SlotPassage)

	got := make(chan Passage, 1)
	require.NoError(t, RequestPassage(context.Background(), cache, sel, ref, gen, loader.Fetch, func(p Passage) { got <- p }))

	passage := receive(t, got)
	require.True(t, gens.IsCurrent(SlotPassage, passage.Generation))
	require.Equal(t, revelation, passage.Key)
	require.Len(t, passage.Verses, 24)

	focus, ok := passage.Focus()
	require.True(t, ok)
	require.Equal(t, 4, focus.Number)
	require.Equal(t, "Apocalipsis 21:4", ProjectionReference(passage.Reference, focus.Number))
}

func TestRequestPassage_StaleGenerationIsDetectable(t *testing.T) {
	cache, _ := newTestCache(t, 2, 8)
	source := &countingSource{chapters: map[scripture.ChapterKey][]scripture.Verse{}}
	sel := scripture.NewSelection(scripture.LoadVersions([]scripture.VersionRow{{ID: 1, Name: "RVR1960"}}))
	parser := scripture.NewParser(scripture.NewBookIndex())

	var gens Generations
	got := make(chan Passage, 2)

	first, _ := parser.Parse("juan 3")
	firstGen := gens.Next(SlotPassage)
	require.NoError(t, RequestPassage(context.Background(), cache, sel, first, firstGen, NewLoader(source).Fetch, func(p Passage) { got <- p }))

	second, _ := parser.Parse("juan 4")
	secondGen := gens.Next(SlotPassage)
	require.NoError(t, RequestPassage(context.Background(), cache, sel, second, secondGen, NewLoader(source).Fetch, func(p Passage) { got <- p }))

	for range 2 {
		p := receive(t, got)
		require.Equal(t, p.Generation == secondGen, gens.IsCurrent(SlotPassage, p.Generation))
	}
}

func TestRequestPassage_VerseBeyondChapterIsEmpty(t *testing.T) {
	cache, _ := newTestCache(t, 1, 4)
	key := scripture.ChapterKey{VersionID: 1, Book: 43, Chapter: 3}
	source := &countingSource{chapters: map[scripture.ChapterKey][]scripture.Verse{key: numbered(3, 36)}}
	sel := scripture.NewSelection(scripture.LoadVersions([]scripture.VersionRow{{ID: 1, Name: "RVR1960"}}))
	ref, ok := scripture.NewParser(scripture.NewBookIndex()).Parse("juan 3 99")
	require.True(t, ok)

	got := make(chan Passage, 1)
	require.NoError(t, RequestPassage(context.Background(), cache, sel, ref, 1, NewLoader(source).Fetch, func(p Passage) { got <- p }))

	p := receive(t, got)
	require.Empty(t, p.Verses)
	_, ok = p.Focus()
	require.False(t, ok)
}

func TestRequestPassage_NoVersion(t *testing.T) {
	cache, _ := newTestCache(t, 1, 1)
	sel := scripture.NewSelection(scripture.LoadVersions(nil))
	ref := scripture.Reference{Book: scripture.Book{ID: 43, Name: "Juan"}, Chapter: 3, VerseFrom: 1}

	err := RequestPassage(context.Background(), cache, sel, ref, 1, nil, func(Passage) {})
	require.ErrorIs(t, err, ErrNoVersion)
}

func TestBookCatalog(t *testing.T) {
	source := &countingSource{chapters: map[scripture.ChapterKey][]scripture.Verse{
		{VersionID: 1, Book: 1, Chapter: 1}:  numbered(1, 31),
		{VersionID: 1, Book: 1, Chapter: 50}: numbered(50, 26),
		{VersionID: 1, Book: 43, Chapter: 3}: numbered(3, 36),
	}}
	catalog := NewBookCatalog(source)
	ctx := context.Background()

	books, err := catalog.Books(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, []scripture.BookSummary{
		{Number: 1, Name: "Génesis", MaxChapter: 50},
		{Number: 43, Name: "Juan", MaxChapter: 3},
	}, books)

	maxChapter, ok := catalog.MaxChapter(ctx, 1, 1)
	require.True(t, ok)
	require.Equal(t, 50, maxChapter)
	_, ok = catalog.MaxChapter(ctx, 1, 66)
	require.False(t, ok)
	require.Equal(t, int32(1), source.calls.Load(), "book list is cached per version")

	require.NoError(t, catalog.Invalidate(ctx, 1))
	_, err = catalog.Books(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, int32(2), source.calls.Load())
}
