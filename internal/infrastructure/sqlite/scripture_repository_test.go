package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/easypresenter/easypresenter/internal/scripture"
)

func records(book int, name string, chapter, count int) []scripture.VerseRecord {
	out := make([]scripture.VerseRecord, 0, count)
	// Inserted in reverse to check ORDER BY.
	for v := count; v >= 1; v-- {
		out = append(out, scripture.VerseRecord{Book: book, BookName: name, Chapter: chapter, Verse: v, Text: name})
	}
	return out
}

func TestScriptureStore_ImportAndRead(t *testing.T) {
	ctx := context.Background()
	store := openTestDB(t, ScriptureSchema).ScriptureStore()

	data := append(records(43, "Juan", 3, 36), records(43, "Juan", 21, 25)...)
	data = append(data, records(1, "Génesis", 1, 31)...)

	id, err := store.ImportVersion(ctx, "Reina Valera 1960", data, false)
	require.NoError(t, err)
	require.Positive(t, id)

	versions, err := store.ListVersions(ctx)
	require.NoError(t, err)
	require.Equal(t, []scripture.VersionRow{{ID: id, Name: "Reina Valera 1960"}}, versions)

	books, err := store.ListBooks(ctx, id)
	require.NoError(t, err)
	require.Equal(t, []scripture.BookSummary{
		{Number: 1, Name: "Génesis", MaxChapter: 1},
		{Number: 43, Name: "Juan", MaxChapter: 21},
	}, books)

	verses, err := store.FetchVerses(ctx, id, 43, 3)
	require.NoError(t, err)
	require.Len(t, verses, 36)
	for i, v := range verses {
		require.Equal(t, i+1, v.Number)
		require.Equal(t, 3, v.Chapter)
	}
}

func TestScriptureStore_FetchMissingChapterIsEmpty(t *testing.T) {
	store := openTestDB(t, ScriptureSchema).ScriptureStore()

	verses, err := store.FetchVerses(context.Background(), 1, 43, 3)
	require.NoError(t, err)
	require.NotNil(t, verses)
	require.Empty(t, verses)
}

func TestScriptureStore_ImportExistingVersion(t *testing.T) {
	ctx := context.Background()
	store := openTestDB(t, ScriptureSchema).ScriptureStore()

	id, err := store.ImportVersion(ctx, "NTV", records(43, "Juan", 3, 36), false)
	require.NoError(t, err)

	_, err = store.ImportVersion(ctx, "NTV", records(43, "Juan", 3, 2), false)
	require.ErrorIs(t, err, ErrVersionExists)

	replacedID, err := store.ImportVersion(ctx, "NTV", records(43, "Juan", 3, 2), true)
	require.NoError(t, err)
	require.Equal(t, id, replacedID)

	verses, err := store.FetchVerses(ctx, id, 43, 3)
	require.NoError(t, err)
	require.Len(t, verses, 2)
}

func TestScriptureStore_ListBooksWaitsForWriter(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t, ScriptureSchema)
	store := db.ScriptureStore()
	id, err := store.ImportVersion(ctx, "NTV", records(43, "Juan", 3, 36), false)
	require.NoError(t, err)

	db.mu.Lock()
	done := make(chan []scripture.BookSummary, 1)
	go func() {
		books, _ := store.ListBooks(ctx, id)
		done <- books
	}()

	require.Never(t, func() bool { return len(done) > 0 }, 100*time.Millisecond, 10*time.Millisecond)
	db.mu.Unlock()

	select {
	case books := <-done:
		require.Equal(t, []scripture.BookSummary{{Number: 43, Name: "Juan", MaxChapter: 3}}, books)
	case <-time.After(2 * time.Second):
		t.Fatal("ListBooks did not finish after the lock was released")
	}
}

func TestScriptureStore_CancelledContext(t *testing.T) {
	store := openTestDB(t, ScriptureSchema).ScriptureStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.FetchVerses(ctx, 1, 43, 3)
	require.Error(t, err)
}
