package scripture

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestBooks_CanonicalOrder(t *testing.T) {
	books := Books()

	require.Len(t, books, BookCount)
	require.Equal(t, Book{ID: 1, Name: "Génesis"}, books[0])
	require.Equal(t, Book{ID: 43, Name: "Juan"}, books[42])
	require.Equal(t, Book{ID: 66, Name: "Apocalipsis"}, books[65])
	for i, b := range books {
		require.Equal(t, i+1, b.ID)
	}
}

func TestBookByID_Bounds(t *testing.T) {
	_, ok := BookByID(0)
	require.False(t, ok)
	_, ok = BookByID(67)
	require.False(t, ok)

	b, ok := BookByID(19)
	require.True(t, ok)
	require.Equal(t, "Salmos", b.Name)
}

func TestBookIndex_Resolve(t *testing.T) {
	idx := NewBookIndex()

	tests := []struct {
		name   string
		query  string
		wantID int
		wantOK bool
	}{
		{name: "numbered prefix", query: "1 co", wantID: 46, wantOK: true},
		{name: "full name", query: "Juan", wantID: 43, wantOK: true},
		{name: "case and space insensitive", query: "  APOC ", wantID: 66, wantOK: true},
		{name: "accented", query: "génesis", wantID: 1, wantOK: true},
		{name: "ambiguous prefix takes first", query: "j", wantID: 6, wantOK: true},
		{name: "shared prefix", query: "ju", wantID: 7, wantOK: true},
		{name: "numbered juan", query: "3 juan", wantID: 64, wantOK: true},
		{name: "substring is not prefix", query: "uan", wantOK: false},
		{name: "empty", query: "", wantOK: false},
		{name: "blank", query: "   ", wantOK: false},
		{name: "no such book", query: "tobias", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			book, ok := idx.Resolve(tt.query)
			require.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				require.Equal(t, tt.wantID, book.ID)
			}
		})
	}
}

func TestBookIndex_Resolve_FirstCorinthians(t *testing.T) {
	book, ok := NewBookIndex().Resolve("1 co")

	require.True(t, ok)
	require.Equal(t, Book{ID: 46, Name: "1 Corintios"}, book)
}

func TestBookIndex_Suggest(t *testing.T) {
	idx := NewBookIndex()

	require.Equal(t, "Juan", idx.Suggest("jua"))
	require.Equal(t, "", idx.Suggest("juan"), "already spelled out")
	require.Equal(t, "", idx.Suggest("JUAN "), "normalization ignores case and spaces")
	require.Equal(t, "", idx.Suggest("zzz"))
	require.Equal(t, "", idx.Suggest(""))
	require.Equal(t, "", idx.Suggest("juan 3"), "chapter numbers are not part of a book name")
}

// TestBookIndex_Resolve_PrefixDeterminism checks that Resolve always returns
// the earliest canonical book whose lowercased name starts with the query.
func TestBookIndex_Resolve_PrefixDeterminism(t *testing.T) {
	idx := NewBookIndex()
	books := Books()

	rapid.Check(t, func(t *rapid.T) {
		var query string
		if rapid.Bool().Draw(t, "fromBook") {
			b := rapid.SampledFrom(books).Draw(t, "book")
			runes := []rune(strings.ToLower(b.Name))
			n := rapid.IntRange(1, len(runes)).Draw(t, "prefixLen")
			query = string(runes[:n])
			if rapid.Bool().Draw(t, "upper") {
				query = strings.ToUpper(query)
			}
		} else {
			query = rapid.StringMatching(`[a-z0-9 ]{0,8}`).Draw(t, "query")
		}

		got, ok := idx.Resolve(query)

		q := strings.ToLower(strings.TrimSpace(query))
		want := -1
		if q != "" {
			for _, b := range books {
				if strings.HasPrefix(strings.ToLower(b.Name), q) {
					want = b.ID
					break
				}
			}
		}

		if want == -1 {
			if ok {
				t.Fatalf("Resolve(%q) = %v, want no match", query, got)
			}
			return
		}
		if !ok || got.ID != want {
			t.Fatalf("Resolve(%q) = %v/%v, want book %d", query, got, ok, want)
		}
	})
}
