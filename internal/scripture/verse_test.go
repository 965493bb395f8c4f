package scripture

import (
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func chapterOf(n int) []Verse {
	verses := make([]Verse, n)
	for i := range verses {
		verses[i] = Verse{Chapter: 1, Number: i + 1, Text: "v"}
	}
	return verses
}

func TestFilterFrom(t *testing.T) {
	verses := chapterOf(5)

	require.Equal(t, verses, FilterFrom(verses, 1))
	require.Equal(t, verses[3:], FilterFrom(verses, 4))
	require.Empty(t, FilterFrom(verses, 6))
	require.Empty(t, FilterFrom(nil, 1))
}

func TestChapterKey_String(t *testing.T) {
	require.Equal(t, "2:43:3", ChapterKey{VersionID: 2, Book: 43, Chapter: 3}.String())
}

// TestFilterFrom_IsSuffix checks that filtering a chapter yields exactly the
// suffix of verses numbered from v on, and is empty iff v exceeds the last
// verse number.
func TestFilterFrom_IsSuffix(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(0, 176).Draw(t, "verses")
		from := rapid.IntRange(-2, 180).Draw(t, "from")
		verses := chapterOf(n)

		got := FilterFrom(verses, from)

		start := from - 1
		if start < 0 {
			start = 0
		}
		if start > n {
			start = n
		}
		want := verses[start:]
		if len(got) != len(want) {
			t.Fatalf("len = %d, want %d", len(got), len(want))
		}
		for i := range got {
			if got[i] != want[i] {
				t.Fatalf("position %d = %v, want %v", i, got[i], want[i])
			}
		}
		if (len(got) == 0) != (n == 0 || from > n) {
			t.Fatalf("emptiness mismatch: from=%d n=%d len=%d", from, n, len(got))
		}
	})
}
