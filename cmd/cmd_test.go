package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/easypresenter/easypresenter/internal/chapters"
	"github.com/easypresenter/easypresenter/internal/config"
	"github.com/easypresenter/easypresenter/internal/scripture"
	"github.com/easypresenter/easypresenter/internal/testutil"
)

// newRuntime opens a runtime over a seeded scripture database.
func newRuntime(t *testing.T, seed bool) *runtime {
	t.Helper()
	db := testutil.NewScriptureDB(t)
	if seed {
		testutil.NewBuilder(t, db).WithStandardScripture().Build()
	}

	c := config.Defaults()
	c.DataDir = filepath.Dir(db.Path())
	rt, err := openRuntime(context.Background(), c)
	require.NoError(t, err)
	t.Cleanup(rt.Close)
	return rt
}

func TestLookup_PrintsFromVerseToChapterEnd(t *testing.T) {
	rt := newRuntime(t, true)

	var out bytes.Buffer
	require.NoError(t, lookup(context.Background(), &out, rt, "apocalipsis 21 4"))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 25)
	require.Equal(t, "Apocalipsis 21 (RVR)", lines[0])
	require.Equal(t, "  4  Apocalipsis 21:4", lines[1])
	require.Equal(t, " 27  Apocalipsis 21:27", lines[24])
}

func TestLookup_Unresolved(t *testing.T) {
	rt := newRuntime(t, true)

	var out bytes.Buffer
	err := lookup(context.Background(), &out, rt, "xyz 1 1")
	require.ErrorIs(t, err, errUnresolved)

	err = lookup(context.Background(), &out, rt, "juan")
	require.ErrorIs(t, err, errUnresolved)
	require.Empty(t, out.String())
}

func TestLookup_VerseBeyondChapter(t *testing.T) {
	rt := newRuntime(t, true)

	err := lookup(context.Background(), &bytes.Buffer{}, rt, "salmos 23 40")
	require.Error(t, err)
	require.Contains(t, err.Error(), "has no verse 40")
}

func TestLookup_OtherVersion(t *testing.T) {
	rt := newRuntime(t, true)
	_, ok := rt.selection.SetActiveByDisplayName("Nueva Traducción Viviente")
	require.True(t, ok)

	var out bytes.Buffer
	require.NoError(t, lookup(context.Background(), &out, rt, "juan 3 36"))
	require.Equal(t, "Juan 3 (NTV)\n 36  Juan 3:36\n", out.String())
}

func TestWriteVersions(t *testing.T) {
	rt := newRuntime(t, true)

	var out bytes.Buffer
	require.NoError(t, writeVersions(&out, rt.selection))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3)
	require.Contains(t, lines[1], "*")
	require.Contains(t, lines[1], "Reina Valera 1960")
	require.Contains(t, lines[2], "NTV")
	require.NotContains(t, lines[2], "*")
}

func TestWriteBooks(t *testing.T) {
	rt := newRuntime(t, true)
	v, ok := rt.selection.Version()
	require.True(t, ok)

	books, err := rt.books.Books(context.Background(), v.ID)
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, writeBooks(&out, books))
	require.Contains(t, out.String(), "Apocalipsis")
	require.Contains(t, out.String(), "22")
}

func TestOpenRuntime_CorruptScriptureDatabase(t *testing.T) {
	c := config.Defaults()
	c.DataDir = t.TempDir()
	c.DefaultVersion = "Reina Valera 1960"
	require.NoError(t, os.WriteFile(c.ScripturePath(), []byte("not a database at all"), 0o644))

	rt, err := openRuntime(context.Background(), c)
	require.NoError(t, err)
	t.Cleanup(rt.Close)

	require.Equal(t, 0, rt.selection.Versions().Len())
	_, ok := rt.selection.Version()
	require.False(t, ok)

	books, err := rt.books.Books(context.Background(), 1)
	require.NoError(t, err)
	require.Empty(t, books)

	verses, err := rt.loader.Fetch(context.Background(), scripture.ChapterKey{VersionID: 1, Book: 43, Chapter: 3})
	require.NoError(t, err)
	require.Empty(t, verses)

	var out bytes.Buffer
	require.NoError(t, writeVersions(&out, rt.selection))

	err = lookup(context.Background(), &out, rt, "juan 3 16")
	require.ErrorIs(t, err, chapters.ErrNoVersion)

	err = importBible(context.Background(), &out, rt, strings.NewReader(zefania), "", false)
	require.Error(t, err)
	require.Contains(t, err.Error(), "unavailable")
}

const zefania = `<?xml version="1.0" encoding="utf-8"?>
<XMLBIBLE biblename="Biblia de Prueba">
  <BIBLEBOOK bnumber="19" bname="Salmos">
    <CHAPTER cnumber="117">
      <VERS vnumber="1">Alabad a Jehová, naciones todas</VERS>
      <VERS vnumber="2">Porque ha engrandecido sobre nosotros su misericordia</VERS>
    </CHAPTER>
  </BIBLEBOOK>
</XMLBIBLE>`

func TestImportBible(t *testing.T) {
	rt := newRuntime(t, false)
	ctx := context.Background()

	var out bytes.Buffer
	require.NoError(t, importBible(ctx, &out, rt, strings.NewReader(zefania), "", false))
	require.Contains(t, out.String(), `imported "Biblia de Prueba"`)
	require.Contains(t, out.String(), "1 books, 2 verses")

	rows, err := rt.scripture.ScriptureStore().ListVersions(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, "Biblia de Prueba", rows[0].Name)

	verses, err := rt.scripture.ScriptureStore().FetchVerses(ctx, rows[0].ID, 19, 117)
	require.NoError(t, err)
	require.Len(t, verses, 2)

	err = importBible(ctx, &out, rt, strings.NewReader(zefania), "", false)
	require.Error(t, err)
	require.Contains(t, err.Error(), "--replace")

	require.NoError(t, importBible(ctx, &out, rt, strings.NewReader(zefania), "", true))
	rows, err = rt.scripture.ScriptureStore().ListVersions(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1, "replace keeps the version")
}

func TestImportBible_NameOverride(t *testing.T) {
	rt := newRuntime(t, false)
	ctx := context.Background()

	require.NoError(t, importBible(ctx, &bytes.Buffer{}, rt, strings.NewReader(zefania), "  Otra  ", false))

	rows, err := rt.scripture.ScriptureStore().ListVersions(ctx)
	require.NoError(t, err)
	require.Equal(t, "Otra", rows[0].Name)
}

func TestImportBible_InvalidXML(t *testing.T) {
	rt := newRuntime(t, false)
	err := importBible(context.Background(), &bytes.Buffer{}, rt, strings.NewReader("<html></html>"), "x", false)
	require.Error(t, err)
}

func TestReadLyrics_Stdin(t *testing.T) {
	lyrics, err := readLyrics(strings.NewReader("uno\n\ndos"), "-")
	require.NoError(t, err)
	require.Equal(t, "uno\n\ndos", lyrics)

	_, err = readLyrics(nil, filepath.Join(t.TempDir(), "missing.txt"))
	require.Error(t, err)
}

func TestTracingConfig(t *testing.T) {
	tc := tracingConfig(config.TracingConfig{Enabled: true, Exporter: "stdout"})
	require.True(t, tc.Enabled)
	require.Equal(t, "stdout", tc.Exporter)
	require.Equal(t, "localhost:4317", tc.OTLPEndpoint)
	require.InDelta(t, 1.0, tc.SampleRate, 0)

	tc = tracingConfig(config.TracingConfig{FilePath: "/tmp/t.jsonl", SampleRate: 0.25})
	require.Equal(t, "/tmp/t.jsonl", tc.FilePath)
	require.InDelta(t, 0.25, tc.SampleRate, 0)
}

func TestCommandsRegistered(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"lookup", "versions", "books", "import", "songs"} {
		require.True(t, names[want], "missing command %s", want)
	}
}
