package app

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/easypresenter/easypresenter/internal/cachemanager"
	"github.com/easypresenter/easypresenter/internal/chapters"
	"github.com/easypresenter/easypresenter/internal/config"
	"github.com/easypresenter/easypresenter/internal/infrastructure/sqlite"
	"github.com/easypresenter/easypresenter/internal/scripture"
	"github.com/easypresenter/easypresenter/internal/testutil"
)

type projection struct {
	Text      string
	Reference string
}

// fakeProjector records everything sent to the display.
type fakeProjector struct {
	mu     sync.Mutex
	shown  []projection
	clears int
}

func (p *fakeProjector) Project(text, reference string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.shown = append(p.shown, projection{Text: text, Reference: reference})
	return nil
}

func (p *fakeProjector) Clear() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.clears++
	return nil
}

func (p *fakeProjector) last() (projection, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.shown) == 0 {
		return projection{}, false
	}
	return p.shown[len(p.shown)-1], true
}

func (p *fakeProjector) all() []projection {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]projection(nil), p.shown...)
}

type fixture struct {
	svc        Services
	dispatcher *ProgramDispatcher
	projector  *fakeProjector
	scripture  *sqlite.DB
	songs      *sqlite.DB
}

// newFixture wires the console against temp-dir databases holding the
// standard scripture and songs.
func newFixture(t *testing.T, withScripture bool) *fixture {
	t.Helper()
	ctx := context.Background()

	scriptureDB := testutil.NewScriptureDB(t)
	if withScripture {
		testutil.NewBuilder(t, scriptureDB).WithStandardScripture().Build()
	}
	songsDB := testutil.NewSongsDB(t)
	testutil.NewBuilder(t, songsDB).WithStandardSongs().Build()

	rows, err := scriptureDB.ScriptureStore().ListVersions(ctx)
	require.NoError(t, err)

	pool := chapters.NewPool(2, 16)
	t.Cleanup(pool.Close)

	store, err := cachemanager.New[scripture.ChapterKey, []scripture.Verse]("chapters", 0)
	require.NoError(t, err)

	dispatcher := NewProgramDispatcher()
	proj := &fakeProjector{}
	cfg := config.Defaults()

	return &fixture{
		svc: Services{
			Config:     &cfg,
			ConfigPath: filepath.Join(t.TempDir(), "config.yaml"),
			Selection:  scripture.NewSelection(scripture.LoadVersions(rows)),
			Books:      chapters.NewBookCatalog(scriptureDB.ScriptureStore()),
			Loader:     chapters.NewLoader(scriptureDB.ScriptureStore()),
			Cache:      chapters.NewCache(store, pool, dispatcher, nil),
			Songs:      songsDB.SongStore(),
			Projector:  proj,
		},
		dispatcher: dispatcher,
		projector:  proj,
		scripture:  scriptureDB,
		songs:      songsDB,
	}
}

// harness drives a Model synchronously. Dispatched closures arrive on msgs
// and commands run inline.
type harness struct {
	t    *testing.T
	m    *Model
	msgs chan tea.Msg
	*fixture
}

func newHarness(t *testing.T) *harness {
	return newHarnessWith(t, newFixture(t, true))
}

func newHarnessWith(t *testing.T, f *fixture) *harness {
	t.Helper()
	msgs := make(chan tea.Msg, 64)
	f.dispatcher.Bind(func(msg tea.Msg) { msgs <- msg })

	m := New(f.svc)
	t.Cleanup(func() { _ = m.Close() })

	h := &harness{t: t, m: m, msgs: msgs, fixture: f}
	h.run(m.Init())
	h.update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return h
}

func (h *harness) update(msg tea.Msg) {
	_, cmd := h.m.Update(msg)
	h.run(cmd)
}

// run executes cmd and feeds the console's own result messages back in.
func (h *harness) run(cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	switch msg := cmd().(type) {
	case tea.BatchMsg:
		for _, c := range msg {
			h.run(c)
		}
	case booksLoadedMsg, songsLoadedMsg, slidesLoadedMsg, configSavedMsg:
		h.update(msg)
	}
}

func (h *harness) typeText(s string) {
	for _, r := range s {
		h.update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func (h *harness) press(k tea.KeyType) {
	h.update(tea.KeyMsg{Type: k})
}

func (h *harness) query(q string) {
	h.m.input.SetValue("")
	h.typeText(q)
	h.press(tea.KeyEnter)
}

// deliver runs the next dispatched closure on the harness goroutine.
func (h *harness) deliver() {
	h.t.Helper()
	select {
	case msg := <-h.msgs:
		h.update(msg)
	case <-time.After(2 * time.Second):
		h.t.Fatal("timed out waiting for a dispatched delivery")
	}
}

func (h *harness) requireNoDelivery() {
	h.t.Helper()
	select {
	case msg := <-h.msgs:
		h.t.Fatalf("unexpected delivery %T", msg)
	case <-time.After(50 * time.Millisecond):
	}
}
