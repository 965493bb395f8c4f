package app

import (
	"errors"
	"fmt"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/easypresenter/easypresenter/internal/chapters"
	"github.com/easypresenter/easypresenter/internal/config"
	"github.com/easypresenter/easypresenter/internal/log"
	"github.com/easypresenter/easypresenter/internal/scripture"
)

// slide is one projectable unit: a verse or a song stanza.
type slide struct {
	Label     string // verse number or stanza position
	Number    int
	Text      string
	Reference string
}

type booksLoadedMsg struct {
	versionID int64
	books     []scripture.BookSummary
	err       error
}

type configSavedMsg struct {
	err error
}

// submitQuery parses the query line. Queries that do not resolve change
// nothing.
func (m *Model) submitQuery() {
	query := m.input.Value()
	ref, ok := m.parser.Parse(query)
	if !ok {
		log.Debug(log.CatParse, "Query did not resolve", "query", query)
		return
	}
	m.suggestion = ""
	m.showReference(ref)
}

// showReference makes ref the displayed passage and requests its chapter.
// Earlier requests still in flight become stale.
func (m *Model) showReference(ref scripture.Reference) {
	m.svc.Selection.SetPassage(ref)
	m.title = ref.Title()
	m.song = nil
	m.updateMaxChapter()

	gen := m.gens.Next(chapters.SlotPassage)
	err := chapters.RequestPassage(m.ctx, m.svc.Cache, m.svc.Selection, ref, gen, m.svc.Loader.Fetch, m.deliverPassage)
	switch {
	case err == nil:
		log.Debug(log.CatParse, "Requested passage", "reference", ref.Title(), "verse", ref.VerseFrom, "generation", gen)
	case errors.Is(err, chapters.ErrNoVersion):
		m.setError("no scripture versions available")
	default:
		log.ErrorErr(log.CatLoader, "Passage request rejected", err, "reference", ref.Title())
		m.setError(fmt.Sprintf("could not load %s, try again", ref.Title()))
	}
}

// deliverPassage runs on the update loop via the dispatcher.
func (m *Model) deliverPassage(p chapters.Passage) {
	if !m.gens.IsCurrent(chapters.SlotPassage, p.Generation) {
		log.Debug(log.CatLoader, "Discarding stale passage", "key", p.Key, "generation", p.Generation,
			"latest", m.gens.Latest(chapters.SlotPassage))
		return
	}

	m.passage = &p
	m.slides = make([]slide, 0, len(p.Verses))
	for _, v := range p.Verses {
		m.slides = append(m.slides, slide{
			Label:     strconv.Itoa(v.Number),
			Number:    v.Number,
			Text:      v.Text,
			Reference: chapters.ProjectionReference(p.Reference, v.Number),
		})
	}
	m.focus = 0

	if len(m.slides) == 0 {
		m.setStatus(fmt.Sprintf("%s has no verse %d", p.Reference.Title(), p.Reference.VerseFrom))
		return
	}
	m.setStatus("")
	m.project()
}

// cycleVersion activates the next version, persists it, reloads the book
// list and re-requests the displayed passage from the focused verse.
func (m *Model) cycleVersion() tea.Cmd {
	sel := m.svc.Selection
	current, ok := sel.Version()
	if !ok {
		return nil
	}
	next, ok := sel.Versions().Next(current.ID)
	if !ok || next.ID == current.ID {
		return nil
	}
	name, ok := sel.SetActiveByDisplayName(next.DisplayName)
	if !ok {
		return nil
	}
	active, _ := sel.Version()
	log.Info(log.CatVersion, "Active version changed", "from", current.Alias, "to", active.Alias)
	m.setStatus(name)

	m.books, m.maxChapter = nil, 0
	cmds := []tea.Cmd{m.loadBooks(), m.saveDefaultVersion(name)}

	if m.mode == modeScripture {
		if ref, ok := sel.Passage(); ok {
			if m.passage != nil && m.focus < len(m.slides) {
				ref.VerseFrom = m.slides[m.focus].Number
			}
			m.showReference(ref)
		}
	}
	return tea.Batch(cmds...)
}

// loadBooks fetches the active version's book list off the update loop.
func (m *Model) loadBooks() tea.Cmd {
	v, ok := m.svc.Selection.Version()
	if !ok || m.svc.Books == nil {
		return nil
	}
	ctx, catalog := m.ctx, m.svc.Books
	return func() tea.Msg {
		books, err := catalog.Books(ctx, v.ID)
		return booksLoadedMsg{versionID: v.ID, books: books, err: err}
	}
}

func (m *Model) handleBooksLoaded(msg booksLoadedMsg) {
	v, ok := m.svc.Selection.Version()
	if !ok || v.ID != msg.versionID {
		return
	}
	if msg.err != nil {
		log.ErrorErr(log.CatDB, "Failed to load book list", msg.err, "version", v.Alias)
		return
	}
	m.books = msg.books
	m.updateMaxChapter()
}

func (m *Model) updateMaxChapter() {
	m.maxChapter = 0
	ref, ok := m.svc.Selection.Passage()
	if !ok {
		return
	}
	for _, b := range m.books {
		if b.Number == ref.Book.ID {
			m.maxChapter = b.MaxChapter
			return
		}
	}
}

func (m *Model) saveDefaultVersion(name string) tea.Cmd {
	path := m.svc.ConfigPath
	if path == "" {
		return nil
	}
	m.svc.Config.DefaultVersion = name
	return func() tea.Msg {
		return configSavedMsg{err: config.SaveDefaultVersion(path, name)}
	}
}
