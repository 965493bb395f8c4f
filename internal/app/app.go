// Package app contains the root application model: the operator console and
// the owning context every chapter delivery runs on.
package app

import (
	"context"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/easypresenter/easypresenter/internal/chapters"
	"github.com/easypresenter/easypresenter/internal/config"
	"github.com/easypresenter/easypresenter/internal/keys"
	"github.com/easypresenter/easypresenter/internal/log"
	"github.com/easypresenter/easypresenter/internal/projector"
	"github.com/easypresenter/easypresenter/internal/pubsub"
	"github.com/easypresenter/easypresenter/internal/scripture"
	"github.com/easypresenter/easypresenter/internal/songs"
	"github.com/easypresenter/easypresenter/internal/watcher"
)

// Services are the collaborators the console drives. Songs, Projector and
// Watcher may be nil.
type Services struct {
	Config     *config.Config
	ConfigPath string

	Selection *scripture.Selection
	Books     *chapters.BookCatalog
	Loader    *chapters.Loader
	Cache     *chapters.Cache

	Songs     songs.Repository
	Projector projector.Projector
	Watcher   *watcher.Watcher

	Debug bool
}

type mode int

const (
	modeScripture mode = iota
	modeSongs
)

func (m mode) String() string {
	if m == modeSongs {
		return "SONGS"
	}
	return "SCRIPTURE"
}

type pane int

const (
	paneList pane = iota
	paneSlides
)

// Generation slots besides chapters.SlotPassage.
const (
	slotSongs  chapters.Slot = "songs"
	slotSlides chapters.Slot = "slides"
)

// maxLogLines bounds the debug overlay.
const maxLogLines = 500

// Model is the root application state. Update runs on the Bubble Tea loop,
// which is the only goroutine that touches it.
type Model struct {
	svc    Services
	ctx    context.Context
	cancel context.CancelFunc

	mode       mode
	input      textinput.Model
	suggestion string
	parser     *scripture.Parser
	bookIndex  *scripture.BookIndex
	gens       chapters.Generations

	// scripture
	passage    *chapters.Passage
	books      []scripture.BookSummary
	maxChapter int

	// songs
	songList   []songs.Song
	songCursor int
	song       *songs.Song
	pane       pane

	// displayed slides, shared by both modes
	title  string
	slides []slide
	focus  int
	live   bool

	status    string
	statusErr bool

	width  int
	height int

	showHelp bool
	helpView viewport.Model

	showLogs    bool
	logs        []string
	logView     viewport.Model
	logListener *log.Listener
	changes     *pubsub.Listener[string]
}

// New creates the console. Services.Selection, Books, Loader and Cache are
// required.
func New(svc Services) *Model {
	if svc.Config == nil {
		cfg := config.Defaults()
		svc.Config = &cfg
	}
	if svc.Projector == nil {
		svc.Projector = projector.Nop{}
	}

	ctx, cancel := context.WithCancel(context.Background())

	input := textinput.New()
	input.Prompt = "› "
	input.Cursor.SetMode(cursor.CursorStatic)
	input.Focus()

	books := scripture.NewBookIndex()
	m := &Model{
		svc:       svc,
		ctx:       ctx,
		cancel:    cancel,
		input:     input,
		parser:    scripture.NewParser(books),
		bookIndex: books,
		helpView:  viewport.New(0, 0),
		logView:   viewport.New(0, 0),
	}
	m.resetInput()

	if svc.Debug {
		m.logListener = log.NewListener(ctx)
	}
	if svc.Watcher != nil {
		m.changes = pubsub.NewListener(ctx, svc.Watcher.Changes())
	}
	return m
}

// Init loads the book list of the active version and starts the listeners.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.loadBooks()}
	if m.changes != nil {
		cmds = append(cmds, m.changes.Listen())
	}
	if m.logListener != nil {
		cmds = append(cmds, m.logListener.Listen())
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case dispatchMsg:
		msg.fn()
		return m, nil

	case tea.WindowSizeMsg:
		m.setSize(msg.Width, msg.Height)
		return m, nil

	case booksLoadedMsg:
		m.handleBooksLoaded(msg)
		return m, nil

	case songsLoadedMsg:
		m.handleSongsLoaded(msg)
		return m, nil

	case slidesLoadedMsg:
		m.handleSlidesLoaded(msg)
		return m, nil

	case configSavedMsg:
		if msg.err != nil {
			log.ErrorErr(log.CatConfig, "Failed to save default version", msg.err, "path", m.svc.ConfigPath)
			m.setError("could not save default version: " + msg.err.Error())
		}
		return m, nil

	case pubsub.Event[string]:
		return m, m.handleEvent(msg)

	case tea.KeyMsg:
		return m, m.handleKey(msg)
	}

	return m, nil
}

func (m *Model) handleEvent(ev pubsub.Event[string]) tea.Cmd {
	switch ev.Kind {
	case pubsub.KindLog:
		m.appendLog(ev.Payload)
		if m.logListener == nil {
			return nil
		}
		return m.logListener.Listen()

	case pubsub.KindChanged:
		log.Debug(log.CatWatcher, "Song database changed, reloading list", "path", ev.Payload)
		m.setStatus("song list refreshed")
		cmd := m.loadSongs()
		if m.changes == nil {
			return cmd
		}
		return tea.Batch(cmd, m.changes.Listen())
	}
	return nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	k := keys.Console

	if key.Matches(msg, k.Quit) {
		return tea.Quit
	}

	if m.showHelp {
		if key.Matches(msg, k.Help) || key.Matches(msg, k.Close) {
			m.showHelp = false
			return nil
		}
		var cmd tea.Cmd
		m.helpView, cmd = m.helpView.Update(msg)
		return cmd
	}

	if m.showLogs {
		if key.Matches(msg, k.Logs) || key.Matches(msg, k.Close) {
			m.showLogs = false
			return nil
		}
		var cmd tea.Cmd
		m.logView, cmd = m.logView.Update(msg)
		return cmd
	}

	switch {
	case key.Matches(msg, k.Help):
		m.openHelp()
		return nil

	case key.Matches(msg, k.Logs):
		if m.svc.Debug {
			m.showLogs = true
			m.refreshLogView()
		}
		return nil

	case key.Matches(msg, k.SwitchMode):
		return m.switchMode()

	case key.Matches(msg, k.CycleVersion):
		return m.cycleVersion()

	case key.Matches(msg, k.Blank):
		m.blank()
		return nil

	case key.Matches(msg, k.Up):
		m.move(-1)
		return nil

	case key.Matches(msg, k.Down):
		m.move(1)
		return nil

	case key.Matches(msg, k.Accept):
		m.accept()
		return nil

	case key.Matches(msg, k.Submit):
		if m.mode == modeSongs {
			return m.openSong()
		}
		m.submitQuery()
		return nil
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() == before {
		return cmd
	}

	if m.mode == modeSongs {
		return tea.Batch(cmd, m.loadSongs())
	}
	m.suggestion = m.bookIndex.Suggest(m.input.Value())
	return cmd
}

// move shifts the focused slide (or the song cursor while the song list has
// focus) and projects the new slide.
func (m *Model) move(delta int) {
	if m.mode == modeSongs && m.pane == paneList {
		if len(m.songList) == 0 {
			return
		}
		m.songCursor = clamp(m.songCursor+delta, 0, len(m.songList)-1)
		return
	}

	if len(m.slides) == 0 {
		return
	}
	next := clamp(m.focus+delta, 0, len(m.slides)-1)
	if next == m.focus {
		return
	}
	m.focus = next
	m.project()
}

// accept takes the book suggestion in scripture mode and switches panes in
// songs mode.
func (m *Model) accept() {
	if m.mode == modeSongs {
		if m.pane == paneList && m.song != nil {
			m.pane = paneSlides
		} else {
			m.pane = paneList
		}
		return
	}
	if m.suggestion == "" {
		return
	}
	m.input.SetValue(m.suggestion + " ")
	m.input.CursorEnd()
	m.suggestion = ""
}

func (m *Model) switchMode() tea.Cmd {
	if m.mode == modeScripture {
		log.Info(log.CatUI, "Switching mode", "from", "scripture", "to", "songs")
		m.mode = modeSongs
		// a chapter still in flight must not replace the song view
		m.gens.Next(chapters.SlotPassage)
		m.pane = paneList
		m.resetInput()
		return m.loadSongs()
	}

	log.Info(log.CatUI, "Switching mode", "from", "songs", "to", "scripture")
	m.mode = modeScripture
	m.gens.Next(slotSlides)
	m.resetInput()

	if ref, ok := m.svc.Selection.Passage(); ok {
		m.showReference(ref)
	}
	return nil
}

func (m *Model) resetInput() {
	m.input.SetValue("")
	m.suggestion = ""
	if m.mode == modeSongs {
		m.input.Placeholder = "filter songs by title"
	} else {
		m.input.Placeholder = "book chapter [verse], e.g. juan 3 16"
	}
}

// project sends the focused slide to the projector.
func (m *Model) project() {
	if m.focus < 0 || m.focus >= len(m.slides) {
		return
	}
	s := m.slides[m.focus]
	if err := m.svc.Projector.Project(s.Text, s.Reference); err != nil {
		log.ErrorErr(log.CatUI, "Projection failed", err, "reference", s.Reference)
		m.setError("projection failed: " + err.Error())
		return
	}
	m.live = true
}

func (m *Model) blank() {
	if err := m.svc.Projector.Clear(); err != nil {
		log.ErrorErr(log.CatUI, "Clearing projection failed", err)
		m.setError("could not blank projector: " + err.Error())
		return
	}
	m.live = false
	m.setStatus("projector blank")
}

func (m *Model) setStatus(s string) {
	m.status, m.statusErr = s, false
}

func (m *Model) setError(s string) {
	m.status, m.statusErr = s, true
}

func (m *Model) setSize(width, height int) {
	m.width, m.height = width, height
	m.input.Width = max(width-6, 10)
	m.helpView.Width, m.helpView.Height = overlaySize(width, height)
	m.logView.Width, m.logView.Height = overlaySize(width, height)
	if m.showHelp {
		m.openHelp()
	}
	if m.showLogs {
		m.refreshLogView()
	}
}

// Close stops listeners and the watcher. The projection is left as is.
func (m *Model) Close() error {
	m.cancel()
	if m.svc.Watcher != nil {
		return m.svc.Watcher.Stop()
	}
	return nil
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
