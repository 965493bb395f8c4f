package app

import (
	"errors"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/easypresenter/easypresenter/internal/log"
	"github.com/easypresenter/easypresenter/internal/songs"
)

type songsLoadedMsg struct {
	gen   uint64
	songs []songs.Song
	err   error
}

type slidesLoadedMsg struct {
	gen    uint64
	song   songs.Song
	slides []songs.Slide
	err    error
}

// loadSongs lists songs matching the query line off the update loop. Only
// the latest listing is applied.
func (m *Model) loadSongs() tea.Cmd {
	if m.svc.Songs == nil {
		return nil
	}
	gen := m.gens.Next(slotSongs)
	filter := ""
	if m.mode == modeSongs {
		filter = strings.TrimSpace(m.input.Value())
	}
	ctx, repo := m.ctx, m.svc.Songs
	return func() tea.Msg {
		list, err := repo.List(ctx, filter)
		return songsLoadedMsg{gen: gen, songs: list, err: err}
	}
}

func (m *Model) handleSongsLoaded(msg songsLoadedMsg) {
	if !m.gens.IsCurrent(slotSongs, msg.gen) {
		return
	}
	if msg.err != nil {
		log.ErrorErr(log.CatSongs, "Failed to list songs", msg.err)
		m.setError("could not load songs")
		return
	}
	m.songList = msg.songs
	m.songCursor = clamp(m.songCursor, 0, max(len(m.songList)-1, 0))
}

// openSong loads the slides of the song under the cursor.
func (m *Model) openSong() tea.Cmd {
	if m.svc.Songs == nil || len(m.songList) == 0 {
		return nil
	}
	song := m.songList[m.songCursor]
	gen := m.gens.Next(slotSlides)
	ctx, repo := m.ctx, m.svc.Songs
	return func() tea.Msg {
		slides, err := repo.Slides(ctx, song.ID)
		return slidesLoadedMsg{gen: gen, song: song, slides: slides, err: err}
	}
}

func (m *Model) handleSlidesLoaded(msg slidesLoadedMsg) {
	if !m.gens.IsCurrent(slotSlides, msg.gen) || m.mode != modeSongs {
		return
	}
	if msg.err != nil {
		if errors.Is(msg.err, songs.ErrSongNotFound) {
			m.setError("song was deleted")
		} else {
			log.ErrorErr(log.CatSongs, "Failed to load slides", msg.err, "song", msg.song.ID)
			m.setError("could not open song")
		}
		return
	}

	song := msg.song
	m.svc.Selection.ClearPassage()
	m.passage = nil
	m.song = &song
	m.title = song.Title
	m.slides = make([]slide, 0, len(msg.slides))
	for i, s := range msg.slides {
		m.slides = append(m.slides, slide{
			Label:     strconv.Itoa(i + 1),
			Number:    s.Order,
			Text:      s.Text,
			Reference: song.Title,
		})
	}
	m.focus = 0
	m.pane = paneSlides

	if len(m.slides) == 0 {
		m.setStatus(song.Title + " has no slides")
		return
	}
	m.setStatus("")
	m.project()
}
