package sqlite

import (
	"github.com/easypresenter/easypresenter/internal/scripture"
	"github.com/easypresenter/easypresenter/internal/songs"
)

// SongModel is a row of the cantos table. Legacy databases leave tono and
// categoria NULL.
type SongModel struct {
	ID        int64
	Titulo    string
	Tono      *string // nullable
	Categoria *string // nullable
}

func (m *SongModel) toDomain() songs.Song {
	song := songs.Song{ID: m.ID, Title: m.Titulo}
	if m.Tono != nil {
		song.Key = *m.Tono
	}
	if m.Categoria != nil {
		song.Category = *m.Categoria
	}
	return song
}

// SlideModel is a row of the diapositivas table.
type SlideModel struct {
	ID      int64
	CantoID int64
	Orden   int
	Texto   string
}

func (m *SlideModel) toDomain() songs.Slide {
	return songs.Slide{ID: m.ID, Order: m.Orden, Text: m.Texto}
}

// VerseModel is a row of the versiculos table as read for one chapter.
type VerseModel struct {
	Capitulo  int
	Versiculo int
	Texto     string
}

func (m *VerseModel) toDomain() scripture.Verse {
	return scripture.Verse{Chapter: m.Capitulo, Number: m.Versiculo, Text: m.Texto}
}
