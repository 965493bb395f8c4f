// Package songs holds the song library model: songs made of ordered slides,
// one slide per stanza.
package songs

import (
	"errors"
	"fmt"
	"strings"
)

// DefaultCategory is assigned to songs entered by the operator.
const DefaultCategory = "Personalizado"

// stanzaSeparator separates stanzas in lyrics text.
const stanzaSeparator = "\n\n"

// ErrSongNotFound matches every NotFoundError.
var ErrSongNotFound = errors.New("song not found")

// ErrEmptyTitle is returned when saving a song without a title.
var ErrEmptyTitle = errors.New("song title is empty")

// NotFoundError reports a missing song id.
type NotFoundError struct {
	ID int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("song %d not found", e.ID)
}

// Is makes errors.Is(err, ErrSongNotFound) hold.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrSongNotFound
}

// Song is a library entry.
type Song struct {
	ID       int64
	Title    string
	Key      string
	Category string
}

// Slide is one projected stanza of a song.
type Slide struct {
	ID    int64
	Order int
	Text  string
}

// SplitStanzas splits lyrics on blank lines. Stanzas are trimmed and empty
// ones dropped; the rest keep their order.
func SplitStanzas(lyrics string) []string {
	lyrics = strings.ReplaceAll(lyrics, "\r\n", "\n")

	var stanzas []string
	for _, part := range strings.Split(lyrics, stanzaSeparator) {
		if s := strings.TrimSpace(part); s != "" {
			stanzas = append(stanzas, s)
		}
	}
	return stanzas
}

// JoinStanzas rebuilds editable lyrics from slides in their stored order.
func JoinStanzas(slides []Slide) string {
	texts := make([]string, len(slides))
	for i, s := range slides {
		texts[i] = s.Text
	}
	return strings.Join(texts, stanzaSeparator)
}

// ValidateTitle trims title and rejects empty ones.
func ValidateTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", ErrEmptyTitle
	}
	return title, nil
}
