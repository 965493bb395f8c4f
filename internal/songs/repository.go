package songs

import "context"

// Repository persists songs and their slides.
type Repository interface {
	// List returns songs whose title contains filter, ordered by title.
	// An empty filter lists every song.
	List(ctx context.Context, filter string) ([]Song, error)

	// Get returns a song or a NotFoundError.
	Get(ctx context.Context, id int64) (Song, error)

	// Slides returns a song's slides ordered by position.
	Slides(ctx context.Context, id int64) ([]Slide, error)

	// Add stores a new song in DefaultCategory, one slide per stanza, and
	// returns its id.
	Add(ctx context.Context, title, lyrics string) (int64, error)

	// Update renames a song and replaces all of its slides.
	Update(ctx context.Context, id int64, title, lyrics string) error

	// Delete removes a song and its slides.
	Delete(ctx context.Context, id int64) error
}
