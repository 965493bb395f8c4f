package testutil

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/easypresenter/easypresenter/internal/infrastructure/sqlite"
)

// Builder accumulates fixture data and inserts it through the stores.
type Builder struct {
	t        *testing.T
	db       *sqlite.DB
	versions []versionData
	songs    []songData

	versionIDs map[string]int64
	songIDs    map[string]int64
}

// NewBuilder creates a builder for the given database.
func NewBuilder(t *testing.T, db *sqlite.DB) *Builder {
	t.Helper()
	return &Builder{
		t:          t,
		db:         db,
		versionIDs: map[string]int64{},
		songIDs:    map[string]int64{},
	}
}

// WithVersion adds a scripture version.
func (b *Builder) WithVersion(name string, opts ...VersionOption) *Builder {
	v := versionData{name: name}
	for _, opt := range opts {
		opt(&v)
	}
	b.versions = append(b.versions, v)
	return b
}

// WithSong adds a song whose slides come from lyrics.
func (b *Builder) WithSong(title, lyrics string) *Builder {
	b.songs = append(b.songs, songData{title: title, lyrics: lyrics})
	return b
}

// Build inserts everything in declaration order.
func (b *Builder) Build() *Builder {
	b.t.Helper()
	ctx := context.Background()

	for _, v := range b.versions {
		id, err := b.db.ScriptureStore().ImportVersion(ctx, v.name, v.verses, false)
		require.NoError(b.t, err)
		b.versionIDs[v.name] = id
	}
	for _, s := range b.songs {
		id, err := b.db.SongStore().Add(ctx, s.title, s.lyrics)
		require.NoError(b.t, err)
		b.songIDs[s.title] = id
	}
	return b
}

// VersionID returns the id assigned to a built version.
func (b *Builder) VersionID(name string) int64 {
	b.t.Helper()
	id, ok := b.versionIDs[name]
	require.True(b.t, ok, "version %q was not built", name)
	return id
}

// SongID returns the id assigned to a built song.
func (b *Builder) SongID(title string) int64 {
	b.t.Helper()
	id, ok := b.songIDs[title]
	require.True(b.t, ok, "song %q was not built", title)
	return id
}
