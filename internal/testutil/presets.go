package testutil

// Standard version names.
const (
	RVR = "Reina-Valera 1960"
	NTV = "NTV"
)

// WithStandardScripture adds two versions. NTV is inserted first so that
// priority ordering, not discovery order, makes RVR the default.
//
//	NTV: Juan 3 (36 verses)
//	RVR: Génesis 1 (31), Salmos 23 (6), Juan 3 (36), Apocalipsis 21 (27), Apocalipsis 22 (21)
func (b *Builder) WithStandardScripture() *Builder {
	return b.
		WithVersion(NTV, Chapter(43, 3, 36)).
		WithVersion(RVR,
			Chapter(1, 1, 31),
			Chapter(19, 23, 6),
			Chapter(43, 3, 36),
			Chapter(66, 21, 27),
			Chapter(66, 22, 21))
}

// WithStandardSongs adds two songs; "Cuan Grande Es El" has three slides.
func (b *Builder) WithStandardSongs() *Builder {
	return b.
		WithSong("Cuan Grande Es El", "Senor mi Dios\nal contemplar los cielos\n\nMi corazon entona la cancion\n\nCuan grande es El").
		WithSong("Sublime Gracia", "Sublime gracia del Senor\n\nQue a mi pecador salvo")
}
