package scripture

// Selection is the operator's current scripture state: the active version and
// the displayed passage. It belongs to the owning context and is passed
// explicitly to the calls that need it; it is not safe for concurrent use.
type Selection struct {
	versions   *VersionRegistry
	version    Version
	hasVersion bool

	book    int
	chapter int
	verse   int
}

// NewSelection starts with the registry's default version and no passage.
func NewSelection(versions *VersionRegistry) *Selection {
	s := &Selection{versions: versions}
	s.version, s.hasVersion = versions.Default()
	return s
}

// Versions returns the registry the selection picks from.
func (s *Selection) Versions() *VersionRegistry {
	return s.versions
}

// Version returns the active version.
func (s *Selection) Version() (Version, bool) {
	return s.version, s.hasVersion
}

// SetActiveByDisplayName activates the version with exactly this display name
// and returns the name. Unknown names leave the selection untouched.
func (s *Selection) SetActiveByDisplayName(name string) (string, bool) {
	v, ok := s.versions.FindByDisplayName(name)
	if !ok {
		return "", false
	}
	s.version, s.hasVersion = v, true
	return v.DisplayName, true
}

// SetPassage records the displayed passage.
func (s *Selection) SetPassage(ref Reference) {
	s.book, s.chapter, s.verse = ref.Book.ID, ref.Chapter, ref.VerseFrom
}

// ClearPassage forgets the displayed passage, e.g. when a song is opened.
func (s *Selection) ClearPassage() {
	s.book, s.chapter, s.verse = 0, 0, 0
}

// Passage returns the displayed passage, if any.
func (s *Selection) Passage() (Reference, bool) {
	if s.book == 0 {
		return Reference{}, false
	}
	book, ok := BookByID(s.book)
	if !ok {
		return Reference{}, false
	}
	return Reference{Book: book, Chapter: s.chapter, VerseFrom: s.verse}, true
}

// KeyFor builds the chapter key of ref under the active version.
func (s *Selection) KeyFor(ref Reference) (ChapterKey, bool) {
	if !s.hasVersion {
		return ChapterKey{}, false
	}
	return ChapterKey{VersionID: s.version.ID, Book: ref.Book.ID, Chapter: ref.Chapter}, true
}
