package scripture

import "strings"

// BookCount is the number of books in the canonical list.
const BookCount = 66

// Book is one entry of the canonical book list. ID is 1-based and follows
// canonical order (Génesis=1 … Apocalipsis=66).
type Book struct {
	ID   int
	Name string
}

var canonicalNames = [BookCount]string{
	"Génesis", "Éxodo", "Levítico", "Números", "Deuteronomio", "Josué", "Jueces", "Rut", "1 Samuel", "2 Samuel",
	"1 Reyes", "2 Reyes", "1 Crónicas", "2 Crónicas", "Esdras", "Nehemías", "Ester", "Job", "Salmos", "Proverbios",
	"Eclesiastés", "Cantares", "Isaías", "Jeremías", "Lamentaciones", "Ezequiel", "Daniel", "Oseas", "Joel", "Amós",
	"Abdías", "Jonás", "Miqueas", "Nahúm", "Habacuc", "Sofonías", "Hageo", "Zacarías", "Malaquías", "Mateo",
	"Marcos", "Lucas", "Juan", "Hechos", "Romanos", "1 Corintios", "2 Corintios", "Gálatas", "Efesios", "Filipenses",
	"Colosenses", "1 Tesalonicenses", "2 Tesalonicenses", "1 Timoteo", "2 Timoteo", "Tito", "Filemón", "Hebreos", "Santiago",
	"1 Pedro", "2 Pedro", "1 Juan", "2 Juan", "3 Juan", "Judas", "Apocalipsis",
}

// Books returns the canonical book list in order.
func Books() []Book {
	books := make([]Book, BookCount)
	for i, name := range canonicalNames {
		books[i] = Book{ID: i + 1, Name: name}
	}
	return books
}

// BookByID returns the canonical book with the given 1-based id.
func BookByID(id int) (Book, bool) {
	if id < 1 || id > BookCount {
		return Book{}, false
	}
	return Book{ID: id, Name: canonicalNames[id-1]}, true
}

// BookIndex resolves free text to a canonical book by prefix. It is immutable
// and safe for concurrent use.
type BookIndex struct {
	books   []Book
	lowered []string
}

// NewBookIndex builds the index over the canonical list.
func NewBookIndex() *BookIndex {
	books := Books()
	lowered := make([]string, len(books))
	for i, b := range books {
		lowered[i] = strings.ToLower(b.Name)
	}
	return &BookIndex{books: books, lowered: lowered}
}

// Resolve returns the first book, in canonical order, whose lowercased name
// starts with the trimmed, lowercased query. An empty query never matches.
func (x *BookIndex) Resolve(query string) (Book, bool) {
	q := normalize(query)
	if q == "" {
		return Book{}, false
	}
	for i, name := range x.lowered {
		if strings.HasPrefix(name, q) {
			return x.books[i], true
		}
	}
	return Book{}, false
}

// Suggest returns the full book name the query resolves to, or "" when there is
// nothing to suggest: no match, or the query already spells the name.
func (x *BookIndex) Suggest(query string) string {
	book, ok := x.Resolve(query)
	if !ok || normalize(query) == strings.ToLower(book.Name) {
		return ""
	}
	return book.Name
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
