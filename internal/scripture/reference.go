package scripture

import (
	"fmt"
	"regexp"
	"strconv"
)

// referencePattern anchors the whole query: a non-empty book phrase (digits
// and spaces allowed), whitespace, the chapter, and an optional verse. The
// lazy book group leaves trailing integers to chapter and verse.
var referencePattern = regexp.MustCompile(`^\s*(.+?)\s+(\d+)(?:\s+(\d+))?\s*$`)

// Reference is a parsed and resolved operator query.
type Reference struct {
	Book      Book
	Chapter   int
	VerseFrom int
}

// Title renders "<Book> <chapter>".
func (r Reference) Title() string {
	return fmt.Sprintf("%s %d", r.Book.Name, r.Chapter)
}

// Parser turns operator queries into references.
type Parser struct {
	books *BookIndex
}

// NewParser creates a parser resolving book phrases through books.
func NewParser(books *BookIndex) *Parser {
	return &Parser{books: books}
}

// Parse matches "<book-phrase> <chapter>[ <verse>]" and resolves the book
// phrase. A query with no trailing integer, an out-of-range number or an
// unknown book yields no reference. The verse defaults to 1.
func (p *Parser) Parse(query string) (Reference, bool) {
	m := referencePattern.FindStringSubmatch(query)
	if m == nil {
		return Reference{}, false
	}

	chapter, err := strconv.Atoi(m[2])
	if err != nil {
		return Reference{}, false
	}
	verse := 1
	if m[3] != "" {
		verse, err = strconv.Atoi(m[3])
		if err != nil {
			return Reference{}, false
		}
	}

	book, ok := p.books.Resolve(m[1])
	if !ok {
		return Reference{}, false
	}

	return Reference{Book: book, Chapter: chapter, VerseFrom: verse}, true
}
