// Package xmlimport reads Zefania XML bibles for import into the scripture
// datastore.
package xmlimport

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"

	"github.com/easypresenter/easypresenter/internal/scripture"
)

// ErrNotZefania is returned when the document has no XMLBIBLE root.
var ErrNotZefania = errors.New("not a Zefania XML bible")

var (
	rootExpr    = xpath.MustCompile("/XMLBIBLE")
	bookExpr    = xpath.MustCompile("BIBLEBOOK")
	chapterExpr = xpath.MustCompile("CHAPTER")
	verseExpr   = xpath.MustCompile("VERS")
)

// Bible is a parsed document.
type Bible struct {
	Name  string
	Books []Book
}

type Book struct {
	Number   int
	Name     string
	Chapters []Chapter
}

type Chapter struct {
	Number int
	Verses []Verse
}

type Verse struct {
	Number int
	Text   string
}

// ParseZefania reads XMLBIBLE/BIBLEBOOK/CHAPTER/VERS. Books without a bname
// take their canonical name; book numbers outside 1..66 are rejected. Verse
// text is whitespace-normalized and NOTE elements are dropped.
func ParseZefania(r io.Reader) (*Bible, error) {
	doc, err := xmlquery.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing XML: %w", err)
	}

	root := xmlquery.QuerySelector(doc, rootExpr)
	if root == nil {
		return nil, ErrNotZefania
	}

	bible := &Bible{Name: strings.TrimSpace(root.SelectAttr("biblename"))}
	for _, bookNode := range xmlquery.QuerySelectorAll(root, bookExpr) {
		book, err := parseBook(bookNode)
		if err != nil {
			return nil, err
		}
		bible.Books = append(bible.Books, book)
	}
	return bible, nil
}

func parseBook(n *xmlquery.Node) (Book, error) {
	number, err := intAttr(n, "bnumber")
	if err != nil {
		return Book{}, fmt.Errorf("BIBLEBOOK: %w", err)
	}
	canonical, ok := scripture.BookByID(number)
	if !ok {
		return Book{}, fmt.Errorf("BIBLEBOOK bnumber %d outside 1..%d", number, scripture.BookCount)
	}

	book := Book{Number: number, Name: strings.TrimSpace(n.SelectAttr("bname"))}
	if book.Name == "" {
		book.Name = canonical.Name
	}

	for _, chapterNode := range xmlquery.QuerySelectorAll(n, chapterExpr) {
		chapterNumber, err := intAttr(chapterNode, "cnumber")
		if err != nil {
			return Book{}, fmt.Errorf("%s CHAPTER: %w", book.Name, err)
		}
		chapter := Chapter{Number: chapterNumber}

		for _, verseNode := range xmlquery.QuerySelectorAll(chapterNode, verseExpr) {
			verseNumber, err := intAttr(verseNode, "vnumber")
			if err != nil {
				return Book{}, fmt.Errorf("%s %d VERS: %w", book.Name, chapterNumber, err)
			}
			chapter.Verses = append(chapter.Verses, Verse{Number: verseNumber, Text: verseText(verseNode)})
		}
		book.Chapters = append(book.Chapters, chapter)
	}
	return book, nil
}

func intAttr(n *xmlquery.Node, name string) (int, error) {
	raw := strings.TrimSpace(n.SelectAttr(name))
	if raw == "" {
		return 0, fmt.Errorf("missing %s", name)
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 1 {
		return 0, fmt.Errorf("invalid %s %q", name, raw)
	}
	return v, nil
}

func verseText(n *xmlquery.Node) string {
	var b strings.Builder
	var walk func(*xmlquery.Node)
	walk = func(node *xmlquery.Node) {
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			switch c.Type {
			case xmlquery.TextNode, xmlquery.CharDataNode:
				b.WriteString(c.Data)
				b.WriteByte(' ')
			case xmlquery.ElementNode:
				if !strings.EqualFold(c.Data, "NOTE") {
					walk(c)
				}
			}
		}
	}
	walk(n)
	return strings.Join(strings.Fields(b.String()), " ")
}

// Records flattens the bible into datastore rows.
func (b *Bible) Records() []scripture.VerseRecord {
	records := make([]scripture.VerseRecord, 0, b.VerseCount())
	for _, book := range b.Books {
		for _, chapter := range book.Chapters {
			for _, verse := range chapter.Verses {
				records = append(records, scripture.VerseRecord{
					Book:     book.Number,
					BookName: book.Name,
					Chapter:  chapter.Number,
					Verse:    verse.Number,
					Text:     verse.Text,
				})
			}
		}
	}
	return records
}

// VerseCount returns the number of verses across all books.
func (b *Bible) VerseCount() int {
	n := 0
	for _, book := range b.Books {
		for _, chapter := range book.Chapters {
			n += len(chapter.Verses)
		}
	}
	return n
}
