// Package corpus reads the bundled bilingual Bible: a books index that maps
// English book names to their Tamil names, and one document per book with
// its chapters and verses.
package corpus

import (
	"context"
	"encoding/json"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/FocuswithJustin/tamilbible/core/passage"
)

// BookName pairs a book's English and Tamil names as the corpus spells them.
type BookName struct {
	English string `json:"english"`
	Tamil   string `json:"tamil"`
}

// Verse is one verse. Verse numbers are strings in the corpus.
type Verse struct {
	Verse string `json:"verse"`
	Text  string `json:"text"`
}

// Chapter is one chapter of a book.
type Chapter struct {
	Chapter string  `json:"chapter"`
	Verses  []Verse `json:"verses"`
}

// Book is a per-book corpus document.
type Book struct {
	Book     BookName  `json:"book"`
	Chapters []Chapter `json:"chapters"`
}

// Chapter finds a chapter by exact string match.
func (b *Book) Chapter(id string) (*Chapter, bool) {
	for i := range b.Chapters {
		if b.Chapters[i].Chapter == id {
			return &b.Chapters[i], true
		}
	}
	return nil, false
}

// Text returns the text of the verses in span. A single verse gives its own
// text. A range gives the texts of every numbered verse inside it, in
// ascending verse order, joined by one space. Nothing matching gives "".
func (c *Chapter) Text(span passage.Span) string {
	if span.End < span.Start {
		return ""
	}

	type numbered struct {
		n    int
		text string
	}
	var hits []numbered
	for _, v := range c.Verses {
		n, err := strconv.Atoi(v.Verse)
		if err != nil || !span.Contains(n) {
			continue
		}
		if !span.IsRange() {
			return v.Text
		}
		hits = append(hits, numbered{n: n, text: v.Text})
	}

	sort.SliceStable(hits, func(i, j int) bool { return hits[i].n < hits[j].n })
	texts := make([]string, len(hits))
	for i, h := range hits {
		texts[i] = h.text
	}
	return strings.Join(texts, " ")
}

// Index maps lower-cased English book names to corpus names, keeping the
// order of the source file.
type Index struct {
	names []BookName
	byKey map[string]int
}

// NewIndex builds an index. Entries with a blank English name are dropped
// and names are trimmed. A later entry for the same name replaces an
// earlier one.
func NewIndex(names []BookName) *Index {
	ix := &Index{byKey: make(map[string]int, len(names))}
	for _, n := range names {
		n.English = strings.TrimSpace(n.English)
		n.Tamil = strings.TrimSpace(n.Tamil)
		if n.English == "" {
			continue
		}
		key := strings.ToLower(n.English)
		if i, ok := ix.byKey[key]; ok {
			ix.names[i] = n
			continue
		}
		ix.byKey[key] = len(ix.names)
		ix.names = append(ix.names, n)
	}
	return ix
}

// Lookup finds a book by English name, ignoring case.
func (ix *Index) Lookup(english string) (BookName, bool) {
	i, ok := ix.byKey[strings.ToLower(strings.TrimSpace(english))]
	if !ok {
		return BookName{}, false
	}
	return ix.names[i], true
}

// Names returns the indexed books in file order.
func (ix *Index) Names() []BookName {
	out := make([]BookName, len(ix.names))
	copy(out, ix.names)
	return out
}

// Len returns the number of indexed books.
func (ix *Index) Len() int {
	return len(ix.names)
}

// Store reads corpus documents from some backing medium. Book takes the
// English name from the index, in any case.
type Store interface {
	Index(ctx context.Context) (*Index, error)
	Book(ctx context.Context, english string) (*Book, error)
}

type indexEntry struct {
	Book *BookName `json:"book"`
}

// DecodeIndex reads a Books.json array of {"book": {"english", "tamil"}}.
func DecodeIndex(r io.Reader) (*Index, error) {
	var entries []indexEntry
	if err := json.NewDecoder(r).Decode(&entries); err != nil {
		return nil, err
	}
	names := make([]BookName, 0, len(entries))
	for _, e := range entries {
		if e.Book != nil {
			names = append(names, *e.Book)
		}
	}
	return NewIndex(names), nil
}

// DecodeBook reads one per-book document.
func DecodeBook(r io.Reader) (*Book, error) {
	var b Book
	if err := json.NewDecoder(r).Decode(&b); err != nil {
		return nil, err
	}
	return &b, nil
}

// EncodeIndex writes an index in Books.json form.
func EncodeIndex(w io.Writer, ix *Index) error {
	entries := make([]indexEntry, 0, ix.Len())
	for _, n := range ix.Names() {
		entries = append(entries, indexEntry{Book: &n})
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return enc.Encode(entries)
}
