// Package ref resolves human-written Bible citations such as "John 3:16",
// "1 Cor 13:4-7" or "யோவான் 3:16" to canonical passage identifiers.
package ref

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/FocuswithJustin/tamilbible/core/books"
	"github.com/FocuswithJustin/tamilbible/core/passage"
)

// Reference is a resolved citation.
type Reference struct {
	PassageID  string `json:"passageId"`  // e.g. "JHN.3.16"
	Reference  string `json:"reference"`  // e.g. "John 3:16"
	Book       string `json:"book"`       // canonical code
	Chapter    int    `json:"chapter"`
	VerseStart int    `json:"verseStart"`
	VerseEnd   int    `json:"verseEnd,omitempty"` // 0 for a single verse
}

var (
	strictPattern = regexp.MustCompile(`^([1-3]?\s*[\p{L}\p{M}][\p{L}\p{M}.\s]*)\s+(\d+):(\d+(?:-\d+)?)$`)
	loosePattern  = regexp.MustCompile(`^([1-3]?\s*[\p{L}\p{M}][\p{L}\p{M}.\s]*?)\s+(\d+):(\d+(?:-\d+)?)(?:[^\d-].*)?$`)
)

// MatchStrict matches a citation that is exactly book, chapter and verse.
func MatchStrict(s string) (book, chapter, verses string, ok bool) {
	return match(strictPattern, s)
}

// MatchLoose matches a citation that may carry trailing text after the
// verse number, as in "John 3:16." or "John 3:16a". The text may not start
// with a hyphen, so a malformed range such as "John 3:4-5-6" is rejected
// rather than cut short.
func MatchLoose(s string) (book, chapter, verses string, ok bool) {
	return match(loosePattern, s)
}

func match(re *regexp.Regexp, s string) (string, string, string, bool) {
	m := re.FindStringSubmatch(s)
	if m == nil {
		return "", "", "", false
	}
	return m[1], m[2], m[3], true
}

// Resolver turns citations into references against a book registry.
type Resolver struct {
	registry *books.Registry
}

// NewResolver creates a resolver over the given registry.
func NewResolver(registry *books.Registry) *Resolver {
	return &Resolver{registry: registry}
}

// Registry returns the registry the resolver looks books up in.
func (r *Resolver) Registry() *books.Registry {
	return r.registry
}

// Resolve parses a citation. It returns nil when the citation does not have
// the book chapter:verse shape, names no known book, or carries malformed
// numbers.
func (r *Resolver) Resolve(citation string) *Reference {
	s := strings.Join(strings.Fields(citation), " ")
	if s == "" {
		return nil
	}

	bookPart, chapter, verses, ok := MatchStrict(s)
	if !ok {
		bookPart, chapter, verses, ok = MatchLoose(s)
	}
	if !ok {
		return nil
	}

	chapterNum, span, ok := parseNumbers(chapter, verses)
	if !ok {
		return nil
	}

	book, ok := r.findBook(bookPart)
	if !ok {
		return nil
	}

	ref := &Reference{
		PassageID:  passage.ID{Book: book.Code, Chapter: chapter, Verses: verses}.String(),
		Reference:  book.Name + " " + chapter + ":" + verses,
		Book:       book.Code,
		Chapter:    chapterNum,
		VerseStart: span.Start,
	}
	if span.IsRange() {
		ref.VerseEnd = span.End
	}
	return ref
}

// BookCode returns the code of a bare book name, using the same lookup
// order as Resolve.
func (r *Resolver) BookCode(name string) (string, bool) {
	book, ok := r.findBook(name)
	if !ok {
		return "", false
	}
	return book.Code, true
}

func (r *Resolver) findBook(name string) (books.Book, bool) {
	if book, ok := r.registry.Lookup(name); ok {
		return book, true
	}
	return r.registry.MatchTamilPrefix(name)
}

// parseNumbers accepts positive numbers without leading zeros and ranges
// whose end is past their start.
func parseNumbers(chapter, verses string) (int, passage.Span, bool) {
	if !canonicalNumber(chapter) {
		return 0, passage.Span{}, false
	}
	start, end, isRange := strings.Cut(verses, "-")
	if !canonicalNumber(start) || (isRange && !canonicalNumber(end)) {
		return 0, passage.Span{}, false
	}

	chapterNum, err := strconv.Atoi(chapter)
	if err != nil {
		return 0, passage.Span{}, false
	}
	span, err := passage.ParseSpan(verses)
	if err != nil {
		return 0, passage.Span{}, false
	}
	if isRange && span.End <= span.Start {
		return 0, passage.Span{}, false
	}
	return chapterNum, span, true
}

func canonicalNumber(s string) bool {
	return s != "" && s[0] != '0'
}
