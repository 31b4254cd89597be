// Package passage handles canonical passage identifiers of the form
// BOOK.CHAPTER.VERSE or BOOK.CHAPTER.START-END, e.g. "JHN.3.16" or
// "1CO.13.4-7".
package passage

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/FocuswithJustin/tamilbible/core/errors"
)

var (
	// ErrInvalidFormat is returned when an identifier is not three
	// non-empty dot-separated parts.
	ErrInvalidFormat = fmt.Errorf("invalid passage format: %w", errors.ErrInvalidInput)
	// ErrUnknownBook is returned when an identifier names a code that is not
	// in the registry.
	ErrUnknownBook = fmt.Errorf("unknown book code: %w", errors.ErrInvalidInput)
)

// ID is a parsed passage identifier. Parts are kept as written.
type ID struct {
	Book    string `json:"book"`
	Chapter string `json:"chapter"`
	Verses  string `json:"verses"`
}

// Parse splits an identifier into its three parts.
func Parse(s string) (ID, error) {
	parts := strings.Split(s, ".")
	if len(parts) != 3 {
		return ID{}, fmt.Errorf("%w: %q", ErrInvalidFormat, s)
	}
	for _, p := range parts {
		if p == "" {
			return ID{}, fmt.Errorf("%w: %q", ErrInvalidFormat, s)
		}
	}
	return ID{Book: parts[0], Chapter: parts[1], Verses: parts[2]}, nil
}

// String returns the identifier in BOOK.CHAPTER.VERSES form.
func (id ID) String() string {
	return id.Book + "." + id.Chapter + "." + id.Verses
}

// Span parses the verse part of the identifier.
func (id ID) Span() (Span, error) {
	return ParseSpan(id.Verses)
}

// Span is an inclusive verse range. A single verse has End equal to Start.
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// spanGrammar is the participle grammar for a verse or verse range.
//
//nolint:govet // participle grammar tags are not standard struct tags
type spanGrammar struct {
	Start int  `parser:"@Int"`
	End   *int `parser:"( \"-\" @Int )?"`
}

// spanLexer defines the lexer for verse specs.
var spanLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Int", Pattern: `[0-9]+`},
	{Name: "Punct", Pattern: `-`},
})

var spanParser = participle.MustBuild[spanGrammar](
	participle.Lexer(spanLexer),
)

// ParseSpan parses "16" or "16-18".
func ParseSpan(spec string) (Span, error) {
	parsed, err := spanParser.ParseString("", spec)
	if err != nil {
		return Span{}, fmt.Errorf("invalid verse spec %q: %w", spec, err)
	}
	span := Span{Start: parsed.Start, End: parsed.Start}
	if parsed.End != nil {
		span.End = *parsed.End
	}
	return span, nil
}

// IsRange returns true if the span covers more than one verse.
func (s Span) IsRange() bool {
	return s.End > s.Start
}

// Contains reports whether verse v falls inside the span.
func (s Span) Contains(v int) bool {
	return v >= s.Start && v <= s.End
}

// String formats the span the way it appears in identifiers.
func (s Span) String() string {
	if s.End != s.Start {
		return strconv.Itoa(s.Start) + "-" + strconv.Itoa(s.End)
	}
	return strconv.Itoa(s.Start)
}
