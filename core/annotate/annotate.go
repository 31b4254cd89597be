// Package annotate finds parenthesized Bible citations in prose, such as
// "(John 3:16)", and turns the ones that resolve into interactive markers.
//
// The marker is a button carrying the passage identifier and the citation
// text:
//
//	<button type="button" class="bible-ref" data-passage="JHN.3.16" data-ref="John 3:16">John 3:16</button>
//
// Text works on plain text and HTML walks an HTML fragment. Both use the
// same resolver, so a citation is recognized the same way wherever it
// appears.
package annotate

import (
	"html"
	"regexp"
	"strings"

	"github.com/FocuswithJustin/tamilbible/core/ref"
)

// MarkerClass is the class attribute that identifies an existing marker.
const MarkerClass = "bible-ref"

// Resolver resolves a citation or returns nil.
type Resolver interface {
	Resolve(citation string) *ref.Reference
}

var candidatePattern = regexp.MustCompile(`\(([^()]+?)\)`)

// Segment is a run of the input. Ref is nil for literal text, including
// parenthesized candidates that did not resolve.
type Segment struct {
	Text     string         // original text of the run, parentheses included
	Citation string         // trimmed inner text when Ref is set
	Ref      *ref.Reference // resolved citation
}

// Scan splits text into literal runs and resolved citations. Concatenating
// the Text of every segment gives back the input.
func Scan(text string, r Resolver) []Segment {
	var segments []Segment
	last := 0
	for _, loc := range candidatePattern.FindAllStringSubmatchIndex(text, -1) {
		citation := strings.TrimSpace(text[loc[2]:loc[3]])
		resolved := r.Resolve(citation)
		if resolved == nil {
			continue
		}
		if loc[0] > last {
			segments = append(segments, Segment{Text: text[last:loc[0]]})
		}
		segments = append(segments, Segment{
			Text:     text[loc[0]:loc[1]],
			Citation: citation,
			Ref:      resolved,
		})
		last = loc[1]
	}
	if last < len(text) {
		segments = append(segments, Segment{Text: text[last:]})
	}
	return segments
}

// Marker renders the interactive marker for a resolved citation.
func Marker(citation string, r *ref.Reference) string {
	var sb strings.Builder
	sb.WriteString(`<button type="button" class="`)
	sb.WriteString(MarkerClass)
	sb.WriteString(`" data-passage="`)
	sb.WriteString(html.EscapeString(r.PassageID))
	sb.WriteString(`" data-ref="`)
	sb.WriteString(html.EscapeString(citation))
	sb.WriteString(`">`)
	sb.WriteString(html.EscapeString(citation))
	sb.WriteString(`</button>`)
	return sb.String()
}

// Text annotates plain text and returns HTML. Literal runs are escaped.
func Text(text string, r Resolver) string {
	var sb strings.Builder
	for _, seg := range Scan(text, r) {
		if seg.Ref == nil {
			sb.WriteString(html.EscapeString(seg.Text))
			continue
		}
		sb.WriteString(Marker(seg.Citation, seg.Ref))
	}
	return sb.String()
}

// Count returns the number of citations in text that resolve.
func Count(text string, r Resolver) int {
	n := 0
	for _, seg := range Scan(text, r) {
		if seg.Ref != nil {
			n++
		}
	}
	return n
}
