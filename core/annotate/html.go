package annotate

import (
	"errors"
	"html"
	"io"
	"strings"

	nethtml "golang.org/x/net/html"

	"github.com/FocuswithJustin/tamilbible/core/ref"
)

// skipElements hold text that is never scanned for citations.
var skipElements = map[string]bool{
	"script":   true,
	"style":    true,
	"code":     true,
	"pre":      true,
	"textarea": true,
}

var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"source": true, "track": true, "wbr": true,
}

type openElement struct {
	name string
	skip bool
}

// HTML annotates the text nodes of an HTML fragment. Markup and every byte
// of text outside a resolved citation are copied through unchanged,
// entities included.
// Text already inside a marker is left alone, which makes a second pass a
// no-op.
func HTML(src string, r Resolver) (string, error) {
	z := nethtml.NewTokenizer(strings.NewReader(src))
	var sb strings.Builder
	sb.Grow(len(src))
	var stack []openElement

	for {
		tt := z.Next()
		switch tt {
		case nethtml.ErrorToken:
			if errors.Is(z.Err(), io.EOF) {
				return sb.String(), nil
			}
			return "", z.Err()

		case nethtml.TextToken:
			// Text unescapes in place, so keep a copy of the raw bytes.
			raw := append([]byte(nil), z.Raw()...)
			if skipping(stack) {
				sb.Write(raw)
				continue
			}
			segments := Scan(string(raw), rawResolver{r})
			if !hasCitation(segments) {
				sb.Write(raw)
				continue
			}
			for _, seg := range segments {
				if seg.Ref == nil {
					sb.WriteString(seg.Text)
					continue
				}
				sb.WriteString(Marker(html.UnescapeString(seg.Citation), seg.Ref))
			}

		case nethtml.StartTagToken:
			sb.Write(z.Raw())
			name, hasAttr := z.TagName()
			tag := string(name)
			if voidElements[tag] {
				continue
			}
			skip := skipElements[tag]
			for hasAttr && !skip {
				var key, val []byte
				key, val, hasAttr = z.TagAttr()
				if string(key) == "class" && hasClass(string(val), MarkerClass) {
					skip = true
				}
			}
			stack = append(stack, openElement{name: tag, skip: skip})

		case nethtml.EndTagToken:
			sb.Write(z.Raw())
			name, _ := z.TagName()
			stack = closeElement(stack, string(name))

		default:
			sb.Write(z.Raw())
		}
	}
}

// rawResolver resolves citations taken from undecoded text.
type rawResolver struct {
	Resolver
}

func (r rawResolver) Resolve(citation string) *ref.Reference {
	return r.Resolver.Resolve(html.UnescapeString(citation))
}

func skipping(stack []openElement) bool {
	for _, el := range stack {
		if el.skip {
			return true
		}
	}
	return false
}

func hasCitation(segments []Segment) bool {
	for _, seg := range segments {
		if seg.Ref != nil {
			return true
		}
	}
	return false
}

func hasClass(attr, class string) bool {
	for _, c := range strings.Fields(attr) {
		if c == class {
			return true
		}
	}
	return false
}

// closeElement pops back to the nearest open element with the given name.
// A stray end tag leaves the stack as it was.
func closeElement(stack []openElement, name string) []openElement {
	for i := len(stack) - 1; i >= 0; i-- {
		if stack[i].name == name {
			return stack[:i]
		}
	}
	return stack
}
