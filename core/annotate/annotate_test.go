package annotate

import (
	"strings"
	"testing"

	"github.com/FocuswithJustin/tamilbible/core/books"
	"github.com/FocuswithJustin/tamilbible/core/ref"
)

func newResolver() *ref.Resolver {
	return ref.NewResolver(books.Canonical())
}

const john316 = `<button type="button" class="bible-ref" data-passage="JHN.3.16" data-ref="John 3:16">John 3:16</button>`

func TestText(t *testing.T) {
	r := newResolver()
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "one resolves one does not",
			input: "See (John 3:16) and (Not A Book 9:9) for context.",
			want:  "See " + john316 + " and (Not A Book 9:9) for context.",
		},
		{
			name:  "padding inside parentheses",
			input: "( John 3:16 )",
			want:  john316,
		},
		{
			name:  "double parentheses",
			input: "((John 3:16))",
			want:  "(" + john316 + ")",
		},
		{
			name:  "no candidates",
			input: "Nothing to see here.",
			want:  "Nothing to see here.",
		},
		{
			name:  "literal text is escaped",
			input: "a < b (John 3:16)",
			want:  "a &lt; b " + john316,
		},
		{
			name:  "range",
			input: "(1 Cor 13:4-7)",
			want:  `<button type="button" class="bible-ref" data-passage="1CO.13.4-7" data-ref="1 Cor 13:4-7">1 Cor 13:4-7</button>`,
		},
		{
			name:  "tamil",
			input: "(யோவான் 3:16)",
			want:  `<button type="button" class="bible-ref" data-passage="JHN.3.16" data-ref="யோவான் 3:16">யோவான் 3:16</button>`,
		},
		{
			name:  "empty parentheses",
			input: "() (John)",
			want:  "() (John)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Text(tt.input, r); got != tt.want {
				t.Errorf("Text(%q)\n got  %s\n want %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestScanRoundTrip(t *testing.T) {
	r := newResolver()
	inputs := []string{
		"See (John 3:16) and (Not A Book 9:9) for context.",
		"(Gen 1:1)(Gen 1:2)",
		"no parens",
		"",
		"unbalanced (John 3:16",
	}
	for _, input := range inputs {
		var sb strings.Builder
		for _, seg := range Scan(input, r) {
			sb.WriteString(seg.Text)
		}
		if sb.String() != input {
			t.Errorf("segments of %q rebuild to %q", input, sb.String())
		}
	}
}

func TestScanSegments(t *testing.T) {
	segs := Scan("(Gen 1:1)(Gen 1:2) end", newResolver())
	if len(segs) != 3 {
		t.Fatalf("got %d segments, want 3: %+v", len(segs), segs)
	}
	if segs[0].Ref == nil || segs[0].Ref.PassageID != "GEN.1.1" {
		t.Errorf("segment 0 = %+v", segs[0])
	}
	if segs[1].Ref == nil || segs[1].Ref.PassageID != "GEN.1.2" {
		t.Errorf("segment 1 = %+v", segs[1])
	}
	if segs[2].Ref != nil || segs[2].Text != " end" {
		t.Errorf("segment 2 = %+v", segs[2])
	}
}

func TestCount(t *testing.T) {
	r := newResolver()
	if n := Count("(John 3:16) (Ps 23:1) (Nope 1:1)", r); n != 2 {
		t.Errorf("Count = %d, want 2", n)
	}
}

func TestHTML(t *testing.T) {
	r := newResolver()
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "paragraph",
			input: "<p>See (John 3:16) and (Not A Book 9:9).</p>",
			want:  "<p>See " + john316 + " and (Not A Book 9:9).</p>",
		},
		{
			name:  "markup preserved byte for byte",
			input: `<DIV Class="x"><p>Love &amp; (Nope 1:1)</p><br></DIV>`,
			want:  `<DIV Class="x"><p>Love &amp; (Nope 1:1)</p><br></DIV>`,
		},
		{
			name:  "entities in annotated text",
			input: "<p>Tom &amp; Jerry (John 3:16)</p>",
			want:  "<p>Tom &amp; Jerry " + john316 + "</p>",
		},
		{
			name:  "existing marker untouched",
			input: `<button type="button" class="bible-ref" data-passage="JHN.3.16" data-ref="John 3:16">(John 3:16)</button>`,
			want:  `<button type="button" class="bible-ref" data-passage="JHN.3.16" data-ref="John 3:16">(John 3:16)</button>`,
		},
		{
			name:  "script and code untouched",
			input: "<script>var s = '(John 3:16)';</script><code>(John 3:16)</code><p>(John 3:16)</p>",
			want:  "<script>var s = '(John 3:16)';</script><code>(John 3:16)</code><p>" + john316 + "</p>",
		},
		{
			name:  "nested inside marker",
			input: `<span class="note bible-ref"><em>(John 3:16)</em></span> (John 3:16)`,
			want:  `<span class="note bible-ref"><em>(John 3:16)</em></span> ` + john316,
		},
		{
			name:  "unresolved text keeps its bytes",
			input: `<p>See (John 3:16) and (Paul's "note" 9:9)&nbsp;x</p>`,
			want:  `<p>See ` + john316 + ` and (Paul's "note" 9:9)&nbsp;x</p>`,
		},
		{
			name:  "entity inside a citation",
			input: "<p>(John&#32;3:16) &lt;b&gt;</p>",
			want:  "<p>" + john316 + " &lt;b&gt;</p>",
		},
		{
			name:  "citation split across elements is not matched",
			input: "<p>(John <em>3:16</em>)</p>",
			want:  "<p>(John <em>3:16</em>)</p>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := HTML(tt.input, r)
			if err != nil {
				t.Fatalf("HTML failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("HTML(%q)\n got  %s\n want %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestHTMLIdempotent(t *testing.T) {
	r := newResolver()
	inputs := []string{
		"<p>See (John 3:16) and (Ps 23:1-3).</p>",
		"(ஆதியாகமம் 1:1) plain",
		"<ul><li>(Rom 8:28)</li><li>(Nope 2:2)</li></ul>",
	}
	for _, input := range inputs {
		once, err := HTML(input, r)
		if err != nil {
			t.Fatal(err)
		}
		twice, err := HTML(once, r)
		if err != nil {
			t.Fatal(err)
		}
		if once != twice {
			t.Errorf("second pass changed output\n once  %s\n twice %s", once, twice)
		}
	}
}

func TestHTMLMatchesText(t *testing.T) {
	r := newResolver()
	input := "Read (John 3:16) today."
	fromHTML, err := HTML(input, r)
	if err != nil {
		t.Fatal(err)
	}
	if fromText := Text(input, r); fromHTML != fromText {
		t.Errorf("HTML and Text disagree\n html %s\n text %s", fromHTML, fromText)
	}
}
