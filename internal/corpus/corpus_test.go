package corpus

import (
	"bytes"
	"strings"
	"testing"

	"github.com/FocuswithJustin/tamilbible/core/passage"
)

func chapterOf(pairs ...string) *Chapter {
	c := &Chapter{Chapter: "1"}
	for i := 0; i+1 < len(pairs); i += 2 {
		c.Verses = append(c.Verses, Verse{Verse: pairs[i], Text: pairs[i+1]})
	}
	return c
}

func TestChapterText(t *testing.T) {
	ch := chapterOf(
		"1", "one",
		"3", "three",
		"2", "two",
		"x", "ignored",
		"4", "four",
	)

	tests := []struct {
		name string
		span passage.Span
		want string
	}{
		{"single", passage.Span{Start: 2, End: 2}, "two"},
		{"range sorted", passage.Span{Start: 1, End: 3}, "one two three"},
		{"range clipped", passage.Span{Start: 3, End: 9}, "three four"},
		{"missing single", passage.Span{Start: 7, End: 7}, ""},
		{"missing range", passage.Span{Start: 8, End: 9}, ""},
		{"inverted", passage.Span{Start: 3, End: 1}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ch.Text(tt.span); got != tt.want {
				t.Errorf("Text(%v) = %q, want %q", tt.span, got, tt.want)
			}
		})
	}
}

func TestChapterTextLeadingZeroVerse(t *testing.T) {
	ch := chapterOf("03", "three")
	if got := ch.Text(passage.Span{Start: 3, End: 3}); got != "three" {
		t.Errorf("Text = %q, want verse matched numerically", got)
	}
}

func TestChapterTextDuplicateVerseFirstWins(t *testing.T) {
	ch := chapterOf("5", "first", "5", "second")
	if got := ch.Text(passage.Span{Start: 5, End: 5}); got != "first" {
		t.Errorf("Text = %q, want first", got)
	}
}

func TestBookChapterExactMatch(t *testing.T) {
	b := &Book{Chapters: []Chapter{{Chapter: "1"}, {Chapter: "10"}}}
	if _, ok := b.Chapter("10"); !ok {
		t.Error("chapter 10 not found")
	}
	if _, ok := b.Chapter("01"); ok {
		t.Error("chapter 01 should not match 1")
	}
}

func TestNewIndex(t *testing.T) {
	ix := NewIndex([]BookName{
		{English: " Genesis ", Tamil: "ஆதியாகமம்"},
		{English: "", Tamil: "blank"},
		{English: "John", Tamil: "old"},
		{English: "JOHN", Tamil: "யோவான்"},
	})

	if ix.Len() != 2 {
		t.Fatalf("Len = %d, want 2", ix.Len())
	}
	g, ok := ix.Lookup("genesis")
	if !ok || g.English != "Genesis" || g.Tamil != "ஆதியாகமம்" {
		t.Errorf("Lookup(genesis) = %+v, %v", g, ok)
	}
	j, ok := ix.Lookup("John")
	if !ok || j.Tamil != "யோவான்" {
		t.Errorf("Lookup(John) = %+v, %v; want later entry", j, ok)
	}
	if _, ok := ix.Lookup("Exodus"); ok {
		t.Error("Exodus should be missing")
	}

	names := ix.Names()
	names[0].English = "changed"
	if ix.Names()[0].English != "Genesis" {
		t.Error("Names leaked internal slice")
	}
}

func TestDecodeIndex(t *testing.T) {
	src := `[
		{"book": {"english": "Genesis", "tamil": "ஆதியாகமம்"}},
		{"other": 1},
		{"book": {"english": "Exodus", "tamil": "யாத்திராகமம்"}}
	]`
	ix, err := DecodeIndex(strings.NewReader(src))
	if err != nil {
		t.Fatalf("DecodeIndex failed: %v", err)
	}
	if ix.Len() != 2 {
		t.Errorf("Len = %d, want 2", ix.Len())
	}

	var buf bytes.Buffer
	if err := EncodeIndex(&buf, ix); err != nil {
		t.Fatalf("EncodeIndex failed: %v", err)
	}
	again, err := DecodeIndex(&buf)
	if err != nil {
		t.Fatalf("re-decode failed: %v", err)
	}
	if again.Names()[1] != ix.Names()[1] {
		t.Errorf("re-decoded %+v, want %+v", again.Names()[1], ix.Names()[1])
	}
}

func TestDecodeIndexRejectsObject(t *testing.T) {
	if _, err := DecodeIndex(strings.NewReader(`{"book": {}}`)); err == nil {
		t.Error("expected error for non-array index")
	}
}

func TestDecodeBook(t *testing.T) {
	src := `{"book": {"english": "John", "tamil": "யோவான்"},
		"chapters": [{"chapter": "3", "verses": [{"verse": "16", "text": "For God so loved"}]}]}`
	b, err := DecodeBook(strings.NewReader(src))
	if err != nil {
		t.Fatalf("DecodeBook failed: %v", err)
	}
	ch, ok := b.Chapter("3")
	if !ok {
		t.Fatal("chapter 3 missing")
	}
	if got := ch.Text(passage.Span{Start: 16, End: 16}); got != "For God so loved" {
		t.Errorf("Text = %q", got)
	}
}
