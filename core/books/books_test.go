package books

import (
	"strings"
	"testing"

	"golang.org/x/text/unicode/norm"
)

func TestCanonical(t *testing.T) {
	r := Canonical()
	if r.Len() != 66 {
		t.Fatalf("Len() = %d, want 66", r.Len())
	}
	if Canonical() != r {
		t.Error("Canonical() should return the same registry each time")
	}

	all := r.Books()
	if all[0].Code != "GEN" || all[65].Code != "REV" {
		t.Errorf("canon order: first %s last %s", all[0].Code, all[65].Code)
	}

	all[0].Name = "mutated"
	if b, _ := r.ByCode("GEN"); b.Name != "Genesis" {
		t.Error("Books() must return a copy")
	}
}

func TestCanonicalEveryKeyResolves(t *testing.T) {
	r := Canonical()
	for _, b := range r.Books() {
		for _, name := range append([]string{b.Name}, b.Aliases...) {
			got, ok := r.Lookup(name)
			if !ok {
				t.Errorf("Lookup(%q) found nothing, want %s", name, b.Code)
				continue
			}
			if got.Code != b.Code {
				t.Errorf("Lookup(%q) = %s, want %s", name, got.Code, b.Code)
			}
		}
		if b.TamilName() == "" {
			t.Errorf("%s has no Tamil alias", b.Code)
		}
	}
}

func TestLookup(t *testing.T) {
	r := Canonical()
	tests := []struct {
		input string
		want  string
	}{
		{"John", "JHN"},
		{"  JOHN  ", "JHN"},
		{"jn.", "JHN"},
		{"1 Cor", "1CO"},
		{"I Corinthians", "1CO"},
		{"II Kings", "2KI"},
		{"iii john", "3JN"},
		{"Song  of   Songs", "SNG"},
		{"Song of Solomon", "SNG"},
		{"“Psalms”", "PSA"},
		{"யோவான்", "JHN"},
		{"1 யோவான்", "1JN"},
		{"வெளிப்படுத்தின  விசேஷம்", "REV"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := r.Lookup(tt.input)
			if !ok {
				t.Fatalf("Lookup(%q) found nothing", tt.input)
			}
			if got.Code != tt.want {
				t.Errorf("Lookup(%q) = %s, want %s", tt.input, got.Code, tt.want)
			}
		})
	}

	for _, miss := range []string{"", "Not A Book", "1cori", "jo"} {
		if b, ok := r.Lookup(miss); ok {
			t.Errorf("Lookup(%q) = %s, want no match", miss, b.Code)
		}
	}
}

func TestLookupDecomposedTamil(t *testing.T) {
	r := Canonical()
	decomposed := norm.NFD.String("யோவான்")
	got, ok := r.Lookup(decomposed)
	if !ok || got.Code != "JHN" {
		t.Errorf("Lookup(NFD John) = %v, %v", got.Code, ok)
	}
}

func TestMatchTamilPrefix(t *testing.T) {
	r := Canonical()
	tests := []struct {
		input string
		want  string // "" means no match
	}{
		{"யோவா", "JHN"},
		{"யோவ", ""},   // John and Joel
		{"யோ", ""},    // five books
		{"எஸ", ""},    // Ezra and Esther
		{"எஸ்ற", "EZR"},
		{"1 யோ", "1JN"},
		{"ஆதி", "GEN"},
		{"john", ""},  // not Tamil
		{"", ""},
		{"கிறிஸ்து", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := r.MatchTamilPrefix(tt.input)
			if tt.want == "" {
				if ok {
					t.Errorf("MatchTamilPrefix(%q) = %s, want no match", tt.input, got.Code)
				}
				return
			}
			if !ok || got.Code != tt.want {
				t.Errorf("MatchTamilPrefix(%q) = %s (%v), want %s", tt.input, got.Code, ok, tt.want)
			}
		})
	}
}

func TestByCode(t *testing.T) {
	r := Canonical()
	b, ok := r.ByCode("1SA")
	if !ok || b.Name != "1 Samuel" {
		t.Errorf("ByCode(1SA) = %+v, %v", b, ok)
	}
	if _, ok := r.ByCode("jhn"); ok {
		t.Error("codes are case sensitive")
	}
	if _, ok := r.ByCode("XYZ"); ok {
		t.Error("ByCode(XYZ) should miss")
	}
}

func TestNewRegistryRejectsCollisions(t *testing.T) {
	tests := []struct {
		name string
		defs []Book
		want string
	}{
		{
			name: "duplicate code",
			defs: []Book{{Code: "AAA", Name: "One"}, {Code: "AAA", Name: "Two"}},
			want: "duplicate book code",
		},
		{
			name: "alias claimed twice",
			defs: []Book{
				{Code: "AAA", Name: "One", Aliases: []string{"x"}},
				{Code: "BBB", Name: "Two", Aliases: []string{"X."}},
			},
			want: "claimed by both",
		},
		{
			name: "empty key",
			defs: []Book{{Code: "AAA", Name: "One", Aliases: []string{"..."}}},
			want: "empty key",
		},
		{
			name: "missing name",
			defs: []Book{{Code: "AAA"}},
			want: "missing code or name",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRegistry(tt.defs)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}

	// A book may repeat its own key (canonical name and alias "ezra").
	if _, err := NewRegistry([]Book{{Code: "EZR", Name: "Ezra", Aliases: []string{"ezra"}}}); err != nil {
		t.Errorf("self-duplicate key rejected: %v", err)
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"John", "john"},
		{"  1   Cor.  ", "1 cor"},
		{"I John", "1 john"},
		{"ii sam", "2 sam"},
		{"III John", "3 john"},
		{"Isaiah", "isaiah"},
		{"iv", "iv"},
		{"Song; of: Songs,", "song of songs"},
		{"‘Ps’", "ps"},
		{"\tPsalm\n", "psalm"},
	}
	for _, tt := range tests {
		if got := Normalize(tt.input); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestHasTamil(t *testing.T) {
	if !HasTamil("see யோவான் 3:16") {
		t.Error("HasTamil should detect Tamil script")
	}
	if HasTamil("John 3:16") {
		t.Error("HasTamil false positive on ASCII")
	}
}

func TestFileSlug(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Genesis", "genesis"},
		{"1 Samuel", "1-samuel"},
		{"Song of Songs", "song-of-songs"},
		{"  Song of   Solomon! ", "song-of-solomon"},
		{"Psalms", "psalms"},
	}
	for _, tt := range tests {
		if got := FileSlug(tt.input); got != tt.want {
			t.Errorf("FileSlug(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
