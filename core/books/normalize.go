package books

import (
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var (
	punctuation = strings.NewReplacer(
		".", "", ",", "", ";", "", ":", "",
		"'", "", `"`, "",
		"“", "", "”", "", "‘", "", "’", "",
	)
	romanNumeral = regexp.MustCompile(`\b(i{1,3})\b`)
	slugBreak    = regexp.MustCompile(`[^a-z0-9]+`)
)

// Normalize folds a book name into its lookup key. Aliases and user input go
// through the same function so that composed and decomposed Tamil vowel signs
// compare equal.
func Normalize(s string) string {
	s = norm.NFC.String(s)
	s = strings.ToLower(s)
	s = punctuation.Replace(s)
	s = romanNumeral.ReplaceAllStringFunc(s, func(m string) string {
		return strconv.Itoa(len(m))
	})
	return strings.Join(strings.Fields(s), " ")
}

// HasTamil reports whether s contains a rune from the Tamil block.
func HasTamil(s string) bool {
	for _, r := range s {
		if r >= 0x0B80 && r <= 0x0BFF {
			return true
		}
	}
	return false
}

// FileSlug turns an English book name into the base name of its corpus
// file: "1 Samuel" becomes "1-samuel".
func FileSlug(name string) string {
	return strings.Trim(slugBreak.ReplaceAllString(strings.ToLower(name), "-"), "-")
}
