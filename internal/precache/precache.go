// Package precache builds the list of URLs the offline reader fetches ahead
// of time: every article page and every bundled book document.
package precache

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// Manifest is the precache list.
type Manifest struct {
	Articles    []string `json:"articles"`
	BibleBooks  []string `json:"bibleBooks"`
	GeneratedAt string   `json:"generatedAt,omitempty"`
}

// Build lists articles (*.md under articlesDir) and book documents (*.json
// under booksDir). A directory that cannot be read contributes nothing.
func Build(articlesDir, booksDir string) Manifest {
	m := Manifest{Articles: []string{}, BibleBooks: []string{}}
	for _, name := range listFiles(articlesDir, ".md") {
		m.Articles = append(m.Articles, "/articles/"+name[:len(name)-len(".md")])
	}
	for _, name := range listFiles(booksDir, ".json") {
		m.BibleBooks = append(m.BibleBooks, "/local-bible/books/"+name)
	}
	return m
}

// Stamped returns m with GeneratedAt set.
func (m Manifest) Stamped(t time.Time) Manifest {
	m.GeneratedAt = t.UTC().Format(time.RFC3339)
	return m
}

// Write encodes m as indented JSON followed by a newline.
func Write(w io.Writer, m Manifest) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(m)
}

// WriteFile writes m to path.
func WriteFile(path string, m Manifest) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Write(f, m); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// listFiles returns the regular files in dir whose names end in ext
// (compared case-insensitively), sorted by name.
func listFiles(dir, ext string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.HasSuffix(strings.ToLower(e.Name()), ext) {
			out = append(out, e.Name())
		}
	}
	sort.Strings(out)
	return out
}
