// Package notes groups study notes by the passage they are attached to.
package notes

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/FocuswithJustin/tamilbible/core/errors"
	"github.com/FocuswithJustin/tamilbible/core/ref"
)

// Note is a study note as authored. Position is a citation such as
// "Genesis 1:1".
type Note struct {
	ID       string `json:"id,omitempty"`
	Position string `json:"position"`
	Title    string `json:"title,omitempty"`
	Text     string `json:"text,omitempty"`
	Image    string `json:"image,omitempty"`
}

// Entry is a note whose position resolved.
type Entry struct {
	Note
	PassageID string `json:"passageId"`
	Reference string `json:"reference"`
}

// Resolver resolves a citation or returns nil.
type Resolver interface {
	Resolve(citation string) *ref.Reference
}

// Index maps passage identifiers to the notes attached to them.
type Index struct {
	byPassage map[string][]Entry
	count     int
	skipped   int
}

// Build resolves every note's position and groups the notes by passage
// identifier, keeping input order within a group. Notes without a position
// or whose position does not resolve are skipped.
func Build(notes []Note, r Resolver) *Index {
	idx := &Index{byPassage: make(map[string][]Entry)}
	for _, n := range notes {
		if strings.TrimSpace(n.Position) == "" {
			idx.skipped++
			continue
		}
		resolved := r.Resolve(n.Position)
		if resolved == nil {
			idx.skipped++
			continue
		}
		idx.byPassage[resolved.PassageID] = append(idx.byPassage[resolved.PassageID], Entry{
			Note:      n,
			PassageID: resolved.PassageID,
			Reference: resolved.Reference,
		})
		idx.count++
	}
	return idx
}

// Lookup returns the notes stored under exactly this identifier. A note on
// a range is only found by that range.
func (i *Index) Lookup(passageID string) []Entry {
	entries := i.byPassage[passageID]
	if len(entries) == 0 {
		return nil
	}
	out := make([]Entry, len(entries))
	copy(out, entries)
	return out
}

// Passages returns the identifiers that have notes, sorted.
func (i *Index) Passages() []string {
	ids := make([]string, 0, len(i.byPassage))
	for id := range i.byPassage {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Len returns the number of indexed notes.
func (i *Index) Len() int { return i.count }

// Skipped returns the number of notes that were dropped.
func (i *Index) Skipped() int { return i.skipped }

// Decode reads a JSON array of notes.
func Decode(r io.Reader) ([]Note, error) {
	var notes []Note
	if err := json.NewDecoder(r).Decode(&notes); err != nil {
		return nil, &errors.ValidationError{Field: "notes", Message: "invalid JSON", Err: err}
	}
	return notes, nil
}

// Load reads a JSON array of notes from a file.
func Load(path string) ([]Note, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.NewLoad("notes", path, err)
	}
	defer f.Close()

	notes, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return notes, nil
}
