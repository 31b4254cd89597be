// Package books holds the registry of canonical Bible books and the alias
// keys used to find them from English abbreviations or Tamil names.
//
// A Registry is immutable once built. Callers obtain one from Canonical or
// NewRegistry and pass it to whatever needs book lookups.
package books

import (
	"fmt"
	"strings"
	"sync"
)

// Book is one canonical book of the Bible.
type Book struct {
	Code    string   `json:"code"`    // three-character code, e.g. "JHN", "1SA"
	Name    string   `json:"name"`    // English display name
	Aliases []string `json:"aliases"` // abbreviations and the Tamil name
}

// TamilName returns the first alias written in Tamil script, or "".
func (b Book) TamilName() string {
	for _, a := range b.Aliases {
		if HasTamil(a) {
			return a
		}
	}
	return ""
}

type tamilKey struct {
	key   string
	index int
}

// Registry maps normalized names and aliases to books.
type Registry struct {
	books  []Book
	byCode map[string]int
	byKey  map[string]int
	tamil  []tamilKey
}

// NewRegistry builds a registry from book definitions. It fails when two
// different books claim the same code or the same normalized key.
func NewRegistry(defs []Book) (*Registry, error) {
	r := &Registry{
		books:  make([]Book, 0, len(defs)),
		byCode: make(map[string]int, len(defs)),
		byKey:  make(map[string]int, len(defs)*4),
	}

	for _, def := range defs {
		if def.Code == "" || def.Name == "" {
			return nil, fmt.Errorf("book definition missing code or name: %+v", def)
		}
		if prev, dup := r.byCode[def.Code]; dup {
			return nil, fmt.Errorf("duplicate book code %s (%s and %s)", def.Code, r.books[prev].Name, def.Name)
		}

		idx := len(r.books)
		r.books = append(r.books, Book{
			Code:    def.Code,
			Name:    def.Name,
			Aliases: append([]string(nil), def.Aliases...),
		})
		r.byCode[def.Code] = idx

		for _, name := range append([]string{def.Name}, def.Aliases...) {
			key := Normalize(name)
			if key == "" {
				return nil, fmt.Errorf("alias %q of %s normalizes to an empty key", name, def.Code)
			}
			if prev, dup := r.byKey[key]; dup {
				if prev != idx {
					return nil, fmt.Errorf("alias key %q claimed by both %s and %s", key, r.books[prev].Code, def.Code)
				}
				continue
			}
			r.byKey[key] = idx
			if HasTamil(key) {
				r.tamil = append(r.tamil, tamilKey{key: key, index: idx})
			}
		}
	}

	return r, nil
}

var canonical = sync.OnceValue(func() *Registry {
	r, err := NewRegistry(canon)
	if err != nil {
		panic("books: invalid canonical table: " + err.Error())
	}
	return r
})

// Canonical returns the registry of the 66-book Protestant canon.
func Canonical() *Registry {
	return canonical()
}

// Lookup finds a book by exact normalized name or alias.
func (r *Registry) Lookup(name string) (Book, bool) {
	idx, ok := r.byKey[Normalize(name)]
	if !ok {
		return Book{}, false
	}
	return r.books[idx], true
}

// MatchTamilPrefix finds the single book whose Tamil alias begins with the
// normalized name. Input without Tamil script, or a prefix shared by more
// than one book, is no match.
func (r *Registry) MatchTamilPrefix(name string) (Book, bool) {
	key := Normalize(name)
	if key == "" || !HasTamil(key) {
		return Book{}, false
	}

	found := -1
	for _, tk := range r.tamil {
		if !strings.HasPrefix(tk.key, key) {
			continue
		}
		if found >= 0 && found != tk.index {
			return Book{}, false
		}
		found = tk.index
	}
	if found < 0 {
		return Book{}, false
	}
	return r.books[found], true
}

// ByCode finds a book by its canonical code.
func (r *Registry) ByCode(code string) (Book, bool) {
	idx, ok := r.byCode[code]
	if !ok {
		return Book{}, false
	}
	return r.books[idx], true
}

// Books returns the books in canon order.
func (r *Registry) Books() []Book {
	out := make([]Book, len(r.books))
	copy(out, r.books)
	return out
}

// Len returns the number of books.
func (r *Registry) Len() int {
	return len(r.books)
}
