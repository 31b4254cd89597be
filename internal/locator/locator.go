// Package locator finds passage text by identifier. A Locator reads one
// corpus and loads each book at most once; a Service routes lookups to the
// locator or a remote provider and keeps results in a verse cache.
package locator

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/FocuswithJustin/tamilbible/core/books"
	bterrors "github.com/FocuswithJustin/tamilbible/core/errors"
	"github.com/FocuswithJustin/tamilbible/core/passage"
	"github.com/FocuswithJustin/tamilbible/internal/cache"
	"github.com/FocuswithJustin/tamilbible/internal/corpus"
	"github.com/FocuswithJustin/tamilbible/internal/logging"
)

// Passage is the text found for a passage identifier.
type Passage struct {
	ID        string `json:"id"`
	Reference string `json:"reference"`
	Content   string `json:"content"`
	Source    string `json:"source,omitempty"`
}

const indexKey = "index"

// Locator looks passages up in one corpus. The books index and each book
// document are loaded on first use and kept for the life of the Locator.
// Concurrent lookups in the same unloaded book share one load, and a failed
// load is retried by the next lookup.
type Locator struct {
	registry *books.Registry
	store    corpus.Store
	source   string
	index    *cache.Loader[*corpus.Index]
	books    *cache.Loader[*corpus.Book]
}

// New creates a locator over store. source names the corpus in results.
func New(registry *books.Registry, store corpus.Store, source string) *Locator {
	l := &Locator{
		registry: registry,
		store:    store,
		source:   source,
	}
	l.index = cache.NewLoader(0, func(ctx context.Context, _ string) (*corpus.Index, error) {
		return store.Index(ctx)
	})
	l.books = cache.NewLoader(0, func(ctx context.Context, key string) (*corpus.Book, error) {
		return store.Book(ctx, key)
	})
	l.index.OnLoad(func(key string, d time.Duration, err error) {
		logging.CorpusLoad("books index", source, d, err)
	})
	l.books.OnLoad(func(key string, d time.Duration, err error) {
		logging.CorpusLoad("book", key, d, err)
	})
	return l
}

// Source returns the corpus name given to New.
func (l *Locator) Source() string {
	return l.source
}

// Lookup returns the text for passageID. reference, when not empty, is used
// as the result's reference; otherwise one is built from the book's Tamil
// name, or its English name when the corpus has no Tamil name.
func (l *Locator) Lookup(ctx context.Context, passageID, reference string) (*Passage, error) {
	id, err := passage.Parse(passageID)
	if err != nil {
		return nil, err
	}
	book, ok := l.registry.ByCode(id.Book)
	if !ok {
		return nil, fmt.Errorf("%w: %q", passage.ErrUnknownBook, id.Book)
	}

	doc, display, err := l.document(ctx, book)
	if err != nil {
		return nil, err
	}

	content := verseText(doc, id)
	if content == "" {
		return nil, bterrors.NewNotFound("verse", passageID)
	}

	if reference == "" {
		reference = display + " " + id.Chapter + ":" + id.Verses
	}
	return &Passage{
		ID:        passageID,
		Reference: reference,
		Content:   content,
		Source:    l.source,
	}, nil
}

// Book returns the corpus document for a registry code, loading it if
// needed.
func (l *Locator) Book(ctx context.Context, code string) (*corpus.Book, error) {
	book, ok := l.registry.ByCode(code)
	if !ok {
		return nil, fmt.Errorf("%w: %q", passage.ErrUnknownBook, code)
	}
	doc, _, err := l.document(ctx, book)
	return doc, err
}

// document loads the corpus document for book, along with the name to show
// in references. The books index maps the registry name to the corpus file
// name and the Tamil display name.
func (l *Locator) document(ctx context.Context, book books.Book) (*corpus.Book, string, error) {
	ix, err := l.index.Get(ctx, indexKey)
	if err != nil {
		return nil, "", err
	}
	english, display := book.Name, book.Name
	if meta, ok := ix.Lookup(book.Name); ok {
		english = meta.English
		if meta.Tamil != "" {
			display = meta.Tamil
		}
	}
	doc, err := l.books.Get(ctx, strings.ToLower(english))
	if err != nil {
		return nil, "", err
	}
	return doc, display, nil
}

// Loaded reports how many book documents are held.
func (l *Locator) Loaded() int {
	return l.books.Len()
}

func verseText(doc *corpus.Book, id passage.ID) string {
	ch, ok := doc.Chapter(id.Chapter)
	if !ok {
		return ""
	}
	span, err := id.Span()
	if err != nil {
		return ""
	}
	return ch.Text(span)
}
