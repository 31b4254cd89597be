package corpus

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/FocuswithJustin/tamilbible/core/books"
	bterrors "github.com/FocuswithJustin/tamilbible/core/errors"
)

// HTTPStore reads a corpus published as static files under a base URL,
// e.g. https://example.org/local-bible.
type HTTPStore struct {
	base   string
	client *http.Client
}

// NewHTTPStore creates a store rooted at base. A nil client means
// http.DefaultClient.
func NewHTTPStore(base string, client *http.Client) *HTTPStore {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPStore{base: strings.TrimRight(base, "/"), client: client}
}

// Index fetches Books.json.
func (s *HTTPStore) Index(ctx context.Context) (*Index, error) {
	u := s.base + "/" + IndexFile
	body, err := s.get(ctx, u)
	if err != nil {
		return nil, bterrors.NewLoad("books index", u, err)
	}
	defer body.Close()

	ix, err := DecodeIndex(body)
	if err != nil {
		return nil, bterrors.NewLoad("books index", u, err)
	}
	return ix, nil
}

// Book fetches books/<slug>.json.
func (s *HTTPStore) Book(ctx context.Context, english string) (*Book, error) {
	u := s.base + "/" + BooksDir + "/" + url.PathEscape(books.FileSlug(english)) + ".json"
	body, err := s.get(ctx, u)
	if err != nil {
		return nil, bterrors.NewLoad("book", u, err)
	}
	defer body.Close()

	b, err := DecodeBook(body)
	if err != nil {
		return nil, bterrors.NewLoad("book", u, err)
	}
	return b, nil
}

func (s *HTTPStore) get(ctx context.Context, u string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}
	return resp.Body, nil
}
