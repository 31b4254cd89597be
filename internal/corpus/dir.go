package corpus

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path"

	"github.com/ulikunitz/xz"

	"github.com/FocuswithJustin/tamilbible/core/books"
	bterrors "github.com/FocuswithJustin/tamilbible/core/errors"
)

// IndexFile is the name of the books index inside a corpus root.
const IndexFile = "Books.json"

// BooksDir is the directory holding per-book documents.
const BooksDir = "books"

// DirStore reads a corpus laid out as Books.json plus books/<slug>.json.
// A book may also be stored xz-compressed as books/<slug>.json.xz.
type DirStore struct {
	fsys fs.FS
	root string
}

// NewDirStore reads the corpus from fsys. root is only used in messages.
func NewDirStore(fsys fs.FS, root string) *DirStore {
	return &DirStore{fsys: fsys, root: root}
}

// OpenDir reads the corpus under a filesystem directory.
func OpenDir(dir string) *DirStore {
	return NewDirStore(os.DirFS(dir), dir)
}

// Index loads Books.json.
func (s *DirStore) Index(ctx context.Context) (*Index, error) {
	f, err := s.fsys.Open(IndexFile)
	if err != nil {
		return nil, bterrors.NewLoad("books index", s.display(IndexFile), err)
	}
	defer f.Close()

	ix, err := DecodeIndex(f)
	if err != nil {
		return nil, bterrors.NewLoad("books index", s.display(IndexFile), err)
	}
	return ix, nil
}

// Book loads books/<slug>.json, falling back to the .xz variant.
func (s *DirStore) Book(ctx context.Context, english string) (*Book, error) {
	name := BookPath(english)

	r, closer, err := s.open(name)
	if err != nil {
		return nil, bterrors.NewLoad("book", s.display(name), err)
	}
	defer closer.Close()

	b, err := DecodeBook(r)
	if err != nil {
		return nil, bterrors.NewLoad("book", s.display(name), err)
	}
	return b, nil
}

func (s *DirStore) open(name string) (io.Reader, io.Closer, error) {
	f, err := s.fsys.Open(name)
	if err == nil {
		return f, f, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, nil, err
	}

	zf, zerr := s.fsys.Open(name + ".xz")
	if zerr != nil {
		return nil, nil, err
	}
	zr, zerr := xz.NewReader(zf)
	if zerr != nil {
		zf.Close()
		return nil, nil, zerr
	}
	return zr, zf, nil
}

func (s *DirStore) display(name string) string {
	if s.root == "" {
		return name
	}
	return path.Join(s.root, name)
}

// BookPath returns the corpus-relative path of a book document.
func BookPath(english string) string {
	return path.Join(BooksDir, books.FileSlug(english)+".json")
}
