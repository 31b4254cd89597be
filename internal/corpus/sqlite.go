package corpus

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	bterrors "github.com/FocuswithJustin/tamilbible/core/errors"
	"github.com/FocuswithJustin/tamilbible/core/sqlite"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS books (
		position INTEGER PRIMARY KEY,
		english  TEXT NOT NULL UNIQUE,
		tamil    TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS verses (
		book_position INTEGER NOT NULL REFERENCES books(position),
		chapter_seq   INTEGER NOT NULL,
		chapter       TEXT NOT NULL,
		verse_seq     INTEGER NOT NULL,
		verse         TEXT NOT NULL,
		text          TEXT NOT NULL,
		PRIMARY KEY (book_position, chapter_seq, verse_seq)
	)`,
}

// SQLiteStore reads a corpus database written by Export.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// OpenSQLite opens a corpus database read-only.
func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sqlite.OpenReadOnly(path)
	if err != nil {
		return nil, bterrors.NewLoad("corpus database", path, err)
	}
	return &SQLiteStore{db: db, path: path}, nil
}

// NewSQLiteStore wraps an open database.
func NewSQLiteStore(db *sql.DB, path string) *SQLiteStore {
	return &SQLiteStore{db: db, path: path}
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Index lists the books table in position order.
func (s *SQLiteStore) Index(ctx context.Context) (*Index, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT english, tamil FROM books ORDER BY position`)
	if err != nil {
		return nil, bterrors.NewLoad("books index", s.path, err)
	}
	defer rows.Close()

	var names []BookName
	for rows.Next() {
		var n BookName
		if err := rows.Scan(&n.English, &n.Tamil); err != nil {
			return nil, bterrors.NewLoad("books index", s.path, err)
		}
		names = append(names, n)
	}
	if err := rows.Err(); err != nil {
		return nil, bterrors.NewLoad("books index", s.path, err)
	}
	return NewIndex(names), nil
}

// Book rebuilds one book document from its verse rows.
func (s *SQLiteStore) Book(ctx context.Context, english string) (*Book, error) {
	var (
		position int64
		b        Book
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT position, english, tamil FROM books WHERE lower(english) = lower(?)`, english,
	).Scan(&position, &b.Book.English, &b.Book.Tamil)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = fmt.Errorf("no book named %q", english)
		}
		return nil, bterrors.NewLoad("book", s.path, err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT chapter, verse, text FROM verses WHERE book_position = ? ORDER BY chapter_seq, verse_seq`, position)
	if err != nil {
		return nil, bterrors.NewLoad("book", s.path, err)
	}
	defer rows.Close()

	for rows.Next() {
		var chapter string
		var v Verse
		if err := rows.Scan(&chapter, &v.Verse, &v.Text); err != nil {
			return nil, bterrors.NewLoad("book", s.path, err)
		}
		if n := len(b.Chapters); n == 0 || b.Chapters[n-1].Chapter != chapter {
			b.Chapters = append(b.Chapters, Chapter{Chapter: chapter})
		}
		last := &b.Chapters[len(b.Chapters)-1]
		last.Verses = append(last.Verses, v)
	}
	if err := rows.Err(); err != nil {
		return nil, bterrors.NewLoad("book", s.path, err)
	}
	return &b, nil
}

// ExportStats counts what Export wrote.
type ExportStats struct {
	Books    int `json:"books"`
	Chapters int `json:"chapters"`
	Verses   int `json:"verses"`
}

// Export copies every indexed book from src into db, replacing any corpus
// already there. It runs in one transaction.
func Export(ctx context.Context, src Store, db *sql.DB) (ExportStats, error) {
	var stats ExportStats

	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return stats, fmt.Errorf("create schema: %w", err)
		}
	}

	ix, err := src.Index(ctx)
	if err != nil {
		return stats, err
	}

	err = sqlite.WithTx(ctx, db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM verses`); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM books`); err != nil {
			return err
		}

		insertVerse, err := tx.PrepareContext(ctx,
			`INSERT INTO verses (book_position, chapter_seq, chapter, verse_seq, verse, text) VALUES (?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return err
		}
		defer insertVerse.Close()

		for pos, name := range ix.Names() {
			book, err := src.Book(ctx, name.English)
			if err != nil {
				return err
			}
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO books (position, english, tamil) VALUES (?, ?, ?)`,
				pos+1, name.English, name.Tamil); err != nil {
				return fmt.Errorf("insert book %s: %w", name.English, err)
			}
			for ci, ch := range book.Chapters {
				for vi, v := range ch.Verses {
					if _, err := insertVerse.ExecContext(ctx, pos+1, ci, ch.Chapter, vi, v.Verse, v.Text); err != nil {
						return fmt.Errorf("insert %s %s:%s: %w", name.English, ch.Chapter, v.Verse, err)
					}
					stats.Verses++
				}
				stats.Chapters++
			}
			stats.Books++
		}
		return nil
	})
	if err != nil {
		return ExportStats{}, err
	}
	return stats, nil
}
