// Package sqlite opens corpus databases with whichever SQLite driver the
// binary was built with: pure Go modernc.org/sqlite by default, or
// mattn/go-sqlite3 with CGO_ENABLED=1 and -tags cgo_sqlite.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"path/filepath"
)

// DriverType is "purego" or "cgo".
func DriverType() string {
	return driverType
}

// Open opens or creates a database for writing. The pool holds a single
// connection since SQLite serializes writers anyway.
func Open(path string) (*sql.DB, error) {
	db, err := sql.Open(driverName, fileURI(path, ""))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	return db, nil
}

// OpenReadOnly opens an existing database file for reading. A missing file
// is an error rather than a new empty database.
func OpenReadOnly(path string) (*sql.DB, error) {
	db, err := sql.Open(driverName, fileURI(path, "mode=ro"))
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: open %s read-only: %w", path, err)
	}
	return db, nil
}

// fileURI turns a filesystem path into an SQLite URI filename. Both drivers
// treat '?' in a plain filename as the start of their own parameters, so the
// path is always escaped.
func fileURI(path, query string) string {
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(path), RawQuery: query}
	return u.String()
}

// WithTx runs fn in a transaction, committing when fn returns nil and
// rolling back otherwise.
func WithTx(ctx context.Context, db *sql.DB, fn func(*sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite: begin: %w", err)
	}
	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("%w (rollback: %v)", err, rbErr)
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sqlite: commit: %w", err)
	}
	return nil
}
