package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const schema = `
CREATE TABLE IF NOT EXISTS books (
	id      INTEGER PRIMARY KEY AUTOINCREMENT,
	title   TEXT NOT NULL,
	author  TEXT NOT NULL,
	summary TEXT NOT NULL DEFAULT '',
	genre   TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS reviews (
	id      INTEGER PRIMARY KEY AUTOINCREMENT,
	user    TEXT NOT NULL,
	rating  INTEGER NOT NULL,
	comment TEXT NOT NULL DEFAULT '',
	book_id INTEGER NOT NULL REFERENCES books(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_reviews_book_id ON reviews(book_id);
`

// Open opens (creating if needed) the sqlite database at path.
func Open(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", "file:"+path+"?cache=shared&mode=rwc&_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("open sqlite database %s: %w", path, err)
	}

	// A single writer at a time keeps sqlite's locking out of the request path.
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(time.Hour)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite database %s: %w", path, err)
	}
	return db, nil
}

// EnsureSchema creates the books and reviews tables when they do not exist.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

// Seed inserts the starter catalog on first run. It is a no-op once any
// book exists.
func Seed(ctx context.Context, db *sql.DB) error {
	var count int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM books`).Scan(&count); err != nil {
		return fmt.Errorf("count books: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	const insert = `INSERT INTO books (title, author, summary, genre) VALUES (?, ?, ?, ?)`
	seeds := [][4]string{
		{"To Kill a Mockingbird", "Harper Lee", "A classic novel", "Fiction"},
		{"1984", "George Orwell", "Dystopian fiction", "Science Fiction"},
	}
	for _, s := range seeds {
		if _, err := tx.ExecContext(ctx, insert, s[0], s[1], s[2], s[3]); err != nil {
			return fmt.Errorf("seed book %q: %w", s[0], err)
		}
	}
	return tx.Commit()
}
