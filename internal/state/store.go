// Package state persists the scroll position of each viewed document so a
// reopened file resumes where it was left.
package state

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when no position is stored for a document.
var ErrNotFound = errors.New("no saved position")

// Entry is the saved position of one document. Hash identifies the
// document content the position was recorded against.
type Entry struct {
	Path      string
	Hash      uint64
	Top       float64
	Left      float64
	UpdatedAt time.Time
}

const schema = `
CREATE TABLE IF NOT EXISTS positions (
    path       TEXT PRIMARY KEY,
    hash       INTEGER NOT NULL,
    top        REAL NOT NULL,
    left_      REAL NOT NULL,
    updated_at INTEGER NOT NULL  -- UnixNano
);

CREATE INDEX IF NOT EXISTS idx_positions_updated ON positions(updated_at);
`

// Store is a SQLite-backed position store.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// DefaultPath returns ~/.config/scrollbox/state.db.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "scrollbox", "state.db")
}

// Open opens (creating if needed) the store at path. ":memory:" opens a
// private in-memory store.
func Open(path string) (*Store, error) {
	dsn := ":memory:"
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("create state directory: %w", err)
		}
		dsn = path +
			"?_pragma=journal_mode(WAL)" +
			"&_pragma=synchronous(NORMAL)" +
			"&_pragma=busy_timeout(2000)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open state database: %w", err)
	}
	// One connection: an in-memory database exists per connection, and a
	// single writer keeps WAL contention away.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect state database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create state schema: %w", err)
	}

	return &Store{db: db, now: time.Now}, nil
}

// Get returns the saved entry for path.
func (s *Store) Get(ctx context.Context, path string) (Entry, error) {
	var (
		e       Entry
		hash    int64
		updated int64
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT path, hash, top, left_, updated_at FROM positions WHERE path = ?`, path,
	).Scan(&e.Path, &hash, &e.Top, &e.Left, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, fmt.Errorf("get %s: %w", path, ErrNotFound)
	}
	if err != nil {
		return Entry{}, fmt.Errorf("get %s: %w", path, err)
	}
	e.Hash = uint64(hash)
	e.UpdatedAt = time.Unix(0, updated)
	return e, nil
}

// Put saves e, replacing any previous entry for the same path. A zero
// UpdatedAt is stamped with the current time.
func (s *Store) Put(ctx context.Context, e Entry) error {
	if e.UpdatedAt.IsZero() {
		e.UpdatedAt = s.now()
	}
	_, err := s.db.ExecContext(ctx, `
INSERT INTO positions (path, hash, top, left_, updated_at) VALUES (?, ?, ?, ?, ?)
ON CONFLICT(path) DO UPDATE SET
    hash = excluded.hash,
    top = excluded.top,
    left_ = excluded.left_,
    updated_at = excluded.updated_at`,
		e.Path, int64(e.Hash), e.Top, e.Left, e.UpdatedAt.UnixNano())
	if err != nil {
		return fmt.Errorf("put %s: %w", e.Path, err)
	}
	return nil
}

// Delete removes the entry for path. Deleting a missing entry is not an
// error.
func (s *Store) Delete(ctx context.Context, path string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM positions WHERE path = ?`, path); err != nil {
		return fmt.Errorf("delete %s: %w", path, err)
	}
	return nil
}

// Prune keeps the keep most recently updated entries and returns how many
// were removed.
func (s *Store) Prune(ctx context.Context, keep int) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
DELETE FROM positions WHERE path NOT IN (
    SELECT path FROM positions ORDER BY updated_at DESC LIMIT ?
)`, max(keep, 0))
	if err != nil {
		return 0, fmt.Errorf("prune: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("prune: %w", err)
	}
	return n, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}
