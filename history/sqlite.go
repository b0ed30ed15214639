package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	// SQLite driver
	_ "modernc.org/sqlite"

	"github.com/sambeau/unitconv/pkg/errors"
)

// SQLiteBackend stores entries in a SQLite database, trimmed to a cap.
type SQLiteBackend struct {
	db         *sql.DB
	path       string
	maxEntries int
}

// schema defines the history table.
const schema = `
CREATE TABLE IF NOT EXISTS conversions (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	from_unit TEXT NOT NULL,
	to_unit TEXT NOT NULL,
	value REAL NOT NULL,
	result REAL NOT NULL,
	created_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_conversions_created ON conversions(created_at);
`

// OpenSQLite opens the history database at path, creating it if necessary.
func OpenSQLite(path string, maxEntries int) (*SQLiteBackend, error) {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, errors.StorageUnavailable("create", path, err)
	}

	// Create database file with restrictive permissions
	if _, err := os.Stat(path); os.IsNotExist(err) {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0600)
		if err != nil {
			return nil, errors.StorageUnavailable("create", path, err)
		}
		f.Close()
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}
	// SQLite allows a single writer.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &SQLiteBackend{db: db, path: path, maxEntries: maxEntries}, nil
}

// Load returns the newest entries up to the cap, oldest first.
func (s *SQLiteBackend) Load() ([]Entry, error) {
	rows, err := s.db.Query(`
		SELECT from_unit, to_unit, value, result, created_at FROM (
			SELECT id, from_unit, to_unit, value, result, created_at
			FROM conversions ORDER BY id DESC LIMIT ?
		) ORDER BY id ASC`, s.maxEntries)
	if err != nil {
		return nil, errors.StorageUnavailable("read", s.path, err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var ts int64
		if err := rows.Scan(&e.From, &e.To, &e.Value, &e.Result, &ts); err != nil {
			return nil, errors.StorageUnavailable("read", s.path, err)
		}
		e.Time = time.Unix(ts, 0)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.StorageUnavailable("read", s.path, err)
	}
	return entries, nil
}

// Append inserts one entry and drops rows beyond the cap.
func (s *SQLiteBackend) Append(e Entry) error {
	tx, err := s.db.Begin()
	if err != nil {
		return errors.StorageUnavailable("write", s.path, err)
	}
	defer tx.Rollback()

	if err := insertEntry(tx, e); err != nil {
		return errors.StorageUnavailable("write", s.path, err)
	}
	_, err = tx.Exec(`
		DELETE FROM conversions WHERE id NOT IN (
			SELECT id FROM conversions ORDER BY id DESC LIMIT ?
		)`, s.maxEntries)
	if err != nil {
		return errors.StorageUnavailable("write", s.path, err)
	}
	if err := tx.Commit(); err != nil {
		return errors.StorageUnavailable("write", s.path, err)
	}
	return nil
}

// Trims reports that Append keeps the table at the cap.
func (s *SQLiteBackend) Trims() bool {
	return true
}

// Rewrite replaces every row.
func (s *SQLiteBackend) Rewrite(entries []Entry) error {
	tx, err := s.db.Begin()
	if err != nil {
		return errors.StorageUnavailable("write", s.path, err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM conversions"); err != nil {
		return errors.StorageUnavailable("write", s.path, err)
	}
	for _, e := range entries {
		if err := insertEntry(tx, e); err != nil {
			return errors.StorageUnavailable("write", s.path, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return errors.StorageUnavailable("write", s.path, err)
	}
	return nil
}

// Count returns the number of stored rows.
func (s *SQLiteBackend) Count() (int, error) {
	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM conversions").Scan(&n); err != nil {
		return 0, fmt.Errorf("counting history: %w", err)
	}
	return n, nil
}

// Close closes the database connection.
func (s *SQLiteBackend) Close() error {
	return s.db.Close()
}

func insertEntry(tx *sql.Tx, e Entry) error {
	_, err := tx.Exec(
		"INSERT INTO conversions (from_unit, to_unit, value, result, created_at) VALUES (?, ?, ?, ?, ?)",
		e.From, e.To, e.Value, e.Result, e.Time.Unix(),
	)
	return err
}
