// Package histstore persists committed command lines across process
// restarts. It is deliberately narrow: an ordered append log and a
// full, in-order replay — nothing resembling search. The in-RAM
// embedcli.HistoryRing stays authoritative for recall during a running
// session; this package only write-throughs each submitted line and
// reloads them the next time a session starts.
package histstore

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

const schema = `
CREATE TABLE IF NOT EXISTS lines (
    id      INTEGER PRIMARY KEY AUTOINCREMENT,
    content TEXT NOT NULL,
    ts      INTEGER NOT NULL
);
`

// Store is a sqlite3-backed ordered log of committed lines.
type Store struct {
	db *sql.DB
}

// Open creates (if needed) and opens the sqlite3 database at path,
// applying the schema. path's directory is created if missing.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("histstore: create dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("histstore: open: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("histstore: schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error { return s.db.Close() }

// Load returns every stored line, oldest first. A session re-primes its
// HistoryRing from this slice at construction (SPEC_FULL.md §4.9); the
// ring itself evicts what doesn't fit.
func (s *Store) Load(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT content FROM lines ORDER BY id ASC")
	if err != nil {
		return nil, fmt.Errorf("histstore: load: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var line string
		if err := rows.Scan(&line); err != nil {
			return nil, fmt.Errorf("histstore: scan: %w", err)
		}
		out = append(out, line)
	}
	return out, rows.Err()
}

// Append records line as the newest entry, always adding a new row.
// Called from the controller's OnSubmit hook (a write-through, not a
// cache in front of the ring).
func (s *Store) Append(ctx context.Context, line string) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO lines(content, ts) VALUES (?, strftime('%s','now'))", line)
	if err != nil {
		return fmt.Errorf("histstore: append: %w", err)
	}
	return nil
}
