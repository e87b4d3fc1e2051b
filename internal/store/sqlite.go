// SQLite-backed Store.
//
// WHY SQLITE FOR A KEY/VALUE LAYOUT?
// SQLite is an embedded database — it lives inside the Go binary as a
// single file. No separate server to install, configure, or manage, and
// ":memory:" gives tests a throwaway database for free.
//
// We deliberately do NOT give each entity its own relational table. The
// storage contract is whole-collection read/overwrite, so the natural
// layout is one row per collection with the JSON document in a TEXT
// column. Swapping this for a relational schema later only means writing
// another Store implementation — nothing above this package changes.
//
// WHY modernc.org/sqlite INSTEAD OF github.com/mattn/go-sqlite3?
// mattn/go-sqlite3 uses CGo, which needs a C compiler and makes
// cross-compilation painful. modernc.org/sqlite is a pure Go translation
// of the SQLite sources — works everywhere Go works.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	// BLANK IMPORT:
	// Side-effect only — the package's init() registers itself with
	// database/sql as a driver named "sqlite". After this import,
	// sql.Open("sqlite", ...) knows how to talk to SQLite.
	_ "modernc.org/sqlite"
)

// DB is the SQLite-backed Store. It wraps a sql.DB connection pool;
// New creates it and Close releases it.
type DB struct {
	conn *sql.DB
}

var _ Store = (*DB)(nil)

// New opens (or creates) the SQLite database at path and prepares the
// collections table.
//
// path examples:
//   - "data/hirepro.db"  → file-based database (persistent)
//   - ":memory:"         → in-memory database (tests, lost on close)
//
// sql.Open does NOT actually connect — it creates a pool manager. We call
// Ping to force an immediate connection so a bad path surfaces here, not
// on the first query.
func New(path string) (*DB, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("store: opening database: %w", err)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("store: pinging database: %w", err)
	}

	// WAL mode lets reads proceed while a write is in progress. Default
	// SQLite locks the whole database during writes, which stalls a web
	// server where every request touches the store.
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("store: setting WAL mode: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("store: running migrations: %w", err)
	}

	return db, nil
}

// Close closes the connection pool. Always defer this next to New so the
// WAL is flushed and the file lock released even on a panic.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Ping checks the connection, for health probes.
func (db *DB) Ping(ctx context.Context) error {
	return db.conn.PingContext(ctx)
}

// migrate creates the collections table. CREATE TABLE IF NOT EXISTS is
// idempotent, so this is safe to run on every startup.
func (db *DB) migrate() error {
	_, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS collections (
			name       TEXT PRIMARY KEY,
			data       TEXT NOT NULL,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
	`)
	if err != nil {
		return fmt.Errorf("creating collections table: %w", err)
	}
	return nil
}

// Read loads the named collection's JSON document into v.
//
// Two deliberate non-errors:
//   - sql.ErrNoRows (collection never written) → v stays zero, return nil
//   - unmarshal failure (corrupt document)     → v stays zero, return nil
//
// Callers treat both as "empty". Only a real database failure propagates.
func (db *DB) Read(ctx context.Context, collection string, v any) error {
	var raw string
	err := db.conn.QueryRowContext(ctx,
		`SELECT data FROM collections WHERE name = ?`,
		collection,
	).Scan(&raw)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil
		}
		return fmt.Errorf("store: reading collection %s: %w", collection, err)
	}

	if err := json.Unmarshal([]byte(raw), v); err != nil {
		// Corrupt document. The product's contract is "parse failure is
		// empty" — surfacing it would take every page down with it.
		return nil
	}
	return nil
}

// Write serializes v and overwrites the named collection wholesale.
func (db *DB) Write(ctx context.Context, collection string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("store: marshaling collection %s: %w", collection, err)
	}

	// SQLite upsert: insert, or overwrite the document on name conflict.
	_, err = db.conn.ExecContext(ctx,
		`INSERT INTO collections (name, data, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		collection, string(raw), time.Now(),
	)
	if err != nil {
		return fmt.Errorf("store: writing collection %s: %w", collection, err)
	}
	return nil
}

// Delete removes the named collection. Deleting a collection that was
// never written is not an error.
func (db *DB) Delete(ctx context.Context, collection string) error {
	_, err := db.conn.ExecContext(ctx,
		`DELETE FROM collections WHERE name = ?`,
		collection,
	)
	if err != nil {
		return fmt.Errorf("store: deleting collection %s: %w", collection, err)
	}
	return nil
}
