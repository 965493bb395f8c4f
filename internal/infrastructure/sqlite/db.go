// Package sqlite implements the scripture and song datastores on SQLite.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/easypresenter/easypresenter/internal/log"
)

// pragmas are applied to every pooled connection.
const pragmas = "_pragma=busy_timeout(5000)&_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=foreign_keys(1)"

// DB is an open datastore file with its schema migrated.
type DB struct {
	conn   *sql.DB
	path   string
	schema Schema

	// mu guards the interactive handle: song reads and writes, version and
	// book listing, and imports. Background chapter fetches do not take it.
	mu sync.Mutex
}

// NewDB opens path, creating it and its parent directory (mode 0700) when
// missing, and applies the schema's pending migrations. An existing file
// with pending migrations is first copied to path+".bak".
func NewDB(path string, schema Schema) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	_, statErr := os.Stat(path)
	existed := statErr == nil

	conn, err := sql.Open("sqlite3", "file:"+path+"?"+pragmas)
	if err != nil {
		return nil, fmt.Errorf("opening %s database: %w", schema.name, err)
	}
	if err := conn.Ping(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("opening %s database: %w", schema.name, err)
	}

	db := &DB{conn: conn, path: path, schema: schema}
	if err := db.migrate(existed); err != nil {
		_ = conn.Close()
		return nil, err
	}

	log.Info(log.CatDB, "database ready", "schema", schema.name, "path", path)
	return db, nil
}

// Close closes the connection pool.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Connection returns the underlying *sql.DB.
func (db *DB) Connection() *sql.DB {
	return db.conn
}

// Path returns the database file path.
func (db *DB) Path() string {
	return db.path
}

// ScriptureStore returns the scripture datastore backed by db.
func (db *DB) ScriptureStore() *ScriptureStore {
	return newScriptureStore(db)
}

// SongStore returns the song datastore backed by db.
func (db *DB) SongStore() *SongStore {
	return newSongStore(db)
}

// backup writes a consistent copy of the database next to it.
func (db *DB) backup() error {
	backupPath := db.path + ".bak"
	if err := os.Remove(backupPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("removing old backup: %w", err)
	}
	if _, err := db.conn.Exec("VACUUM INTO ?", backupPath); err != nil {
		return fmt.Errorf("backing up database: %w", err)
	}
	log.Info(log.CatDB, "pre-migration backup written", "path", backupPath)
	return nil
}

// withTx runs fn in a transaction, committing when fn returns nil.
func (db *DB) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}
