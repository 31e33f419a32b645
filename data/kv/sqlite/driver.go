// Package sqlite provides a SQLite backend for the kv store.
//
// This driver uses mattn/go-sqlite3 with CGO. It registers itself automatically
// when imported:
//
//	import _ "github.com/ncobase/taskmate/data/kv/sqlite"
//
// Keys live in a single two-column table created on open.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ncobase/taskmate/config"
	"github.com/ncobase/taskmate/data/kv"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

const schema = `CREATE TABLE IF NOT EXISTS kv (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
)`

type driver struct{}

// Name returns the driver identifier used in configuration files.
func (d *driver) Name() string {
	return "sqlite"
}

// Open opens the database named by session.sqlite.source and ensures the table.
//
// Example sources:
//
//	"/home/me/.taskmate/session.db"   // Simple file path
//	"file:session.db?_journal_mode=WAL"
//	":memory:"
func (d *driver) Open(ctx context.Context, cfg *config.Session) (kv.Store, error) {
	if cfg.Sqlite == nil || cfg.Sqlite.Source == "" {
		return nil, fmt.Errorf("sqlite: connection source is empty")
	}
	return Open(ctx, cfg.Sqlite.Source)
}

// Store is a kv.Store backed by a SQLite table.
type Store struct {
	db *sql.DB
}

// Open connects to source, verifies it with a ping and creates the table.
func Open(ctx context.Context, source string) (*Store, error) {
	if !strings.HasPrefix(source, "file:") && source != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(source), 0o700); err != nil {
			return nil, fmt.Errorf("sqlite: failed to create directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", source)
	if err != nil {
		return nil, fmt.Errorf("sqlite: failed to open connection: %w", err)
	}
	// single writer; also keeps ":memory:" on one connection
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: failed to ping database: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: failed to create table: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", kv.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("sqlite: get %s: %w", key, err)
	}
	return value, nil
}

func (s *Store) Set(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO kv (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value)
	if err != nil {
		return fmt.Errorf("sqlite: set %s: %w", key, err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key); err != nil {
		return fmt.Errorf("sqlite: delete %s: %w", key, err)
	}
	return nil
}

// Close terminates the SQLite connection and releases resources.
func (s *Store) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("sqlite: failed to close connection: %w", err)
	}
	return nil
}

func init() {
	kv.Register(&driver{})
}
