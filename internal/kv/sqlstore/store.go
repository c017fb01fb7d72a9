// Package sqlstore keeps key-value state in a single SQL table. SQLite is
// the default embedded backend; Postgres is available for shared setups.
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/jackc/pgx/v5/stdlib" // registers "pgx"
	_ "modernc.org/sqlite"             // registers "sqlite"
)

// Dialect captures the SQL differences between supported engines
type Dialect struct {
	Name      string
	valueType string
	ph        func(n int) string
}

var (
	SQLite = Dialect{
		Name:      "sqlite",
		valueType: "BLOB",
		ph:        func(int) string { return "?" },
	}
	Postgres = Dialect{
		Name:      "postgres",
		valueType: "BYTEA",
		ph:        func(n int) string { return fmt.Sprintf("$%d", n) },
	}
)

const defaultPostgresDSN = "postgres://localhost/panel?sslmode=disable"

func (d Dialect) createTable() string {
	return fmt.Sprintf(`CREATE TABLE IF NOT EXISTS kv (
	key TEXT PRIMARY KEY,
	value %s NOT NULL
)`, d.valueType)
}

func (d Dialect) selectValue() string {
	return "SELECT value FROM kv WHERE key = " + d.ph(1)
}

func (d Dialect) upsert() string {
	return fmt.Sprintf("INSERT INTO kv (key, value) VALUES (%s, %s) ON CONFLICT (key) DO UPDATE SET value = excluded.value", d.ph(1), d.ph(2))
}

func (d Dialect) deleteKey() string {
	return "DELETE FROM kv WHERE key = " + d.ph(1)
}

// Store is a SQL-table-backed key-value store
type Store struct {
	db      *sql.DB
	dialect Dialect
}

// OpenSQLite opens (creating if needed) a SQLite database file
func OpenSQLite(ctx context.Context, path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("sqlite store: path required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	s, err := Open(ctx, "sqlite", path, SQLite)
	if err != nil {
		return nil, err
	}
	// WAL lets readers proceed while a write is in flight
	if _, err := s.db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		s.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, "PRAGMA busy_timeout=500"); err != nil {
		s.Close()
		return nil, fmt.Errorf("set busy timeout: %w", err)
	}
	return s, nil
}

// OpenPostgres connects through the pgx database/sql driver
func OpenPostgres(ctx context.Context, dsn string) (*Store, error) {
	if dsn == "" {
		dsn = defaultPostgresDSN
	}
	return Open(ctx, "pgx", dsn, Postgres)
}

// Open connects with an already-registered database/sql driver and ensures
// the kv table exists.
func Open(ctx context.Context, driverName, dsn string, dialect Dialect) (*Store, error) {
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", dialect.Name, err)
	}
	return New(ctx, db, dialect)
}

// New wraps an open *sql.DB and ensures the kv table exists
func New(ctx context.Context, db *sql.DB, dialect Dialect) (*Store, error) {
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping %s: %w", dialect.Name, err)
	}
	if _, err := db.ExecContext(ctx, dialect.createTable()); err != nil {
		db.Close()
		return nil, fmt.Errorf("create kv table: %w", err)
	}
	return &Store{db: db, dialect: dialect}, nil
}

// Get returns the value stored under key
func (s *Store) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx, s.dialect.selectValue(), key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("select %s: %w", key, err)
	}
	return value, true, nil
}

// Set upserts the value for key
func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	if _, err := s.db.ExecContext(ctx, s.dialect.upsert(), key, value); err != nil {
		return fmt.Errorf("upsert %s: %w", key, err)
	}
	return nil
}

// Delete removes key
func (s *Store) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, s.dialect.deleteKey(), key); err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

// DB exposes the underlying connection pool
func (s *Store) DB() *sql.DB { return s.db }

// Close closes the connection pool
func (s *Store) Close() error {
	return s.db.Close()
}
