// Package kv defines the durable key-value store that holds the panel's
// local state, and selects a backend by driver name.
package kv

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Vijaykumar22032001/Admin-Dashboard/internal/kv/filekv"
	"github.com/Vijaykumar22032001/Admin-Dashboard/internal/kv/memory"
	"github.com/Vijaykumar22032001/Admin-Dashboard/internal/kv/pebblestore"
	"github.com/Vijaykumar22032001/Admin-Dashboard/internal/kv/s3store"
	"github.com/Vijaykumar22032001/Admin-Dashboard/internal/kv/sqlstore"
)

// Store is a whole-value key-value store. Get reports ok=false for a
// missing key; it never returns an error for absence.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Driver identifies a backend implementation
type Driver string

const (
	DriverMemory   Driver = "memory"
	DriverFile     Driver = "file"
	DriverSQLite   Driver = "sqlite"
	DriverPostgres Driver = "postgres"
	DriverPebble   Driver = "pebble"
	DriverS3       Driver = "s3"
)

// Drivers lists every supported driver name
var Drivers = []Driver{DriverFile, DriverMemory, DriverSQLite, DriverPostgres, DriverPebble, DriverS3}

const stateDir = ".panel"

// Options selects and configures a backend
type Options struct {
	Driver  Driver
	DSN     string // path or connection string; meaning depends on Driver
	BaseDir string // default location for file-backed drivers
	S3      s3store.Config
}

var (
	_ Store = (*memory.Store)(nil)
	_ Store = (*filekv.Store)(nil)
	_ Store = (*sqlstore.Store)(nil)
	_ Store = (*pebblestore.Store)(nil)
	_ Store = (*s3store.Store)(nil)
)

// Open returns the backend named by opts.Driver (default file)
func Open(ctx context.Context, opts Options) (Store, error) {
	driver := Driver(strings.ToLower(string(opts.Driver)))
	if driver == "" {
		driver = DriverFile
	}
	switch driver {
	case DriverMemory:
		return memory.New(), nil
	case DriverFile:
		dir := opts.DSN
		if dir == "" {
			dir = filepath.Join(opts.BaseDir, stateDir, "store")
		}
		return filekv.Open(dir)
	case DriverSQLite:
		path := opts.DSN
		if path == "" {
			path = filepath.Join(opts.BaseDir, stateDir, "panel.db")
		}
		return sqlstore.OpenSQLite(ctx, path)
	case DriverPostgres:
		return sqlstore.OpenPostgres(ctx, opts.DSN)
	case DriverPebble:
		dir := opts.DSN
		if dir == "" {
			dir = filepath.Join(opts.BaseDir, stateDir, "pebble")
		}
		return pebblestore.Open(dir)
	case DriverS3:
		return s3store.New(ctx, opts.S3)
	default:
		return nil, fmt.Errorf("unknown store driver %q", opts.Driver)
	}
}
