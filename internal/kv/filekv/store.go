// Package filekv stores each key as a JSON file in a directory. Writes are
// atomic (temp file + rename) and serialized across processes with an OS
// file lock, so a crashed writer never leaves a torn value behind.
package filekv

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

const fileSuffix = ".json"

// Store is a directory-backed key-value store
type Store struct {
	dir string
}

// Open creates dir if needed and returns a store rooted there
func Open(dir string) (*Store, error) {
	if dir == "" {
		return nil, fmt.Errorf("file store: directory required")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the store's root directory
func (s *Store) Dir() string {
	return s.dir
}

func (s *Store) path(key string) string {
	return filepath.Join(s.dir, url.PathEscape(key)+fileSuffix)
}

// Get reads the file for key
func (s *Store) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("read %s: %w", key, err)
	}
	return data, true, nil
}

// Set writes value for key using atomic write (temp file + rename)
func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.withWriteLock(func() error {
		tmp, err := os.CreateTemp(s.dir, "kv-*.tmp")
		if err != nil {
			return fmt.Errorf("create temp: %w", err)
		}
		tmpName := tmp.Name()

		if _, err := tmp.Write(value); err != nil {
			tmp.Close()
			os.Remove(tmpName)
			return fmt.Errorf("write %s: %w", key, err)
		}
		if err := tmp.Close(); err != nil {
			os.Remove(tmpName)
			return fmt.Errorf("close %s: %w", key, err)
		}
		return os.Rename(tmpName, s.path(key))
	})
}

// Delete removes the file for key
func (s *Store) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.withWriteLock(func() error {
		err := os.Remove(s.path(key))
		if err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("delete %s: %w", key, err)
		}
		return nil
	})
}

// Keys lists the stored keys
func (s *Store) Keys() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}
	var keys []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, fileSuffix) {
			continue
		}
		key, err := url.PathUnescape(strings.TrimSuffix(name, fileSuffix))
		if err != nil {
			continue
		}
		keys = append(keys, key)
	}
	return keys, nil
}

// Close is a no-op; locks are only held for the duration of a write
func (s *Store) Close() error { return nil }

// withWriteLock executes fn while holding an exclusive write lock.
func (s *Store) withWriteLock(fn func() error) error {
	lock := newDirLock(s.dir)
	if err := lock.acquire(defaultTimeout); err != nil {
		return err
	}
	defer lock.release()
	return fn()
}
