// Package memory implements an in-process key-value store, used by tests
// and by throwaway sessions that should not touch disk.
package memory

import (
	"context"

	"github.com/puzpuzpuz/xsync/v3"
)

// Store keeps values in a concurrent map. Values are copied on the way in
// and out so callers cannot alias stored bytes.
type Store struct {
	m *xsync.MapOf[string, []byte]
}

// New returns an empty store
func New() *Store {
	return &Store{m: xsync.NewMapOf[string, []byte]()}
}

// Get returns a copy of the value stored under key
func (s *Store) Get(_ context.Context, key string) ([]byte, bool, error) {
	v, ok := s.m.Load(key)
	if !ok {
		return nil, false, nil
	}
	return clone(v), true, nil
}

// Set replaces the value stored under key
func (s *Store) Set(_ context.Context, key string, value []byte) error {
	s.m.Store(key, clone(value))
	return nil
}

// Delete removes key; deleting a missing key is not an error
func (s *Store) Delete(_ context.Context, key string) error {
	s.m.Delete(key)
	return nil
}

// Len returns the number of stored keys
func (s *Store) Len() int {
	return s.m.Size()
}

// Close is a no-op
func (s *Store) Close() error { return nil }

func clone(b []byte) []byte {
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
