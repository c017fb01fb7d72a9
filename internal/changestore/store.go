// Package changestore persists the local overlay for one entity kind: the
// records added locally, the field overrides layered on remote records, and
// the set of remote ids hidden by deletion.
//
// Both values live as JSON under fixed keys in a kv.Store, so the on-disk
// shape matches what the browser panel kept in localStorage:
//
//	admin_panel_<kind>_changes  {"added":[...],"updated":{"<id>":{...}}}
//	admin_panel_<kind>_deleted  [<id>, ...]
package changestore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/Vijaykumar22032001/Admin-Dashboard/internal/kv"
	"github.com/Vijaykumar22032001/Admin-Dashboard/internal/models"
)

// ErrCorrupt is returned when a persisted value cannot be decoded
var ErrCorrupt = errors.New("corrupt change store value")

const keyPrefix = "admin_panel_"

// ChangesKey returns the key holding added records and overrides for kind
func ChangesKey(kind models.Kind) string {
	return keyPrefix + string(kind) + "_changes"
}

// DeletedKey returns the key holding deleted remote ids for kind
func DeletedKey(kind models.Kind) string {
	return keyPrefix + string(kind) + "_deleted"
}

// State is the full local overlay for one kind
type State[E any] struct {
	Changes models.Changes[E]
	Deleted models.IDSet
}

// Store reads and writes the overlay for a single kind. Update calls are
// serialized so read-modify-write cycles within a process never interleave.
type Store[E any] struct {
	kv   kv.Store
	kind models.Kind
	mu   sync.Mutex
}

// New returns a change store for kind backed by store
func New[E any](store kv.Store, kind models.Kind) *Store[E] {
	return &Store[E]{kv: store, kind: kind}
}

// Kind returns the entity kind this store holds
func (s *Store[E]) Kind() models.Kind { return s.kind }

// Load returns the current changes, empty if none were saved
func (s *Store[E]) Load(ctx context.Context) (models.Changes[E], error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, _, err := s.loadChanges(ctx)
	return c, err
}

// Save replaces the persisted changes
func (s *Store[E]) Save(ctx context.Context, c models.Changes[E]) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.put(ctx, ChangesKey(s.kind), normalized(c))
}

// LoadDeleted returns the deleted id set, empty if none were saved
func (s *Store[E]) LoadDeleted(ctx context.Context) (models.IDSet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids, _, err := s.loadDeleted(ctx)
	return ids, err
}

// SaveDeleted replaces the persisted deleted id set
func (s *Store[E]) SaveDeleted(ctx context.Context, ids models.IDSet) error {
	if ids == nil {
		ids = models.IDSet{}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.put(ctx, DeletedKey(s.kind), ids)
}

// Snapshot loads changes and deletions together
func (s *Store[E]) Snapshot(ctx context.Context) (State[E], error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, _, _, err := s.snapshot(ctx)
	return st, err
}

// Update loads the state, applies fn, and writes back whichever values fn
// changed. If fn returns an error nothing is written.
func (s *Store[E]) Update(ctx context.Context, fn func(*State[E]) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, rawChanges, rawDeleted, err := s.snapshot(ctx)
	if err != nil {
		return err
	}
	if err := fn(&st); err != nil {
		return err
	}

	st.Changes = normalized(st.Changes)
	if st.Deleted == nil {
		st.Deleted = models.IDSet{}
	}
	if err := s.putIfChanged(ctx, ChangesKey(s.kind), st.Changes, rawChanges); err != nil {
		return err
	}
	return s.putIfChanged(ctx, DeletedKey(s.kind), st.Deleted, rawDeleted)
}

func (s *Store[E]) snapshot(ctx context.Context) (State[E], []byte, []byte, error) {
	c, rawChanges, err := s.loadChanges(ctx)
	if err != nil {
		return State[E]{}, nil, nil, err
	}
	d, rawDeleted, err := s.loadDeleted(ctx)
	if err != nil {
		return State[E]{}, nil, nil, err
	}
	return State[E]{Changes: c, Deleted: d}, rawChanges, rawDeleted, nil
}

func (s *Store[E]) loadChanges(ctx context.Context) (models.Changes[E], []byte, error) {
	var c models.Changes[E]
	raw, err := s.read(ctx, ChangesKey(s.kind), &c)
	if err != nil {
		return c, nil, err
	}
	c.Normalize()
	return c, raw, nil
}

func (s *Store[E]) loadDeleted(ctx context.Context) (models.IDSet, []byte, error) {
	var ids models.IDSet
	raw, err := s.read(ctx, DeletedKey(s.kind), &ids)
	if err != nil {
		return nil, nil, err
	}
	if ids == nil {
		ids = models.IDSet{}
	}
	return ids, raw, nil
}

// read decodes key into v and returns the raw bytes; a missing key leaves v
// untouched and returns nil bytes.
func (s *Store[E]) read(ctx context.Context, key string, v any) ([]byte, error) {
	raw, ok, err := s.kv.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", key, err)
	}
	if !ok {
		return nil, nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorrupt, key, err)
	}
	return raw, nil
}

func (s *Store[E]) put(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.kv.Set(ctx, key, data); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

// putIfChanged skips the write when v encodes to prev, or when the key was
// absent and v is empty.
func (s *Store[E]) putIfChanged(ctx context.Context, key string, v any, prev []byte) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if prev != nil && bytes.Equal(data, prev) {
		return nil
	}
	if prev == nil && isEmptyValue(data) {
		return nil
	}
	if err := s.kv.Set(ctx, key, data); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

// Reset removes both keys for the kind
func (s *Store[E]) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, key := range []string{ChangesKey(s.kind), DeletedKey(s.kind)} {
		if err := s.kv.Delete(ctx, key); err != nil {
			return fmt.Errorf("delete %s: %w", key, err)
		}
	}
	return nil
}

func normalized[E any](c models.Changes[E]) models.Changes[E] {
	c.Normalize()
	return c
}

var (
	emptyChanges = []byte(`{"added":[],"updated":{}}`)
	emptyIDs     = []byte(`[]`)
)

func isEmptyValue(data []byte) bool {
	return bytes.Equal(data, emptyChanges) || bytes.Equal(data, emptyIDs)
}
