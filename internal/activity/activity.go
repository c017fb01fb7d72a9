// Package activity keeps the bounded feed of recent panel actions shown on
// the dashboard.
package activity

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/Vijaykumar22032001/Admin-Dashboard/internal/kv"
	"github.com/Vijaykumar22032001/Admin-Dashboard/internal/models"
)

// Key is the kv key holding the feed, newest entry first
const Key = "admin_panel_activity"

// Limit is the maximum number of retained entries
const Limit = 50

// Log is the persisted activity feed
type Log struct {
	store kv.Store
	mu    sync.Mutex
	now   func() time.Time
}

// New returns a feed stored in store
func New(store kv.Store) *Log {
	return &Log{store: store, now: time.Now}
}

// SetClock replaces the timestamp source
func (l *Log) SetClock(now func() time.Time) { l.now = now }

// Record prepends a to the feed, stamping it if Timestamp is zero, and
// drops entries beyond Limit.
func (l *Log) Record(ctx context.Context, a models.Activity) error {
	if l == nil {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	entries, err := l.load(ctx)
	if err != nil {
		return err
	}
	if a.Timestamp.IsZero() {
		a.Timestamp = l.now().UTC()
	}
	entries = append([]models.Activity{a}, entries...)
	if len(entries) > Limit {
		entries = entries[:Limit]
	}

	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("encode activity: %w", err)
	}
	if err := l.store.Set(ctx, Key, data); err != nil {
		return fmt.Errorf("write activity: %w", err)
	}
	return nil
}

// Recent returns up to n entries, newest first. n <= 0 returns all.
func (l *Log) Recent(ctx context.Context, n int) ([]models.Activity, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	entries, err := l.load(ctx)
	if err != nil {
		return nil, err
	}
	if n > 0 && len(entries) > n {
		entries = entries[:n]
	}
	return entries, nil
}

// Clear empties the feed
func (l *Log) Clear(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.store.Delete(ctx, Key)
}

func (l *Log) load(ctx context.Context) ([]models.Activity, error) {
	raw, ok, err := l.store.Get(ctx, Key)
	if err != nil {
		return nil, fmt.Errorf("read activity: %w", err)
	}
	if !ok {
		return []models.Activity{}, nil
	}
	var entries []models.Activity
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("decode activity: %w", err)
	}
	if entries == nil {
		entries = []models.Activity{}
	}
	return entries, nil
}
