// Package overlay merges the read-only remote records with the locally
// persisted changes into one queryable collection per entity kind, and
// applies create, update and delete against that collection.
//
// Reads recompute the collection every time: the full remote listing, minus
// deleted ids, projected into entities, with overrides merged and local
// additions appended, sorted by id descending. Nothing is cached.
package overlay

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"

	"github.com/Vijaykumar22032001/Admin-Dashboard/internal/activity"
	"github.com/Vijaykumar22032001/Admin-Dashboard/internal/changestore"
	"github.com/Vijaykumar22032001/Admin-Dashboard/internal/dateparse"
	"github.com/Vijaykumar22032001/Admin-Dashboard/internal/metrics"
	"github.com/Vijaykumar22032001/Admin-Dashboard/internal/models"
	"github.com/Vijaykumar22032001/Admin-Dashboard/internal/remote"
)

var (
	// ErrNotFound is returned for ids that are deleted or unknown
	ErrNotFound = errors.New("record not found")
	// ErrInvalidFilter is returned for filters naming an unknown field or a
	// malformed date
	ErrInvalidFilter = errors.New("invalid filter")
)

// Schema describes how one entity kind is fetched, projected and matched
type Schema[B any, E models.Record] struct {
	Kind models.Kind

	List  func(ctx context.Context) ([]B, error)
	Fetch func(ctx context.Context, id int) (B, error)
	BaseID func(B) int

	// Project derives an entity from a base record at its 0-based position
	Project func(b B, index int) E

	// Search returns the text fields matched by Filter.Search
	Search func(E) []string
	// Field returns the value of a filterable field; ok is false for
	// fields that cannot be filtered
	Field func(e E, name string) (value string, ok bool)
	// Date returns the calendar date used by DateFrom/DateTo
	Date func(E) string

	// Prepare stamps a new id on a record being created and fills defaults
	Prepare func(e E, id int) E
	// Stub builds the placeholder for an override whose base record is gone
	Stub func(id int) E
	// Label names a record in the activity feed
	Label func(E) string
}

// Option configures a Service
type Option func(*options)

type options struct {
	delay    *remote.Injector
	reads    *remote.Injector
	metrics  *metrics.Metrics
	activity *activity.Log
	logger   *slog.Logger
	now      func() time.Time
	actor    string
}

// WithDelay makes every mutation wait on in before touching the store
func WithDelay(in *remote.Injector) Option {
	return func(o *options) { o.delay = in }
}

// WithReadFaults makes Query, Get and All wait on in once per call. Reads
// made inside a mutation do not wait again.
func WithReadFaults(in *remote.Injector) Option {
	return func(o *options) { o.reads = in }
}

// WithMetrics reports queries and mutations to m
func WithMetrics(m *metrics.Metrics) Option {
	return func(o *options) { o.metrics = m }
}

// WithActivity records successful mutations in log
func WithActivity(log *activity.Log) Option {
	return func(o *options) { o.activity = log }
}

// WithLogger replaces slog.Default()
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithClock sets the reference time for relative date filters
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithActor names who performs mutations in the activity feed
func WithActor(name string) Option {
	return func(o *options) { o.actor = name }
}

// Service is the overlay for one entity kind
type Service[B any, E models.Record] struct {
	schema Schema[B, E]
	store  *changestore.Store[E]
	options
}

// New builds a Service from a schema and its change store
func New[B any, E models.Record](schema Schema[B, E], store *changestore.Store[E], opts ...Option) *Service[B, E] {
	s := &Service[B, E]{
		schema: schema,
		store:  store,
		options: options{
			logger: slog.Default(),
			now:    time.Now,
		},
	}
	for _, opt := range opts {
		opt(&s.options)
	}
	return s
}

// Kind returns the entity kind served
func (s *Service[B, E]) Kind() models.Kind { return s.schema.Kind }

// Store returns the underlying change store
func (s *Service[B, E]) Store() *changestore.Store[E] { return s.store }

// All returns the whole derived collection, sorted by id descending
func (s *Service[B, E]) All(ctx context.Context) ([]E, error) {
	if err := s.reads.Wait(ctx); err != nil {
		return nil, err
	}
	return s.all(ctx)
}

func (s *Service[B, E]) all(ctx context.Context) ([]E, error) {
	base, err := s.schema.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", s.schema.Kind, err)
	}
	st, err := s.store.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	deleted := st.Deleted.Lookup()
	items := make([]E, 0, len(base)+len(st.Changes.Added))
	index := 0
	for _, b := range base {
		id := s.schema.BaseID(b)
		if _, gone := deleted[id]; gone {
			continue
		}
		e, err := s.project(b, index, st.Changes.Updated[id])
		if err != nil {
			return nil, err
		}
		index++
		items = append(items, e)
	}
	items = append(items, st.Changes.Added...)

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].RecordID() > items[j].RecordID()
	})
	return items, nil
}

// Query filters and paginates the derived collection
func (s *Service[B, E]) Query(ctx context.Context, f models.Filter) (models.Page[E], error) {
	page, err := s.query(ctx, f)
	s.metrics.ObserveQuery(string(s.schema.Kind), metrics.Result(err, ErrNotFound), page.Total)
	return page, err
}

func (s *Service[B, E]) query(ctx context.Context, f models.Filter) (models.Page[E], error) {
	match, err := s.matcher(f)
	if err != nil {
		return models.Page[E]{}, err
	}

	if err := s.reads.Wait(ctx); err != nil {
		return models.Page[E]{}, err
	}
	items, err := s.all(ctx)
	if err != nil {
		return models.Page[E]{}, err
	}

	filtered := items[:0]
	for _, e := range items {
		if match(e) {
			filtered = append(filtered, e)
		}
	}
	return paginate(filtered, f.Page, f.PageSize), nil
}

// matcher validates f and returns the predicate it describes
func (s *Service[B, E]) matcher(f models.Filter) (func(E) bool, error) {
	fields := make(map[string]string, len(f.Fields))
	for name, want := range f.Fields {
		if want == "" || want == models.FilterAll {
			continue
		}
		fields[name] = want
	}
	var zero E
	for name := range fields {
		if _, ok := s.schema.Field(zero, name); !ok {
			return nil, fmt.Errorf("%w: unknown %s field %q", ErrInvalidFilter, s.schema.Kind, name)
		}
	}

	var dates dateparse.Range
	if f.DateFrom != "" || f.DateTo != "" {
		if s.schema.Date == nil {
			return nil, fmt.Errorf("%w: %s cannot be filtered by date", ErrInvalidFilter, s.schema.Kind)
		}
		r, err := dateparse.ResolveRange(f.DateFrom, f.DateTo, s.now())
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidFilter, err)
		}
		dates = r
	}

	needle := fold(f.Search)

	return func(e E) bool {
		if needle != "" && !s.matchesSearch(e, needle) {
			return false
		}
		for name, want := range fields {
			if got, _ := s.schema.Field(e, name); got != want {
				return false
			}
		}
		if !dates.IsZero() && !dates.Contains(s.schema.Date(e)) {
			return false
		}
		return true
	}, nil
}

func (s *Service[B, E]) matchesSearch(e E, needle string) bool {
	for _, field := range s.schema.Search(e) {
		if strings.Contains(fold(field), needle) {
			return true
		}
	}
	return false
}

// fold normalizes s for case-insensitive comparison
func fold(s string) string {
	if s == "" {
		return s
	}
	return cases.Fold().String(norm.NFC.String(s))
}

func paginate[E any](items []E, page, size int) models.Page[E] {
	if page < 1 {
		page = models.DefaultPage
	}
	if size < 1 {
		size = models.DefaultPageSize
	}
	total := len(items)
	out := models.Page[E]{
		Items:      []E{},
		Total:      total,
		Page:       page,
		PageSize:   size,
		TotalPages: (total + size - 1) / size,
	}
	start := (page - 1) * size
	if start >= total {
		return out
	}
	end := min(start+size, total)
	out.Items = append(out.Items, items[start:end]...)
	return out
}

// Get returns one record by id. Deleted ids and ids unknown to the remote
// source yield ErrNotFound.
func (s *Service[B, E]) Get(ctx context.Context, id int) (E, error) {
	var zero E
	if err := s.reads.Wait(ctx); err != nil {
		return zero, err
	}
	st, err := s.store.Snapshot(ctx)
	if err != nil {
		return zero, err
	}
	for _, e := range st.Changes.Added {
		if e.RecordID() == id {
			return e, nil
		}
	}
	if st.Deleted.Has(id) {
		return zero, fmt.Errorf("%w: %s %d", ErrNotFound, s.schema.Kind, id)
	}
	return s.fetch(ctx, id, st.Changes.Updated[id])
}

// fetch reconstructs a remote record by id with override applied
func (s *Service[B, E]) fetch(ctx context.Context, id int, override models.Patch) (E, error) {
	var zero E
	b, err := s.schema.Fetch(ctx, id)
	if err != nil {
		if errors.Is(err, remote.ErrNotFound) {
			return zero, fmt.Errorf("%w: %s %d: %w", ErrNotFound, s.schema.Kind, id, err)
		}
		return zero, fmt.Errorf("fetch %s %d: %w", s.schema.Kind, id, err)
	}
	return s.project(b, id-1, override)
}

func (s *Service[B, E]) project(b B, index int, override models.Patch) (E, error) {
	e := s.schema.Project(b, index)
	if len(override) == 0 {
		return e, nil
	}
	merged, err := models.Apply(e, override)
	if err != nil {
		return e, fmt.Errorf("apply %s override %d: %w", s.schema.Kind, e.RecordID(), err)
	}
	return merged, nil
}
