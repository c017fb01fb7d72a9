// Package metrics exposes Prometheus collectors for remote fetches,
// overlay queries, and mutations.
package metrics

import (
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Vijaykumar22032001/Admin-Dashboard/internal/remote"
)

const namespace = "panel"

// Result label values
const (
	ResultOK       = "ok"
	ResultNotFound = "not_found"
	ResultError    = "error"
)

// Metrics holds the panel's collectors on a private registry
type Metrics struct {
	registry *prometheus.Registry

	fetches        *prometheus.CounterVec
	fetchDuration  *prometheus.HistogramVec
	queries        *prometheus.CounterVec
	queryRecords   *prometheus.HistogramVec
	mutations      *prometheus.CounterVec
	mutationLength *prometheus.HistogramVec
}

var _ remote.Observer = (*Metrics)(nil)

// New creates and registers the collectors
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		fetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "remote",
			Name:      "fetches_total",
			Help:      "Remote API fetches by endpoint and result.",
		}, []string{"endpoint", "result"}),
		fetchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "remote",
			Name:      "fetch_duration_seconds",
			Help:      "Remote API fetch latency.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"endpoint"}),
		queries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "overlay",
			Name:      "queries_total",
			Help:      "Overlay list queries by kind and result.",
		}, []string{"kind", "result"}),
		queryRecords: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "overlay",
			Name:      "query_matches",
			Help:      "Records matching a list query before pagination.",
			Buckets:   []float64{0, 1, 5, 10, 20, 50, 100, 200, 500},
		}, []string{"kind"}),
		mutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "overlay",
			Name:      "mutations_total",
			Help:      "Create, update and delete calls by kind, action and result.",
		}, []string{"kind", "action", "result"}),
		mutationLength: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "overlay",
			Name:      "mutation_duration_seconds",
			Help:      "Mutation latency including simulated delay.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"kind", "action"}),
	}
	m.registry.MustRegister(m.fetches, m.fetchDuration, m.queries, m.queryRecords, m.mutations, m.mutationLength)
	return m
}

// Registry returns the registry holding the collectors
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveFetch records one remote fetch
func (m *Metrics) ObserveFetch(endpoint string, elapsed time.Duration, err error) {
	if m == nil {
		return
	}
	m.fetches.WithLabelValues(endpoint, Result(err)).Inc()
	m.fetchDuration.WithLabelValues(endpoint).Observe(elapsed.Seconds())
}

// ObserveQuery records one list query and its match count
func (m *Metrics) ObserveQuery(kind, result string, matches int) {
	if m == nil {
		return
	}
	m.queries.WithLabelValues(kind, result).Inc()
	if result == ResultOK {
		m.queryRecords.WithLabelValues(kind).Observe(float64(matches))
	}
}

// ObserveMutation records one create, update or delete
func (m *Metrics) ObserveMutation(kind, action, result string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.mutations.WithLabelValues(kind, action, result).Inc()
	m.mutationLength.WithLabelValues(kind, action).Observe(elapsed.Seconds())
}

// Result maps err to a result label. remote.ErrNotFound and any of
// notFound count as ResultNotFound.
func Result(err error, notFound ...error) string {
	if err == nil {
		return ResultOK
	}
	if errors.Is(err, remote.ErrNotFound) {
		return ResultNotFound
	}
	for _, target := range notFound {
		if errors.Is(err, target) {
			return ResultNotFound
		}
	}
	return ResultError
}
