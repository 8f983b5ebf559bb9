package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome label values.
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

// Selection result label values.
const (
	SelectionExact    = "exact"
	SelectionCascaded = "cascaded"
	SelectionNone     = "none"
)

// Default collectors, created by Init.
var (
	// GenerationsTotal counts generated values.
	// Labels: generator (type name), outcome (ok, error)
	GenerationsTotal *prometheus.CounterVec

	// SelectionsTotal counts best-rule lookups.
	// Labels: category, result (exact, cascaded, none)
	SelectionsTotal *prometheus.CounterVec

	// DocumentErrorsTotal counts entries skipped while loading documents.
	// Labels: document (rules, generators)
	DocumentErrorsTotal *prometheus.CounterVec

	// MutationPointers observes how many leaves one apply call resolved.
	MutationPointers prometheus.Histogram
)

var (
	defaultRegistry *Registry
	initOnce        sync.Once
	mu              sync.RWMutex
)

// Init creates the default registry and collectors. It is safe to call
// more than once.
func Init() *Registry {
	initOnce.Do(func() {
		r := NewRegistry()
		f := promauto.With(r.reg)

		mu.Lock()
		defer mu.Unlock()

		GenerationsTotal = f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pactcore_generations_total",
				Help: "Total number of values produced by generators",
			},
			[]string{"generator", "outcome"},
		)
		SelectionsTotal = f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pactcore_selections_total",
				Help: "Total number of best matching rule lookups",
			},
			[]string{"category", "result"},
		)
		DocumentErrorsTotal = f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pactcore_document_errors_total",
				Help: "Total number of rule or generator entries skipped while loading",
			},
			[]string{"document"},
		)
		MutationPointers = f.NewHistogram(prometheus.HistogramOpts{
			Name:    "pactcore_mutation_pointers",
			Help:    "Number of document leaves resolved by one apply call",
			Buckets: prometheus.ExponentialBuckets(1, 2, 8),
		})

		r.reg.MustRegister(collectors.NewGoCollector())
		defaultRegistry = r
	})
	return DefaultRegistry()
}

// DefaultRegistry returns the registry created by Init, or nil.
func DefaultRegistry() *Registry {
	mu.RLock()
	defer mu.RUnlock()
	return defaultRegistry
}

// Reset drops the default collectors so Init can run again. Used by tests.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	initOnce = sync.Once{}
	defaultRegistry = nil
	GenerationsTotal = nil
	SelectionsTotal = nil
	DocumentErrorsTotal = nil
	MutationPointers = nil
}

// ObserveGeneration records one generated value.
func ObserveGeneration(generator string, err error) {
	mu.RLock()
	defer mu.RUnlock()
	if GenerationsTotal == nil {
		return
	}
	outcome := OutcomeOK
	if err != nil {
		outcome = OutcomeError
	}
	GenerationsTotal.WithLabelValues(generator, outcome).Inc()
}

// ObserveSelection records one best-rule lookup.
func ObserveSelection(category, result string) {
	mu.RLock()
	defer mu.RUnlock()
	if SelectionsTotal == nil {
		return
	}
	SelectionsTotal.WithLabelValues(category, result).Inc()
}

// ObserveDocumentError records one skipped document entry.
func ObserveDocumentError(document string) {
	mu.RLock()
	defer mu.RUnlock()
	if DocumentErrorsTotal == nil {
		return
	}
	DocumentErrorsTotal.WithLabelValues(document).Inc()
}

// ObservePointers records the number of leaves one apply call resolved.
func ObservePointers(n int) {
	mu.RLock()
	defer mu.RUnlock()
	if MutationPointers == nil {
		return
	}
	MutationPointers.Observe(float64(n))
}
