// Package metrics exposes Prometheus counters for rule selection, value
// generation and document loading.
//
// Metrics are registered on a private registry created by Init, so library
// users that never call Init pay nothing: every Observe helper is a no-op
// until the collectors exist.
//
// # Default Metrics
//
//   - pactcore_generations_total: values produced by generators (labels: generator, outcome)
//   - pactcore_selections_total: best-rule lookups (labels: category, result)
//   - pactcore_document_errors_total: skipped rule or generator entries (labels: document)
//   - pactcore_mutation_pointers: leaves resolved per apply call
//
// # Usage
//
//	registry := metrics.Init()
//	defer metrics.Reset()
//
//	metrics.ObserveGeneration("Uuid", nil)
//	http.Handle("/metrics", registry.Handler())
package metrics
