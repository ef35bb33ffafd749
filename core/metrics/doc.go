// Package metrics exposes Prometheus collectors for upstream calls, pipeline stages,
// persistence writes and run outcomes.
//
// Collectors are registered on an explicit prometheus.Registerer so tests can use a fresh
// registry. All recording methods are safe to call on a nil *Metrics.
package metrics
