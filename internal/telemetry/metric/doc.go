// Package metric provides Prometheus self-metrics for metricsdump.
//
// It instruments the exporter itself, not the user metrics it exports:
//
//   - prometheus.go: per-dumper counters and gauges (writes, failures,
//     bytes, last write time, auto-write state)
//   - collector.go: a collector reporting the size of a metrics.Registry
//   - summary.go: flattening a Gatherer into name/value pairs for logs
//
// Nothing here serves HTTP. Callers own the prometheus.Registry and decide
// how, or whether, to expose it.
package metric
