// Package metrics provides in-process counters and gauges with atomic,
// goroutine-safe mutation and a name-keyed registry.
//
// The package is organized as follows:
//
//   - cell.go: atomically mutable storage cells (uint64 for counters,
//     float64 bits for gauges)
//   - counter.go, gauge.go: handle types that alias one cell
//   - metric.go, reading.go: Metric, a closed variant over {Counter, Gauge},
//     and Reading, a snapshot of one metric that can be cleared later
//   - registry.go: Registry with get-or-create lookups
//
// Handles are small values. Copying a Counter or Gauge never copies the
// number, only the reference to its cell:
//
//	c := metrics.NewCounter(35)
//	alias := c
//	c.Inc()
//	alias.Value() // 36
//
// A Registry hands out handles by name and keeps them alive:
//
//	reg := metrics.NewRegistry()
//	requests := reg.MustCounter("http_requests")
//	requests.Add(20)
//
// The registry lock guards only the name map. Value mutation goes straight
// to the cell through the handle and never blocks.
//
// Counters are resettable. A monotonic counter normally only decreases on
// process restart, but the dumper package reports deltas by reading and
// clearing every metric, which requires Reset and Swap on counters too.
package metrics
