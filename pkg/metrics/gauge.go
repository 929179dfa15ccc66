package metrics

// Gauge is a handle to a float64 metric that can move up and down.
//
// Copies of a Gauge alias the same storage. The zero Gauge has no storage
// and panics on use; create gauges with NewGauge or through a Registry.
type Gauge struct {
	cell *gaugeCell
}

// NewGauge creates a gauge with its own storage. An optional initial value
// may be given; it defaults to zero.
func NewGauge(initial ...float64) Gauge {
	g := Gauge{cell: &gaugeCell{}}
	if len(initial) > 0 {
		g.cell.store(initial[0])
	}
	return g
}

// Add adds delta, which may be negative.
func (g Gauge) Add(delta float64) { g.cell.add(delta) }

// Sub subtracts delta.
func (g Gauge) Sub(delta float64) { g.cell.add(-delta) }

// Set replaces the value.
func (g Gauge) Set(v float64) { g.cell.store(v) }

// Value returns the current value.
func (g Gauge) Value() float64 { return g.cell.load() }

// Reset sets the gauge to zero for every alias.
func (g Gauge) Reset() { g.cell.store(0) }

// Swap sets the gauge to zero and returns the previous value atomically.
func (g Gauge) Swap() float64 { return g.cell.swap(0) }

// Same reports whether g and other alias the same storage.
func (g Gauge) Same(other Gauge) bool { return g.cell == other.cell }

// Valid reports whether the handle has storage.
func (g Gauge) Valid() bool { return g.cell != nil }

// Metric wraps the gauge for use in mixed collections.
func (g Gauge) Metric() Metric {
	return Metric{kind: KindGauge, gauge: g.cell}
}
