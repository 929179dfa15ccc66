package metrics

// Counter is a handle to a non-negative integer metric.
//
// Copies of a Counter alias the same storage: an increment through one copy
// is visible through all of them. The zero Counter has no storage and
// panics on use; create counters with NewCounter or through a Registry.
type Counter struct {
	cell *counterCell
}

// NewCounter creates a counter with its own storage. An optional initial
// value may be given; it defaults to zero.
func NewCounter(initial ...uint64) Counter {
	c := Counter{cell: &counterCell{}}
	if len(initial) > 0 {
		c.cell.v.Store(initial[0])
	}
	return c
}

// Inc adds one to the counter.
func (c Counter) Inc() { c.cell.v.Add(1) }

// Add adds delta to the counter.
func (c Counter) Add(delta uint64) { c.cell.v.Add(delta) }

// Value returns the current value.
func (c Counter) Value() uint64 { return c.cell.v.Load() }

// Reset sets the counter back to zero for every alias.
//
// Resetting breaks the usual monotonic-counter contract. It exists because
// read-and-clear exporters report per-interval deltas.
func (c Counter) Reset() { c.cell.v.Store(0) }

// Swap sets the counter to zero and returns the value it held, as one
// atomic step.
func (c Counter) Swap() uint64 { return c.cell.v.Swap(0) }

// Same reports whether c and other alias the same storage.
func (c Counter) Same(other Counter) bool { return c.cell == other.cell }

// Valid reports whether the handle has storage.
func (c Counter) Valid() bool { return c.cell != nil }

// Metric wraps the counter for use in mixed collections.
func (c Counter) Metric() Metric {
	return Metric{kind: KindCounter, counter: c.cell}
}
