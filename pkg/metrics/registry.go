package metrics

import (
	"fmt"
	"sort"
	"sync"
)

// Registry is a name-keyed store of metrics.
//
// A single mutex guards the map structure (insert, lookup, snapshot). It
// never guards metric values: mutations go through handles and bypass the
// lock entirely.
//
// The zero Registry is empty and ready to use.
type Registry struct {
	mu      sync.Mutex
	metrics map[string]Metric
}

// NewRegistry creates an empty, independent registry.
func NewRegistry() *Registry {
	return &Registry{
		metrics: make(map[string]Metric),
	}
}

var defaultRegistry = sync.OnceValue(NewRegistry)

// Default returns the process-wide registry. It is created on first use
// and lives for the rest of the process.
func Default() *Registry {
	return defaultRegistry()
}

// Counter returns the counter registered under name, creating a zero
// counter if the name is unknown. It returns ErrTypeMismatch if name holds
// a gauge.
func (r *Registry) Counter(name string) (Counter, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.metrics[name]
	if !ok {
		r.init()
		c := NewCounter()
		r.metrics[name] = c.Metric()
		return c, nil
	}
	c, ok := m.Counter()
	if !ok {
		return Counter{}, mismatch(name, m.Kind(), KindCounter)
	}
	return c, nil
}

// Gauge returns the gauge registered under name, creating a zero gauge if
// the name is unknown. It returns ErrTypeMismatch if name holds a counter.
func (r *Registry) Gauge(name string) (Gauge, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.metrics[name]
	if !ok {
		r.init()
		g := NewGauge()
		r.metrics[name] = g.Metric()
		return g, nil
	}
	g, ok := m.Gauge()
	if !ok {
		return Gauge{}, mismatch(name, m.Kind(), KindGauge)
	}
	return g, nil
}

// MustCounter is like Counter but panics on a type mismatch.
func (r *Registry) MustCounter(name string) Counter {
	c, err := r.Counter(name)
	if err != nil {
		panic(err)
	}
	return c
}

// MustGauge is like Gauge but panics on a type mismatch.
func (r *Registry) MustGauge(name string) Gauge {
	g, err := r.Gauge(name)
	if err != nil {
		panic(err)
	}
	return g
}

// AddMetric registers m under name, replacing any previous entry. The
// replaced metric stays valid for whoever still holds it.
//
// AddMetric panics if m holds no metric.
func (r *Registry) AddMetric(name string, m Metric) {
	if !m.Valid() {
		panic("metrics: AddMetric called with an empty Metric for " + name)
	}
	r.mu.Lock()
	r.init()
	r.metrics[name] = m
	r.mu.Unlock()
}

// AddCounter registers c under name, replacing any previous entry.
func (r *Registry) AddCounter(name string, c Counter) { r.AddMetric(name, c.Metric()) }

// AddGauge registers g under name, replacing any previous entry.
func (r *Registry) AddGauge(name string, g Gauge) { r.AddMetric(name, g.Metric()) }

// Snapshot returns a copy of the name to metric mapping.
//
// Membership is a point-in-time view and may be stale as soon as Snapshot
// returns; values stay live because the returned metrics alias the
// registered storage.
func (r *Registry) Snapshot() map[string]Metric {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make(map[string]Metric, len(r.metrics))
	for name, m := range r.metrics {
		out[name] = m
	}
	return out
}

// Names returns the registered names in ascending order.
func (r *Registry) Names() []string {
	r.mu.Lock()
	names := make([]string, 0, len(r.metrics))
	for name := range r.metrics {
		names = append(names, name)
	}
	r.mu.Unlock()

	sort.Strings(names)
	return names
}

// Len returns the number of registered metrics.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.metrics)
}

// init allocates the map of a zero Registry. r.mu must be held.
func (r *Registry) init() {
	if r.metrics == nil {
		r.metrics = make(map[string]Metric)
	}
}

func mismatch(name string, have, want Kind) error {
	return fmt.Errorf("%w: %q is registered as a %s, requested as a %s", ErrTypeMismatch, name, have, want)
}
