package metrics

import (
	"strconv"
	"strings"
)

// Kind identifies which variant a Metric holds.
type Kind uint8

const (
	// KindInvalid is the kind of the zero Metric.
	KindInvalid Kind = iota
	KindCounter
	KindGauge
)

// String returns the lower-case kind name.
func (k Kind) String() string {
	switch k {
	case KindCounter:
		return "counter"
	case KindGauge:
		return "gauge"
	default:
		return "invalid"
	}
}

// Metric is a closed variant over Counter and Gauge. It lets the registry
// and exporters work over mixed collections without knowing each entry's
// concrete kind.
//
// A Metric aliases the storage of the handle it was built from.
type Metric struct {
	kind    Kind
	counter *counterCell
	gauge   *gaugeCell
}

// Kind returns the variant held by m.
func (m Metric) Kind() Kind { return m.kind }

// Valid reports whether m holds a metric.
func (m Metric) Valid() bool {
	switch m.kind {
	case KindCounter:
		return m.counter != nil
	case KindGauge:
		return m.gauge != nil
	default:
		return false
	}
}

// Counter returns the counter handle if m holds one.
func (m Metric) Counter() (Counter, bool) {
	if m.kind != KindCounter {
		return Counter{}, false
	}
	return Counter{cell: m.counter}, true
}

// Gauge returns the gauge handle if m holds one.
func (m Metric) Gauge() (Gauge, bool) {
	if m.kind != KindGauge {
		return Gauge{}, false
	}
	return Gauge{cell: m.gauge}, true
}

// AsNumber returns the current value as a float64. Counters above 2^53 lose
// precision.
func (m Metric) AsNumber() float64 {
	switch m.kind {
	case KindCounter:
		return float64(m.counter.v.Load())
	case KindGauge:
		return m.gauge.load()
	default:
		return 0
	}
}

// Reset sets the metric to its kind's zero value.
func (m Metric) Reset() {
	switch m.kind {
	case KindCounter:
		m.counter.v.Store(0)
	case KindGauge:
		m.gauge.store(0)
	}
}

// FormatValue renders the current value: counters as unsigned integers,
// gauges in their shortest decimal form.
func (m Metric) FormatValue() string {
	switch m.kind {
	case KindCounter:
		return strconv.FormatUint(m.counter.v.Load(), 10)
	case KindGauge:
		return formatGauge(m.gauge.load())
	default:
		return ""
	}
}

// FormatPair renders `"name" value` for the current value. The name is not
// escaped.
func (m Metric) FormatPair(name string) string {
	return pair(name, m.FormatValue())
}

// Read takes an atomic snapshot of the current value.
func (m Metric) Read() Reading {
	r := Reading{metric: m}
	switch m.kind {
	case KindCounter:
		r.u = m.counter.v.Load()
	case KindGauge:
		r.f = m.gauge.load()
	}
	return r
}

// String renders the current value.
func (m Metric) String() string { return m.FormatValue() }

func formatGauge(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func pair(name, value string) string {
	var b strings.Builder
	b.Grow(len(name) + len(value) + 3)
	b.WriteByte('"')
	b.WriteString(name)
	b.WriteString(`" `)
	b.WriteString(value)
	return b.String()
}
