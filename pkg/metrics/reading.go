package metrics

import "strconv"

// Reading is a value observed by Metric.Read, kept together with the
// metric it came from so the observed amount can later be cleared.
//
// Read followed by Clear is the read-and-clear used by exporters. It has
// the effect of Metric.Reset for the value that was reported, but keeps
// whatever was added between the two calls, which an unconditional Reset
// would lose.
type Reading struct {
	metric Metric
	u      uint64
	f      float64
}

// Kind returns the kind of the metric that was read.
func (r Reading) Kind() Kind { return r.metric.kind }

// Number returns the observed value as a float64.
func (r Reading) Number() float64 {
	if r.metric.kind == KindCounter {
		return float64(r.u)
	}
	return r.f
}

// FormatValue renders the observed value the same way Metric.FormatValue
// renders a live one.
func (r Reading) FormatValue() string {
	switch r.metric.kind {
	case KindCounter:
		return strconv.FormatUint(r.u, 10)
	case KindGauge:
		return formatGauge(r.f)
	default:
		return ""
	}
}

// FormatPair renders `"name" value` for the observed value.
func (r Reading) FormatPair(name string) string {
	return pair(name, r.FormatValue())
}

// Clear removes the observed value from the metric. Without concurrent
// writers the metric ends at zero, exactly as after Metric.Reset; updates
// that landed after the Read survive and are reported next time.
//
// Clear never takes more than the metric holds: if it was reset, or
// cleared by another Reading, in the meantime, a counter stays at zero
// rather than wrapping. A gauge that read as an infinity or NaN is set
// back to zero instead of being subtracted from.
func (r Reading) Clear() {
	switch r.metric.kind {
	case KindCounter:
		if r.u != 0 {
			r.metric.counter.take(r.u)
		}
	case KindGauge:
		if r.f != 0 {
			r.metric.gauge.take(r.f)
		}
	}
}
