package metrics

import (
	"math"
	"sync/atomic"
)

// counterCell is the shared storage behind every Counter alias.
type counterCell struct {
	v atomic.Uint64
}

// gaugeCell stores the bits of a float64 in a uint64 for atomic access.
type gaugeCell struct {
	bits atomic.Uint64
}

func (g *gaugeCell) load() float64 {
	return math.Float64frombits(g.bits.Load())
}

func (g *gaugeCell) store(v float64) {
	g.bits.Store(math.Float64bits(v))
}

func (g *gaugeCell) swap(v float64) float64 {
	return math.Float64frombits(g.bits.Swap(math.Float64bits(v)))
}

// add has no native atomic instruction for floats, so it retries a
// compare-and-swap until no other writer got in between.
func (g *gaugeCell) add(delta float64) {
	for {
		old := g.bits.Load()
		next := math.Float64bits(math.Float64frombits(old) + delta)
		if g.bits.CompareAndSwap(old, next) {
			return
		}
	}
}

// take subtracts observed, but never more than the cell holds. A reset or
// another reader that cleared first leaves the cell at zero instead of
// wrapping it.
func (c *counterCell) take(observed uint64) {
	for {
		old := c.v.Load()
		if c.v.CompareAndSwap(old, old-min(old, observed)) {
			return
		}
	}
}

// take removes observed from the gauge. An unchanged cell goes straight to
// zero. Infinities and NaN cannot be subtracted, so a non-finite reading
// zeroes a cell that is still non-finite and leaves a finite one alone.
func (g *gaugeCell) take(observed float64) {
	ob := math.Float64bits(observed)
	for {
		old := g.bits.Load()
		cur := math.Float64frombits(old)
		var next float64
		switch {
		case old == ob:
			next = 0
		case !finite(observed):
			if finite(cur) {
				return
			}
			next = 0
		default:
			next = cur - observed
		}
		if g.bits.CompareAndSwap(old, math.Float64bits(next)) {
			return
		}
	}
}

func finite(f float64) bool {
	return !math.IsInf(f, 0) && !math.IsNaN(f)
}
