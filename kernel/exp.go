package kernel

import "math"

// stdExp is the default ExpProvider, backed directly by math.Exp.
var stdExp = ExpFunc(func(k, t float64) float64 {
	return math.Exp(-k * t)
})

// DefaultExp returns the default ExpProvider, implemented with the
// standard math library's exp. It is the provider used when a model is
// constructed without an explicit override.
func DefaultExp() ExpProvider {
	return stdExp
}

// TableExp is an ExpProvider backed by a precomputed lookup table keyed
// on (k, t), for hosts where the transcendental math.Exp call is too
// costly to run on every compartment/segment. It is populated up front
// for a known set of compartment decay constants and segment durations
// (whole minutes for constant-depth segments, multiples of a small delta
// for linear ramps) and falls back to a direct computation for any key
// that was not precomputed, so it never silently errors.
type TableExp struct {
	table map[expKey]float64
}

type expKey struct {
	k float64
	t float64
}

// NewTableExp builds a TableExp precomputed for the Cartesian product of
// the given decay constants and time values.
func NewTableExp(decayConstants, times []float64) *TableExp {
	te := &TableExp{table: make(map[expKey]float64, len(decayConstants)*len(times))}
	for _, k := range decayConstants {
		for _, t := range times {
			te.table[expKey{k, t}] = math.Exp(-k * t)
		}
	}
	return te
}

// ExpMinusKT returns the precomputed exp(-k*t) if (k, t) was part of the
// table's construction, otherwise it computes it directly.
func (te *TableExp) ExpMinusKT(k, t float64) float64 {
	if v, ok := te.table[expKey{k, t}]; ok {
		return v
	}
	return math.Exp(-k * t)
}
