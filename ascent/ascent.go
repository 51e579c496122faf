// Package ascent implements the three numerical search primitives the
// dive engine composes to plan a staged ascent: the ascent-validity
// predicate, find-first-stop (a stepwise ceiling chase, with a
// bisection-based alternative) and find-stop-length (linear scan then
// bisection). All of them derive from one ceiling query against a
// model.Model; none of them hold state between calls.
package ascent

import (
	"math"

	"github.com/oceandepth/zhl16gf/gas"
	"github.com/oceandepth/zhl16gf/model"
	"github.com/oceandepth/zhl16gf/units"
)

// Epsilon absorbs floating-point noise when comparing a ceiling to a
// target pressure.
const Epsilon = 1e-6

// Params carries the handful of configuration values the search
// primitives need to convert between depth and absolute pressure and to
// align stops to the depth grid. It is a plain value, not an
// interface, so the ascent package never needs to import the engine's
// configuration type.
type Params struct {
	SurfacePressure float64
	MeterToBar      float64
	// StepSize is the depth grid stops are aligned to, in metres
	// (3.0 per spec).
	StepSize float64
}

// Depth converts an absolute pressure to depth under these params.
func (p Params) Depth(absPressure float64) float64 {
	return units.Depth(absPressure, p.SurfacePressure, p.MeterToBar)
}

// AbsPressure converts a depth to absolute pressure under these params.
func (p Params) AbsPressure(depth float64) float64 {
	return units.AbsPressure(depth, p.SurfacePressure, p.MeterToBar)
}

// RoundUpToStep rounds a depth up to the nearest multiple of StepSize.
func (p Params) RoundUpToStep(depth float64) float64 {
	return math.Ceil(depth/p.StepSize) * p.StepSize
}

// RoundDownToStep rounds a depth down to the nearest multiple of
// StepSize.
func (p Params) RoundDownToStep(depth float64) float64 {
	return math.Floor(depth/p.StepSize) * p.StepSize
}

// Valid reports whether state's ascent ceiling at gradient factor gf is
// at or shallower than pTarget, within Epsilon — the ascent-validity
// predicate every search primitive is built from.
func Valid(m *model.Model, state model.TissueState, gf, pTarget float64) bool {
	return m.CeilingLimit(state, gf) <= pTarget+Epsilon
}

// segment advances state along a linear ramp from pFrom to pTo at the
// given ascent/descent rate (metres/min, always positive) breathing g,
// returning the resulting state. The sign of the pressure change is
// derived from pTo-pFrom, so the same helper serves both ascents and
// descents.
func segment(m *model.Model, state model.TissueState, pFrom, pTo, rateMPerMin float64, p Params, g gas.Mix) model.TissueState {
	if pFrom == pTo {
		return state
	}
	rateBar := rateMPerMin * p.MeterToBar
	if pTo < pFrom {
		rateBar = -rateBar
	}
	t := (pTo - pFrom) / rateBar
	return m.Load(state, t, rateBar, pFrom, g)
}
