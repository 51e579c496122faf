// Package model implements the ZH-L16-GF decompression model: it holds
// the 16-compartment coefficient table for a chosen variant, advances
// TissueState through constant-depth and linear-ramp segments via the
// gas-loading kernel, and computes the gradient-factor-adjusted ascent
// ceiling.
package model

import (
	"math"

	"github.com/oceandepth/zhl16gf/gas"
	"github.com/oceandepth/zhl16gf/kernel"
)

// Model is immutable once constructed; all of its operations take a
// TissueState and return a new one, never mutating shared state, so a
// single Model can be shared across concurrent callers.
type Model struct {
	variant         Variant
	coefs           [CompartmentCount]compartCoefs
	n2K             [CompartmentCount]float64
	heK             [CompartmentCount]float64
	exp             kernel.ExpProvider
	surfacePressure float64
}

// New constructs a Model for the given variant and surface pressure
// (bar), using exp as the exp(-k*t) provider. Pass kernel.DefaultExp()
// for the standard math-library implementation.
func New(variant Variant, surfacePressure float64, exp kernel.ExpProvider) *Model {
	coefs := coefSets[variant]
	m := &Model{
		variant:         variant,
		coefs:           coefs,
		exp:             exp,
		surfacePressure: surfacePressure,
	}
	for i, c := range coefs {
		m.n2K[i] = math.Ln2 / c.n2HalfTime
		m.heK[i] = math.Ln2 / c.heHalfTime
	}
	return m
}

// Variant returns the coefficient set the model was constructed with.
func (m *Model) Variant() Variant {
	return m.variant
}

// Init returns the surface-equilibrated TissueState: every compartment
// loaded with nitrogen from air at the surface, no helium.
func (m *Model) Init() TissueState {
	var s TissueState
	n2Surface := kernel.InspiredPressure(m.surfacePressure, 0.7902)
	for i := 0; i < CompartmentCount; i++ {
		s.N2[i] = n2Surface
	}
	s.GF = 1.0
	return s
}

// Load advances every compartment from state by either the Schreiner
// equation (when r != 0, a linear ascent/descent at rate r bar/min) or
// the Haldane equation (when r == 0, a constant-depth exposure), for a
// duration of t minutes breathing mix g starting from absolute pressure
// pStart.
func (m *Model) Load(state TissueState, t, r, pStart float64, g gas.Mix) TissueState {
	next := TissueState{GF: state.GF}

	n2Pi0 := kernel.InspiredPressure(pStart, g.N2)
	hePi0 := kernel.InspiredPressure(pStart, g.He)

	for i := 0; i < CompartmentCount; i++ {
		if r != 0 {
			next.N2[i] = kernel.Schreiner(n2Pi0, state.N2[i], r*g.N2, m.n2K[i], t, m.exp)
			next.He[i] = kernel.Schreiner(hePi0, state.He[i], r*g.He, m.heK[i], t, m.exp)
		} else {
			next.N2[i] = kernel.Haldane(state.N2[i], n2Pi0, m.n2K[i], t, m.exp)
			next.He[i] = kernel.Haldane(state.He[i], hePi0, m.heK[i], t, m.exp)
		}
	}

	return next
}

// WithGF returns a copy of state with GF replaced; used by the engine to
// stamp a state with the gradient factor that was in effect when it was
// produced.
func WithGF(state TissueState, gf float64) TissueState {
	state.GF = gf
	return state
}

// CeilingLimit returns the shallowest absolute pressure (bar) to which
// the diver may ascend without violating any compartment's
// gradient-factor-adjusted Bühlmann M-value, for the given gradient
// factor gf. gf is an explicit parameter (not read from state.GF) so the
// engine can query the ceiling under a hypothetical/updated gf without
// first producing a new TissueState.
func (m *Model) CeilingLimit(state TissueState, gf float64) float64 {
	ceiling := -math.MaxFloat64

	for i := 0; i < CompartmentCount; i++ {
		pHe := state.He[i]
		pN2 := state.N2[i]
		total := pHe + pN2
		if total <= 0 {
			continue
		}

		c := m.coefs[i]
		a := (pHe*c.heA + pN2*c.n2A) / total
		b := (pHe*c.heB + pN2*c.n2B) / total

		pTol := (total - gf*a) / (gf/b - gf + 1.0)
		if pTol < 0 {
			pTol = 0
		}
		if pTol > ceiling {
			ceiling = pTol
		}
	}

	if ceiling < 0 {
		ceiling = 0
	}
	return ceiling
}

// SurfacePressure returns the surface pressure (bar) the model was
// constructed with.
func (m *Model) SurfacePressure() float64 {
	return m.surfacePressure
}

// NDL returns the number of whole minutes the diver may remain at
// absolute pressure pCurrent (held constant while breathing g) before
// the ascent ceiling rises above the surface. It
// simulates one-minute Haldane holds up to maxMinutes and returns
// maxMinutes if no ceiling violation occurs within that bound (read as
// "maxMinutes or more"). gf is the gradient factor to evaluate the
// ceiling at — an NDL query is normally made at gf_high, the least
// conservative point in the schedule, since no stop has been fixed yet.
func (m *Model) NDL(state TissueState, pCurrent float64, g gas.Mix, gf float64, maxMinutes int) int {
	s := state
	for i := 0; i < maxMinutes; i++ {
		s = m.Load(s, 1.0, 0.0, pCurrent, g)
		if m.CeilingLimit(s, gf) > m.surfacePressure {
			return i
		}
	}
	return maxMinutes
}

// InterpolatedGF returns the gradient factor in effect at absolute
// pressure pCurrent, given the first stop's absolute pressure p1 (the
// deepest, most conservative point of the schedule, where gf == gfLow)
// and the surface pressure (the shallowest point, where gf == gfHigh).
// The interpolation is linear in depth, per Baker's gradient factor
// schedule:
//
//	gf(D) = gfHigh + (D/D1)*(gfLow-gfHigh)
//
// expressed here in absolute-pressure terms so callers don't need to
// convert back and forth between pressure and depth.
func InterpolatedGF(pCurrent, p1, surfacePressure, gfLow, gfHigh float64) float64 {
	d1 := p1 - surfacePressure
	if d1 <= 0 {
		return gfHigh
	}
	d := pCurrent - surfacePressure
	return gfHigh + (d/d1)*(gfLow-gfHigh)
}
