package ascent

import (
	"github.com/oceandepth/zhl16gf/gas"
	"github.com/oceandepth/zhl16gf/model"
)

// FirstStopFinder finds the shallowest depth-grid-aligned absolute
// pressure at which an ascent from pFrom towards pTarget must halt for
// decompression, or reports that no stop is needed. It also returns the
// TissueState advanced to that point — find-first-stop both decides and
// executes the ascent up to the first stop, per spec. When no stop is
// needed, the returned state is the one after ascending to pTarget.
//
// Implementations must not assume which strategy is in use beyond this
// contract; the engine is written against the interface alone.
type FirstStopFinder interface {
	FindFirstStop(m *model.Model, p Params, state model.TissueState, pFrom, pTarget float64, g gas.Mix, rateMPerMin, gf float64) (model.TissueState, *float64, error)
}

// StepwiseChase is the default, more conservative first-stop strategy:
// repeatedly compute the ceiling, round it up to the depth grid, and
// ascend to that depth if doing so doesn't overshoot the target — each
// iteration strictly decreases depth by at least one grid step, or
// terminates, which bounds the loop by current_depth/StepSize.
type StepwiseChase struct{}

// FindFirstStop implements the stepwise ceiling chase described in
// spec §4.3.
func (StepwiseChase) FindFirstStop(m *model.Model, p Params, state model.TissueState, pFrom, pTarget float64, g gas.Mix, rateMPerMin, gf float64) (model.TissueState, *float64, error) {
	targetDepth := p.Depth(pTarget)
	curState := state
	curP := pFrom

	for {
		ceilP := m.CeilingLimit(curState, gf)
		ceilDepth := p.Depth(ceilP)
		stopDepth := p.RoundUpToStep(ceilDepth)
		if stopDepth < targetDepth {
			stopDepth = targetDepth
		}
		currentDepth := p.Depth(curP)

		switch {
		case stopDepth < currentDepth && stopDepth > targetDepth:
			// Still room to ascend: advance to stopDepth and re-chase.
			nextP := p.AbsPressure(stopDepth)
			curState = segment(m, curState, curP, nextP, rateMPerMin, p, g)
			curP = nextP
		case stopDepth > targetDepth:
			pStop := p.AbsPressure(stopDepth)
			return curState, &pStop, nil
		default:
			return segment(m, curState, curP, pTarget, rateMPerMin, p, g), nil, nil
		}
	}
}

// BisectionChase is the alternative first-stop strategy named in spec
// §9: rather than chasing the ceiling one grid step at a time, it
// evaluates a single direct ascent to each depth-grid candidate between
// pTarget and pFrom and binary-searches for the shallowest candidate that
// is still a valid direct ascent. Because later, deeper candidates
// off-gas less than the iterative chase does, this tends to surface a
// shallower (less conservative) first stop than StepwiseChase for the
// same inputs — callers that want the more conservative answer should
// use StepwiseChase, which is the engine's default.
type BisectionChase struct{}

// FindFirstStop implements the depth-bisection alternative.
func (BisectionChase) FindFirstStop(m *model.Model, p Params, state model.TissueState, pFrom, pTarget float64, g gas.Mix, rateMPerMin, gf float64) (model.TissueState, *float64, error) {
	targetDepth := p.RoundDownToStep(p.Depth(pTarget))
	currentDepth := p.RoundUpToStep(p.Depth(pFrom))

	directAscent := func(toDepth float64) (model.TissueState, bool) {
		toP := p.AbsPressure(toDepth)
		s := segment(m, state, pFrom, toP, rateMPerMin, p, g)
		return s, Valid(m, s, gf, toP)
	}

	// If ascending all the way to the target is already valid, no stop
	// is required.
	if s, ok := directAscent(targetDepth); ok {
		return s, nil, nil
	}

	lo, hi := targetDepth, currentDepth
	var bestState model.TissueState
	haveBest := false
	for hi-lo > p.StepSize/2 {
		mid := p.RoundUpToStep((lo + hi) / 2.0)
		if mid <= lo {
			mid = lo + p.StepSize
		}
		if mid >= hi {
			break
		}
		if s, ok := directAscent(mid); ok {
			hi = mid
			bestState = s
			haveBest = true
		} else {
			lo = mid
		}
	}

	if !haveBest {
		s, _ := directAscent(hi)
		bestState = s
	}
	pStop := p.AbsPressure(hi)
	return bestState, &pStop, nil
}
