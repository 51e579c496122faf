// Package engine orchestrates the gas-loading kernel, the decompression
// model and the ascent search primitives into a full dive plan: descent,
// bottom segment, a no-decompression check, staged free ascent (with gas
// switches validated before they're taken), a decompression-stop loop
// that walks the gradient-factor schedule from gf_low to gf_high, and
// the final ascent to the surface.
package engine

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/oceandepth/zhl16gf/ascent"
	"github.com/oceandepth/zhl16gf/config"
	"github.com/oceandepth/zhl16gf/gas"
	"github.com/oceandepth/zhl16gf/kernel"
	"github.com/oceandepth/zhl16gf/model"
)

// mixFractionEpsilon is how far two mixes' O2/N2/He fractions may drift
// and still be considered the same gas for gas-switch bookkeeping.
const mixFractionEpsilon = 1e-9

// Engine plans a single dive against a fixed configuration. It holds no
// per-run state; Calculate may be called concurrently from a single
// Engine, matching model.Model's own concurrency guarantee.
type Engine struct {
	cfg    config.Config
	model  *model.Model
	params ascent.Params
	finder ascent.FirstStopFinder
	exp    kernel.ExpProvider
	log    logrus.FieldLogger
}

// New constructs an Engine from a validated configuration.
func New(cfg config.Config, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfiguration, err)
	}

	e := &Engine{
		cfg:    cfg,
		exp:    kernel.DefaultExp(),
		finder: ascent.StepwiseChase{},
		log:    silentLogger(),
	}
	for _, opt := range opts {
		opt(e)
	}

	variant, err := cfg.Variant()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfiguration, err)
	}
	e.model = model.New(variant, cfg.SurfacePressure, e.exp)
	e.params = ascent.Params{
		SurfacePressure: cfg.SurfacePressure,
		MeterToBar:      cfg.MeterToBar,
		StepSize:        config.StepSize,
	}
	return e, nil
}

// Calculate plans a square dive to bottomDepth (metres) for bottomTime
// minutes (measured from leaving the surface, i.e. including descent),
// breathing the mixes in gasList. gasList must be ordered by strictly
// ascending switch depth, with the bottom mix first (conventionally at
// switch depth 0); any mix whose switch depth exceeds bottomDepth is
// treated as a descent-only travel gas and otherwise ignored, since the
// descent itself is always flown on the bottom mix.
func (e *Engine) Calculate(bottomDepth, bottomTime float64, gasList []gas.Mix) (Plan, error) {
	if bottomDepth <= 0 {
		return Plan{}, fmt.Errorf("%w: bottom_depth must be positive, got %v", ErrConfiguration, bottomDepth)
	}
	if bottomTime <= 0 {
		return Plan{}, fmt.Errorf("%w: bottom_time must be positive, got %v", ErrConfiguration, bottomTime)
	}

	bottomMix, switchMixes, err := planGasList(bottomDepth, gasList)
	if err != nil {
		return Plan{}, err
	}

	p := e.params
	m := e.model
	gfLow, gfHigh := e.cfg.GFLow, e.cfg.GFHigh
	surfaceP := p.SurfacePressure
	bottomP := p.AbsPressure(bottomDepth)

	var steps []DiveStep
	currentTime := 0.0
	state := m.Init()
	steps = append(steps, DiveStep{Phase: START, AbsP: surfaceP, Time: currentTime, Gas: bottomMix, Tissues: state})

	// 1. Descent on the bottom mix.
	descentTime := (bottomP - surfaceP) / (e.cfg.DescentRate * p.MeterToBar)
	state = loadSegment(m, state, surfaceP, bottomP, e.cfg.DescentRate, p.MeterToBar, bottomMix)
	currentTime += descentTime
	steps = append(steps, DiveStep{Phase: DESCENT, AbsP: bottomP, Time: currentTime, Gas: bottomMix, Tissues: state})

	// 2. Bottom segment: the remainder of bottom_time after descent.
	holdTime := bottomTime - descentTime
	if holdTime < 0 {
		return Plan{}, fmt.Errorf("%w: bottom_time %.2f is shorter than the %.2f minutes the descent to %.1fm takes",
			ErrConfiguration, bottomTime, descentTime, bottomDepth)
	}
	state = m.Load(state, holdTime, 0, bottomP, bottomMix)
	currentTime += holdTime
	steps = append(steps, DiveStep{Phase: CONST, AbsP: bottomP, Time: currentTime, Gas: bottomMix, Tissues: state})

	// 3. No-decompression check: a hypothetical direct ascent to the
	// surface on the bottom mix. The surfacing invariant is governed by
	// the gradient factor in effect at the surface, gf_high — no stop has
	// been fixed yet, so there is no gf_low anchor to interpolate from.
	hypothetical := loadSegment(m, state, bottomP, surfaceP, e.cfg.AscentRate, p.MeterToBar, bottomMix)
	if ascent.Valid(m, hypothetical, gfHigh, surfaceP) {
		ascentTime := (bottomP - surfaceP) / (e.cfg.AscentRate * p.MeterToBar)
		currentTime += ascentTime
		hypothetical = model.WithGF(hypothetical, gfHigh)
		steps = append(steps, DiveStep{Phase: ASCENT, AbsP: surfaceP, Time: currentTime, Gas: bottomMix, Tissues: hypothetical})
		return Plan{Steps: steps}, nil
	}

	// 4. Staged free ascent, one stage per gas, from the bottom mix up
	// through each switch boundary, deepest switch first.
	boundaries := make([]float64, len(switchMixes)+1)
	for i, g := range switchMixes {
		boundaries[i] = g.SwitchDepth
	}
	boundaries[len(switchMixes)] = 0

	currentGas := bottomMix
	currentP := bottomP
	switchIdx := 0
	var firstStopP *float64

stageLoop:
	for i, boundaryDepth := range boundaries {
		if i > 0 {
			newGas := switchMixes[i-1]
			pSwitch := currentP
			pToRounded := p.AbsPressure(p.RoundUpToStep(p.Depth(currentP)))

			result, ok := ascent.ValidateGasSwitch(m, p, state, pSwitch, pSwitch, pToRounded, e.cfg.AscentRate, gfLow, gfLow, currentGas, newGas)
			if !ok {
				e.log.WithFields(logrus.Fields{
					"from_gas":     currentGas.MixType().String(),
					"to_gas":       newGas.MixType().String(),
					"switch_depth": p.Depth(currentP),
				}).Debug("gas switch failed ceiling validation; folding through to the decompression-stop loop on the current gas")

				// Abandon every remaining pending switch rather than
				// retrying them at a later stop: the dive completes on
				// whichever gas the failed switch would have left.
				switchIdx = len(switchMixes)

				stop, newState, serr := e.findStopOrSurface(state, currentP, surfaceP, currentGas, gfLow)
				if serr != nil {
					return Plan{}, serr
				}
				state = newState
				if stop == nil {
					currentTime += ascentDuration(currentP, surfaceP, e.cfg.AscentRate, p.MeterToBar)
					state = model.WithGF(state, gfLow)
					steps = append(steps, DiveStep{Phase: ASCENT, AbsP: surfaceP, Time: currentTime, Gas: currentGas, Tissues: state})
					return Plan{Steps: steps}, nil
				}
				currentTime += ascentDuration(currentP, *stop, e.cfg.AscentRate, p.MeterToBar)
				state = model.WithGF(state, gfLow)
				steps = append(steps, DiveStep{Phase: ASCENT, AbsP: *stop, Time: currentTime, Gas: currentGas, Tissues: state})
				currentP = *stop
				firstStopP = stop
				break stageLoop
			}

			steps = append(steps, DiveStep{Phase: GAS_MIX, AbsP: pSwitch, Time: currentTime, Gas: newGas, PrevGas: currentGas, Tissues: state})
			currentTime += ascentDuration(pSwitch, pToRounded, e.cfg.AscentRate, p.MeterToBar)
			state = model.WithGF(result.State, gfLow)
			currentGas = newGas
			currentP = pToRounded
			switchIdx = i
			steps = append(steps, DiveStep{Phase: ASCENT, AbsP: currentP, Time: currentTime, Gas: currentGas, Tissues: state})
		}

		pTarget := p.AbsPressure(boundaryDepth)
		newState, stop, ferr := e.finder.FindFirstStop(m, p, state, currentP, pTarget, currentGas, e.cfg.AscentRate, gfLow)
		if ferr != nil {
			return Plan{}, fmt.Errorf("%w: %v", ErrComputation, ferr)
		}

		if stop != nil {
			currentTime += ascentDuration(currentP, *stop, e.cfg.AscentRate, p.MeterToBar)
			newState = model.WithGF(newState, gfLow)
			steps = append(steps, DiveStep{Phase: ASCENT, AbsP: *stop, Time: currentTime, Gas: currentGas, Tissues: newState})
			state = newState
			currentP = *stop
			firstStopP = stop
			break stageLoop
		}

		currentTime += ascentDuration(currentP, pTarget, e.cfg.AscentRate, p.MeterToBar)
		newState = model.WithGF(newState, gfLow)
		steps = append(steps, DiveStep{Phase: ASCENT, AbsP: pTarget, Time: currentTime, Gas: currentGas, Tissues: newState})
		state = newState
		currentP = pTarget

		if boundaryDepth == 0 {
			return Plan{Steps: steps}, nil
		}
	}

	if firstStopP == nil {
		return Plan{Steps: steps}, nil
	}
	if *firstStopP > bottomP+ascent.Epsilon {
		return Plan{}, fmt.Errorf("%w: first stop at %.1fm is deeper than the bottom depth %.1fm",
			ErrComputation, p.Depth(*firstStopP), bottomDepth)
	}

	// 5. Decompression-stop loop: walk the depth grid from the first
	// stop to the last stop depth, updating the gf schedule at every
	// stop and applying any switch whose depth has now been reached.
	p1 := *firstStopP
	lastStopDepth := e.cfg.LastStopDepth
	// Snap to the grid: the pressure-to-depth round trip can leave
	// e.g. 12.000000000000002 rather than 12.
	depth := math.Round(p.Depth(p1)/config.StepSize) * config.StepSize
	var decoTable []DecoStop

	for {
		pStopDepth := p.AbsPressure(depth)

		for switchIdx < len(switchMixes) && switchMixes[switchIdx].SwitchDepth >= depth-1e-9 {
			newGas := switchMixes[switchIdx]
			switchIdx++
			if mixesEqual(newGas, currentGas) {
				continue
			}
			steps = append(steps, DiveStep{Phase: GAS_MIX, AbsP: pStopDepth, Time: currentTime, Gas: newGas, PrevGas: currentGas, Tissues: state})
			currentGas = newGas
		}

		gf := model.InterpolatedGF(pStopDepth, p1, surfaceP, gfLow, gfHigh)

		var nextDepth float64
		if depth <= lastStopDepth {
			nextDepth = 0
		} else {
			nextDepth = depth - config.StepSize
			if nextDepth < lastStopDepth {
				nextDepth = lastStopDepth
			}
		}
		pNext := p.AbsPressure(nextDepth)
		gfNext := model.InterpolatedGF(pNext, p1, surfaceP, gfLow, gfHigh)

		length, lerr := ascent.StopLength(m, state, pStopDepth, pNext, gfNext, currentGas, 64)
		if lerr != nil {
			return Plan{}, fmt.Errorf("%w: %v", ErrComputation, lerr)
		}
		length = ascent.RoundUpToStopTime(length, e.cfg.MinimumDecoStopTime)

		state = m.Load(state, float64(length), 0, pStopDepth, currentGas)
		state = model.WithGF(state, gf)
		currentTime += float64(length)
		steps = append(steps, DiveStep{Phase: DECO_STOP, AbsP: pStopDepth, Time: currentTime, Gas: currentGas, Tissues: state})
		decoTable = append(decoTable, DecoStop{Depth: depth, Time: float64(length)})

		currentTime += ascentDuration(pStopDepth, pNext, e.cfg.AscentRate, p.MeterToBar)
		state = loadSegment(m, state, pStopDepth, pNext, e.cfg.AscentRate, p.MeterToBar, currentGas)
		state = model.WithGF(state, gfNext)
		steps = append(steps, DiveStep{Phase: ASCENT, AbsP: pNext, Time: currentTime, Gas: currentGas, Tissues: state})

		if depth <= lastStopDepth {
			break
		}
		depth = nextDepth
	}

	return Plan{Steps: steps, DecoTable: decoTable}, nil
}

// findStopOrSurface looks for a first stop between pFrom and the
// surface, or reports that the ascent can run straight through.
func (e *Engine) findStopOrSurface(state model.TissueState, pFrom, surfaceP float64, g gas.Mix, gf float64) (*float64, model.TissueState, error) {
	newState, stop, err := e.finder.FindFirstStop(e.model, e.params, state, pFrom, surfaceP, g, e.cfg.AscentRate, gf)
	if err != nil {
		return nil, model.TissueState{}, fmt.Errorf("%w: %v", ErrComputation, err)
	}
	return stop, newState, nil
}

// ascentDuration returns the (always non-negative) time in minutes an
// ascent or descent between two absolute pressures takes at the given
// rate.
func ascentDuration(pFrom, pTo, rateMPerMin, meterToBar float64) float64 {
	return math.Abs(pTo-pFrom) / (rateMPerMin * meterToBar)
}

// loadSegment advances state along a linear ramp from pFrom to pTo,
// deriving the signed rate from the direction of travel so the same
// helper serves both ascents and descents — mirrors ascent.segment,
// which the engine can't call directly since it's unexported.
func loadSegment(m *model.Model, state model.TissueState, pFrom, pTo, rateMPerMin, meterToBar float64, g gas.Mix) model.TissueState {
	if pFrom == pTo {
		return state
	}
	rateBar := rateMPerMin * meterToBar
	if pTo < pFrom {
		rateBar = -rateBar
	}
	t := (pTo - pFrom) / rateBar
	return m.Load(state, t, rateBar, pFrom, g)
}

// planGasList validates a gas list and splits it into the bottom mix
// (the first entry, conventionally anchored at switch depth 0) and the
// sequence of gases used during ascent, ordered deepest-switch-first.
// Mixes whose switch depth exceeds bottomDepth are travel gases used
// only during descent; the engine's descent step always flies the
// bottom mix, so they're accepted but otherwise unused.
func planGasList(bottomDepth float64, gasList []gas.Mix) (gas.Mix, []gas.Mix, error) {
	if len(gasList) == 0 {
		return gas.Mix{}, nil, fmt.Errorf("%w: gas_list must not be empty", ErrConfiguration)
	}
	for i, g := range gasList {
		if err := g.Validate(); err != nil {
			return gas.Mix{}, nil, fmt.Errorf("%w: %v", ErrConfiguration, err)
		}
		if i > 0 && gasList[i].SwitchDepth <= gasList[i-1].SwitchDepth {
			return gas.Mix{}, nil, fmt.Errorf("%w: gas_list must be ordered by strictly ascending switch_depth", ErrConfiguration)
		}
	}

	bottomMix := gasList[0]
	if bottomMix.SwitchDepth > bottomDepth {
		return gas.Mix{}, nil, fmt.Errorf("%w: bottom depth %.1fm is shallower than the bottom mix's switch depth %.1fm",
			ErrConfiguration, bottomDepth, bottomMix.SwitchDepth)
	}

	var ascentMixes []gas.Mix
	for _, g := range gasList[1:] {
		if g.SwitchDepth <= bottomDepth {
			ascentMixes = append(ascentMixes, g)
		}
	}
	for i, j := 0, len(ascentMixes)-1; i < j; i, j = i+1, j-1 {
		ascentMixes[i], ascentMixes[j] = ascentMixes[j], ascentMixes[i]
	}
	return bottomMix, ascentMixes, nil
}

func mixesEqual(a, b gas.Mix) bool {
	return math.Abs(a.O2-b.O2) < mixFractionEpsilon &&
		math.Abs(a.N2-b.N2) < mixFractionEpsilon &&
		math.Abs(a.He-b.He) < mixFractionEpsilon
}
