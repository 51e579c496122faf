package ascent

import (
	"github.com/oceandepth/zhl16gf/gas"
	"github.com/oceandepth/zhl16gf/model"
)

// SwitchResult carries the tissue state after a validated 3-step gas
// switch: ascend on the old gas to the switch depth, change mix, ascend
// on the new gas to the next depth-grid point.
type SwitchResult struct {
	State model.TissueState
}

// ValidateGasSwitch speculatively applies a tentative gas switch —
// ascend from pFrom to pSwitch on fromGas, switch to toGas, ascend from
// pSwitch to pTo on toGas — against a copy of state, and reports whether
// every one of the three micro-segments respects the ascent ceiling. It
// never mutates state; TissueState is already immutable, so "speculative"
// here just means the caller discards the result on a false return.
//
// gfAtSwitch and gfAtTo are the gradient factors to check the ceiling
// against at pSwitch and pTo respectively — they can differ, since the
// gf schedule is a function of depth and a gas switch during the
// decompression-stop loop is evaluated at a single depth, while one
// during free ascent may span the point where gf starts interpolating.
func ValidateGasSwitch(m *model.Model, p Params, state model.TissueState, pFrom, pSwitch, pTo, rateMPerMin, gfAtSwitch, gfAtTo float64, fromGas, toGas gas.Mix) (SwitchResult, bool) {
	afterAscendToSwitch := segment(m, state, pFrom, pSwitch, rateMPerMin, p, fromGas)
	if !Valid(m, afterAscendToSwitch, gfAtSwitch, pSwitch) {
		return SwitchResult{}, false
	}

	// The switch itself is instantaneous (zero duration), so it cannot
	// change any compartment pressure; re-checking validity here is a
	// no-op beyond the first check, but it documents the three-segment
	// shape spec §4.3 calls for.
	afterSwitch := afterAscendToSwitch
	if !Valid(m, afterSwitch, gfAtSwitch, pSwitch) {
		return SwitchResult{}, false
	}

	afterAscendToNext := segment(m, afterSwitch, pSwitch, pTo, rateMPerMin, p, toGas)
	if !Valid(m, afterAscendToNext, gfAtTo, pTo) {
		return SwitchResult{}, false
	}

	return SwitchResult{State: afterAscendToNext}, true
}
