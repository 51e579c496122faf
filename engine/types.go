package engine

import (
	"github.com/oceandepth/zhl16gf/gas"
	"github.com/oceandepth/zhl16gf/model"
)

// Phase classifies what a DiveStep represents.
type Phase int

const (
	START Phase = iota
	DESCENT
	CONST
	ASCENT
	DECO_STOP
	GAS_MIX
)

func (p Phase) String() string {
	switch p {
	case START:
		return "START"
	case DESCENT:
		return "DESCENT"
	case CONST:
		return "CONST"
	case ASCENT:
		return "ASCENT"
	case DECO_STOP:
		return "DECO_STOP"
	case GAS_MIX:
		return "GAS_MIX"
	}
	return "UNKNOWN"
}

// DiveStep is one step of a planned dive: a phase, the absolute pressure
// at the step's end, the cumulative time since the dive started, the gas
// breathed to reach this step (and, for a GAS_MIX step, the gas breathed
// before it), and the tissue state at the step's end. Values are
// produced once by the engine and never mutated afterwards.
type DiveStep struct {
	Phase   Phase
	AbsP    float64
	Time    float64
	Gas     gas.Mix
	PrevGas gas.Mix
	Tissues model.TissueState
}

// DecoStop is one entry of the decompression table: a depth in metres
// and the number of minutes held there.
type DecoStop struct {
	Depth float64
	Time  float64
}

// Plan is the full output of a planning run: the ordered sequence of
// dive steps and the decompression table they imply. The table is
// derived from (a subsequence of) Steps but kept separately since it's
// the form most callers actually want to display.
type Plan struct {
	Steps     []DiveStep
	DecoTable []DecoStop
}

// TotalDecoTime sums the decompression table's stop times, in minutes.
func (p Plan) TotalDecoTime() float64 {
	var total float64
	for _, s := range p.DecoTable {
		total += s.Time
	}
	return total
}

// TotalTime returns the cumulative dive time at the last step, or zero
// for an empty plan.
func (p Plan) TotalTime() float64 {
	if len(p.Steps) == 0 {
		return 0
	}
	return p.Steps[len(p.Steps)-1].Time
}

// IsNDL reports whether the plan required no decompression stops.
func (p Plan) IsNDL() bool {
	return len(p.DecoTable) == 0
}
