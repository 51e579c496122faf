// Package gas models a breathable gas mixture (air, nitrox or trimix) and
// the handful of gas-planning convenience calculations (MOD, EAD, best
// nitrox mix) that sit alongside the decompression engine but don't
// participate in its ascent-ceiling calculus.
package gas

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// fractionSumTolerance is how far a mix's O2+N2+He fractions may drift
// from 1.0 and still be accepted. It is tighter than the 1e-6 bar epsilon
// the ascent-ceiling calculus uses for pressure comparisons.
const fractionSumTolerance = 1e-9

// Mix is a breathable gas mixture: mole fractions of oxygen, nitrogen and
// helium (summing to 1.0) plus the depth in metres at which a diver
// switches to it. The bottom/travel mix is anchored at SwitchDepth 0 or
// the bottom depth; helium > 0 marks it as trimix.
type Mix struct {
	O2          float64
	N2          float64
	He          float64
	SwitchDepth float64
}

// Type enumerates the broad category of a gas mixture.
type Type int

const (
	Unknown Type = iota
	Air
	Nitrox
	Heliox
	Trimix
)

func (t Type) String() string {
	switch t {
	case Air:
		return "Air"
	case Nitrox:
		return "Nitrox"
	case Heliox:
		return "Heliox"
	case Trimix:
		return "Trimix"
	}
	return "Unknown"
}

// NewAir returns the standard air mix (21% O2, 79% N2) with the given
// switch depth.
func NewAir(switchDepth float64) Mix {
	return Mix{O2: 0.21, N2: 0.79, SwitchDepth: switchDepth}
}

// NewNitrox constructs a nitrox mix with the given oxygen fraction; the
// nitrogen fraction is derived from it.
func NewNitrox(fo2, switchDepth float64) (Mix, error) {
	if fo2 < 0.21 || fo2 > 1.0 {
		return Mix{}, fmt.Errorf("gas: invalid O2 fraction (%f), must be between 0.21 and 1.0 inclusive", fo2)
	}
	return Mix{O2: fo2, N2: 1.0 - fo2, SwitchDepth: switchDepth}, nil
}

// NewTrimix constructs a trimix mix with the given oxygen and helium
// fractions; the nitrogen fraction is derived from them.
func NewTrimix(fo2, fhe, switchDepth float64) (Mix, error) {
	if fo2 < 0.1 || fo2 > 0.98 {
		return Mix{}, fmt.Errorf("gas: invalid O2 fraction (%f), must be between 0.1 and 0.98 inclusive", fo2)
	}
	if fhe < 0.01 || fhe > 0.85 {
		return Mix{}, fmt.Errorf("gas: invalid He fraction (%f), must be between 0.01 and 0.85 inclusive", fhe)
	}
	if fo2+fhe > 1.0 {
		return Mix{}, fmt.Errorf("gas: O2 (%f) and He (%f) fractions sum to more than 1.0", fo2, fhe)
	}
	return Mix{O2: fo2, N2: 1.0 - (fo2 + fhe), He: fhe, SwitchDepth: switchDepth}, nil
}

// Validate checks that a mix's fractions are non-negative and sum to 1.0
// within floating tolerance; it does not police PPO2/MOD safety, which is
// out of scope for the core per spec (the caller is assumed to have
// chosen sane switch depths).
func (m Mix) Validate() error {
	if m.O2 < 0 || m.N2 < 0 || m.He < 0 {
		return fmt.Errorf("gas: mix %v has a negative fraction", m)
	}
	sum := floats.Sum([]float64{m.O2, m.N2, m.He})
	if math.Abs(sum-1.0) > fractionSumTolerance {
		return fmt.Errorf("gas: mix %v fractions sum to %f, not 1.0", m, sum)
	}
	return nil
}

// MixType classifies the mix as Air, Nitrox, Heliox or Trimix.
func (m Mix) MixType() Type {
	switch {
	case m.He == 0 && m.O2 == 0.21 && m.N2 == 0.79:
		return Air
	case m.He > 0 && m.N2 == 0:
		return Heliox
	case m.He > 0:
		return Trimix
	case m.O2 > 0:
		return Nitrox
	}
	return Unknown
}

// IsTrimix reports whether the mix carries any helium.
func (m Mix) IsTrimix() bool {
	return m.He > 0
}

// PPO2 returns the ambient partial pressure of oxygen for the mix at the
// given absolute pressure in bar.
func (m Mix) PPO2(absPressure float64) float64 {
	return absPressure * m.O2
}

// MOD returns the mix's maximum operating depth in metres for a given
// maximum PPO2, using the supplied surface pressure and metre-to-bar
// conversion factor.
func (m Mix) MOD(maxPPO2, surfacePressure, meterToBar float64) float64 {
	maxAbsP := maxPPO2 / m.O2
	return (maxAbsP - surfacePressure) / meterToBar
}

// EAD returns the nitrox mix's equivalent air depth in metres for a given
// actual depth, using the supplied metre-to-bar conversion factor. Air
// itself (FN2 == 0.79) has EAD == depth.
func (m Mix) EAD(depth, meterToBar float64) float64 {
	d := math.Abs(depth)
	oneBarInMetres := 1.0 / meterToBar
	return (d+oneBarInMetres)*m.N2/0.79 - oneBarInMetres
}

// BestMix returns the nitrox mix that maximises oxygen content without
// exceeding maxPPO2 at the given depth, floored to two decimal places.
func BestMix(depth, maxPPO2, surfacePressure, meterToBar, switchDepth float64) (Mix, error) {
	absP := surfacePressure + depth*meterToBar
	fo2 := maxPPO2 / absP
	fo2 = math.Floor(fo2*100.0) / 100.0
	return NewNitrox(fo2, switchDepth)
}
