package model

// TissueState is an immutable snapshot of the 16-compartment inert-gas
// loading. Values are never mutated in place; every Model operation
// returns a new TissueState.
type TissueState struct {
	N2 [CompartmentCount]float64
	He [CompartmentCount]float64
	// GF is the gradient factor in use when this state was produced; it
	// is carried for provenance/invariant-checking, not as the model's
	// source of truth for the next ceiling query (that's an explicit
	// parameter — see Model.CeilingLimit).
	GF float64
}
