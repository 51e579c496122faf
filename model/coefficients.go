package model

// Variant selects which of Bühlmann's published ZH-L16 coefficient sets
// (as extended by Erik Baker's gradient factors) a Model uses. Both
// variants share the same 16 half-times; they differ in the nitrogen A/B
// coefficients from compartment 5 onwards, where the C variant is
// tightened relative to B.
type Variant int

const (
	ZHL16BGF Variant = iota
	ZHL16CGF
)

func (v Variant) String() string {
	switch v {
	case ZHL16BGF:
		return "ZH-L16B-GF"
	case ZHL16CGF:
		return "ZH-L16C-GF"
	}
	return "unknown"
}

// CompartmentCount is the number of tissue compartments in a ZH-L16
// model.
const CompartmentCount = 16

// compartCoefs holds one compartment's half-times and Bühlmann A/B
// coefficients for both nitrogen and helium.
type compartCoefs struct {
	n2HalfTime float64
	n2A        float64
	n2B        float64
	heHalfTime float64
	heA        float64
	heB        float64
}

// coefSets holds the per-variant compartment tables, ordered shallowest
// (fastest) compartment first. Values are Bühlmann's published ZH-L16B
// and ZH-L16C constants.
var coefSets = map[Variant][CompartmentCount]compartCoefs{
	ZHL16BGF: {
		{n2HalfTime: 4.0, n2A: 1.2599, n2B: 0.5240, heHalfTime: 1.51, heA: 1.6189, heB: 0.4245},
		{n2HalfTime: 8.0, n2A: 1.0000, n2B: 0.6514, heHalfTime: 3.02, heA: 1.3830, heB: 0.5747},
		{n2HalfTime: 12.5, n2A: 0.8618, n2B: 0.7222, heHalfTime: 4.72, heA: 1.1919, heB: 0.6527},
		{n2HalfTime: 18.5, n2A: 0.7562, n2B: 0.7825, heHalfTime: 6.99, heA: 1.0458, heB: 0.7223},
		{n2HalfTime: 27.0, n2A: 0.6667, n2B: 0.8126, heHalfTime: 10.21, heA: 0.9220, heB: 0.7582},
		{n2HalfTime: 38.3, n2A: 0.5933, n2B: 0.8434, heHalfTime: 14.48, heA: 0.8205, heB: 0.7957},
		{n2HalfTime: 54.3, n2A: 0.5282, n2B: 0.8693, heHalfTime: 20.53, heA: 0.7305, heB: 0.8279},
		{n2HalfTime: 77.0, n2A: 0.4701, n2B: 0.8910, heHalfTime: 29.11, heA: 0.6502, heB: 0.8553},
		{n2HalfTime: 109.0, n2A: 0.4187, n2B: 0.9092, heHalfTime: 41.20, heA: 0.5950, heB: 0.8757},
		{n2HalfTime: 146.0, n2A: 0.3798, n2B: 0.9222, heHalfTime: 55.19, heA: 0.5545, heB: 0.8903},
		{n2HalfTime: 187.0, n2A: 0.3497, n2B: 0.9319, heHalfTime: 70.69, heA: 0.5333, heB: 0.8997},
		{n2HalfTime: 239.0, n2A: 0.3223, n2B: 0.9403, heHalfTime: 90.34, heA: 0.5189, heB: 0.9073},
		{n2HalfTime: 305.0, n2A: 0.2971, n2B: 0.9477, heHalfTime: 115.29, heA: 0.5181, heB: 0.9122},
		{n2HalfTime: 390.0, n2A: 0.2737, n2B: 0.9544, heHalfTime: 147.42, heA: 0.5176, heB: 0.9171},
		{n2HalfTime: 498.0, n2A: 0.2523, n2B: 0.9602, heHalfTime: 188.24, heA: 0.5172, heB: 0.9217},
		{n2HalfTime: 635.0, n2A: 0.2327, n2B: 0.9653, heHalfTime: 240.03, heA: 0.5119, heB: 0.9267},
	},
	ZHL16CGF: {
		{n2HalfTime: 4.0, n2A: 1.2599, n2B: 0.5240, heHalfTime: 1.51, heA: 1.6189, heB: 0.4245},
		{n2HalfTime: 8.0, n2A: 1.0000, n2B: 0.6514, heHalfTime: 3.02, heA: 1.3830, heB: 0.5747},
		{n2HalfTime: 12.5, n2A: 0.8618, n2B: 0.7222, heHalfTime: 4.72, heA: 1.1919, heB: 0.6527},
		{n2HalfTime: 18.5, n2A: 0.7562, n2B: 0.7825, heHalfTime: 6.99, heA: 1.0458, heB: 0.7223},
		{n2HalfTime: 27.0, n2A: 0.6667, n2B: 0.8126, heHalfTime: 10.21, heA: 0.9220, heB: 0.7582},
		{n2HalfTime: 38.3, n2A: 0.5600, n2B: 0.8434, heHalfTime: 14.48, heA: 0.8205, heB: 0.7957},
		{n2HalfTime: 54.3, n2A: 0.4947, n2B: 0.8693, heHalfTime: 20.53, heA: 0.7305, heB: 0.8279},
		{n2HalfTime: 77.0, n2A: 0.4500, n2B: 0.8910, heHalfTime: 29.11, heA: 0.6502, heB: 0.8553},
		{n2HalfTime: 109.0, n2A: 0.4187, n2B: 0.9092, heHalfTime: 41.20, heA: 0.5950, heB: 0.8757},
		{n2HalfTime: 146.0, n2A: 0.3798, n2B: 0.9222, heHalfTime: 55.19, heA: 0.5545, heB: 0.8903},
		{n2HalfTime: 187.0, n2A: 0.3497, n2B: 0.9319, heHalfTime: 70.69, heA: 0.5333, heB: 0.8997},
		{n2HalfTime: 239.0, n2A: 0.3223, n2B: 0.9403, heHalfTime: 90.34, heA: 0.5189, heB: 0.9073},
		{n2HalfTime: 305.0, n2A: 0.2850, n2B: 0.9477, heHalfTime: 115.29, heA: 0.5181, heB: 0.9122},
		{n2HalfTime: 390.0, n2A: 0.2737, n2B: 0.9544, heHalfTime: 147.42, heA: 0.5176, heB: 0.9171},
		{n2HalfTime: 498.0, n2A: 0.2523, n2B: 0.9602, heHalfTime: 188.24, heA: 0.5172, heB: 0.9217},
		{n2HalfTime: 635.0, n2A: 0.2327, n2B: 0.9653, heHalfTime: 240.03, heA: 0.5119, heB: 0.9267},
	},
}
