package model

import (
	"testing"

	"github.com/oceandepth/zhl16gf/gas"
	"github.com/oceandepth/zhl16gf/kernel"
)

const surfacePressure = 1.01325

func newModel(v Variant) *Model {
	return New(v, surfacePressure, kernel.DefaultExp())
}

func TestInitSurfaceEquilibrated(t *testing.T) {
	m := newModel(ZHL16BGF)
	s := m.Init()

	want := (surfacePressure - kernel.WaterVapourPressure) * 0.7902
	for i, p := range s.N2 {
		if p != want {
			t.Errorf("N2[%d] = %v; want %v", i, p, want)
		}
	}
	for i, p := range s.He {
		if p != 0 {
			t.Errorf("He[%d] = %v; want 0", i, p)
		}
	}
}

func TestLoadNoOp(t *testing.T) {
	m := newModel(ZHL16BGF)
	s := m.Init()
	air := gas.NewAir(0)

	got := m.Load(s, 0.0, 0.0, surfacePressure, air)
	for i := range got.N2 {
		if got.N2[i] != s.N2[i] {
			t.Errorf("N2[%d] changed on zero-duration load: %v != %v", i, got.N2[i], s.N2[i])
		}
	}
}

func TestLoadNonNegative(t *testing.T) {
	m := newModel(ZHL16BGF)
	s := m.Init()
	air := gas.NewAir(0)

	// A long descent followed by a long ascent; every compartment
	// pressure must stay non-negative throughout.
	s = m.Load(s, 5.0, 1.0, surfacePressure, air)
	s = m.Load(s, 30.0, 0.0, surfacePressure+5.0, air)
	s = m.Load(s, 5.0, -1.0, surfacePressure+5.0, air)

	for i, p := range s.N2 {
		if p < 0 {
			t.Errorf("N2[%d] = %v; want >= 0", i, p)
		}
	}
	for i, p := range s.He {
		if p < 0 {
			t.Errorf("He[%d] = %v; want >= 0", i, p)
		}
	}
}

func TestCeilingMonotonicityInGF(t *testing.T) {
	m := newModel(ZHL16BGF)
	s := m.Init()
	air := gas.NewAir(0)

	// Load up some supersaturation so the ceiling is meaningfully above
	// the surface.
	bottomP := surfacePressure + 40.0*0.09985
	s = m.Load(s, 2.0, 1.0, surfacePressure, air)
	s = m.Load(s, 30.0, 0.0, bottomP, air)

	ceilLow := m.CeilingLimit(s, 0.3)
	ceilHigh := m.CeilingLimit(s, 0.85)

	if ceilLow < ceilHigh {
		t.Errorf("lowering gf should raise (or keep) the ceiling: ceil(gf=0.3)=%v < ceil(gf=0.85)=%v", ceilLow, ceilHigh)
	}
}

func TestCeilingAtSurfaceForFreshDiver(t *testing.T) {
	m := newModel(ZHL16BGF)
	s := m.Init()
	ceil := m.CeilingLimit(s, 1.0)
	if ceil > surfacePressure+1e-9 {
		t.Errorf("fresh diver ceiling = %v; want <= surface pressure %v", ceil, surfacePressure)
	}
}

func TestInterpolatedGF(t *testing.T) {
	p1 := surfacePressure + 9.0*0.09985 // first stop at 9m

	gotLow := InterpolatedGF(p1, p1, surfacePressure, 0.3, 0.85)
	if diff := gotLow - 0.3; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("gf at first stop = %v; want 0.3", gotLow)
	}

	gotHigh := InterpolatedGF(surfacePressure, p1, surfacePressure, 0.3, 0.85)
	if diff := gotHigh - 0.85; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("gf at surface = %v; want 0.85", gotHigh)
	}
}

func TestVariantCIsMoreConservativeFromCompartment5(t *testing.T) {
	b := newModel(ZHL16BGF)
	c := newModel(ZHL16CGF)
	air := gas.NewAir(0)

	sb := b.Init()
	sc := c.Init()

	bottomP := surfacePressure + 40.0*0.09985
	sb = b.Load(sb, 2.0, 1.0, surfacePressure, air)
	sb = b.Load(sb, 30.0, 0.0, bottomP, air)
	sc = c.Load(sc, 2.0, 1.0, surfacePressure, air)
	sc = c.Load(sc, 30.0, 0.0, bottomP, air)

	ceilB := b.CeilingLimit(sb, 0.85)
	ceilC := c.CeilingLimit(sc, 0.85)

	if ceilC < ceilB-1e-9 {
		t.Errorf("ZH-L16C ceiling (%v) should be no shallower than ZH-L16B (%v)", ceilC, ceilB)
	}
}

func TestNDLFreshDiverIsLarge(t *testing.T) {
	m := newModel(ZHL16BGF)
	s := m.Init()
	air := gas.NewAir(0)

	ndl := m.NDL(s, surfacePressure+18.0*0.09985, air, 0.85, 60)
	if ndl < 30 {
		t.Errorf("NDL at 18m for a fresh diver = %v; want a generous limit", ndl)
	}
}
