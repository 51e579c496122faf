package config

import (
	"testing"

	"github.com/oceandepth/zhl16gf/model"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default() should validate cleanly: %v", err)
	}
}

func TestFromYAMLOverridesDefaults(t *testing.T) {
	data := []byte("gf_low: 0.4\ngf_high: 0.9\nmodel_variant: ZH_L16C_GF\n")
	cfg, err := FromYAML(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.GFLow != 0.4 || cfg.GFHigh != 0.9 {
		t.Errorf("GFLow/GFHigh = %v/%v; want 0.4/0.9", cfg.GFLow, cfg.GFHigh)
	}
	// Fields not present in the document keep their defaults.
	if cfg.AscentRate != DefaultAscentRate {
		t.Errorf("AscentRate = %v; want default %v", cfg.AscentRate, DefaultAscentRate)
	}
	v, err := cfg.Variant()
	if err != nil || v != model.ZHL16CGF {
		t.Errorf("Variant() = %v, %v; want ZHL16CGF, nil", v, err)
	}
}

func TestValidateRejectsBadGF(t *testing.T) {
	cfg := Default()
	cfg.GFLow = 0.9
	cfg.GFHigh = 0.3
	if err := cfg.Validate(); err == nil {
		t.Error("expected error when gf_low > gf_high")
	}
}

func TestValidateRejectsBadLastStop(t *testing.T) {
	cfg := Default()
	cfg.LastStopDepth = 4.5
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for a last_stop_depth other than 3 or 6")
	}
}

func TestVariantUnknown(t *testing.T) {
	cfg := Default()
	cfg.ModelVariant = "ZH_L16A_GF"
	if _, err := cfg.Variant(); err == nil {
		t.Error("expected error for an unsupported model variant")
	}
}
