// Package config holds the read-only configuration a planning run takes
// as input (spec §6), with package-level defaults matching the
// specification and a YAML decoder for hosts that want to load it from a
// file — reading the file itself stays the caller's concern, matching
// this module's file-I/O-is-out-of-scope boundary; FromYAML only ever
// sees bytes.
package config

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/oceandepth/zhl16gf/model"
)

// Default values per spec §6.
const (
	DefaultAscentRate          = 10.0
	DefaultDescentRate         = 20.0
	DefaultSurfacePressure     = 1.01325
	DefaultGFLow               = 0.30
	DefaultGFHigh              = 0.85
	DefaultLastStopDepth       = 3.0
	DefaultMeterToBar          = 0.09985
	DefaultMinimumDecoStopTime = 1
	DefaultModelVariant        = "ZH_L16B_GF"

	// StepSize is the depth grid stops and gas switches are aligned to.
	// Spec fixes this at 3m; it isn't exposed as a configuration knob.
	StepSize = 3.0
)

// Config is the read-only configuration for a single planning run.
type Config struct {
	AscentRate          float64 `yaml:"ascent_rate"`
	DescentRate         float64 `yaml:"descent_rate"`
	SurfacePressure     float64 `yaml:"surface_pressure"`
	GFLow               float64 `yaml:"gf_low"`
	GFHigh              float64 `yaml:"gf_high"`
	LastStopDepth       float64 `yaml:"last_stop_depth"`
	MeterToBar          float64 `yaml:"meter_to_bar"`
	MinimumDecoStopTime int     `yaml:"minimum_deco_stop_time"`
	ModelVariant        string  `yaml:"model_variant"`
}

// Default returns the configuration described by spec §6's defaults.
func Default() *Config {
	return &Config{
		AscentRate:          DefaultAscentRate,
		DescentRate:         DefaultDescentRate,
		SurfacePressure:     DefaultSurfacePressure,
		GFLow:               DefaultGFLow,
		GFHigh:              DefaultGFHigh,
		LastStopDepth:       DefaultLastStopDepth,
		MeterToBar:          DefaultMeterToBar,
		MinimumDecoStopTime: DefaultMinimumDecoStopTime,
		ModelVariant:        DefaultModelVariant,
	}
}

// FromYAML decodes a Config from YAML bytes, starting from Default() so
// any field the document omits keeps its default value.
func FromYAML(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse YAML: %w", err)
	}
	return cfg, nil
}

// Variant resolves the configured ModelVariant string to a model.Variant.
func (c *Config) Variant() (model.Variant, error) {
	switch c.ModelVariant {
	case "ZH_L16B_GF", "":
		return model.ZHL16BGF, nil
	case "ZH_L16C_GF":
		return model.ZHL16CGF, nil
	default:
		return 0, fmt.Errorf("config: unknown model_variant %q", c.ModelVariant)
	}
}

// Validate checks the configuration is internally consistent: positive
// rates, a last-stop depth of 3 or 6 metres, and gradient factors in
// (0, 1].
func (c *Config) Validate() error {
	if c.AscentRate <= 0 {
		return fmt.Errorf("config: ascent_rate must be positive, got %v", c.AscentRate)
	}
	if c.DescentRate <= 0 {
		return fmt.Errorf("config: descent_rate must be positive, got %v", c.DescentRate)
	}
	if c.SurfacePressure <= 0 {
		return fmt.Errorf("config: surface_pressure must be positive, got %v", c.SurfacePressure)
	}
	if c.MeterToBar <= 0 {
		return fmt.Errorf("config: meter_to_bar must be positive, got %v", c.MeterToBar)
	}
	if c.GFLow <= 0 || c.GFLow > 1.0 {
		return fmt.Errorf("config: gf_low must be in (0, 1], got %v", c.GFLow)
	}
	if c.GFHigh <= 0 || c.GFHigh > 1.0 {
		return fmt.Errorf("config: gf_high must be in (0, 1], got %v", c.GFHigh)
	}
	if c.GFLow > c.GFHigh {
		return fmt.Errorf("config: gf_low (%v) must not exceed gf_high (%v)", c.GFLow, c.GFHigh)
	}
	if c.LastStopDepth != 3.0 && c.LastStopDepth != 6.0 {
		return fmt.Errorf("config: last_stop_depth must be 3 or 6, got %v", c.LastStopDepth)
	}
	if c.MinimumDecoStopTime <= 0 {
		return fmt.Errorf("config: minimum_deco_stop_time must be positive, got %v", c.MinimumDecoStopTime)
	}
	if _, err := c.Variant(); err != nil {
		return err
	}
	return nil
}
