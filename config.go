package particlefx

import "fmt"

type EffectType string

const (
	Rain         EffectType = "rain"
	Snow         EffectType = "snow"
	Fireworks    EffectType = "fireworks"
	Aurora       EffectType = "aurora"
	WaterRipple  EffectType = "waterRipple"
	Magic        EffectType = "magic"
	Smoke        EffectType = "smoke"
	DNA          EffectType = "dna"
	SolarSystem  EffectType = "solarSystem"
	Galaxy       EffectType = "galaxy"
	Fire         EffectType = "fire"
	MeteorShower EffectType = "meteorShower"
)

// EffectTypes lists every variant in menu order.
var EffectTypes = []EffectType{
	Rain, Snow, Fireworks, Aurora, WaterRipple, Magic,
	Smoke, DNA, SolarSystem, Galaxy, Fire, MeteorShower,
}

func (t EffectType) Known() bool {
	_, ok := registry[t]
	return ok
}

type Config struct {
	Type  EffectType `yaml:"type"`
	Count int        `yaml:"count"`
	Speed float32    `yaml:"speed"`
	Size  float32    `yaml:"size"`
	Color RGB        `yaml:"color"`
}

func DefaultConfig() Config {
	return Config{
		Type:  Rain,
		Count: 1000,
		Speed: 1,
		Size:  0.1,
		Color: White,
	}
}

// Validate checks the numeric constraints. The type is checked separately
// because unknown types fall back instead of failing.
func (c Config) Validate() error {
	if c.Count <= 0 {
		return &ConfigurationError{Field: "count", Reason: fmt.Sprintf("must be positive, got %d", c.Count)}
	}
	if c.Speed < 0 {
		return &ConfigurationError{Field: "speed", Reason: fmt.Sprintf("must not be negative, got %g", c.Speed)}
	}
	if c.Size < 0 {
		return &ConfigurationError{Field: "size", Reason: fmt.Sprintf("must not be negative, got %g", c.Size)}
	}
	return nil
}

// PartialConfig carries only the fields to change. Nil means keep.
type PartialConfig struct {
	Type  *EffectType `yaml:"type,omitempty"`
	Count *int        `yaml:"count,omitempty"`
	Speed *float32    `yaml:"speed,omitempty"`
	Size  *float32    `yaml:"size,omitempty"`
	Color *RGB        `yaml:"color,omitempty"`
}

func (p PartialConfig) Empty() bool {
	return p.Type == nil && p.Count == nil && p.Speed == nil && p.Size == nil && p.Color == nil
}

// Merge returns base with every non-nil field of p applied.
func Merge(base Config, p PartialConfig) Config {
	out := base
	if p.Type != nil {
		out.Type = *p.Type
	}
	if p.Count != nil {
		out.Count = *p.Count
	}
	if p.Speed != nil {
		out.Speed = *p.Speed
	}
	if p.Size != nil {
		out.Size = *p.Size
	}
	if p.Color != nil {
		out.Color = *p.Color
	}
	return out
}

// Helpers for building partial configs inline.

func WithType(t EffectType) PartialConfig { return PartialConfig{Type: &t} }
func WithCount(n int) PartialConfig       { return PartialConfig{Count: &n} }
func WithSpeed(v float32) PartialConfig   { return PartialConfig{Speed: &v} }
func WithSize(v float32) PartialConfig    { return PartialConfig{Size: &v} }
func WithColor(c RGB) PartialConfig       { return PartialConfig{Color: &c} }
