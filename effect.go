package particlefx

import (
	"fmt"

	"github.com/gekko3d/particlefx/render/core"
)

// Effect is one running visual effect. Every variant exposes a single render
// handle and a manifest of what it owns.
type Effect interface {
	Type() EffectType
	Config() Config
	Node() *core.Node
	Resources() *Manifest
	// Update advances the simulation by delta seconds.
	Update(ctx *Context, delta float32)
	// UpdateOptions applies speed, size and color. Count and type are
	// ignored; the host rebuilds the effect for those.
	UpdateOptions(ctx *Context, partial PartialConfig)
	Dispose(ctx *Context)
}

// PooledEffect is implemented by effects that spawn short-lived emitters.
type PooledEffect interface {
	Effect
	Pool() *SubEmitterPool
}

type constructor func(ctx *Context, cfg Config) (Effect, error)

var registry = map[EffectType]constructor{
	Rain:         newRain,
	Snow:         newSnow,
	Smoke:        newSmoke,
	Fire:         newFire,
	Aurora:       newAurora,
	Magic:        newMagic,
	WaterRipple:  newWaterRipple,
	DNA:          newDNA,
	Galaxy:       newGalaxy,
	Fireworks:    newFireworks,
	MeteorShower: newMeteorShower,
	SolarSystem:  newSolarSystem,
}

// New constructs the variant named by cfg.Type. The returned effect is fully
// renderable but not attached to the scene.
func New(ctx *Context, cfg Config) (Effect, error) {
	build, ok := registry[cfg.Type]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEffectType, cfg.Type)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return build(ctx, cfg)
}

// baseEffect carries the state shared by every variant.
type baseEffect struct {
	kind      EffectType
	cfg       Config
	root      *core.Node
	geometry  *core.Geometry
	material  *core.Material
	resources Manifest
	// sizeScale maps Config.Size onto material size; 0 keeps a fixed size.
	sizeScale float32
	// elapsed is float64 so closed-form motion keeps full resolution on
	// long runs.
	elapsed float64
}

func (b *baseEffect) Type() EffectType     { return b.kind }
func (b *baseEffect) Config() Config       { return b.cfg }
func (b *baseEffect) Node() *core.Node     { return b.root }
func (b *baseEffect) Resources() *Manifest { return &b.resources }

// Geometry is the main particle geometry, nil for effects without one.
func (b *baseEffect) Geometry() *core.Geometry { return b.geometry }

// Elapsed is the effect time, which runs at Config.Speed.
func (b *baseEffect) Elapsed() float64 { return b.elapsed }

// initPoints creates the main points geometry, material and node and records
// them in the manifest.
func (b *baseEffect) initPoints(kind EffectType, cfg Config, sizeScale float32) {
	b.kind = kind
	b.cfg = cfg
	b.sizeScale = sizeScale
	b.geometry = core.NewPointGeometry(cfg.Count)
	b.material = core.NewPointsMaterial(string(kind), cfg.Color.Vec3(), cfg.Size*sizeScale)
	if sizeScale == 0 {
		b.material.Size = 1
	}
	b.root = core.NewPoints(string(kind), b.geometry, b.material)
	b.resources.AddGeometry(b.geometry)
	b.resources.AddMaterial(b.material)
}

func (b *baseEffect) UpdateOptions(ctx *Context, partial PartialConfig) {
	b.applyOptions(partial)
}

func (b *baseEffect) applyOptions(partial PartialConfig) {
	partial.Type, partial.Count = nil, nil
	b.cfg = Merge(b.cfg, partial)
	if b.material == nil {
		return
	}
	if partial.Size != nil && b.sizeScale != 0 {
		b.material.Size = b.cfg.Size * b.sizeScale
	}
	if partial.Color != nil && !b.material.VertexColors {
		b.material.Color = b.cfg.Color.Vec3()
	}
}

func (b *baseEffect) Dispose(ctx *Context) {
	if b.root != nil {
		b.root.Detach()
	}
	_ = b.resources.Release(ctx)
}

// advance moves effect time and returns the speed-scaled step.
func (b *baseEffect) advance(delta float32) float32 {
	step := delta * b.cfg.Speed
	b.elapsed += float64(step)
	return step
}
