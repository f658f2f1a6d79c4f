package particlefx

import (
	"image/color"

	"github.com/gekko3d/particlefx/render/core"
	"github.com/gekko3d/particlefx/render/texture"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	meteorSpawnRate = 0.05
	meteorPoints    = 30
	meteorSpread    = 30
	meteorStartMin  = 30
	meteorStartMax  = 50
	meteorDrift     = 2.5
	meteorFallMin   = 8
	meteorFallMax   = 12
	meteorTrail     = 5
	meteorFade      = 0.2
	meteorFloor     = -20
)

var meteorTail = Hex(0xff8800)

type meteorShowerEffect struct {
	baseEffect
	pool *SubEmitterPool
}

func newMeteorShower(ctx *Context, cfg Config) (Effect, error) {
	e := &meteorShowerEffect{}
	e.kind = MeteorShower
	e.cfg = cfg
	e.sizeScale = 2
	e.root = core.NewGroup(string(MeteorShower))
	e.material = core.NewPointsMaterial("meteor", cfg.Color.Vec3(), cfg.Size*e.sizeScale)
	e.material.VertexColors = true

	tex := core.NewTexture("meteor", texture.RadialGradient(32,
		color.RGBA{255, 255, 255, 255}, color.RGBA{255, 128, 0, 0}))
	e.material.Map = tex
	e.resources.AddMaterial(e.material)
	e.resources.AddTexture(tex)
	e.pool = NewSubEmitterPool(e.root, defaultPoolCapacity)
	return e, nil
}

func (e *meteorShowerEffect) Pool() *SubEmitterPool { return e.pool }

func (e *meteorShowerEffect) launch(ctx *Context) {
	start := mgl32.Vec3{
		ctx.randSigned(meteorSpread),
		ctx.randRange(meteorStartMin, meteorStartMax),
		ctx.randSigned(meteorSpread),
	}
	dir := mgl32.Vec3{
		ctx.randSigned(meteorDrift),
		-ctx.randRange(meteorFallMin, meteorFallMax),
		ctx.randSigned(meteorDrift),
	}

	g := core.NewPointGeometry(meteorPoints)
	pos := g.AddChannel(core.ChannelPosition, 3)
	colors := g.AddChannel(core.ChannelColor, 3).Values
	sizes := g.AddChannel(core.ChannelSize, 1).Values
	for i := 0; i < meteorPoints; i++ {
		f := float32(i) / meteorPoints
		p := start.Sub(dir.Mul(f * meteorTrail))
		pos.SetVec3(i, p[0], p[1], p[2])
		setRGB(colors, i, White.Lerp(meteorTail, f))
		sizes[i] = (1-f)*0.5 + 0.1
	}

	em := NewEmitter("meteor", g, e.material.Clone())
	em.Velocity = dir
	e.pool.Add(ctx, em)
}

func (e *meteorShowerEffect) Update(ctx *Context, delta float32) {
	step := e.advance(delta)
	if ctx.chance(meteorSpawnRate * e.cfg.Speed) {
		e.launch(ctx)
	}

	for _, em := range e.pool.Entries() {
		g := em.Geometry
		pos := g.Get(core.ChannelPosition)
		move := em.Velocity.Mul(step)
		for i := 0; i < g.Count; i++ {
			o := i * 3
			pos[o] += move[0]
			pos[o+1] += move[1]
			pos[o+2] += move[2]
		}
		g.MarkDirty(core.ChannelPosition)
		em.Decay(delta * meteorFade)
		em.Material.Opacity = em.Life()
	}
	e.pool.Sweep(ctx, func(em *Emitter) bool {
		// the head is point 0
		return em.Geometry.Get(core.ChannelPosition)[1] < meteorFloor
	})
}

func (e *meteorShowerEffect) UpdateOptions(ctx *Context, partial PartialConfig) {
	e.applyOptions(partial)
	if partial.Size == nil {
		return
	}
	for _, em := range e.pool.Entries() {
		em.Material.Size = e.material.Size
	}
}

func (e *meteorShowerEffect) Dispose(ctx *Context) {
	e.pool.Clear(ctx)
	e.baseEffect.Dispose(ctx)
}
