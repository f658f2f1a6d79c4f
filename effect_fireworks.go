package particlefx

import (
	"math"

	"github.com/gekko3d/particlefx/render/core"
)

const (
	fireworksSpawnRate = 0.05
	fireworksPoints    = 100
	fireworksSpread    = 5
	fireworksBurstMin  = 2
	fireworksBurstMax  = 4
	fireworksGravity   = 1
	fireworksFloor     = -30
)

// fireworksEffect launches bursts into a sub-emitter pool. Each burst owns
// its geometry and a clone of the template material so it can fade alone.
type fireworksEffect struct {
	baseEffect
	pool *SubEmitterPool
}

func newFireworks(ctx *Context, cfg Config) (Effect, error) {
	e := &fireworksEffect{}
	e.kind = Fireworks
	e.cfg = cfg
	e.sizeScale = 1
	e.root = core.NewGroup(string(Fireworks))
	e.material = core.NewPointsMaterial("fireworks", cfg.Color.Vec3(), cfg.Size)
	e.material.VertexColors = true
	e.resources.AddMaterial(e.material)
	e.pool = NewSubEmitterPool(e.root, defaultPoolCapacity)
	return e, nil
}

func (e *fireworksEffect) Pool() *SubEmitterPool { return e.pool }

func (e *fireworksEffect) launch(ctx *Context) {
	x := ctx.randSigned(fireworksSpread)
	y := ctx.randRange(-fireworksSpread, 0)
	z := ctx.randSigned(fireworksSpread)
	hue := HSV(float64(ctx.randFloat())*360, 0.8, 1)

	g := core.NewPointGeometry(fireworksPoints)
	pos := g.AddChannel(core.ChannelPosition, 3)
	vel := g.AddChannel(channelVelocity, 3)
	colors := g.AddChannel(core.ChannelColor, 3).Values
	for i := 0; i < fireworksPoints; i++ {
		pos.SetVec3(i, x, y, z)
		theta := ctx.randAngle()
		phi := ctx.randFloat() * math.Pi
		speed := ctx.randRange(fireworksBurstMin, fireworksBurstMax)
		vel.SetVec3(i,
			sin32(phi)*cos32(theta)*speed,
			sin32(phi)*sin32(theta)*speed,
			cos32(phi)*speed)
		// the fastest sparks burn whiter
		heat := (speed - fireworksBurstMin) / (fireworksBurstMax - fireworksBurstMin)
		setRGB(colors, i, hue.Lerp(White, heat*0.5))
	}
	e.pool.Add(ctx, NewEmitter("firework", g, e.material.Clone()))
}

func (e *fireworksEffect) Update(ctx *Context, delta float32) {
	e.advance(delta)
	if ctx.chance(fireworksSpawnRate * e.cfg.Speed) {
		e.launch(ctx)
	}

	for _, em := range e.pool.Entries() {
		g := em.Geometry
		pos, vel := g.Get(core.ChannelPosition), g.Get(channelVelocity)
		for i := 0; i < g.Count; i++ {
			vel[i*3+1] -= fireworksGravity * delta
			integrate(pos, vel, i, delta)
		}
		g.MarkDirty(core.ChannelPosition)
		em.Decay(delta)
		em.Material.Opacity = em.Life()
	}
	e.pool.Sweep(ctx, fellThrough)
}

// fellThrough reports bursts whose every spark is below the floor.
func fellThrough(em *Emitter) bool {
	pos := em.Geometry.Get(core.ChannelPosition)
	for i := 1; i < len(pos); i += 3 {
		if pos[i] >= fireworksFloor {
			return false
		}
	}
	return true
}

func (e *fireworksEffect) UpdateOptions(ctx *Context, partial PartialConfig) {
	e.applyOptions(partial)
	if partial.Size == nil {
		return
	}
	for _, em := range e.pool.Entries() {
		em.Material.Size = e.material.Size
	}
}

func (e *fireworksEffect) Dispose(ctx *Context) {
	e.pool.Clear(ctx)
	e.baseEffect.Dispose(ctx)
}
