package particlefx

import (
	"github.com/gekko3d/particlefx/render/core"
	"github.com/gekko3d/particlefx/render/texture"
)

const (
	smokeSpread     = 1.5
	smokeDrift      = 0.15
	smokeRiseMin    = 0.5
	smokeRiseMax    = 1
	smokeCeiling    = 10
	smokeAgeRate    = 0.2
	smokeGrowRate   = 0.1
	smokeFadeRate   = 0.2
	smokeTurbulence = 0.05
	smokeOpacity    = 0.7
)

var smokeGray = Hex(0x888888)

type smokeEffect struct {
	baseEffect
}

func newSmoke(ctx *Context, cfg Config) (Effect, error) {
	e := &smokeEffect{}
	e.initPoints(Smoke, cfg, 0)
	e.material.Color = smokeGray.Vec3()
	e.material.Opacity = smokeOpacity
	e.material.Blending = core.BlendNormal

	tex := core.NewTexture("smoke", texture.RadialGradient(64,
		colorRGBA(White, 1), colorRGBA(White, 0)))
	e.material.Map = tex
	e.resources.AddTexture(tex)

	g := e.geometry
	g.AddChannel(core.ChannelPosition, 3)
	g.AddChannel(channelVelocity, 3)
	g.AddChannel(core.ChannelSize, 1)
	g.AddChannel(core.ChannelOpacity, 1)
	life := g.AddChannel(channelLifetime, 1).Values
	for i := 0; i < cfg.Count; i++ {
		e.respawn(ctx, i)
		life[i] = ctx.randFloat()
	}
	return e, nil
}

func (e *smokeEffect) respawn(ctx *Context, i int) {
	g := e.geometry
	pos, vel := g.Get(core.ChannelPosition), g.Get(channelVelocity)
	o := i * 3
	pos[o] = ctx.randSigned(smokeSpread)
	pos[o+1] = 0
	pos[o+2] = ctx.randSigned(smokeSpread)

	vel[o] = ctx.randSigned(smokeDrift)
	vel[o+1] = ctx.randRange(smokeRiseMin, smokeRiseMax)
	vel[o+2] = ctx.randSigned(smokeDrift)

	g.Get(core.ChannelSize)[i] = ctx.randRange(0.2, 0.5)
	g.Get(core.ChannelOpacity)[i] = ctx.randRange(0.7, 1)
	g.Get(channelLifetime)[i] = 0
}

func (e *smokeEffect) Update(ctx *Context, delta float32) {
	step := e.advance(delta)
	g := e.geometry
	pos, vel := g.Get(core.ChannelPosition), g.Get(channelVelocity)
	size, opacity := g.Get(core.ChannelSize), g.Get(core.ChannelOpacity)
	life := g.Get(channelLifetime)

	for i := 0; i < g.Count; i++ {
		integrate(pos, vel, i, step)
		o := i * 3
		// air currents
		pos[o] += ctx.turbulence(pos[o], pos[o+1], e.elapsed) * smokeTurbulence * delta
		pos[o+2] += ctx.turbulence(pos[o+2], pos[o+1], e.elapsed+100) * smokeTurbulence * delta

		life[i] += delta * smokeAgeRate
		size[i] += delta * smokeGrowRate
		opacity[i] -= delta * smokeFadeRate
		if opacity[i] < 0 {
			opacity[i] = 0
		}
		if life[i] >= 1 || pos[o+1] > smokeCeiling || opacity[i] <= 0 {
			e.respawn(ctx, i)
		}
	}
	g.MarkDirty(core.ChannelPosition, channelVelocity, core.ChannelSize, core.ChannelOpacity, channelLifetime)
}
