package particlefx

import "github.com/gekko3d/particlefx/render/core"

const (
	fireFloor      = -10
	fireCeiling    = 8
	fireSpread     = 10
	fireDrift      = 0.75
	fireRiseMin    = 5
	fireRiseMax    = 10
	fireAgeRate    = 0.5
	fireTurbulence = 0.1
)

var (
	fireBase   = Hex(0xff7700)
	fireMiddle = Hex(0xff2200)
	fireTip    = Hex(0xffff00)
)

func fireColor(lifetime float32) RGB {
	switch {
	case lifetime < 0.3:
		return fireBase
	case lifetime < 0.6:
		return fireMiddle
	}
	return fireTip
}

type fireEffect struct {
	baseEffect
}

func newFire(ctx *Context, cfg Config) (Effect, error) {
	e := &fireEffect{}
	e.initPoints(Fire, cfg, 10)
	e.material.VertexColors = true
	e.material.EnableTime()

	g := e.geometry
	g.AddChannel(core.ChannelPosition, 3)
	g.AddChannel(channelVelocity, 3)
	g.AddChannel(core.ChannelColor, 3)
	size := g.AddChannel(core.ChannelSize, 1).Values
	opacity := g.AddChannel(core.ChannelOpacity, 1).Values
	life := g.AddChannel(channelLifetime, 1).Values
	for i := 0; i < cfg.Count; i++ {
		e.respawn(ctx, i)
		life[i] = ctx.randFloat()
		setRGB(g.Get(core.ChannelColor), i, fireColor(life[i]))
		opacity[i] = 1 - life[i]
		size[i] = ctx.randRange(0.1, 0.3)
	}
	return e, nil
}

func (e *fireEffect) respawn(ctx *Context, i int) {
	pos, vel := e.geometry.Get(core.ChannelPosition), e.geometry.Get(channelVelocity)
	o := i * 3
	pos[o] = ctx.randSigned(fireSpread)
	pos[o+1] = fireFloor
	pos[o+2] = ctx.randSigned(fireSpread)

	vel[o] = ctx.randSigned(fireDrift)
	vel[o+1] = ctx.randRange(fireRiseMin, fireRiseMax)
	vel[o+2] = ctx.randSigned(fireDrift)

	e.geometry.Get(channelLifetime)[i] = 0
}

func (e *fireEffect) Update(ctx *Context, delta float32) {
	step := e.advance(delta)
	g := e.geometry
	pos, vel := g.Get(core.ChannelPosition), g.Get(channelVelocity)
	colors, life := g.Get(core.ChannelColor), g.Get(channelLifetime)
	opacity := g.Get(core.ChannelOpacity)

	for i := 0; i < g.Count; i++ {
		integrate(pos, vel, i, step)
		o := i * 3
		pos[o] += ctx.turbulence(pos[o]*0.2, pos[o+1]*0.2, e.elapsed) * fireTurbulence * delta
		pos[o+2] += ctx.turbulence(pos[o+2]*0.2, pos[o+1]*0.2, e.elapsed+50) * fireTurbulence * delta

		life[i] += step * fireAgeRate
		if life[i] >= 1 || pos[o+1] > fireCeiling {
			e.respawn(ctx, i)
		}
		setRGB(colors, i, fireColor(life[i]))
		// flames fade as they age
		opacity[i] = 1 - life[i]
	}
	g.MarkDirty(core.ChannelPosition, channelVelocity, core.ChannelColor, core.ChannelOpacity, channelLifetime)
}
