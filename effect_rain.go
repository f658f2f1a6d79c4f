package particlefx

import "github.com/gekko3d/particlefx/render/core"

const (
	rainBounds  = 30
	rainDrift   = 0.1
	rainFallMin = 5
	rainFallMax = 8
)

type rainEffect struct {
	baseEffect
}

func newRain(ctx *Context, cfg Config) (Effect, error) {
	e := &rainEffect{}
	e.initPoints(Rain, cfg, 1)

	pos := e.geometry.AddChannel(core.ChannelPosition, 3).Values
	vel := e.geometry.AddChannel(channelVelocity, 3).Values
	for i := 0; i < cfg.Count; i++ {
		o := i * 3
		pos[o] = ctx.randSigned(rainBounds)
		pos[o+1] = ctx.randSigned(rainBounds)
		pos[o+2] = ctx.randSigned(rainBounds)

		vel[o] = ctx.randSigned(rainDrift)
		vel[o+1] = -ctx.randRange(rainFallMin, rainFallMax)
		vel[o+2] = ctx.randSigned(rainDrift)
	}
	return e, nil
}

func (e *rainEffect) Update(ctx *Context, delta float32) {
	step := e.advance(delta)
	pos := e.geometry.Get(core.ChannelPosition)
	vel := e.geometry.Get(channelVelocity)

	for i := 0; i < e.geometry.Count; i++ {
		integrate(pos, vel, i, step)
		o := i * 3
		if pos[o+1] < -rainBounds {
			pos[o] = ctx.randSigned(rainBounds)
			pos[o+1] = rainBounds
			pos[o+2] = ctx.randSigned(rainBounds)
		}
	}
	e.geometry.MarkDirty(core.ChannelPosition)
}
