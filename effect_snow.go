package particlefx

import (
	"github.com/gekko3d/particlefx/render/core"
	"github.com/gekko3d/particlefx/render/texture"
)

const (
	snowBounds    = 10
	snowDrift     = 0.15
	snowFallMin   = 1
	snowFallMax   = 2
	snowSpin      = 0.5
	snowSwayScale = 0.6
)

// snowEffect drifts flakes down with a sideways sway driven by each flake's
// rotation.
type snowEffect struct {
	baseEffect
}

func newSnow(ctx *Context, cfg Config) (Effect, error) {
	e := &snowEffect{}
	e.initPoints(Snow, cfg, 1)
	e.material.Map = e.sprite()

	pos := e.geometry.AddChannel(core.ChannelPosition, 3).Values
	vel := e.geometry.AddChannel(channelVelocity, 3).Values
	rot := e.geometry.AddChannel(channelRotation, 1).Values
	for i := 0; i < cfg.Count; i++ {
		o := i * 3
		pos[o] = ctx.randSigned(snowBounds)
		pos[o+1] = ctx.randSigned(snowBounds)
		pos[o+2] = ctx.randSigned(snowBounds)

		vel[o] = ctx.randSigned(snowDrift)
		vel[o+1] = -ctx.randRange(snowFallMin, snowFallMax)
		vel[o+2] = ctx.randSigned(snowDrift)

		rot[i] = ctx.randAngle()
	}
	return e, nil
}

func (e *snowEffect) sprite() *core.Texture {
	tex := core.NewTexture("snowflake", texture.Sprite(32))
	e.resources.AddTexture(tex)
	return tex
}

func (e *snowEffect) Update(ctx *Context, delta float32) {
	step := e.advance(delta)
	pos := e.geometry.Get(core.ChannelPosition)
	vel := e.geometry.Get(channelVelocity)
	rot := e.geometry.Get(channelRotation)

	for i := 0; i < e.geometry.Count; i++ {
		integrate(pos, vel, i, step)
		rot[i] = wrapAngle(rot[i] + step*snowSpin)
		o := i * 3
		pos[o] += sin32(rot[i]) * snowSwayScale * step
		if pos[o+1] < -snowBounds {
			pos[o] = ctx.randSigned(snowBounds)
			pos[o+1] = snowBounds
			pos[o+2] = ctx.randSigned(snowBounds)
		}
	}
	e.geometry.MarkDirty(core.ChannelPosition, channelRotation)
}
