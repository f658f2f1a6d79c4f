package particlefx

import (
	"math"

	"github.com/gekko3d/particlefx/render/core"
)

const (
	auroraRadiusMin = 5
	auroraRadiusMax = 10
	auroraLift      = 5
)

var auroraPalette = []RGB{Hex(0x88ff99), Hex(0x4488ff), Hex(0x9944ff), Hex(0x44ffff)}

// auroraEffect scatters points over an upper hemisphere shell and ripples
// them in closed form from effect time.
type auroraEffect struct {
	baseEffect
}

func newAurora(ctx *Context, cfg Config) (Effect, error) {
	e := &auroraEffect{}
	e.initPoints(Aurora, cfg, 10)
	e.material.VertexColors = true
	e.material.EnableTime()

	g := e.geometry
	g.AddChannel(core.ChannelPosition, 3)
	base := g.AddChannel(channelBase, 3)
	colors := g.AddChannel(core.ChannelColor, 3).Values
	sizes := g.AddChannel(core.ChannelSize, 1).Values
	phase := g.AddChannel(channelPhase, 1).Values
	for i := 0; i < cfg.Count; i++ {
		theta := ctx.randAngle()
		phi := ctx.randFloat() * math.Pi / 2
		r := ctx.randRange(auroraRadiusMin, auroraRadiusMax)
		base.SetVec3(i,
			r*sin32(phi)*cos32(theta),
			r*cos32(phi)+auroraLift,
			r*sin32(phi)*sin32(theta))

		setRGB(colors, i, ctx.pick(auroraPalette))
		sizes[i] = ctx.randRange(0.05, 0.2)
		phase[i] = ctx.randAngle()
	}
	e.place()
	return e, nil
}

func (e *auroraEffect) Update(ctx *Context, delta float32) {
	e.advance(delta)
	e.place()
}

func (e *auroraEffect) place() {
	g := e.geometry
	pos, base, phase := g.Get(core.ChannelPosition), g.Get(channelBase), g.Get(channelPhase)
	t := e.elapsed
	for i := 0; i < g.Count; i++ {
		o := i * 3
		p := float64(phase[i])
		pos[o] = base[o] + wave(p+t)*0.3
		pos[o+1] = base[o+1] + (wave(p+2*t)*0.5+0.5)*0.5
		pos[o+2] = base[o+2] + swing(p+0.7*t)*0.3
	}
	g.MarkDirty(core.ChannelPosition)
}
