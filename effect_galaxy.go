package particlefx

import (
	"math"

	"github.com/gekko3d/particlefx/render/core"
)

const (
	galaxyRadius     = 10
	galaxyBranches   = 5
	galaxySpin       = 1
	galaxyRandomness = 0.2
	galaxyRandPower  = 3
	galaxyStarOdds   = 0.02
	galaxyNebulaOdds = 0.01
)

var galaxyColors = gradient{
	{0, Hex(0xff6030)},
	{0.5, Hex(0xc0508a)},
	{1, Hex(0x1b3984)},
}

var (
	galaxyStar   = Hex(0xffffff)
	galaxyNebula = Hex(0xff66cc)
)

// angularRate is the orbital speed at radius r, strictly decreasing outward.
func angularRate(r float32) float32 {
	return 0.1 + 0.1*(1-r/galaxyRadius)
}

type galaxyEffect struct {
	baseEffect
}

func newGalaxy(ctx *Context, cfg Config) (Effect, error) {
	e := &galaxyEffect{}
	e.initPoints(Galaxy, cfg, 10)
	e.material.VertexColors = true
	e.material.EnableTime()

	g := e.geometry
	g.AddChannel(core.ChannelPosition, 3)
	jitter := g.AddChannel(channelBase, 3)
	colors := g.AddChannel(core.ChannelColor, 3).Values
	sizes := g.AddChannel(core.ChannelSize, 1).Values
	angles := g.AddChannel(channelPhase, 1).Values
	radii := g.AddChannel(channelRadius, 1).Values

	offset := func(r float32) float32 {
		v := float32(math.Pow(float64(ctx.randFloat()), galaxyRandPower)) * galaxyRandomness * r
		if ctx.chance(0.5) {
			return -v
		}
		return v
	}

	for i := 0; i < cfg.Count; i++ {
		u := ctx.randFloat()
		r := u * u * galaxyRadius
		radii[i] = r
		branch := float32(i%galaxyBranches) / galaxyBranches * 2 * math.Pi
		angles[i] = branch + r*galaxySpin
		jitter.SetVec3(i, offset(r), offset(r), offset(r))

		sizes[i] = ctx.randRange(0.05, 0.25)
		color := galaxyColors.at(r / galaxyRadius)
		switch roll := ctx.randFloat(); {
		case roll < galaxyNebulaOdds:
			color = galaxyNebula
		case roll < galaxyNebulaOdds+galaxyStarOdds:
			color = galaxyStar
			sizes[i] *= 2.5
		}
		setRGB(colors, i, color)
	}
	e.place()
	return e, nil
}

func (e *galaxyEffect) Update(ctx *Context, delta float32) {
	step := e.advance(delta)
	g := e.geometry
	angles, radii := g.Get(channelPhase), g.Get(channelRadius)
	for i := 0; i < g.Count; i++ {
		angles[i] = wrapAngle(angles[i] + step*angularRate(radii[i]))
	}
	g.MarkDirty(channelPhase)
	e.place()
}

func (e *galaxyEffect) place() {
	g := e.geometry
	pos, jitter := g.Get(core.ChannelPosition), g.Get(channelBase)
	angles, radii := g.Get(channelPhase), g.Get(channelRadius)
	for i := 0; i < g.Count; i++ {
		o := i * 3
		r := radii[i]
		pos[o] = cos32(angles[i])*r + jitter[o]
		pos[o+1] = jitter[o+1]
		pos[o+2] = sin32(angles[i])*r + jitter[o+2]
	}
	g.MarkDirty(core.ChannelPosition)
}
