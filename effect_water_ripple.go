package particlefx

import "github.com/gekko3d/particlefx/render/core"

const waterRadius = 30

var (
	waterNear = Hex(0x0088ff)
	waterFar  = Hex(0x004488)
)

type waterRippleEffect struct {
	baseEffect
}

func newWaterRipple(ctx *Context, cfg Config) (Effect, error) {
	e := &waterRippleEffect{}
	e.initPoints(WaterRipple, cfg, 1)
	e.material.VertexColors = true
	e.material.EnableTime()

	g := e.geometry
	pos := g.AddChannel(core.ChannelPosition, 3)
	radius := g.AddChannel(channelRadius, 1).Values
	colors := g.AddChannel(core.ChannelColor, 3).Values
	phase := g.AddChannel(channelPhase, 1).Values
	amp := g.AddChannel(channelAmp, 1).Values
	for i := 0; i < cfg.Count; i++ {
		// sqrt keeps the disc uniformly covered
		d := sqrt32(ctx.randFloat()) * waterRadius
		a := ctx.randAngle()
		pos.SetVec3(i, cos32(a)*d, 0, sin32(a)*d)
		radius[i] = d
		phase[i] = ctx.randAngle()
		amp[i] = ctx.randRange(0.3, 0.8)
		setRGB(colors, i, waterNear.Lerp(waterFar, d/waterRadius))
	}
	e.place()
	return e, nil
}

func (e *waterRippleEffect) Update(ctx *Context, delta float32) {
	e.advance(delta)
	e.place()
}

// rippleHeight sums three travelling waves.
func rippleHeight(d float32, t float64, phase, amp float32) float32 {
	dd, p := float64(d), float64(phase)
	return wave(dd*0.8+2*t+p)*amp +
		wave(dd*1.2+1.6*t+1.2*p)*amp*0.5 +
		wave(dd*0.64+2.4*t+0.8*p)*amp*0.3
}

func (e *waterRippleEffect) place() {
	g := e.geometry
	pos, radius := g.Get(core.ChannelPosition), g.Get(channelRadius)
	phase, amp := g.Get(channelPhase), g.Get(channelAmp)
	for i := 0; i < g.Count; i++ {
		pos[i*3+1] = rippleHeight(radius[i], e.elapsed, phase[i], amp[i])
	}
	g.MarkDirty(core.ChannelPosition)
}
