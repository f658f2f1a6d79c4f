package particlefx

import (
	"math"

	"github.com/gekko3d/particlefx/render/core"
)

const (
	magicRadiusMin  = 5
	magicRadiusMax  = 10
	magicCeiling    = 10
	magicWrapHeight = 2
	magicDrift      = 0.2
	magicBurstRate  = 0.02
	magicBurstScale = 3
	magicBurstTime  = 0.2
	magicBlinkRate  = 3
)

var magicPalette = []RGB{Hex(0xff88ff), Hex(0x88ffff), Hex(0xffff88), Hex(0x88ff88)}

// magicEffect lifts twinkling sparkles in closed form and occasionally
// bursts one. Bursts are countdowns kept in the burst channel, so disposal
// leaves nothing pending.
type magicEffect struct {
	baseEffect
}

func newMagic(ctx *Context, cfg Config) (Effect, error) {
	e := &magicEffect{}
	e.initPoints(Magic, cfg, 10)
	e.material.VertexColors = true
	e.material.EnableTime()

	g := e.geometry
	g.AddChannel(core.ChannelPosition, 3)
	base := g.AddChannel(channelBase, 3)
	colors := g.AddChannel(core.ChannelColor, 3).Values
	sizes := g.AddChannel(core.ChannelSize, 1).Values
	baseSizes := g.AddChannel(channelBaseSize, 1).Values
	rates := g.AddChannel(channelRate, 1).Values
	phase := g.AddChannel(channelPhase, 1).Values
	g.AddChannel(channelBurst, 1)
	g.AddChannel(core.ChannelOpacity, 1)
	for i := 0; i < cfg.Count; i++ {
		theta := ctx.randAngle()
		phi := ctx.randFloat() * math.Pi / 2
		r := ctx.randRange(magicRadiusMin, magicRadiusMax)
		base.SetVec3(i,
			r*sin32(phi)*cos32(theta),
			ctx.randRange(0, magicWrapHeight),
			r*sin32(phi)*sin32(theta))

		setRGB(colors, i, ctx.pick(magicPalette))
		sizes[i] = ctx.randRange(0.1, 0.4)
		baseSizes[i] = sizes[i]
		rates[i] = ctx.randRange(0.2, 1)
		phase[i] = ctx.randAngle()
	}
	e.place()
	return e, nil
}

func (e *magicEffect) Update(ctx *Context, delta float32) {
	e.advance(delta)

	g := e.geometry
	burst := g.Get(channelBurst)
	for i := range burst {
		if burst[i] <= 0 {
			continue
		}
		burst[i] -= delta
		if burst[i] < 0 {
			burst[i] = 0
		}
	}
	if g.Count > 0 && ctx.chance(magicBurstRate*e.cfg.Speed) {
		e.triggerBurst(ctx.rng().Intn(g.Count))
	}
	g.MarkDirty(channelBurst)
	e.place()
}

// triggerBurst enlarges particle i for magicBurstTime seconds. A particle
// already bursting only has its countdown refreshed.
func (e *magicEffect) triggerBurst(i int) {
	g := e.geometry
	g.Get(channelBurst)[i] = magicBurstTime
	_, scale := e.twinkle(i)
	g.Get(core.ChannelSize)[i] = g.Get(channelBaseSize)[i] * scale * magicBurstScale
	g.MarkDirty(core.ChannelSize)
}

// twinkle returns the opacity in [0.3, 1] and the size factor in [0.5, 1]
// of particle i at the current effect time.
func (e *magicEffect) twinkle(i int) (alpha, scale float32) {
	off := float64(e.geometry.Get(channelPhase)[i])
	blink := wave(e.elapsed*magicBlinkRate+off*10)*0.5 + 0.5
	return blink*0.7 + 0.3, blink*0.5 + 0.5
}

func (e *magicEffect) place() {
	g := e.geometry
	pos, base := g.Get(core.ChannelPosition), g.Get(channelBase)
	rates, phase := g.Get(channelRate), g.Get(channelPhase)
	sizes, baseSizes := g.Get(core.ChannelSize), g.Get(channelBaseSize)
	opacity, burst := g.Get(core.ChannelOpacity), g.Get(channelBurst)
	t := e.elapsed
	for i := 0; i < g.Count; i++ {
		o := i * 3
		s, off := float64(rates[i]), float64(phase[i])
		y := float64(base[o+1]) + t*s
		if y > magicCeiling {
			y = (y/magicCeiling - math.Floor(y/magicCeiling)) * magicWrapHeight
		}
		pos[o] = base[o] + wave(t*s+off)*magicDrift
		pos[o+1] = float32(y)
		pos[o+2] = base[o+2] + swing(0.7*t*s+off)*magicDrift

		alpha, scale := e.twinkle(i)
		opacity[i] = alpha
		sizes[i] = baseSizes[i] * scale
		if burst[i] > 0 {
			sizes[i] *= magicBurstScale
		}
	}
	g.MarkDirty(core.ChannelPosition, core.ChannelSize, core.ChannelOpacity)
}
