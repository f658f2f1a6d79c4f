package particlefx

import (
	"math"

	"github.com/gekko3d/particlefx/render/core"
)

const (
	dnaHeight     = 20
	dnaWindings   = 20
	dnaRadius     = 2
	dnaSpin       = 0.2
	dnaWave       = 0.2
	dnaStrandSize = 0.1
	dnaPairSize   = 0.2
)

var (
	dnaStrandColors = [2]RGB{Hex(0x0088ff), Hex(0xff8800)}
	dnaPairColors   = [2]RGB{Hex(0x00ff88), Hex(0xff0088)}
)

// dnaEffect lays out a double helix deterministically from the index.
type dnaEffect struct {
	baseEffect
}

func newDNA(ctx *Context, cfg Config) (Effect, error) {
	e := &dnaEffect{}
	e.initPoints(DNA, cfg, 10)
	e.material.VertexColors = true
	e.material.EnableTime()

	g := e.geometry
	g.AddChannel(core.ChannelPosition, 3)
	base := g.AddChannel(channelBase, 3)
	colors := g.AddChannel(core.ChannelColor, 3).Values
	sizes := g.AddChannel(core.ChannelSize, 1).Values

	perWinding := float32(cfg.Count) / dnaWindings
	for i := 0; i < cfg.Count; i++ {
		strand := i % 2
		y := float32(i)/float32(cfg.Count)*dnaHeight - dnaHeight/2
		angle := float32(i) / perWinding * 2 * math.Pi
		sign := float32(1)
		if strand == 1 {
			sign = -1
		}
		base.SetVec3(i, cos32(angle)*dnaRadius*sign, y, sin32(angle)*dnaRadius*sign)

		if i%10 >= 8 {
			setRGB(colors, i, dnaPairColors[strand])
			sizes[i] = dnaPairSize
		} else {
			setRGB(colors, i, dnaStrandColors[strand])
			sizes[i] = dnaStrandSize
		}
	}
	e.place()
	return e, nil
}

func (e *dnaEffect) Update(ctx *Context, delta float32) {
	e.advance(delta)
	e.place()
}

func (e *dnaEffect) place() {
	g := e.geometry
	pos, base := g.Get(core.ChannelPosition), g.Get(channelBase)
	t := e.elapsed
	c, s := swing(t*dnaSpin), wave(t*dnaSpin)
	for i := 0; i < g.Count; i++ {
		o := i * 3
		x, y, z := base[o], base[o+1], base[o+2]
		w := wave(float64(y)*0.5+t) * dnaWave
		pos[o] = x*c - z*s + w
		pos[o+1] = y
		pos[o+2] = x*s + z*c + w
	}
	g.MarkDirty(core.ChannelPosition)
}
