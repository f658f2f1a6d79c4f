package particlefx

import (
	"math"
	"math/rand"

	"github.com/aquilax/go-perlin"
	"github.com/gekko3d/particlefx/render/core"
)

// Context is the render state an effect may touch. The host owns it; effects
// never keep it beyond a call.
type Context struct {
	Scene    *core.Scene
	Camera   *core.Camera
	Logger   Logger
	Rand     *rand.Rand
	Noise    *perlin.Perlin
	Releaser core.ResourceReleaser
	// OnError observes recoverable faults: disposal failures, update panics
	// and unknown effect types.
	OnError func(err error)
}

// NewContext builds a context with a fresh scene and a seeded generator.
func NewContext(seed int64) *Context {
	return &Context{
		Scene:  core.NewScene(),
		Camera: core.NewPerspectiveCamera(cameraFov, 1, cameraNear, cameraFar),
		Logger: NewNopLogger(),
		Rand:   rand.New(rand.NewSource(seed)),
		Noise:  perlin.NewPerlin(2, 2, 3, seed),
	}
}

func (c *Context) log() Logger {
	if c.Logger == nil {
		return NewNopLogger()
	}
	return c.Logger
}

// ReportError logs err and hands it to the observer.
func (c *Context) ReportError(err error) {
	if err == nil {
		return
	}
	c.log().Errorf("%v", err)
	if c.OnError != nil {
		c.OnError(err)
	}
}

func (c *Context) rng() *rand.Rand {
	if c.Rand == nil {
		c.Rand = rand.New(rand.NewSource(1))
	}
	return c.Rand
}

func (c *Context) randFloat() float32 {
	return c.rng().Float32()
}

// randRange draws uniformly from [lo, hi).
func (c *Context) randRange(lo, hi float32) float32 {
	return lo + c.rng().Float32()*(hi-lo)
}

// randSigned draws uniformly from [-half, half).
func (c *Context) randSigned(half float32) float32 {
	return (c.rng().Float32() - 0.5) * 2 * half
}

func (c *Context) randAngle() float32 {
	return c.rng().Float32() * 2 * math.Pi
}

// chance runs one Bernoulli trial. p <= 0 never succeeds.
func (c *Context) chance(p float32) bool {
	return c.rng().Float32() < p
}

func (c *Context) pick(palette []RGB) RGB {
	return palette[c.rng().Intn(len(palette))]
}

// turbulence samples 3D perlin noise in roughly [-1, 1]. The third axis is
// effect time.
func (c *Context) turbulence(x, y float32, t float64) float32 {
	if c.Noise == nil {
		return 0
	}
	return float32(c.Noise.Noise3D(float64(x), float64(y), t))
}
