package particlefx

import (
	"fmt"
	"image/color"

	"github.com/go-gl/mathgl/mgl32"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// RGB is an sRGB color with components in [0,1].
type RGB struct {
	R, G, B float32
}

var White = RGB{1, 1, 1}

// Hex builds a color from 0xRRGGBB.
func Hex(v uint32) RGB {
	return RGB{
		R: float32((v>>16)&0xff) / 255,
		G: float32((v>>8)&0xff) / 255,
		B: float32(v&0xff) / 255,
	}
}

func ParseRGB(s string) (RGB, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return RGB{}, fmt.Errorf("parse color %q: %w", s, err)
	}
	return fromColorful(c), nil
}

func fromColorful(c colorful.Color) RGB {
	c = c.Clamped()
	return RGB{float32(c.R), float32(c.G), float32(c.B)}
}

func (c RGB) colorful() colorful.Color {
	return colorful.Color{R: float64(c.R), G: float64(c.G), B: float64(c.B)}
}

func (c RGB) String() string {
	return c.colorful().Hex()
}

func (c RGB) Vec3() mgl32.Vec3 {
	return mgl32.Vec3{c.R, c.G, c.B}
}

// Lerp blends in RGB space, the way point colors are mixed on the GPU.
func (c RGB) Lerp(to RGB, t float32) RGB {
	return RGB{
		R: c.R + (to.R-c.R)*t,
		G: c.G + (to.G-c.G)*t,
		B: c.B + (to.B-c.B)*t,
	}
}

// BlendLab blends perceptually.
func (c RGB) BlendLab(to RGB, t float32) RGB {
	return fromColorful(c.colorful().BlendLab(to.colorful(), float64(t)))
}

// HSV builds a color from hue in degrees and saturation/value in [0,1].
func HSV(h, s, v float64) RGB {
	return fromColorful(colorful.Hsv(h, s, v))
}

func (c RGB) MarshalYAML() (any, error) {
	return c.String(), nil
}

func (c *RGB) UnmarshalYAML(unmarshal func(any) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	parsed, err := ParseRGB(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Set implements flag.Value.
func (c *RGB) Set(s string) error {
	parsed, err := ParseRGB(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// gradient is a piecewise Lab gradient over [0,1].
type gradient []struct {
	at    float32
	color RGB
}

func (g gradient) at(t float32) RGB {
	if len(g) == 0 {
		return White
	}
	if t <= g[0].at {
		return g[0].color
	}
	for i := 1; i < len(g); i++ {
		if t <= g[i].at {
			a, b := g[i-1], g[i]
			return a.color.BlendLab(b.color, (t-a.at)/(b.at-a.at))
		}
	}
	return g[len(g)-1].color
}

// colorRGBA converts to an 8-bit color with the given alpha in [0,1].
func colorRGBA(c RGB, alpha float32) color.RGBA {
	to8 := func(v float32) uint8 {
		if v <= 0 {
			return 0
		}
		if v >= 1 {
			return 255
		}
		return uint8(v*255 + 0.5)
	}
	return color.RGBA{to8(c.R), to8(c.G), to8(c.B), to8(alpha)}
}
