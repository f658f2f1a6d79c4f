// Package texture rasterises the small procedural sprites and planet maps
// used by effects. Everything is drawn with anti-aliased vector paths.
package texture

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/vector"
)

// bezier circle constant
const kappa = 0.5522847498

func circlePath(r *vector.Rasterizer, cx, cy, radius float32) {
	k := radius * kappa
	r.MoveTo(cx+radius, cy)
	r.CubeTo(cx+radius, cy+k, cx+k, cy+radius, cx, cy+radius)
	r.CubeTo(cx-k, cy+radius, cx-radius, cy+k, cx-radius, cy)
	r.CubeTo(cx-radius, cy-k, cx-k, cy-radius, cx, cy-radius)
	r.CubeTo(cx+k, cy-radius, cx+radius, cy-k, cx+radius, cy)
	r.ClosePath()
}

func fillCircle(dst *image.RGBA, cx, cy, radius float32, c color.Color) {
	b := dst.Bounds()
	r := vector.NewRasterizer(b.Dx(), b.Dy())
	r.DrawOp = draw.Over
	circlePath(r, cx, cy, radius)
	r.Draw(dst, b, image.NewUniform(c), image.Point{})
}

func lerpRGBA(a, b color.RGBA, t float64) color.RGBA {
	l := func(x, y uint8) uint8 {
		return uint8(math.Round(float64(x) + (float64(y)-float64(x))*t))
	}
	return color.RGBA{l(a.R, b.R), l(a.G, b.G), l(a.B, b.B), l(a.A, b.A)}
}

// RadialGradient fills a disc fading from inner at the center to outer at
// the rim. Pixels outside the disc stay transparent.
func RadialGradient(size int, inner, outer color.RGBA) *image.RGBA {
	if size <= 0 {
		size = 1
	}
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	half := float64(size) / 2
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			d := math.Hypot(float64(x)+0.5-half, float64(y)+0.5-half) / half
			if d >= 1 {
				continue
			}
			c := lerpRGBA(inner, outer, d)
			// RGBA is alpha-premultiplied
			c.R = uint8(uint16(c.R) * uint16(c.A) / 255)
			c.G = uint8(uint16(c.G) * uint16(c.A) / 255)
			c.B = uint8(uint16(c.B) * uint16(c.A) / 255)
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

// Sprite is a soft white particle disc.
func Sprite(size int) *image.RGBA {
	return RadialGradient(size, color.RGBA{255, 255, 255, 255}, color.RGBA{255, 255, 255, 0})
}

// Bands paints a planet map of horizontal stripes alternating between base and
// accent, the shape used for gas giants.
func Bands(width, height, bands int, base, accent color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(base), image.Point{}, draw.Src)
	if bands <= 0 || height <= 0 {
		return img
	}
	r := vector.NewRasterizer(width, height)
	r.DrawOp = draw.Over
	stripe := float32(height) / float32(bands)
	for i := 1; i < bands; i += 2 {
		y0 := stripe * float32(i)
		y1 := y0 + stripe
		// slight sine wobble on the stripe edges
		r.MoveTo(0, y0)
		const seg = 16
		for s := 1; s <= seg; s++ {
			x := float32(width) * float32(s) / seg
			r.LineTo(x, y0+stripe*0.15*float32(math.Sin(float64(s)*0.8)))
		}
		for s := seg; s >= 0; s-- {
			x := float32(width) * float32(s) / seg
			r.LineTo(x, y1+stripe*0.15*float32(math.Cos(float64(s)*0.6)))
		}
		r.ClosePath()
	}
	r.Draw(img, img.Bounds(), image.NewUniform(accent), image.Point{})
	return img
}

// Spots scatters count circular patches over a base fill. positions are
// fractions of the image size; radii are fractions of the width.
func Spots(width, height int, base, spot color.RGBA, positions [][2]float32, radii []float32) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(base), image.Point{}, draw.Src)
	for i, p := range positions {
		radius := float32(width) * 0.05
		if i < len(radii) {
			radius = float32(width) * radii[i]
		}
		fillCircle(img, p[0]*float32(width), p[1]*float32(height), radius, spot)
	}
	return img
}
