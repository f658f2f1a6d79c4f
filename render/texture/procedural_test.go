package texture

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRadialGradientFadesOutward(t *testing.T) {
	img := RadialGradient(32, color.RGBA{255, 255, 255, 255}, color.RGBA{255, 136, 0, 0})

	center := img.RGBAAt(16, 16)
	mid := img.RGBAAt(16, 24)
	corner := img.RGBAAt(0, 0)

	assert.Greater(t, center.A, mid.A)
	assert.Greater(t, mid.A, corner.A)
	assert.Equal(t, uint8(0), corner.A)
}

func TestRadialGradientKeepsOuterRings(t *testing.T) {
	img := Sprite(32)

	// alpha falls monotonically from the center to the rim
	prev := img.RGBAAt(16, 16).A
	for x := 17; x < 32; x++ {
		a := img.RGBAAt(x, 16).A
		assert.LessOrEqual(t, a, prev, "x=%d", x)
		prev = a
	}
	assert.Greater(t, img.RGBAAt(26, 16).A, uint8(0), "outer ring survives")
	assert.Greater(t, img.RGBAAt(16, 6).A, uint8(0))

	// premultiplied white keeps each channel at or below alpha
	c := img.RGBAAt(22, 16)
	assert.LessOrEqual(t, c.R, c.A)
}

func TestSpriteSize(t *testing.T) {
	img := Sprite(16)
	b := img.Bounds()
	if b.Dx() != 16 || b.Dy() != 16 {
		t.Errorf("Expected 16x16 sprite, got %dx%d", b.Dx(), b.Dy())
	}
	assert.Equal(t, 1, Sprite(0).Bounds().Dx())
}

func TestBandsAlternate(t *testing.T) {
	base := color.RGBA{200, 150, 100, 255}
	accent := color.RGBA{90, 60, 30, 255}
	img := Bands(64, 80, 8, base, accent)

	// middle of the first stripe is base, middle of the second is accent
	assert.Equal(t, base, img.RGBAAt(32, 5))
	assert.Equal(t, accent, img.RGBAAt(32, 15))
}

func TestSpots(t *testing.T) {
	base := color.RGBA{180, 80, 40, 255}
	spot := color.RGBA{255, 255, 255, 255}
	img := Spots(100, 50, base, spot, [][2]float32{{0.5, 0.5}}, []float32{0.1})

	assert.Equal(t, spot, img.RGBAAt(50, 25))
	assert.Equal(t, base, img.RGBAAt(5, 5))
}
