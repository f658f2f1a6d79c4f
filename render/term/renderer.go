// Package term draws particle scenes into a terminal through tcell. Every
// instance becomes one cell; nearer instances win.
package term

import (
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/gekko3d/particlefx/render/core"
	"github.com/go-gl/mathgl/mgl32"
)

// CellAspect is the height of a terminal cell over its width. Callers size
// the camera with Size so projected scenes are not stretched.
const CellAspect = 2

var glyphs = []rune{'.', '*', 'o', '@'}

type Renderer struct {
	screen    tcell.Screen
	instances []core.ParticleInstance
	depth     []float32
	// Background fills empty cells.
	Background tcell.Color
	drawn      int
}

func New(screen tcell.Screen) *Renderer {
	return &Renderer{screen: screen, Background: tcell.ColorBlack}
}

// Size is the pixel-like size of the screen for camera aspect.
func (r *Renderer) Size() (width, height int) {
	w, h := r.screen.Size()
	return w, h * CellAspect
}

// Drawn is the number of cells written by the last frame.
func (r *Renderer) Drawn() int { return r.drawn }

// Resize is driven by the screen itself; tcell reports the new size.
func (r *Renderer) Resize(width, height int) {}

func (r *Renderer) Render(scene *core.Scene, camera *core.Camera) error {
	w, h := r.screen.Size()
	r.screen.Clear()
	r.drawn = 0
	if w <= 0 || h <= 0 {
		return nil
	}
	if cap(r.depth) < w*h {
		r.depth = make([]float32, w*h)
	}
	r.depth = r.depth[:w*h]
	for i := range r.depth {
		r.depth[i] = math.MaxFloat32
	}

	vp := camera.ViewProjection()
	planes := core.ExtractFrustum(vp)
	r.instances = core.CollectInstances(scene, &planes, r.instances[:0])
	bg := tcell.StyleDefault.Background(r.Background)

	for _, inst := range r.instances {
		clip := vp.Mul4x1(mgl32.Vec3(inst.Pos).Vec4(1))
		if clip.W() <= 0 {
			continue
		}
		ndc := clip.Vec3().Mul(1 / clip.W())
		col := int((ndc.X() + 1) / 2 * float32(w))
		row := int((1 - ndc.Y()) / 2 * float32(h))
		if col < 0 || col >= w || row < 0 || row >= h {
			continue
		}
		idx := row*w + col
		if ndc.Z() >= r.depth[idx] {
			continue
		}
		if r.depth[idx] == math.MaxFloat32 {
			r.drawn++
		}
		r.depth[idx] = ndc.Z()
		style := bg.Foreground(shade(inst.Color))
		r.screen.SetContent(col, row, glyph(inst.Size, camera.Position.Sub(mgl32.Vec3(inst.Pos)).Len()), nil, style)
	}
	r.screen.Show()
	return nil
}

// glyph picks a heavier rune for instances that cover more of the view.
func glyph(size, distance float32) rune {
	if distance <= 0 {
		return glyphs[len(glyphs)-1]
	}
	apparent := size / distance * 100
	switch {
	case apparent < 0.5:
		return glyphs[0]
	case apparent < 2:
		return glyphs[1]
	case apparent < 8:
		return glyphs[2]
	}
	return glyphs[3]
}

func shade(c [4]float32) tcell.Color {
	ch := func(v float32) int32 {
		v *= c[3]
		if v < 0 {
			return 0
		}
		if v > 1 {
			return 255
		}
		return int32(v * 255)
	}
	return tcell.NewRGBColor(ch(c[0]), ch(c[1]), ch(c[2]))
}

func (r *Renderer) ReleaseGeometry(g *core.Geometry) error { return nil }
func (r *Renderer) ReleaseMaterial(m *core.Material) error { return nil }
func (r *Renderer) ReleaseTexture(t *core.Texture) error   { return nil }

// Close finalizes the screen.
func (r *Renderer) Close() error {
	r.screen.Fini()
	return nil
}
