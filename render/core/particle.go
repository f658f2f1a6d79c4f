package core

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// ParticleInstance matches the WGSL instance layout in particles.wgsl
// struct ParticleInstance { vec3 pos; float size; vec4 color; }
type ParticleInstance struct {
	Pos   [3]float32
	Size  float32
	Color [4]float32
}

const (
	ringSamples   = 48
	linePointSize = 0.15
)

// CollectInstances flattens the visible scene into billboard instances.
// Spheres become one instance sized to their diameter, rings and lines are
// sampled. When planes is non-nil instances outside the frustum are dropped.
func CollectInstances(scene *Scene, planes *[6]mgl32.Vec4, dst []ParticleInstance) []ParticleInstance {
	dst = dst[:0]
	ambient := scene.AmbientLevel()

	emit := func(pos mgl32.Vec3, size float32, color mgl32.Vec3, alpha float32) {
		if alpha <= 0 || size <= 0 {
			return
		}
		if planes != nil && !SphereInFrustum(pos, size, *planes) {
			return
		}
		dst = append(dst, ParticleInstance{
			Pos:   [3]float32{pos[0], pos[1], pos[2]},
			Size:  size,
			Color: [4]float32{color[0], color[1], color[2], alpha},
		})
	}

	scene.Walk(func(n *Node, world mgl32.Mat4) {
		g, m := n.Geometry, n.Material
		if g == nil || m == nil || g.Released() {
			return
		}
		switch n.Kind {
		case NodePoints, NodeLine:
			collectPoints(n, world, emit)
		case NodeMesh:
			scale := world.Col(0).Vec3().Len()
			center := world.Mul4x1(mgl32.Vec4{0, 0, 0, 1}).Vec3()
			lit := m.Color.Mul(ambient).Add(m.Emissive)
			switch g.Shape {
			case ShapeSphere:
				emit(center, g.Radius*2*scale, lit, m.Opacity)
			case ShapeRing:
				r := (g.InnerRadius + g.OuterRadius) / 2
				width := (g.OuterRadius - g.InnerRadius) * scale
				for i := 0; i < ringSamples; i++ {
					a := float64(i) / ringSamples * 2 * math.Pi
					local := mgl32.Vec4{r * float32(math.Cos(a)), 0, r * float32(math.Sin(a)), 1}
					emit(world.Mul4x1(local).Vec3(), width, lit, m.Opacity)
				}
			}
		}
	})
	return dst
}

func collectPoints(n *Node, world mgl32.Mat4, emit func(mgl32.Vec3, float32, mgl32.Vec3, float32)) {
	g, m := n.Geometry, n.Material
	if !g.Has(ChannelPosition) {
		return
	}
	pos := g.Get(ChannelPosition)
	var sizes, colors, opacities []float32
	if g.Has(ChannelSize) {
		sizes = g.Get(ChannelSize)
	}
	if m.VertexColors && g.Has(ChannelColor) {
		colors = g.Get(ChannelColor)
	}
	if g.Has(ChannelOpacity) {
		opacities = g.Get(ChannelOpacity)
	}
	baseSize := m.Size
	if n.Kind == NodeLine && baseSize == 0 {
		baseSize = linePointSize
	}
	for i := 0; i < g.Count; i++ {
		p := world.Mul4x1(mgl32.Vec4{pos[i*3], pos[i*3+1], pos[i*3+2], 1}).Vec3()
		size := baseSize
		if sizes != nil {
			size *= sizes[i]
		}
		color := m.Color
		if colors != nil {
			color = mgl32.Vec3{colors[i*3], colors[i*3+1], colors[i*3+2]}
		}
		alpha := m.Opacity
		if opacities != nil {
			alpha *= opacities[i]
		}
		emit(p, size, color, alpha)
	}
}
