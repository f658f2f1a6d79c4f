package core

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestTransformComposition(t *testing.T) {
	tr := NewTransform()
	tr.Position = mgl32.Vec3{10, 0, 0}
	tr.SetYaw(mgl32.DegToRad(90))
	tr.Scale = mgl32.Vec3{2, 2, 2}

	p := tr.ObjectToWorld().Mul4x1(mgl32.Vec4{1, 0, 0, 1}).Vec3()
	// x axis rotated onto -z, scaled by 2, shifted by 10
	assert.InDelta(t, 10, p.X(), 1e-4)
	assert.InDelta(t, -2, p.Z(), 1e-4)
}

func TestNodeReparenting(t *testing.T) {
	a := NewGroup("a")
	b := NewGroup("b")
	child := NewGroup("child")

	a.Add(child)
	b.Add(child)

	assert.Empty(t, a.Children())
	assert.Equal(t, b, child.Parent())
	assert.True(t, b.Contains(child))

	child.Detach()
	assert.Nil(t, child.Parent())
	assert.False(t, b.Contains(child))
	assert.False(t, b.Remove(child))
}

func TestNodeWorldMatrix(t *testing.T) {
	parent := NewGroup("parent")
	parent.Transform.Position = mgl32.Vec3{5, 0, 0}
	child := NewGroup("child")
	child.Transform.Position = mgl32.Vec3{0, 3, 0}
	parent.Add(child)

	p := child.WorldMatrix().Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	assert.InDelta(t, 5, p.X(), 1e-5)
	assert.InDelta(t, 3, p.Y(), 1e-5)
}

func TestSceneWalkSkipsHidden(t *testing.T) {
	scene := NewScene()
	visible := NewGroup("visible")
	hidden := NewGroup("hidden")
	hidden.Visible = false
	hidden.Add(NewGroup("under-hidden"))
	scene.Add(visible)
	scene.Add(hidden)

	var names []string
	scene.Walk(func(n *Node, _ mgl32.Mat4) { names = append(names, n.Name) })
	assert.Equal(t, []string{"scene", "visible"}, names)
}

func TestSceneAmbientLevel(t *testing.T) {
	scene := NewScene()
	assert.Equal(t, float32(1), scene.AmbientLevel())

	scene.Add(NewLightNode("ambient", &Light{Kind: LightAmbient, Color: mgl32.Vec3{0.4, 0.4, 0.4}, Intensity: 1}))
	scene.Add(NewLightNode("sun", &Light{Kind: LightPoint, Color: mgl32.Vec3{1, 1, 1}, Intensity: 2}))
	assert.InDelta(t, 0.4, scene.AmbientLevel(), 1e-5)
	assert.Len(t, scene.Lights(), 2)
}

func TestMaterialTimeUniform(t *testing.T) {
	m := NewPointsMaterial("glow", mgl32.Vec3{1, 1, 1}, 0.1)
	m.AdvanceTime(1)
	_, ok := m.Uniform(UniformTime)
	assert.False(t, ok)

	m.EnableTime()
	m.AdvanceTime(0.5)
	m.AdvanceTime(0.25)
	v, ok := m.Uniform(UniformTime)
	assert.True(t, ok)
	assert.InDelta(t, 0.75, v, 1e-6)

	c := m.Clone()
	assert.NotEqual(t, m.ID, c.ID)
	c.AdvanceTime(1)
	v, _ = m.Uniform(UniformTime)
	assert.InDelta(t, 0.75, v, 1e-6)
}

func TestMaterialTimeKeepsResolution(t *testing.T) {
	m := NewPointsMaterial("glow", mgl32.Vec3{1, 1, 1}, 0.1)
	m.EnableTime()
	// six days at 60 fps
	const start = 518400
	m.AdvanceTime(start)
	before, _ := m.Uniform(UniformTime)
	for i := 0; i < 60; i++ {
		m.AdvanceTime(1.0 / 60)
	}
	after, _ := m.Uniform(UniformTime)

	assert.InDelta(t, start+1, m.Time(), 1e-5)
	assert.InDelta(t, 1, after-before, 1e-3)
	assert.Less(t, after, float32(TimeWrap))
}

func TestLightPack(t *testing.T) {
	l := &Light{Kind: LightPoint, Color: mgl32.Vec3{1, 0.5, 0}, Intensity: 2, Range: 300}
	d := l.Pack(mgl32.Translate3D(1, 2, 3))
	assert.Equal(t, [4]float32{1, 2, 3, 0}, d.Position)
	assert.Equal(t, [4]float32{1, 0.5, 0, 2}, d.Color)
	assert.Equal(t, float32(300), d.Params[0])
	assert.Equal(t, float32(LightPoint), d.Params[1])
}
