package core

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectInstancesPoints(t *testing.T) {
	g := NewPointGeometry(3)
	pos := g.AddChannel(ChannelPosition, 3)
	size := g.AddChannel(ChannelSize, 1)
	color := g.AddChannel(ChannelColor, 3)
	for i := 0; i < 3; i++ {
		pos.SetVec3(i, float32(i), 0, 0)
		size.Values[i] = 2
		color.SetVec3(i, 1, 0, 0)
	}
	m := NewPointsMaterial("pts", mgl32.Vec3{0, 0, 1}, 0.5)
	m.VertexColors = true

	scene := NewScene()
	node := NewPoints("pts", g, m)
	node.Transform.Position = mgl32.Vec3{0, 10, 0}
	scene.Add(node)

	out := CollectInstances(scene, nil, nil)
	require.Len(t, out, 3)
	assert.Equal(t, [3]float32{2, 10, 0}, out[2].Pos)
	assert.Equal(t, float32(1), out[2].Size)
	assert.Equal(t, [4]float32{1, 0, 0, 1}, out[0].Color)
}

func TestCollectInstancesSkipsTransparentAndReleased(t *testing.T) {
	g := NewPointGeometry(2)
	g.AddChannel(ChannelPosition, 3)
	op := g.AddChannel(ChannelOpacity, 1)
	op.Values[0] = 1
	op.Values[1] = 0
	m := NewPointsMaterial("pts", mgl32.Vec3{1, 1, 1}, 1)

	scene := NewScene()
	scene.Add(NewPoints("pts", g, m))
	assert.Len(t, CollectInstances(scene, nil, nil), 1)

	g.Release()
	assert.Empty(t, CollectInstances(scene, nil, nil))
}

func TestCollectInstancesMeshes(t *testing.T) {
	scene := NewScene()
	sun := NewMesh("sun", NewSphereGeometry(5), NewMeshMaterial("sun", mgl32.Vec3{1, 1, 0}))
	scene.Add(sun)
	ring := NewMesh("ring", NewRingGeometry(2, 3), NewMeshMaterial("ring", mgl32.Vec3{1, 1, 1}))
	scene.Add(ring)

	out := CollectInstances(scene, nil, nil)
	require.Len(t, out, 1+ringSamples)
	assert.Equal(t, float32(10), out[0].Size)
}

func TestCollectInstancesCulls(t *testing.T) {
	g := NewPointGeometry(2)
	pos := g.AddChannel(ChannelPosition, 3)
	pos.SetVec3(0, 0, 0, 0)
	pos.SetVec3(1, 0, 0, 100)
	scene := NewScene()
	scene.Add(NewPoints("pts", g, NewPointsMaterial("pts", mgl32.Vec3{1, 1, 1}, 0.1)))

	cam := NewPerspectiveCamera(75, 1, 0.1, 1000)
	cam.Position = mgl32.Vec3{0, 0, 30}
	cam.LookAt(mgl32.Vec3{})
	planes := ExtractFrustum(cam.ViewProjection())

	out := CollectInstances(scene, &planes, nil)
	require.Len(t, out, 1)
	assert.Equal(t, [3]float32{0, 0, 0}, out[0].Pos)
}

func TestCameraProject(t *testing.T) {
	cam := NewPerspectiveCamera(75, 1, 0.1, 1000)
	cam.Position = mgl32.Vec3{0, 0, 30}
	cam.LookAt(mgl32.Vec3{})

	ndc, ok := cam.Project(mgl32.Vec3{0, 0, 0})
	require.True(t, ok)
	assert.InDelta(t, 0, ndc.X(), 1e-5)
	assert.InDelta(t, 0, ndc.Y(), 1e-5)

	_, ok = cam.Project(mgl32.Vec3{0, 0, 60})
	assert.False(t, ok)

	cam.SetAspect(1600, 800)
	assert.Equal(t, float32(2), cam.Aspect)
	cam.SetAspect(0, 10)
	assert.Equal(t, float32(2), cam.Aspect)
}
