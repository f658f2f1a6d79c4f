package term

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/gekko3d/particlefx/render/core"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func simScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(80, 24)
	return screen
}

func TestRenderDrawsCenteredPoint(t *testing.T) {
	screen := simScreen(t)
	r := New(screen)

	g := core.NewPointGeometry(1)
	g.AddChannel(core.ChannelPosition, 3)
	scene := core.NewScene()
	scene.Add(core.NewPoints("dot", g, core.NewPointsMaterial("dot", mgl32.Vec3{1, 0, 0}, 1)))

	w, h := r.Size()
	assert.Equal(t, 48, h)
	cam := core.NewPerspectiveCamera(75, float32(w)/float32(h), 0.1, 1000)
	cam.Position = mgl32.Vec3{0, 0, 30}
	cam.LookAt(mgl32.Vec3{})

	require.NoError(t, r.Render(scene, cam))
	assert.Equal(t, 1, r.Drawn())

	mainc, _, style, _ := screen.GetContent(40, 12)
	assert.NotEqual(t, ' ', mainc)
	fg, _, _ := style.Decompose()
	red, green, _ := fg.RGB()
	assert.Equal(t, int32(255), red)
	assert.Equal(t, int32(0), green)
}

func TestRenderSkipsPointsBehindCamera(t *testing.T) {
	screen := simScreen(t)
	r := New(screen)

	g := core.NewPointGeometry(1)
	g.AddChannel(core.ChannelPosition, 3).SetVec3(0, 0, 0, 60)
	scene := core.NewScene()
	scene.Add(core.NewPoints("dot", g, core.NewPointsMaterial("dot", mgl32.Vec3{1, 1, 1}, 1)))

	cam := core.NewPerspectiveCamera(75, 1, 0.1, 1000)
	cam.Position = mgl32.Vec3{0, 0, 30}
	cam.LookAt(mgl32.Vec3{})

	require.NoError(t, r.Render(scene, cam))
	assert.Equal(t, 0, r.Drawn())
}

func TestGlyphGrowsWithApparentSize(t *testing.T) {
	assert.Equal(t, '.', glyph(0.01, 30))
	assert.Equal(t, '@', glyph(10, 30))
	assert.Equal(t, '@', glyph(1, 0))
}

func TestShadeScalesByAlpha(t *testing.T) {
	r, g, b := shade([4]float32{1, 0.5, 2, 0.5}).RGB()
	assert.Equal(t, int32(127), r)
	assert.Equal(t, int32(63), g)
	assert.Equal(t, int32(255), b)
}
