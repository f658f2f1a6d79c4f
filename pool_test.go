package particlefx

import (
	"testing"

	"github.com/gekko3d/particlefx/render/core"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEmitter(n int) *Emitter {
	g := core.NewPointGeometry(n)
	g.AddChannel(core.ChannelPosition, 3)
	return NewEmitter("test", g, core.NewPointsMaterial("test", mgl32.Vec3{1, 1, 1}, 1))
}

func TestEmitterDecay(t *testing.T) {
	e := testEmitter(1)
	assert.Equal(t, float32(1), e.Life())
	assert.Equal(t, 2, e.Resources().Len())

	e.Decay(-1)
	assert.Equal(t, float32(1), e.Life())
	e.Decay(0.4)
	assert.InDelta(t, 0.6, e.Life(), 1e-6)
	assert.True(t, e.Alive())
	e.Decay(5)
	assert.Zero(t, e.Life())
	assert.False(t, e.Alive())
}

func TestPoolDropsSpawnsWhenFull(t *testing.T) {
	ctx := NewContext(1)
	parent := core.NewGroup("parent")
	p := NewSubEmitterPool(parent, 0)
	assert.Equal(t, defaultPoolCapacity, p.Cap())

	for i := 0; i < p.Cap(); i++ {
		require.True(t, p.Add(ctx, testEmitter(1)))
	}
	assert.True(t, p.Full())
	assert.Len(t, parent.Children(), p.Cap())

	extra := testEmitter(1)
	assert.False(t, p.Add(ctx, extra))
	assert.True(t, extra.Geometry.Released())
	assert.True(t, extra.Material.Released())
	assert.Nil(t, extra.Node.Parent())
	assert.Equal(t, p.Cap(), p.Len())
}

func TestSweepRemovesAndDetaches(t *testing.T) {
	ctx := NewContext(1)
	parent := core.NewGroup("parent")
	p := NewSubEmitterPool(parent, 8)
	a, b, c := testEmitter(1), testEmitter(1), testEmitter(1)
	for _, e := range []*Emitter{a, b, c} {
		p.Add(ctx, e)
	}

	b.Decay(1)
	removed := p.Sweep(ctx, func(e *Emitter) bool { return e == c })
	assert.Equal(t, 2, removed)
	assert.Equal(t, []*Emitter{a}, p.Entries())
	assert.Nil(t, b.Node.Parent())
	assert.Nil(t, c.Node.Parent())
	assert.True(t, b.Geometry.Released())
	assert.True(t, c.Geometry.Released())
	assert.Equal(t, []*core.Node{a.Node}, parent.Children())

	p.Clear(ctx)
	assert.Zero(t, p.Len())
	assert.True(t, a.Material.Released())
	assert.Empty(t, parent.Children())
}

func TestPoolTimeMaterials(t *testing.T) {
	ctx := NewContext(1)
	p := NewSubEmitterPool(core.NewGroup("parent"), 4)
	e := testEmitter(1)
	e.Material.EnableTime()
	p.Add(ctx, e)
	p.Add(ctx, testEmitter(1))
	assert.Equal(t, []*core.Material{e.Material}, p.TimeMaterials())
}

func TestFireworksWithoutSpeedNeverSpawn(t *testing.T) {
	ctx := NewContext(1)
	cfg := DefaultConfig()
	cfg.Type = Fireworks
	cfg.Speed = 0
	e, err := New(ctx, cfg)
	require.NoError(t, err)

	for i := 0; i < 100; i++ {
		e.Update(ctx, 1.0/60)
	}
	assert.Zero(t, e.(PooledEffect).Pool().Len())
}

func TestFireworksLifeRunsDown(t *testing.T) {
	ctx := NewContext(3)
	cfg := DefaultConfig()
	cfg.Type = Fireworks
	cfg.Speed = 0
	fx, err := New(ctx, cfg)
	require.NoError(t, err)
	e := fx.(*fireworksEffect)
	e.launch(ctx)
	burst := e.Pool().Entries()[0]
	require.Equal(t, fireworksPoints, burst.Geometry.Count)
	require.Equal(t, e.Node(), burst.Node.Parent())

	life := burst.Life()
	ticks := 0
	for burst.Alive() {
		e.Update(ctx, 0.1)
		require.LessOrEqual(t, burst.Life(), life)
		assert.Equal(t, burst.Life(), burst.Material.Opacity)
		life = burst.Life()
		ticks++
		require.Less(t, ticks, 100)
	}
	// removed in the tick that killed it
	assert.Zero(t, e.Pool().Len())
	assert.Nil(t, burst.Node.Parent())
	assert.True(t, burst.Geometry.Released())
}

func TestFireworksBurstsOwnTheirMaterial(t *testing.T) {
	ctx := NewContext(3)
	e := newEffect(t, ctx, Fireworks, 10).(*fireworksEffect)
	e.launch(ctx)
	e.launch(ctx)
	a, b := e.Pool().Entries()[0], e.Pool().Entries()[1]
	assert.NotSame(t, a.Material, b.Material)
	assert.NotEqual(t, a.Material.ID, b.Material.ID)

	e.UpdateOptions(ctx, WithSize(0.3))
	assert.InDelta(t, 0.3, a.Material.Size, 1e-6)
	assert.InDelta(t, 0.3, b.Material.Size, 1e-6)
}

func TestMeteorsRetireBelowFloor(t *testing.T) {
	ctx := NewContext(5)
	cfg := DefaultConfig()
	cfg.Type = MeteorShower
	cfg.Speed = 0
	fx, err := New(ctx, cfg)
	require.NoError(t, err)
	e := fx.(*meteorShowerEffect)
	e.launch(ctx)
	m := e.Pool().Entries()[0]
	require.Negative(t, m.Velocity.Y())

	// speed 0 freezes motion and spawning; only life decays
	head := m.Geometry.Get(core.ChannelPosition)[1]
	e.Update(ctx, 1)
	assert.Equal(t, head, m.Geometry.Get(core.ChannelPosition)[1])
	assert.InDelta(t, 1-meteorFade, m.Life(), 1e-6)

	e.UpdateOptions(ctx, WithSpeed(1))
	for e.Pool().Len() > 0 && m.Node.Parent() != nil {
		e.Update(ctx, 0.5)
	}
	assert.Nil(t, m.Node.Parent())
	assert.True(t, m.Geometry.Released())
}

func TestMeteorTrailFades(t *testing.T) {
	ctx := NewContext(5)
	e := newEffect(t, ctx, MeteorShower, 10).(*meteorShowerEffect)
	e.launch(ctx)
	m := e.Pool().Entries()[0]
	sizes := m.Geometry.Get(core.ChannelSize)
	for i := 1; i < len(sizes); i++ {
		assert.Less(t, sizes[i], sizes[i-1])
	}
	colors := m.Geometry.Get(core.ChannelColor)
	assert.Equal(t, []float32{1, 1, 1}, colors[:3])
}
