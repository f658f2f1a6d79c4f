package particlefx

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gekko3d/particlefx/render/core"
	"github.com/gekko3d/particlefx/render/headless"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedContainer struct{ w, h int }

func (c fixedContainer) Size() (int, int) { return c.w, c.h }

type hostFixture struct {
	host     *Host
	renderer *headless.Renderer
	logger   *recordingLogger
	errs     []error
}

func newHostFixture(t *testing.T, partial PartialConfig) *hostFixture {
	t.Helper()
	f := &hostFixture{logger: &recordingLogger{}}
	f.host = NewHostBuilder().
		WithLogger(f.logger).
		WithSeed(7).
		WithOptions(partial).
		WithErrorObserver(func(err error) { f.errs = append(f.errs, err) }).
		WithRenderer(func(w, h int) (core.Renderer, error) {
			f.renderer = headless.New(w, h)
			return f.renderer, nil
		}).
		Build()
	return f
}

func (f *hostFixture) init(t *testing.T) {
	t.Helper()
	require.NoError(t, f.host.Init(fixedContainer{800, 600}))
	t.Cleanup(f.host.Destroy)
}

func TestHostInitWithContainer(t *testing.T) {
	f := newHostFixture(t, WithCount(100))
	assert.Equal(t, HostIdle, f.host.State())
	f.init(t)

	assert.Equal(t, HostInitialized, f.host.State())
	require.NotNil(t, f.host.Effect())
	assert.Equal(t, Rain, f.host.Effect().Type())
	assert.True(t, f.host.Context().Scene.Contains(f.host.Effect().Node()))
	assert.Equal(t, 800, f.renderer.Width)
	assert.InDelta(t, 800.0/600, f.host.Context().Camera.Aspect, 1e-6)
	assert.Same(t, f.renderer, f.host.Renderer())

	assert.ErrorIs(t, f.host.Init(fixedContainer{1, 1}), ErrAlreadyInitialized)
}

func TestHostInitWithRegisteredKey(t *testing.T) {
	RegisterContainer("host-test-canvas", fixedContainer{320, 200})
	f := newHostFixture(t, WithCount(10))
	require.NoError(t, f.host.Init("host-test-canvas"))
	defer f.host.Destroy()
	assert.Equal(t, 320, f.renderer.Width)
}

func TestHostInitRejectsBadContainers(t *testing.T) {
	for _, c := range []any{nil, "no-such-canvas", 42} {
		h := NewHost()
		err := h.Init(c)
		var cerr *ConfigurationError
		require.True(t, errors.As(err, &cerr), "%v", c)
		assert.Equal(t, "container", cerr.Field)
		assert.Equal(t, HostIdle, h.State())
	}
}

func TestHostInitRejectsInvalidConfig(t *testing.T) {
	f := newHostFixture(t, WithCount(0))
	err := f.host.Init(fixedContainer{10, 10})
	var cerr *ConfigurationError
	require.True(t, errors.As(err, &cerr))
	assert.Nil(t, f.renderer, "no renderer is created for a bad config")
	assert.Nil(t, f.host.Effect())
}

func TestHostRendererFactoryError(t *testing.T) {
	boom := errors.New("no adapter")
	h := NewHostBuilder().WithRenderer(func(int, int) (core.Renderer, error) {
		return nil, boom
	}).Build()
	assert.ErrorIs(t, h.Init(fixedContainer{10, 10}), boom)
	assert.Equal(t, HostIdle, h.State())
}

func TestHostOperationsBeforeInit(t *testing.T) {
	h := NewHost()
	assert.ErrorIs(t, h.SetEffect(Snow), ErrNotInitialized)
	assert.ErrorIs(t, h.Run(context.Background()), ErrNotInitialized)
	h.Tick(0.1)
	h.OnResize(10, 10)
	h.Destroy()
	assert.Equal(t, HostIdle, h.State())

	// options before Init only touch the config
	require.NoError(t, h.UpdateOptions(WithType(Snow)))
	assert.Equal(t, Snow, h.Config().Type)
}

func TestHostUnknownTypeFallsBack(t *testing.T) {
	f := newHostFixture(t, WithCount(10))
	f.init(t)
	warnings := f.logger.count("WARN")

	require.NoError(t, f.host.SetEffect("plasma"))
	assert.Equal(t, Rain, f.host.Effect().Type())
	assert.Equal(t, Rain, f.host.Config().Type)
	assert.Equal(t, warnings+1, f.logger.count("WARN"))
	require.Len(t, f.errs, 1)
	assert.ErrorIs(t, f.errs[0], ErrUnknownEffectType)
	assert.Contains(t, f.errs[0].Error(), "plasma")
}

func TestHostUnknownTypeAtInit(t *testing.T) {
	f := newHostFixture(t, combine(WithCount(10), WithType("plasma")))
	f.init(t)
	assert.Equal(t, Rain, f.host.Effect().Type())
	assert.Len(t, f.errs, 1)
}

func TestHostSwitchingLeaksNothing(t *testing.T) {
	f := newHostFixture(t, WithCount(50))
	f.init(t)

	types := append(append([]EffectType(nil), EffectTypes...), Rain)
	for _, typ := range types {
		f.host.Tick(0.016)
		require.NoError(t, f.host.SetEffect(typ))
		// nothing rendered yet, so every live resource is a leak
		assert.Empty(t, f.renderer.Live(), "switching to %s", typ)
	}
	assert.Empty(t, f.errs)
}

func TestHostRoundTripMatchesFreshEffect(t *testing.T) {
	f := newHostFixture(t, WithCount(50))
	f.init(t)
	fresh := newHostFixture(t, WithCount(50))
	fresh.init(t)

	f.host.Tick(0.016)
	require.NoError(t, f.host.SetEffect(Snow))
	f.host.Tick(0.016)
	require.NoError(t, f.host.SetEffect(Rain))

	got, want := f.host.Effect(), fresh.host.Effect()
	assert.Equal(t, want.Config(), got.Config())
	assert.Equal(t, fresh.host.Config(), f.host.Config())

	gg, wg := mainGeometry(got), mainGeometry(want)
	require.NotNil(t, gg)
	assert.Equal(t, wg.Count, gg.Count)
	assert.ElementsMatch(t, wg.Channels(), gg.Channels())
	for _, ch := range wg.Channels() {
		assert.Len(t, gg.Get(ch), len(wg.Get(ch)), ch)
	}
	assert.Equal(t, want.Resources().Len(), got.Resources().Len())
	assert.Zero(t, got.(interface{ Elapsed() float64 }).Elapsed(), "a rebuilt effect starts at zero")
	assert.Empty(t, f.errs)
}

func TestHostPooledEffectLeaksNothing(t *testing.T) {
	f := newHostFixture(t, combine(WithCount(10), WithType(Fireworks)))
	f.init(t)
	fw := f.host.Effect().(*fireworksEffect)
	for i := 0; i < 5; i++ {
		fw.launch(f.host.Context())
	}
	f.host.Tick(0.016)
	assert.GreaterOrEqual(t, f.renderer.LiveGeometries(), 5)

	require.NoError(t, f.host.SetEffect(Snow))
	assert.Empty(t, f.renderer.Live())
}

func TestHostCountChangeRebuilds(t *testing.T) {
	f := newHostFixture(t, WithCount(100))
	f.init(t)
	before := f.host.Effect()

	require.NoError(t, f.host.UpdateOptions(WithCount(200)))
	after := f.host.Effect()
	assert.NotSame(t, before, after)
	assert.Equal(t, 200, after.Config().Count)
	assert.Len(t, mainGeometry(after).Get(core.ChannelPosition), 600)
	assert.False(t, f.host.Context().Scene.Contains(before.Node()))
	assert.Zero(t, before.Resources().Len())

	require.NoError(t, f.host.UpdateOptions(WithType(Galaxy)))
	assert.Equal(t, Galaxy, f.host.Effect().Type())
	assert.Equal(t, 200, f.host.Effect().Config().Count)
}

func TestHostForwardsOtherOptions(t *testing.T) {
	f := newHostFixture(t, WithCount(100))
	f.init(t)
	e := f.host.Effect()

	require.NoError(t, f.host.UpdateOptions(combine(WithSpeed(3), WithColor(Hex(0xff0000)))))
	assert.Same(t, e, f.host.Effect())
	assert.Equal(t, float32(3), e.Config().Speed)
	assert.Equal(t, float32(3), f.host.Config().Speed)
	assert.Equal(t, Hex(0xff0000).Vec3(), e.Node().Material.Color)
}

func TestHostRejectsInvalidOptions(t *testing.T) {
	f := newHostFixture(t, WithCount(100))
	f.init(t)
	e := f.host.Effect()

	err := f.host.UpdateOptions(WithSpeed(-1))
	var cerr *ConfigurationError
	require.True(t, errors.As(err, &cerr))
	assert.Equal(t, "speed", cerr.Field)
	assert.Equal(t, float32(1), f.host.Config().Speed)
	assert.Same(t, e, f.host.Effect())
}

func TestHostTickRendersAndAdvancesTime(t *testing.T) {
	f := newHostFixture(t, combine(WithCount(50), WithType(Fire)))
	f.init(t)
	mats := f.host.Effect().Resources().TimeMaterials()
	require.Len(t, mats, 1)

	f.host.Tick(0.25)
	f.host.Tick(0.25)
	f.host.Tick(-1)
	v, ok := mats[0].Uniform(core.UniformTime)
	require.True(t, ok)
	assert.InDelta(t, 0.5, v, 1e-6)
	assert.Equal(t, 3, f.renderer.Frames)
	assert.NotEmpty(t, f.renderer.Instances)
}

func TestHostTickSkippedWhenStopped(t *testing.T) {
	f := newHostFixture(t, WithCount(10))
	f.init(t)
	f.host.Start()
	assert.Equal(t, HostRunning, f.host.State())
	f.host.Stop()
	assert.Equal(t, HostStopped, f.host.State())

	f.host.Tick(0.1)
	assert.Zero(t, f.renderer.Frames)
}

type panickyEffect struct{ baseEffect }

func (e *panickyEffect) Update(*Context, float32) { panic("diverged") }

const panicky EffectType = "panicky"

func TestHostRecoversUpdatePanics(t *testing.T) {
	registry[panicky] = func(ctx *Context, cfg Config) (Effect, error) {
		e := &panickyEffect{}
		e.initPoints(panicky, cfg, 1)
		e.geometry.AddChannel(core.ChannelPosition, 3)
		return e, nil
	}
	t.Cleanup(func() { delete(registry, panicky) })

	f := newHostFixture(t, WithCount(10))
	f.init(t)
	require.NoError(t, f.host.SetEffect(panicky))

	f.host.Tick(0.1)
	require.Len(t, f.errs, 1)
	var fault *UpdateFault
	require.True(t, errors.As(f.errs[0], &fault))
	assert.Equal(t, panicky, fault.Effect)
	assert.Equal(t, "diverged", fault.Value)
	assert.Equal(t, 1, f.renderer.Frames, "the frame is still rendered")

	require.NoError(t, f.host.SetEffect(Snow))
	assert.Equal(t, Snow, f.host.Effect().Type())
}

func TestHostSwitchSurvivesDisposalFailure(t *testing.T) {
	f := newHostFixture(t, WithCount(10))
	f.init(t)
	f.host.Tick(0.016)
	leaked := f.renderer.Live()
	require.NotEmpty(t, leaked)
	owned := f.host.Effect().Resources().Len()
	f.renderer.FailRelease = func(uuid.UUID) error { return errors.New("device lost") }

	require.NoError(t, f.host.SetEffect(Snow))
	assert.Equal(t, Snow, f.host.Effect().Type())
	assert.Len(t, f.errs, owned)
	var derr *ResourceDisposalError
	assert.True(t, errors.As(f.errs[0], &derr))
	assert.Equal(t, leaked, f.renderer.Live())
	assert.Equal(t, owned, f.logger.count("ERROR"))
}

func TestHostCameraResetsBetweenEffects(t *testing.T) {
	f := newHostFixture(t, WithCount(10))
	f.init(t)
	cam := f.host.Context().Camera

	require.NoError(t, f.host.SetEffect(SolarSystem))
	assert.Equal(t, mgl32.Vec3{0, 30, 80}, cam.Position)
	require.NoError(t, f.host.SetEffect(Rain))
	assert.Equal(t, cameraHome, cam.Position)
	assert.Equal(t, mgl32.Vec3{0, 0, 0}, cam.Target)
}

func TestHostOnResize(t *testing.T) {
	f := newHostFixture(t, WithCount(10))
	f.init(t)
	f.host.OnResize(1000, 500)
	assert.Equal(t, 1000, f.renderer.Width)
	assert.Equal(t, 500, f.renderer.Height)
	assert.InDelta(t, 2, f.host.Context().Camera.Aspect, 1e-6)

	f.host.OnResize(0, 0)
	assert.Equal(t, 1000, f.renderer.Width)
	assert.InDelta(t, 2, f.host.Context().Camera.Aspect, 1e-6)
}

func TestHostRunUntilDeadline(t *testing.T) {
	f := &hostFixture{}
	f.host = NewHostBuilder().
		WithFrameRate(200).
		WithOptions(WithCount(10)).
		WithRenderer(func(w, h int) (core.Renderer, error) {
			f.renderer = headless.New(w, h)
			return f.renderer, nil
		}).
		Build()
	f.init(t)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	err := f.host.Run(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, HostStopped, f.host.State())
	assert.Positive(t, f.renderer.Frames)
}

func TestHostStopEndsRun(t *testing.T) {
	f := newHostFixture(t, WithCount(10))
	f.init(t)

	go func() {
		for f.host.State() != HostRunning {
			time.Sleep(time.Millisecond)
		}
		f.host.Stop()
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	assert.NoError(t, f.host.Run(ctx))
	assert.Equal(t, HostStopped, f.host.State())
}

func TestHostDestroyIsIdempotent(t *testing.T) {
	f := newHostFixture(t, WithCount(10))
	require.NoError(t, f.host.Init(fixedContainer{10, 10}))
	f.host.Tick(0.016)
	e := f.host.Effect()

	f.host.Destroy()
	assert.Equal(t, HostIdle, f.host.State())
	assert.Nil(t, f.host.Context())
	assert.Nil(t, f.host.Effect())
	assert.Zero(t, e.Resources().Len())
	assert.Empty(t, f.renderer.Live())

	f.host.Destroy()
	f.host.Tick(0.1)
	assert.Equal(t, 1, f.renderer.Frames)

	// a destroyed host can be initialized again
	require.NoError(t, f.host.Init(fixedContainer{10, 10}))
	f.host.Destroy()
}

func TestHostStateString(t *testing.T) {
	assert.Equal(t, "running", HostRunning.String())
	assert.Equal(t, "HostState(9)", HostState(9).String())
}
