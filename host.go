package particlefx

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gekko3d/particlefx/render/core"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	cameraFov  = 75
	cameraNear = 0.1
	cameraFar  = 1000
)

var cameraHome = mgl32.Vec3{0, 0, 30}

type HostState int32

const (
	HostIdle HostState = iota
	HostInitialized
	HostRunning
	HostStopped
)

func (s HostState) String() string {
	switch s {
	case HostIdle:
		return "idle"
	case HostInitialized:
		return "initialized"
	case HostRunning:
		return "running"
	case HostStopped:
		return "stopped"
	}
	return fmt.Sprintf("HostState(%d)", int32(s))
}

// Container is the surface a host draws into.
type Container interface {
	Size() (width, height int)
}

var (
	containersMu sync.RWMutex
	containers   = map[string]Container{}
)

// RegisterContainer makes c available to Init under key.
func RegisterContainer(key string, c Container) {
	containersMu.Lock()
	defer containersMu.Unlock()
	containers[key] = c
}

func lookupContainer(key string) (Container, bool) {
	containersMu.RLock()
	defer containersMu.RUnlock()
	c, ok := containers[key]
	return c, ok
}

// RendererFactory creates the renderer for a container of the given size.
type RendererFactory func(width, height int) (core.Renderer, error)

// Host owns the scene, camera and renderer and runs one effect at a time.
// Everything except Stop and State must be called from one goroutine.
type Host struct {
	logger    Logger
	seed      int64
	rand      *rand.Rand
	factory   RendererFactory
	onError   func(error)
	frameRate int

	cfg      Config
	ctx      *Context
	renderer core.Renderer
	effect   Effect
	state    atomic.Int32
}

// NewHost returns a host with default settings and no renderer.
func NewHost() *Host {
	return NewHostBuilder().Build()
}

func (h *Host) State() HostState { return HostState(h.state.Load()) }

// Config is a snapshot of the shared configuration.
func (h *Host) Config() Config { return h.cfg }

// Effect is the active effect, nil before Init.
func (h *Host) Effect() Effect { return h.effect }

// Context is the render state shared with effects, nil before Init.
func (h *Host) Context() *Context { return h.ctx }

func (h *Host) Renderer() core.Renderer { return h.renderer }

func (h *Host) initialized() bool {
	s := h.State()
	return h.ctx != nil && s != HostIdle
}

// Init binds the host to container, which is a Container or a key passed to
// RegisterContainer, and starts the configured effect.
func (h *Host) Init(container any) error {
	if h.initialized() {
		return ErrAlreadyInitialized
	}
	c, err := resolveContainer(container)
	if err != nil {
		return err
	}
	if err := h.cfg.Validate(); err != nil {
		return err
	}

	width, height := c.Size()
	ctx := NewContext(h.seed)
	ctx.Logger = h.logger
	ctx.OnError = h.onError
	if h.rand != nil {
		ctx.Rand = h.rand
	}
	ctx.Camera.SetAspect(width, height)
	ctx.Camera.Position = cameraHome

	if h.factory != nil {
		r, err := h.factory(width, height)
		if err != nil {
			return fmt.Errorf("create renderer: %w", err)
		}
		h.renderer = r
		ctx.Releaser = r
	}
	h.ctx = ctx
	h.state.Store(int32(HostInitialized))
	h.logger.Infof("Host initialized (%dx%d)", width, height)

	if err := h.SetEffect(h.cfg.Type); err != nil {
		h.Destroy()
		return err
	}
	return nil
}

func resolveContainer(container any) (Container, error) {
	switch c := container.(type) {
	case nil:
		return nil, &ConfigurationError{Field: "container", Reason: "is nil"}
	case Container:
		return c, nil
	case string:
		found, ok := lookupContainer(c)
		if !ok {
			return nil, &ConfigurationError{Field: "container", Reason: fmt.Sprintf("%q is not registered", c)}
		}
		return found, nil
	default:
		return nil, &ConfigurationError{Field: "container", Reason: fmt.Sprintf("unsupported type %T", container)}
	}
}

// SetEffect replaces the active effect. An unknown type is reported and
// replaced by the default type.
func (h *Host) SetEffect(t EffectType) error {
	if !h.initialized() {
		return ErrNotInitialized
	}
	if !t.Known() {
		fallback := DefaultConfig().Type
		h.logger.Warnf("Unknown effect type %q, falling back to %s", t, fallback)
		if h.ctx.OnError != nil {
			h.ctx.OnError(fmt.Errorf("%w: %q", ErrUnknownEffectType, t))
		}
		t = fallback
	}

	h.disposeEffect()
	h.resetCamera()

	cfg := h.cfg
	cfg.Type = t
	e, err := New(h.ctx, cfg)
	if err != nil {
		return fmt.Errorf("construct %s: %w", t, err)
	}
	h.cfg = cfg
	h.effect = e
	h.ctx.Scene.Add(e.Node())
	h.logger.Debugf("Effect %s started with %d particles", t, cfg.Count)
	return nil
}

func (h *Host) resetCamera() {
	h.ctx.Camera.Position = cameraHome
	h.ctx.Camera.LookAt(mgl32.Vec3{0, 0, 0})
}

func (h *Host) disposeEffect() {
	e := h.effect
	if e == nil {
		return
	}
	h.effect = nil
	defer func() {
		if r := recover(); r != nil {
			e.Node().Detach()
			h.ctx.ReportError(&UpdateFault{Effect: e.Type(), Value: r})
		}
	}()
	e.Dispose(h.ctx)
}

// UpdateOptions merges partial into the shared config. A count or type
// change rebuilds the effect; anything else is forwarded to it.
func (h *Host) UpdateOptions(partial PartialConfig) error {
	next := Merge(h.cfg, partial)
	if err := next.Validate(); err != nil {
		return err
	}
	if h.effect == nil {
		h.cfg = next
		return nil
	}

	rebuild := next.Count != h.cfg.Count || next.Type != h.cfg.Type
	h.cfg = next
	if rebuild {
		return h.SetEffect(next.Type)
	}
	h.effect.UpdateOptions(h.ctx, partial)
	return nil
}

// Tick advances the active effect by delta seconds and renders a frame.
func (h *Host) Tick(delta float32) {
	switch h.State() {
	case HostInitialized, HostRunning:
	default:
		return
	}
	if delta < 0 {
		delta = 0
	}
	if h.effect != nil {
		h.update(delta)
		for _, m := range h.timeMaterials() {
			m.AdvanceTime(delta)
		}
	}
	if h.renderer != nil {
		if err := h.renderer.Render(h.ctx.Scene, h.ctx.Camera); err != nil {
			h.ctx.ReportError(fmt.Errorf("render: %w", err))
		}
	}
}

func (h *Host) update(delta float32) {
	defer func() {
		if r := recover(); r != nil {
			h.ctx.ReportError(&UpdateFault{Effect: h.effect.Type(), Value: r})
		}
	}()
	h.effect.Update(h.ctx, delta)
}

func (h *Host) timeMaterials() []*core.Material {
	mats := h.effect.Resources().TimeMaterials()
	if pooled, ok := h.effect.(PooledEffect); ok {
		mats = append(mats, pooled.Pool().TimeMaterials()...)
	}
	return mats
}

func (h *Host) OnResize(width, height int) {
	if h.ctx == nil {
		return
	}
	h.ctx.Camera.SetAspect(width, height)
	if h.renderer != nil {
		h.renderer.Resize(width, height)
	}
}

// Start marks the host running. Run calls it.
func (h *Host) Start() {
	if h.state.CompareAndSwap(int32(HostInitialized), int32(HostRunning)) ||
		h.state.CompareAndSwap(int32(HostStopped), int32(HostRunning)) {
		h.logger.Debugf("Host running")
	}
}

// Stop halts Run after the current frame. It is safe from any goroutine.
func (h *Host) Stop() {
	if h.state.CompareAndSwap(int32(HostRunning), int32(HostStopped)) {
		h.logger.Debugf("Host stopped")
	}
}

// Run ticks at the configured frame rate until ctx is done or Stop is called.
func (h *Host) Run(ctx context.Context) error {
	if !h.initialized() {
		return ErrNotInitialized
	}
	h.Start()

	ticker := time.NewTicker(time.Second / time.Duration(h.frameRate))
	defer ticker.Stop()
	clock := NewFrameClock(time.Now())

	for {
		select {
		case <-ctx.Done():
			h.Stop()
			return ctx.Err()
		case now := <-ticker.C:
			if h.State() != HostRunning {
				return nil
			}
			h.Tick(clock.Tick(now))
		}
	}
}

// Destroy disposes the effect and closes the renderer. Calling it again does
// nothing.
func (h *Host) Destroy() {
	if h.ctx == nil {
		return
	}
	h.Stop()
	h.disposeEffect()
	if h.renderer != nil {
		if err := h.renderer.Close(); err != nil {
			h.ctx.ReportError(fmt.Errorf("close renderer: %w", err))
		}
	}
	h.renderer = nil
	h.ctx = nil
	h.state.Store(int32(HostIdle))
	h.logger.Infof("Host destroyed")
}
