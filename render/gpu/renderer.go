// Package gpu renders particle scenes with webgpu into a glfw window.
package gpu

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/gekko3d/particlefx/render/core"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
)

type Renderer struct {
	Window   *glfw.Window
	Instance *wgpu.Instance
	Adapter  *wgpu.Adapter
	Device   *wgpu.Device
	Queue    *wgpu.Queue
	Surface  *wgpu.Surface
	Config   *wgpu.SurfaceConfiguration

	Pass *ParticlePass

	instances []core.ParticleInstance
	// uploaded holds geometries whose channels were consumed at least once
	uploaded map[uuid.UUID]struct{}
}

// New creates the device and surface for window. The window must be created
// with glfw.ClientAPI set to glfw.NoAPI.
func New(window *glfw.Window) (*Renderer, error) {
	r := &Renderer{
		Window:   window,
		uploaded: make(map[uuid.UUID]struct{}),
	}

	r.Instance = wgpu.CreateInstance(nil)
	r.Surface = r.Instance.CreateSurface(wgpuglfw.GetSurfaceDescriptor(window))

	adapter, err := r.Instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		CompatibleSurface: r.Surface,
		PowerPreference:   wgpu.PowerPreferenceHighPerformance,
	})
	if err != nil {
		return nil, fmt.Errorf("request adapter: %w", err)
	}
	r.Adapter = adapter

	r.Device, err = adapter.RequestDevice(nil)
	if err != nil {
		return nil, fmt.Errorf("request device: %w", err)
	}
	r.Queue = r.Device.GetQueue()

	width, height := window.GetFramebufferSize()
	caps := r.Surface.GetCapabilities(adapter)
	if len(caps.Formats) == 0 || len(caps.AlphaModes) == 0 {
		return nil, fmt.Errorf("surface reports no formats")
	}
	r.Config = &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      caps.Formats[0],
		Width:       uint32(width),
		Height:      uint32(height),
		PresentMode: wgpu.PresentModeFifo,
		AlphaMode:   caps.AlphaModes[0],
	}
	r.Surface.Configure(adapter, r.Device, r.Config)

	r.Pass, err = NewParticlePass(r.Device, r.Config.Format)
	if err != nil {
		return nil, fmt.Errorf("particle pass: %w", err)
	}
	return r, nil
}

func (r *Renderer) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	r.Config.Width = uint32(width)
	r.Config.Height = uint32(height)
	r.Surface.Configure(r.Adapter, r.Device, r.Config)
}

func (r *Renderer) Render(scene *core.Scene, camera *core.Camera) error {
	// instances are rebuilt from the CPU buffers every frame, so consuming
	// the dirty set is all an upload needs
	scene.Walk(func(n *core.Node, _ mgl32.Mat4) {
		if g := n.Geometry; g != nil && !g.Released() {
			g.ConsumeDirty(func(*core.AttributeBuffer) {})
			r.uploaded[g.ID] = struct{}{}
		}
	})

	planes := core.ExtractFrustum(camera.ViewProjection())
	r.instances = core.CollectInstances(scene, &planes, r.instances[:0])
	if err := r.Pass.Update(r.Queue, camera, r.instances); err != nil {
		return fmt.Errorf("update instances: %w", err)
	}

	nextTexture, err := r.Surface.GetCurrentTexture()
	if err != nil {
		return fmt.Errorf("get current texture: %w", err)
	}
	defer nextTexture.Release()

	view, err := nextTexture.CreateView(nil)
	if err != nil {
		return fmt.Errorf("create view: %w", err)
	}
	defer view.Release()

	encoder, err := r.Device.CreateCommandEncoder(nil)
	if err != nil {
		return fmt.Errorf("create command encoder: %w", err)
	}
	defer encoder.Release()

	bg := scene.Background
	pass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{{
			View:       view,
			LoadOp:     wgpu.LoadOpClear,
			StoreOp:    wgpu.StoreOpStore,
			ClearValue: wgpu.Color{R: float64(bg[0]), G: float64(bg[1]), B: float64(bg[2]), A: 1},
		}},
	})
	r.Pass.Draw(pass)
	if err := pass.End(); err != nil {
		return fmt.Errorf("render pass: %w", err)
	}

	cmd, err := encoder.Finish(nil)
	if err != nil {
		return fmt.Errorf("finish encoder: %w", err)
	}
	defer cmd.Release()
	r.Queue.Submit(cmd)
	r.Surface.Present()
	return nil
}

func (r *Renderer) ReleaseGeometry(g *core.Geometry) error {
	delete(r.uploaded, g.ID)
	return nil
}

// Materials and textures have no device state; sprites are shaded analytically.
func (r *Renderer) ReleaseMaterial(m *core.Material) error { return nil }
func (r *Renderer) ReleaseTexture(t *core.Texture) error   { return nil }

func (r *Renderer) Close() error {
	if r.Pass != nil {
		r.Pass.Release()
		r.Pass = nil
	}
	if r.Surface != nil {
		r.Surface.Release()
		r.Surface = nil
	}
	if r.Device != nil {
		r.Device.Release()
		r.Device = nil
	}
	if r.Adapter != nil {
		r.Adapter.Release()
		r.Adapter = nil
	}
	if r.Instance != nil {
		r.Instance.Release()
		r.Instance = nil
	}
	return nil
}
