// Package headless is a renderer with no output device. It mirrors every
// uploaded channel on the CPU and tracks live backend resources, which makes
// it the renderer of choice for tests and benchmarks.
package headless

import (
	"fmt"
	"slices"

	"github.com/gekko3d/particlefx/render/core"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
)

// Renderer copies dirty attribute buffers into its own mirrors the way a GPU
// backend would copy them into vertex buffers.
type Renderer struct {
	Width, Height int

	// Uploads counts channel copies since creation.
	Uploads int
	Frames  int
	// Instances and Lights hold what the last frame would have drawn.
	Instances []core.ParticleInstance
	Lights    []core.LightData

	// FailRelease, when set, is consulted before every release. A non-nil
	// error leaves the resource live.
	FailRelease func(id uuid.UUID) error

	mirrors   map[uuid.UUID]map[string][]float32
	materials map[uuid.UUID]*core.Material
	textures  map[uuid.UUID]*core.Texture
	closed    bool
}

func New(width, height int) *Renderer {
	return &Renderer{
		Width:     width,
		Height:    height,
		mirrors:   make(map[uuid.UUID]map[string][]float32),
		materials: make(map[uuid.UUID]*core.Material),
		textures:  make(map[uuid.UUID]*core.Texture),
	}
}

// Factory matches the host's renderer factory signature.
func Factory(width, height int) (core.Renderer, error) {
	return New(width, height), nil
}

func (r *Renderer) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	r.Width, r.Height = width, height
}

func (r *Renderer) Render(scene *core.Scene, camera *core.Camera) error {
	if r.closed {
		return fmt.Errorf("headless renderer is closed")
	}
	scene.Walk(func(n *core.Node, _ mgl32.Mat4) {
		if n.Geometry != nil && !n.Geometry.Released() {
			r.upload(n.Geometry)
		}
		if n.Material != nil && !n.Material.Released() {
			r.materials[n.Material.ID] = n.Material
			if t := n.Material.Map; t != nil && !t.Released() {
				r.textures[t.ID] = t
			}
		}
	})

	planes := core.ExtractFrustum(camera.ViewProjection())
	r.Instances = core.CollectInstances(scene, &planes, r.Instances[:0])

	r.Lights = r.Lights[:0]
	for _, pl := range scene.Lights() {
		r.Lights = append(r.Lights, pl.Light.Pack(pl.World))
	}
	r.Frames++
	return nil
}

func (r *Renderer) upload(g *core.Geometry) {
	mirror, ok := r.mirrors[g.ID]
	if !ok {
		mirror = make(map[string][]float32)
		r.mirrors[g.ID] = mirror
		// first sight uploads everything
		g.MarkDirty(g.Channels()...)
	}
	g.ConsumeDirty(func(buf *core.AttributeBuffer) {
		dst := mirror[buf.Name]
		if len(dst) != len(buf.Values) {
			dst = make([]float32, len(buf.Values))
		}
		copy(dst, buf.Values)
		mirror[buf.Name] = dst
		r.Uploads++
	})
}

// Mirror returns the uploaded copy of a channel.
func (r *Renderer) Mirror(id uuid.UUID, channel string) ([]float32, bool) {
	m, ok := r.mirrors[id]
	if !ok {
		return nil, false
	}
	v, ok := m[channel]
	return v, ok
}

func (r *Renderer) release(id uuid.UUID) error {
	if r.FailRelease != nil {
		if err := r.FailRelease(id); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) ReleaseGeometry(g *core.Geometry) error {
	if err := r.release(g.ID); err != nil {
		return err
	}
	delete(r.mirrors, g.ID)
	return nil
}

func (r *Renderer) ReleaseMaterial(m *core.Material) error {
	if err := r.release(m.ID); err != nil {
		return err
	}
	delete(r.materials, m.ID)
	return nil
}

func (r *Renderer) ReleaseTexture(t *core.Texture) error {
	if err := r.release(t.ID); err != nil {
		return err
	}
	delete(r.textures, t.ID)
	return nil
}

// Live lists the IDs of every resource the backend still holds, sorted.
func (r *Renderer) Live() []uuid.UUID {
	var out []uuid.UUID
	for id := range r.mirrors {
		out = append(out, id)
	}
	for id := range r.materials {
		out = append(out, id)
	}
	for id := range r.textures {
		out = append(out, id)
	}
	slices.SortFunc(out, func(a, b uuid.UUID) int {
		return slices.Compare(a[:], b[:])
	})
	return out
}

func (r *Renderer) LiveGeometries() int { return len(r.mirrors) }
func (r *Renderer) LiveMaterials() int  { return len(r.materials) }
func (r *Renderer) LiveTextures() int   { return len(r.textures) }

func (r *Renderer) Close() error {
	r.closed = true
	clear(r.mirrors)
	clear(r.materials)
	clear(r.textures)
	return nil
}
