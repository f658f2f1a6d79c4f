package particlefx

import (
	"github.com/gekko3d/particlefx/render/core"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
)

const defaultPoolCapacity = 64

// Emitter is one short-lived pool entry: a burst or a meteor.
type Emitter struct {
	ID       uuid.UUID
	Node     *core.Node
	Geometry *core.Geometry
	Material *core.Material
	// Velocity is the shared motion of emitters that move rigidly.
	Velocity mgl32.Vec3

	life      float32
	resources Manifest
}

// NewEmitter wraps a points node whose geometry and material it owns. Life
// starts at 1.
func NewEmitter(name string, g *core.Geometry, m *core.Material) *Emitter {
	e := &Emitter{
		ID:       uuid.New(),
		Node:     core.NewPoints(name, g, m),
		Geometry: g,
		Material: m,
		life:     1,
	}
	e.resources.AddGeometry(g)
	e.resources.AddMaterial(m)
	return e
}

func (e *Emitter) Life() float32 { return e.life }

// Decay lowers life by amount, never below zero. Negative amounts are ignored.
func (e *Emitter) Decay(amount float32) {
	if amount <= 0 {
		return
	}
	e.life -= amount
	if e.life < 0 {
		e.life = 0
	}
}

func (e *Emitter) Alive() bool { return e.life > 0 }

func (e *Emitter) Resources() *Manifest { return &e.resources }

func (e *Emitter) release(ctx *Context) {
	e.Node.Detach()
	_ = e.resources.Release(ctx)
}

// SubEmitterPool holds the live emitters of an effect. Every entry is
// attached under parent while it is in the pool.
type SubEmitterPool struct {
	parent   *core.Node
	capacity int
	entries  []*Emitter
}

func NewSubEmitterPool(parent *core.Node, capacity int) *SubEmitterPool {
	if capacity <= 0 {
		capacity = defaultPoolCapacity
	}
	return &SubEmitterPool{parent: parent, capacity: capacity}
}

func (p *SubEmitterPool) Len() int            { return len(p.entries) }
func (p *SubEmitterPool) Cap() int            { return p.capacity }
func (p *SubEmitterPool) Full() bool          { return len(p.entries) >= p.capacity }
func (p *SubEmitterPool) Entries() []*Emitter { return p.entries }

// Add attaches e. When the pool is full e is released and false returned.
func (p *SubEmitterPool) Add(ctx *Context, e *Emitter) bool {
	if p.Full() {
		e.release(ctx)
		return false
	}
	p.parent.Add(e.Node)
	p.entries = append(p.entries, e)
	return true
}

// Sweep removes every dead entry and every entry for which expired reports
// true, detaching and releasing them. It returns the number removed.
func (p *SubEmitterPool) Sweep(ctx *Context, expired func(e *Emitter) bool) int {
	kept := p.entries[:0]
	removed := 0
	for _, e := range p.entries {
		if !e.Alive() || (expired != nil && expired(e)) {
			e.release(ctx)
			removed++
			continue
		}
		kept = append(kept, e)
	}
	for i := len(kept); i < len(p.entries); i++ {
		p.entries[i] = nil
	}
	p.entries = kept
	return removed
}

// Clear releases all entries.
func (p *SubEmitterPool) Clear(ctx *Context) {
	for _, e := range p.entries {
		e.release(ctx)
	}
	p.entries = nil
}

// TimeMaterials collects the time-driven materials of live entries.
func (p *SubEmitterPool) TimeMaterials() []*core.Material {
	var out []*core.Material
	for _, e := range p.entries {
		out = append(out, e.resources.TimeMaterials()...)
	}
	return out
}
