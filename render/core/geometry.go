package core

import (
	"fmt"

	"github.com/google/uuid"
)

// Well-known channel names. Renderers upload these; any other channel is
// simulation state private to the effect.
const (
	ChannelPosition = "position"
	ChannelColor    = "color"
	ChannelSize     = "size"
	ChannelOpacity  = "opacity"
)

type Shape uint8

const (
	ShapePoints Shape = iota
	ShapeSphere
	ShapeRing
	ShapeLine
)

func (s Shape) String() string {
	switch s {
	case ShapePoints:
		return "points"
	case ShapeSphere:
		return "sphere"
	case ShapeRing:
		return "ring"
	case ShapeLine:
		return "line"
	}
	return fmt.Sprintf("shape(%d)", s)
}

// AttributeBuffer is one structure-of-arrays channel. len(Values) is fixed at
// Count*Components for the lifetime of the buffer.
type AttributeBuffer struct {
	Name       string
	Components int
	Values     []float32
}

func (b *AttributeBuffer) Len() int {
	return len(b.Values) / b.Components
}

// Vec3 reads element i of a 3-component channel.
func (b *AttributeBuffer) Vec3(i int) (x, y, z float32) {
	o := i * 3
	return b.Values[o], b.Values[o+1], b.Values[o+2]
}

func (b *AttributeBuffer) SetVec3(i int, x, y, z float32) {
	o := i * 3
	b.Values[o], b.Values[o+1], b.Values[o+2] = x, y, z
}

// Geometry owns a fixed-count set of attribute channels plus the parameters of
// analytic shapes (spheres and rings) that have no per-vertex data.
type Geometry struct {
	ID    uuid.UUID
	Shape Shape
	Count int

	Radius      float32
	InnerRadius float32
	OuterRadius float32

	channels map[string]*AttributeBuffer
	order    []string
	dirty    map[string]struct{}
	released bool
}

func NewGeometry(shape Shape, count int) *Geometry {
	if count < 0 {
		panic(fmt.Sprintf("geometry count must not be negative, got %d", count))
	}
	return &Geometry{
		ID:       uuid.New(),
		Shape:    shape,
		Count:    count,
		channels: make(map[string]*AttributeBuffer),
		dirty:    make(map[string]struct{}),
	}
}

func NewPointGeometry(count int) *Geometry {
	return NewGeometry(ShapePoints, count)
}

func NewLineGeometry(count int) *Geometry {
	return NewGeometry(ShapeLine, count)
}

func NewSphereGeometry(radius float32) *Geometry {
	g := NewGeometry(ShapeSphere, 1)
	g.Radius = radius
	return g
}

func NewRingGeometry(inner, outer float32) *Geometry {
	g := NewGeometry(ShapeRing, 1)
	g.InnerRadius = inner
	g.OuterRadius = outer
	g.Radius = outer
	return g
}

// AddChannel allocates a zeroed channel of Count*components floats and marks it dirty.
func (g *Geometry) AddChannel(name string, components int) *AttributeBuffer {
	if components != 1 && components != 3 {
		panic(fmt.Sprintf("channel %q: unsupported component count %d", name, components))
	}
	if _, ok := g.channels[name]; ok {
		panic(fmt.Sprintf("channel %q already exists", name))
	}
	buf := &AttributeBuffer{
		Name:       name,
		Components: components,
		Values:     make([]float32, g.Count*components),
	}
	g.channels[name] = buf
	g.order = append(g.order, name)
	g.dirty[name] = struct{}{}
	return buf
}

func (g *Geometry) Has(name string) bool {
	_, ok := g.channels[name]
	return ok
}

func (g *Geometry) Buffer(name string) *AttributeBuffer {
	if g.released {
		panic(fmt.Sprintf("geometry %s used after release", g.ID))
	}
	buf, ok := g.channels[name]
	if !ok {
		panic(fmt.Sprintf("geometry %s has no channel %q", g.ID, name))
	}
	return buf
}

// Get returns the mutable values of a channel. Unknown channels panic.
func (g *Geometry) Get(name string) []float32 {
	return g.Buffer(name).Values
}

func (g *Geometry) Channels() []string {
	out := make([]string, len(g.order))
	copy(out, g.order)
	return out
}

func (g *Geometry) MarkDirty(names ...string) {
	for _, name := range names {
		if _, ok := g.channels[name]; !ok {
			panic(fmt.Sprintf("geometry %s has no channel %q", g.ID, name))
		}
		g.dirty[name] = struct{}{}
	}
}

func (g *Geometry) IsDirty(name string) bool {
	_, ok := g.dirty[name]
	return ok
}

// DirtyChannels lists dirty channels in creation order.
func (g *Geometry) DirtyChannels() []string {
	var out []string
	for _, name := range g.order {
		if _, ok := g.dirty[name]; ok {
			out = append(out, name)
		}
	}
	return out
}

// ConsumeDirty hands every dirty channel to fn and clears the dirty set.
func (g *Geometry) ConsumeDirty(fn func(buf *AttributeBuffer)) {
	for _, name := range g.order {
		if _, ok := g.dirty[name]; !ok {
			continue
		}
		fn(g.channels[name])
		delete(g.dirty, name)
	}
}

func (g *Geometry) Release() {
	g.released = true
	g.dirty = make(map[string]struct{})
}

func (g *Geometry) Released() bool {
	return g.released
}
