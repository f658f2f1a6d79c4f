package core

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
)

type BlendMode uint8

const (
	BlendNormal BlendMode = iota
	BlendAdditive
)

// UniformTime is advanced by the host every tick on time-driven materials.
const UniformTime = "time"

// TimeWrap is the period the time uniform is folded into. It is a whole
// period of sin(k*t) for every k with at most three decimals, so shaders see
// no seam, and it keeps the uniform small enough for float32.
const TimeWrap = 2000 * math.Pi

type Material struct {
	ID       uuid.UUID
	Name     string
	Color    mgl32.Vec3
	Emissive mgl32.Vec3
	Size     float32
	Opacity  float32

	Transparent     bool
	DepthWrite      bool
	Blending        BlendMode
	VertexColors    bool
	SizeAttenuation bool
	Map             *Texture

	uniforms   map[string]float32
	timeDriven bool
	time       float64
	released   bool
}

func newMaterial(name string, color mgl32.Vec3) *Material {
	return &Material{
		ID:         uuid.New(),
		Name:       name,
		Color:      color,
		Opacity:    1,
		DepthWrite: true,
		uniforms:   make(map[string]float32),
	}
}

// NewPointsMaterial returns a transparent additive sprite material.
func NewPointsMaterial(name string, color mgl32.Vec3, size float32) *Material {
	m := newMaterial(name, color)
	m.Size = size
	m.Transparent = true
	m.DepthWrite = false
	m.Blending = BlendAdditive
	m.SizeAttenuation = true
	return m
}

func NewMeshMaterial(name string, color mgl32.Vec3) *Material {
	return newMaterial(name, color)
}

// Clone copies the material under a new ID. The texture map is shared, not copied.
func (m *Material) Clone() *Material {
	c := *m
	c.ID = uuid.New()
	c.uniforms = make(map[string]float32, len(m.uniforms))
	for k, v := range m.uniforms {
		c.uniforms[k] = v
	}
	c.released = false
	return &c
}

func (m *Material) SetUniform(name string, v float32) {
	m.uniforms[name] = v
}

func (m *Material) Uniform(name string) (float32, bool) {
	v, ok := m.uniforms[name]
	return v, ok
}

// EnableTime registers the time uniform and marks the material time-driven.
func (m *Material) EnableTime() {
	m.timeDriven = true
	if _, ok := m.uniforms[UniformTime]; !ok {
		m.uniforms[UniformTime] = 0
	}
}

func (m *Material) TimeDriven() bool {
	return m.timeDriven
}

// AdvanceTime accumulates delta in float64 and publishes it folded by
// TimeWrap.
func (m *Material) AdvanceTime(delta float32) {
	if !m.timeDriven {
		return
	}
	m.time += float64(delta)
	m.uniforms[UniformTime] = float32(math.Mod(m.time, TimeWrap))
}

// Time is the unfolded time accumulated by AdvanceTime.
func (m *Material) Time() float64 {
	return m.time
}

func (m *Material) Release() {
	m.released = true
}

func (m *Material) Released() bool {
	return m.released
}
