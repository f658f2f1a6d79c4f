package core

import "github.com/go-gl/mathgl/mgl32"

type LightKind uint8

const (
	LightAmbient LightKind = iota
	LightPoint
	LightDirectional
	LightHemisphere
)

type Light struct {
	Kind        LightKind
	Color       mgl32.Vec3
	GroundColor mgl32.Vec3 // hemisphere only
	Intensity   float32
	Range       float32 // point only, 0 means unbounded
}

// LightData is the packed GPU layout of a light.
type LightData struct {
	Position  [4]float32 // xyz, w unused
	Direction [4]float32 // xyz, w unused
	Color     [4]float32 // rgb, intensity
	Params    [4]float32 // range, kind, unused, unused
}

// Pack flattens the light using the world transform of its node.
func (l *Light) Pack(world mgl32.Mat4) LightData {
	pos := world.Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	dir := world.Mul4x1(mgl32.Vec4{0, 0, -1, 0}).Vec3()
	if dir.Len() > 0 {
		dir = dir.Normalize()
	}
	return LightData{
		Position:  [4]float32{pos[0], pos[1], pos[2], 0},
		Direction: [4]float32{dir[0], dir[1], dir[2], 0},
		Color:     [4]float32{l.Color[0], l.Color[1], l.Color[2], l.Intensity},
		Params:    [4]float32{l.Range, float32(l.Kind), 0, 0},
	}
}
