package core

import (
	"github.com/go-gl/mathgl/mgl32"
)

type Transform struct {
	Position mgl32.Vec3
	Rotation mgl32.Quat
	Scale    mgl32.Vec3
}

func NewTransform() *Transform {
	return &Transform{
		Position: mgl32.Vec3{0, 0, 0},
		Rotation: mgl32.QuatIdent(),
		Scale:    mgl32.Vec3{1, 1, 1},
	}
}

// SetTiltSpin sets the rotation to a tilt about X followed by a spin about Y.
func (t *Transform) SetTiltSpin(tilt, spin float32) {
	t.Rotation = mgl32.QuatRotate(tilt, mgl32.Vec3{1, 0, 0}).Mul(mgl32.QuatRotate(spin, mgl32.Vec3{0, 1, 0}))
}

// SetYaw replaces the rotation with a rotation about Y.
func (t *Transform) SetYaw(angle float32) {
	t.Rotation = mgl32.QuatRotate(angle, mgl32.Vec3{0, 1, 0})
}

func (t *Transform) ObjectToWorld() mgl32.Mat4 {
	// M = T * R * S
	translate := mgl32.Translate3D(t.Position.X(), t.Position.Y(), t.Position.Z())
	rotate := t.Rotation.Mat4()
	scale := mgl32.Scale3D(t.Scale.X(), t.Scale.Y(), t.Scale.Z())

	return translate.Mul4(rotate).Mul4(scale)
}
