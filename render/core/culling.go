package core

import "github.com/go-gl/mathgl/mgl32"

// SphereInFrustum reports whether a sphere touches the frustum. Plane
// normals point inside.
func SphereInFrustum(center mgl32.Vec3, radius float32, planes [6]mgl32.Vec4) bool {
	for i := 0; i < 6; i++ {
		p := planes[i]
		if p[0]*center[0]+p[1]*center[1]+p[2]*center[2]+p[3] < -radius {
			return false
		}
	}
	return true
}
