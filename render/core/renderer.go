package core

// ResourceReleaser frees backend copies of scene resources. Implementations
// must tolerate resources they never uploaded.
type ResourceReleaser interface {
	ReleaseGeometry(g *Geometry) error
	ReleaseMaterial(m *Material) error
	ReleaseTexture(t *Texture) error
}

// Renderer consumes dirty attribute buffers and draws the scene.
type Renderer interface {
	ResourceReleaser
	Resize(width, height int)
	Render(scene *Scene, camera *Camera) error
	Close() error
}
