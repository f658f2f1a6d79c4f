package core

import "github.com/go-gl/mathgl/mgl32"

type Scene struct {
	Root       *Node
	Background mgl32.Vec3
}

func NewScene() *Scene {
	return &Scene{
		Root: NewGroup("scene"),
	}
}

func (s *Scene) Add(n *Node) {
	s.Root.Add(n)
}

func (s *Scene) Remove(n *Node) bool {
	return s.Root.Remove(n)
}

func (s *Scene) Contains(n *Node) bool {
	return s.Root.Contains(n)
}

func (s *Scene) Walk(fn func(node *Node, world mgl32.Mat4)) {
	s.Root.Walk(fn)
}

type PlacedLight struct {
	Light *Light
	World mgl32.Mat4
}

func (s *Scene) Lights() []PlacedLight {
	var out []PlacedLight
	s.Walk(func(n *Node, world mgl32.Mat4) {
		if n.Kind == NodeLight && n.Light != nil {
			out = append(out, PlacedLight{Light: n.Light, World: world})
		}
	})
	return out
}

// AmbientLevel sums ambient and hemisphere light contributions, clamped to 1.
// Scenes without lights are fully lit.
func (s *Scene) AmbientLevel() float32 {
	lights := s.Lights()
	if len(lights) == 0 {
		return 1
	}
	var level float32
	for _, pl := range lights {
		l := pl.Light
		switch l.Kind {
		case LightAmbient, LightHemisphere:
			c := l.Color
			level += (c[0] + c[1] + c[2]) / 3 * l.Intensity
		}
	}
	if level > 1 {
		level = 1
	}
	return level
}
