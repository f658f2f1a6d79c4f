package core

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
)

type NodeKind uint8

const (
	NodeGroup NodeKind = iota
	NodePoints
	NodeMesh
	NodeLine
	NodeLight
)

// Node is a scene graph element. Points, mesh and line nodes carry a geometry
// and a material; light nodes carry a light.
type Node struct {
	ID        uuid.UUID
	Name      string
	Kind      NodeKind
	Transform *Transform
	Geometry  *Geometry
	Material  *Material
	Light     *Light
	Visible   bool

	parent   *Node
	children []*Node
}

func NewNode(name string, kind NodeKind) *Node {
	return &Node{
		ID:        uuid.New(),
		Name:      name,
		Kind:      kind,
		Transform: NewTransform(),
		Visible:   true,
	}
}

func NewGroup(name string) *Node {
	return NewNode(name, NodeGroup)
}

func NewPoints(name string, g *Geometry, m *Material) *Node {
	n := NewNode(name, NodePoints)
	n.Geometry = g
	n.Material = m
	return n
}

func NewMesh(name string, g *Geometry, m *Material) *Node {
	n := NewNode(name, NodeMesh)
	n.Geometry = g
	n.Material = m
	return n
}

func NewLine(name string, g *Geometry, m *Material) *Node {
	n := NewNode(name, NodeLine)
	n.Geometry = g
	n.Material = m
	return n
}

func NewLightNode(name string, l *Light) *Node {
	n := NewNode(name, NodeLight)
	n.Light = l
	return n
}

// Add attaches child, detaching it from any previous parent first.
func (n *Node) Add(child *Node) {
	if child == nil || child == n {
		return
	}
	child.Detach()
	child.parent = n
	n.children = append(n.children, child)
}

func (n *Node) Remove(child *Node) bool {
	for i, c := range n.children {
		if c == child {
			n.children = append(n.children[:i], n.children[i+1:]...)
			child.parent = nil
			return true
		}
	}
	return false
}

func (n *Node) Detach() {
	if n.parent != nil {
		n.parent.Remove(n)
	}
}

func (n *Node) Parent() *Node {
	return n.parent
}

func (n *Node) Children() []*Node {
	return n.children
}

func (n *Node) WorldMatrix() mgl32.Mat4 {
	m := n.Transform.ObjectToWorld()
	for p := n.parent; p != nil; p = p.parent {
		m = p.Transform.ObjectToWorld().Mul4(m)
	}
	return m
}

// Walk visits visible nodes depth-first with their world matrix.
func (n *Node) Walk(fn func(node *Node, world mgl32.Mat4)) {
	n.walk(mgl32.Ident4(), fn)
}

func (n *Node) walk(parent mgl32.Mat4, fn func(*Node, mgl32.Mat4)) {
	if !n.Visible {
		return
	}
	world := parent.Mul4(n.Transform.ObjectToWorld())
	fn(n, world)
	for _, c := range n.children {
		c.walk(world, fn)
	}
}

// Contains reports whether target is n or one of its descendants.
func (n *Node) Contains(target *Node) bool {
	if n == target {
		return true
	}
	for _, c := range n.children {
		if c.Contains(target) {
			return true
		}
	}
	return false
}
