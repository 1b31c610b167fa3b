package scene

import "strings"

// Scene is a named graph of nodes.
type Scene struct {
	// Name identifies the scene within its repository.
	Name string
	// Path is the location the scene was loaded from, if any.
	Path string

	roots []*Node
}

// New creates an empty scene.
func New(name string) *Scene {
	return &Scene{Name: name}
}

// Roots returns the ordered root nodes. The returned slice must not be modified.
func (s *Scene) Roots() []*Node {
	return s.roots
}

// AddRoot appends n to the scene roots and returns it.
func (s *Scene) AddRoot(n *Node) *Node {
	n.Detach()
	n.setScene(s)
	s.roots = append(s.roots, n)
	return n
}

// Root creates a new named root node and returns it.
func (s *Scene) Root(name string) *Node {
	return s.AddRoot(NewNode(name))
}

// Walk visits every node of the scene in depth-first pre-order, roots in order.
func (s *Scene) Walk(fn func(*Node) bool) {
	for _, root := range s.roots {
		if !root.Walk(fn) {
			return
		}
	}
}

// Nodes returns all nodes in depth-first pre-order.
func (s *Scene) Nodes() []*Node {
	var nodes []*Node
	s.Walk(func(n *Node) bool {
		nodes = append(nodes, n)
		return true
	})
	return nodes
}

// Components returns all components in node pre-order, then declaration order.
func (s *Scene) Components() []Component {
	var components []Component
	s.Walk(func(n *Node) bool {
		components = append(components, n.components...)
		return true
	})
	return components
}

// Find returns the node at the given slash-separated path, or nil.
func (s *Scene) Find(path string) *Node {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	candidates := s.roots
	var found *Node
	for _, part := range parts {
		found = nil
		for _, c := range candidates {
			if c.name == part {
				found = c
				break
			}
		}
		if found == nil {
			return nil
		}
		candidates = found.children
	}
	return found
}

// IsDirty reports whether any component in the scene is dirty.
func (s *Scene) IsDirty() bool {
	dirty := false
	s.Walk(func(n *Node) bool {
		dirty = n.IsDirty()
		return !dirty
	})
	return dirty
}

// ClearDirty resets the dirty flag of every component.
func (s *Scene) ClearDirty() {
	for _, c := range s.Components() {
		c.ClearDirty()
	}
}
