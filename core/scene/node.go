package scene

import (
	"strings"

	"github.com/google/uuid"
)

// Node is one position in the scene graph.
type Node struct {
	id         string
	name       string
	parent     *Node
	scene      *Scene
	children   []*Node
	components []Component
}

// NewNode creates a detached node with a fresh identifier.
func NewNode(name string) *Node {
	return &Node{id: uuid.NewString(), name: name}
}

// ID returns the node identifier.
func (n *Node) ID() string {
	return n.id
}

// Name returns the node name.
func (n *Node) Name() string {
	return n.name
}

// SetName renames the node.
func (n *Node) SetName(name string) {
	n.name = name
}

// Parent returns the parent node, or nil for scene roots and detached nodes.
func (n *Node) Parent() *Node {
	return n.parent
}

// Scene returns the scene the node belongs to, or nil if detached.
func (n *Node) Scene() *Scene {
	return n.scene
}

// Children returns the ordered children of the node.
// The returned slice must not be modified.
func (n *Node) Children() []*Node {
	return n.children
}

// Components returns the ordered components attached to the node.
// The returned slice must not be modified.
func (n *Node) Components() []Component {
	return n.components
}

// AddChild appends child to the node's children and returns it.
// A child that already has a parent is moved.
func (n *Node) AddChild(child *Node) *Node {
	child.Detach()
	child.parent = n
	child.setScene(n.scene)
	n.children = append(n.children, child)
	return child
}

// Child creates a new named child node and returns it.
func (n *Node) Child(name string) *Node {
	return n.AddChild(NewNode(name))
}

// Detach removes the node from its parent or from its scene's roots.
func (n *Node) Detach() {
	switch {
	case n.parent != nil:
		n.parent.children = removeNode(n.parent.children, n)
		n.parent = nil
	case n.scene != nil:
		n.scene.roots = removeNode(n.scene.roots, n)
	}
	n.setScene(nil)
}

// AddComponent attaches c to the node and returns it.
func (n *Node) AddComponent(c Component) Component {
	c.attach(n)
	n.components = append(n.components, c)
	return c
}

// RemoveComponent detaches c from the node. It reports whether c was attached.
func (n *Node) RemoveComponent(c Component) bool {
	for i, existing := range n.components {
		if existing == c {
			n.components = append(n.components[:i], n.components[i+1:]...)
			c.attach(nil)
			return true
		}
	}
	return false
}

// Siblings returns the other children of the node's parent in child order.
// For scene roots the other roots are returned.
func (n *Node) Siblings() []*Node {
	var all []*Node
	switch {
	case n.parent != nil:
		all = n.parent.children
	case n.scene != nil:
		all = n.scene.roots
	default:
		return nil
	}

	siblings := make([]*Node, 0, len(all))
	for _, s := range all {
		if s != n {
			siblings = append(siblings, s)
		}
	}
	return siblings
}

// Walk visits the subtree rooted at n in depth-first pre-order.
// Returning false from fn stops the walk.
func (n *Node) Walk(fn func(*Node) bool) bool {
	if !fn(n) {
		return false
	}
	for _, child := range n.children {
		if !child.Walk(fn) {
			return false
		}
	}
	return true
}

// Path returns the slash-separated names from the root down to the node.
func (n *Node) Path() string {
	var parts []string
	for cur := n; cur != nil; cur = cur.parent {
		parts = append(parts, cur.name)
	}
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return strings.Join(parts, "/")
}

// IsDirty reports whether any component on the node is dirty.
func (n *Node) IsDirty() bool {
	for _, c := range n.components {
		if c.IsDirty() {
			return true
		}
	}
	return false
}

func (n *Node) setScene(s *Scene) {
	n.Walk(func(node *Node) bool {
		node.scene = s
		return true
	})
}

func removeNode(nodes []*Node, target *Node) []*Node {
	for i, node := range nodes {
		if node == target {
			return append(nodes[:i], nodes[i+1:]...)
		}
	}
	return nodes
}
