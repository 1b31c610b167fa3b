package scene

import (
	"reflect"

	"github.com/google/uuid"
)

// Component is a typed unit of data attached to a Node.
// Implementations are pointers to structs embedding Base.
type Component interface {
	// Node returns the owning node, or nil if the component is detached.
	Node() *Node
	// ComponentID returns the stable identifier of the component.
	ComponentID() string
	// SetDirty marks the component as modified since it was last persisted.
	SetDirty()
	// IsDirty reports whether the component was modified since it was last persisted.
	IsDirty() bool
	// ClearDirty resets the dirty flag, typically after the owning scene is saved.
	ClearDirty()

	attach(node *Node)
	setID(id string)
}

// Base binds a component to its node. Embed it in every component struct.
type Base struct {
	node  *Node
	id    string
	dirty bool
}

// Node returns the owning node.
func (b *Base) Node() *Node {
	return b.node
}

// ComponentID returns the component identifier.
func (b *Base) ComponentID() string {
	return b.id
}

// Name returns the derived name of the component, which is the name of its node.
func (b *Base) Name() string {
	if b.node == nil {
		return ""
	}
	return b.node.name
}

// SetDirty marks the component as modified.
func (b *Base) SetDirty() {
	b.dirty = true
}

// IsDirty reports whether the component was modified.
func (b *Base) IsDirty() bool {
	return b.dirty
}

// ClearDirty resets the dirty flag.
func (b *Base) ClearDirty() {
	b.dirty = false
}

func (b *Base) attach(node *Node) {
	b.node = node
	if b.id == "" {
		b.id = uuid.NewString()
	}
}

func (b *Base) setID(id string) {
	b.id = id
}

var (
	componentType = reflect.TypeOf((*Component)(nil)).Elem()
	baseType      = reflect.TypeOf(Base{})
)

// ComponentType returns the reflect.Type of the Component interface.
func ComponentType() reflect.Type {
	return componentType
}

// IsBase reports whether t is the Base struct, which carries no user data.
func IsBase(t reflect.Type) bool {
	return t == baseType
}

// IsComponentType reports whether t is a pointer to a struct implementing Component.
func IsComponentType(t reflect.Type) bool {
	return t.Kind() == reflect.Ptr && t.Elem().Kind() == reflect.Struct && t.Implements(componentType)
}

// NameOf returns the derived name of a component, the name of its owning node.
func NameOf(c Component) string {
	if c == nil || c.Node() == nil {
		return ""
	}
	return c.Node().Name()
}
