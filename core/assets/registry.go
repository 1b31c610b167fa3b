package assets

import (
	"fmt"
	"reflect"
	"sort"
	"sync"
)

// TypeRegistry maps asset type names to Go types. Asset types are pointers to structs.
type TypeRegistry struct {
	mu     sync.RWMutex
	byName map[string]reflect.Type
	byType map[reflect.Type]string
}

// DefaultTypes is the process-wide asset type registry.
var DefaultTypes = NewTypeRegistry()

// NewTypeRegistry creates an empty registry.
func NewTypeRegistry() *TypeRegistry {
	return &TypeRegistry{
		byName: make(map[string]reflect.Type),
		byType: make(map[reflect.Type]string),
	}
}

// Register associates name with the dynamic type of proto.
func (r *TypeRegistry) Register(name string, proto any) error {
	t := reflect.TypeOf(proto)
	if t == nil || t.Kind() != reflect.Ptr || t.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("asset type %v must be a pointer to a struct", t)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.byName[name]; ok && existing != t {
		return fmt.Errorf("asset type name %q already registered for %s", name, existing)
	}
	r.byName[name] = t
	r.byType[t] = name
	return nil
}

// MustRegister is like Register but panics on error.
func (r *TypeRegistry) MustRegister(name string, proto any) {
	if err := r.Register(name, proto); err != nil {
		panic(err)
	}
}

// Known reports whether t is a registered asset type.
func (r *TypeRegistry) Known(t reflect.Type) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.byType[t]
	return ok
}

// TypeOf returns the type registered under name.
func (r *TypeRegistry) TypeOf(name string) (reflect.Type, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.byName[name]
	return t, ok
}

// Names returns the registered type names in lexical order.
func (r *TypeRegistry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
