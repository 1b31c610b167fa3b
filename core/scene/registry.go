package scene

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"sync"
)

// ErrUnknownType is returned when a persisted type name has no registered Go type.
var ErrUnknownType = errors.New("unknown component type")

// ErrDanglingAsset matches AssetLinker errors for links whose asset no longer
// resolves. Such fields decode to nil.
var ErrDanglingAsset = errors.New("dangling asset link")

// Registry maps persisted component type names to Go types.
type Registry struct {
	mu     sync.RWMutex
	byName map[string]reflect.Type
	byType map[reflect.Type]string
}

// DefaultRegistry is the process-wide registry used by the command line tools.
var DefaultRegistry = NewRegistry()

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byName: make(map[string]reflect.Type),
		byType: make(map[reflect.Type]string),
	}
}

// Register associates name with the dynamic type of proto.
func (r *Registry) Register(name string, proto Component) error {
	t := reflect.TypeOf(proto)
	if !IsComponentType(t) {
		return fmt.Errorf("type %s is not a pointer to a component struct", t)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.byName[name]; ok && existing != t {
		return fmt.Errorf("type name %q already registered for %s", name, existing)
	}
	r.byName[name] = t
	r.byType[t] = name
	return nil
}

// MustRegister is like Register but panics on error.
func MustRegister(r *Registry, name string, proto Component) {
	if err := r.Register(name, proto); err != nil {
		panic(err)
	}
}

// TypeOf returns the Go type registered under name.
func (r *Registry) TypeOf(name string) (reflect.Type, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownType, name)
	}
	return t, nil
}

// NameOf returns the registered name of t.
func (r *Registry) NameOf(t reflect.Type) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	name, ok := r.byType[t]
	return name, ok
}

// New instantiates a detached component of the named type.
func (r *Registry) New(name string) (Component, error) {
	t, err := r.TypeOf(name)
	if err != nil {
		return nil, err
	}
	return reflect.New(t.Elem()).Interface().(Component), nil
}

// Types returns all registered types ordered by name.
func (r *Registry) Types() []reflect.Type {
	r.mu.RLock()
	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}
	r.mu.RUnlock()

	sort.Strings(names)

	types := make([]reflect.Type, 0, len(names))
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, name := range names {
		types = append(types, r.byName[name])
	}
	return types
}

// Len returns the number of registered types.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byName)
}
