package project

import (
	"slices"
	"sync"

	"auto-reference/core/scene"
)

// Workspace holds the scenes currently open for editing.
type Workspace struct {
	mu     sync.RWMutex
	scenes map[string]*scene.Scene
	order  []string
}

// NewWorkspace creates an empty workspace.
func NewWorkspace() *Workspace {
	return &Workspace{scenes: make(map[string]*scene.Scene)}
}

// Open adds sc. Opening a scene with the same name replaces it in place.
func (w *Workspace) Open(sc *scene.Scene) {
	w.mu.Lock()
	defer w.mu.Unlock()

	name := sceneName(sc.Name)
	if _, ok := w.scenes[name]; !ok {
		w.order = append(w.order, name)
	}
	w.scenes[name] = sc
}

// Close removes the named scene and reports whether it was open.
func (w *Workspace) Close(name string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	name = sceneName(name)
	if _, ok := w.scenes[name]; !ok {
		return false
	}
	delete(w.scenes, name)
	w.order = slices.DeleteFunc(w.order, func(n string) bool { return n == name })
	return true
}

// Get returns the named open scene.
func (w *Workspace) Get(name string) (*scene.Scene, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	sc, ok := w.scenes[sceneName(name)]
	return sc, ok
}

// IsOpen reports whether the named scene is open.
func (w *Workspace) IsOpen(name string) bool {
	_, ok := w.Get(name)
	return ok
}

// Names returns the open scene names in opening order.
func (w *Workspace) Names() []string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return slices.Clone(w.order)
}

// Scenes returns the open scenes in opening order.
func (w *Workspace) Scenes() []*scene.Scene {
	w.mu.RLock()
	defer w.mu.RUnlock()
	out := make([]*scene.Scene, 0, len(w.order))
	for _, name := range w.order {
		out = append(out, w.scenes[name])
	}
	return out
}
