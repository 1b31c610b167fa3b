package autoref

import (
	"bytes"
	"reflect"
	"sync"

	"auto-reference/core/scene"

	"github.com/davecgh/go-spew/spew"
)

// PathResolver maps loaded assets back to their store path.
type PathResolver interface {
	PathOf(v any) (string, bool)
}

// Watcher snapshots watched fields of components to detect modification.
type Watcher struct {
	assets PathResolver
	dumper spew.ConfigState
	pool   sync.Pool
}

// NewWatcher creates a watcher. assets may be nil.
func NewWatcher(assets PathResolver) *Watcher {
	return &Watcher{
		assets: assets,
		dumper: spew.ConfigState{
			Indent:                  " ",
			MaxDepth:                6,
			DisableMethods:          true,
			DisablePointerMethods:   true,
			DisablePointerAddresses: true,
			DisableCapacities:       true,
			SortKeys:                true,
		},
		pool: sync.Pool{New: func() any { return new(bytes.Buffer) }},
	}
}

// Watch is a snapshot of one component taken before it is synced.
type Watch struct {
	watcher *Watcher
	value   reflect.Value
	fields  []TrackedField
	before  []*bytes.Buffer // parallel to fields
}

// Watch snapshots every field of c that meta watches.
func (w *Watcher) Watch(c scene.Component, meta *TypeMetadata) *Watch {
	watch := &Watch{
		watcher: w,
		value:   reflect.ValueOf(c).Elem(),
		fields:  meta.Watched(),
	}
	watch.before = make([]*bytes.Buffer, len(watch.fields))
	for i, f := range watch.fields {
		buf := w.get()
		w.encode(buf, watch.value.FieldByIndex(f.Index))
		watch.before[i] = buf
	}
	return watch
}

// IsObjectModified reports whether any watched field changed since the snapshot.
func (watch *Watch) IsObjectModified() bool {
	w := watch.watcher
	buf := w.get()
	defer w.put(buf)

	for i, f := range watch.fields {
		buf.Reset()
		w.encode(buf, watch.value.FieldByIndex(f.Index))
		if !bytes.Equal(buf.Bytes(), watch.before[i].Bytes()) {
			return true
		}
	}
	return false
}

// Release returns the snapshot buffers to the pool. The watch must not be used afterwards.
func (watch *Watch) Release() {
	for _, buf := range watch.before {
		watch.watcher.put(buf)
	}
	watch.before = nil
}

func (w *Watcher) get() *bytes.Buffer {
	buf := w.pool.Get().(*bytes.Buffer)
	buf.Reset()
	return buf
}

func (w *Watcher) put(buf *bytes.Buffer) {
	w.pool.Put(buf)
}

// encode writes the identity-stable representation of v.
func (w *Watcher) encode(buf *bytes.Buffer, v reflect.Value) {
	switch v.Kind() {
	case reflect.Ptr, reflect.Interface:
		if scene.IsNil(v) {
			buf.WriteString("null")
			return
		}
		if c, ok := v.Interface().(scene.Component); ok {
			buf.WriteString("component:")
			buf.WriteString(c.ComponentID())
			return
		}
		if w.assets != nil {
			if p, ok := w.assets.PathOf(v.Interface()); ok {
				buf.WriteString("asset:")
				buf.WriteString(p)
				return
			}
		}

	case reflect.Slice:
		elem := v.Type().Elem().Kind()
		if elem == reflect.Ptr || elem == reflect.Interface {
			buf.WriteByte('[')
			for i := 0; i < v.Len(); i++ {
				if i > 0 {
					buf.WriteByte(',')
				}
				w.encode(buf, v.Index(i))
			}
			buf.WriteByte(']')
			return
		}
		if v.Len() == 0 {
			buf.WriteString("[]")
			return
		}
	}

	w.dumper.Fdump(buf, v.Interface())
}
