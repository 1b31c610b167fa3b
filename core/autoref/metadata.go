package autoref

import (
	"fmt"
	"reflect"
	"strings"

	"auto-reference/core/scene"
)

// CallbackPrefix marks exported methods invoked after a component was synced.
const CallbackPrefix = "OnAfterSync"

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// FieldDescriptor describes one resolvable field.
type FieldDescriptor struct {
	// Name is the Go field name.
	Name string
	// Index is the field index path within the component struct.
	Index []int
	// Type is the declared field type.
	Type reflect.Type
	// Target is the searched type, the element type for sequences.
	Target reflect.Type
	// Sequence is true for slice fields.
	Sequence bool
	// Strategy selects the search domain.
	Strategy Strategy
	// Annotation is the strategy token as written.
	Annotation string
	// NameFilter restricts graph candidates by derived name when HasNameFilter is set.
	NameFilter    string
	HasNameFilter bool
	// PathFilter is the asset path (singular) or prefix (sequence) of external lookups.
	PathFilter string
	// Mode is the resolved sync mode, never ModeDefault.
	Mode SyncMode
	// IncludeSelf lets descendant and ancestor lookups consider the node itself.
	IncludeSelf bool
	// Optional suppresses the warning for an unresolved singular field.
	Optional bool
}

// Callback is a method run after the fields of a component were resolved.
type Callback struct {
	Name         string
	Index        int
	ReturnsError bool
}

// TrackedField is a field watched by change detection.
type TrackedField struct {
	Name  string
	Index []int
}

// TypeMetadata is the immutable sync information of one component type.
type TypeMetadata struct {
	Type      reflect.Type
	Fields    []FieldDescriptor
	Callbacks []Callback
	Tracked   []TrackedField
	Messages  []LogItem
}

// IsSyncable reports whether syncing the type does anything.
func (m *TypeMetadata) IsSyncable() bool {
	return len(m.Fields)+len(m.Callbacks) > 0
}

// HasMutableFields reports whether change detection is needed for the type.
func (m *TypeMetadata) HasMutableFields() bool {
	return len(m.Fields)+len(m.Tracked) > 0
}

// Watched returns every field observed by change detection: resolvable fields
// first, then tracked-only fields.
func (m *TypeMetadata) Watched() []TrackedField {
	watched := make([]TrackedField, 0, len(m.Fields)+len(m.Tracked))
	for _, fd := range m.Fields {
		watched = append(watched, TrackedField{Name: fd.Name, Index: fd.Index})
	}
	return append(watched, m.Tracked...)
}

// TypeChecker reports whether a type can be loaded from the asset store.
type TypeChecker interface {
	Known(t reflect.Type) bool
}

// Builder extracts TypeMetadata from component types.
type Builder struct {
	assets TypeChecker
}

// NewBuilder creates a builder. External fields are only valid for types known to assets;
// with a nil checker every external field is rejected.
func NewBuilder(assets TypeChecker) *Builder {
	return &Builder{assets: assets}
}

// Build inspects the fields and methods of t. Types that are not components
// produce empty metadata.
func (b *Builder) Build(t reflect.Type) *TypeMetadata {
	meta := &TypeMetadata{Type: t}
	if t == nil || !scene.IsComponentType(t) {
		return meta
	}

	for _, f := range scene.DataFields(t) {
		tag, ok := f.Tag.Lookup(TagKey)
		if !ok {
			continue
		}
		b.buildField(meta, f, tag)
	}

	b.buildCallbacks(meta)
	return meta
}

func (b *Builder) buildField(meta *TypeMetadata, f reflect.StructField, tag string) {
	a, problems := parseTag(tag)

	token := a.Token
	if token == "" {
		token = TagKey
	}

	if !f.IsExported() {
		problems = append(problems, "annotated field must be exported")
	}

	if len(problems) == 0 && a.Strategy == StrategyNone {
		if a.Tracked {
			meta.Tracked = append(meta.Tracked, TrackedField{Name: f.Name, Index: f.Index})
		}
		return
	}

	fd := FieldDescriptor{
		Name:          f.Name,
		Index:         f.Index,
		Type:          f.Type,
		Target:        f.Type,
		Strategy:      a.Strategy,
		Annotation:    token,
		NameFilter:    a.Name,
		HasNameFilter: a.HasName,
		PathFilter:    a.Path,
		IncludeSelf:   a.IncludeSelf,
		Optional:      a.Optional,
	}

	switch f.Type.Kind() {
	case reflect.Slice:
		fd.Sequence = true
		fd.Target = f.Type.Elem()
	case reflect.Array:
		problems = append(problems, "arrays are not supported, use a slice")
	}
	fd.Mode = a.Mode.Resolve(fd.Sequence)

	if len(problems) == 0 {
		if problem := b.checkTarget(fd); problem != "" {
			problems = append(problems, problem)
		}
	}

	if len(problems) > 0 {
		meta.Messages = append(meta.Messages, newLogItem(meta.Type, SeverityError, f.Name, token, strings.Join(problems, "; ")))
		return
	}

	meta.Fields = append(meta.Fields, fd)
}

func (b *Builder) checkTarget(fd FieldDescriptor) string {
	if fd.Strategy == StrategyExternal {
		if b.assets == nil || !b.assets.Known(fd.Target) {
			return fmt.Sprintf("type %s is not a registered asset type", typeName(fd.Target))
		}
		return ""
	}
	if !scene.IsReferenceType(fd.Target) {
		return fmt.Sprintf("type %s is not a component pointer or interface", typeName(fd.Target))
	}
	return ""
}

func (b *Builder) buildCallbacks(meta *TypeMetadata) {
	t := meta.Type
	for i := 0; i < t.NumMethod(); i++ {
		m := t.Method(i)
		if !strings.HasPrefix(m.Name, CallbackPrefix) {
			continue
		}

		mt := m.Type
		valid := mt.NumIn() == 1 && (mt.NumOut() == 0 || (mt.NumOut() == 1 && mt.Out(0) == errorType))
		if !valid {
			meta.Messages = append(meta.Messages, newLogItem(t, SeverityWarning, m.Name, CallbackPrefix,
				"callback must take no parameters and return nothing or an error"))
			continue
		}

		meta.Callbacks = append(meta.Callbacks, Callback{
			Name:         m.Name,
			Index:        i,
			ReturnsError: mt.NumOut() == 1,
		})
	}
}

func newLogItem(t reflect.Type, severity Severity, member, annotation, message string) LogItem {
	pkg, name := typeIdentity(t)
	return LogItem{
		Severity:   severity,
		Package:    pkg,
		Type:       name,
		Member:     member,
		Annotation: annotation,
		Message:    message,
	}
}

func typeIdentity(t reflect.Type) (string, string) {
	if t == nil {
		return "", "<nil>"
	}
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.PkgPath(), t.Name()
}

// typeName renders t without the pointer, e.g. components.Rigidbody.
func typeName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	if t.Kind() == reflect.Ptr {
		return t.Elem().String()
	}
	return t.String()
}
