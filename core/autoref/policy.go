package autoref

import (
	"fmt"
	"reflect"
	"strings"

	"auto-reference/core/scene"
)

// fieldSync applies the sync mode of one field of one component.
type fieldSync struct {
	s     *session
	meta  *TypeMetadata
	self  scene.Component
	node  *scene.Node
	fd    *FieldDescriptor
	field reflect.Value
}

func (f *fieldSync) run() SyncStatus {
	empty := isEmpty(f.field)

	switch f.fd.Mode {
	case ModeValidateOnly:
		if empty {
			if !f.fd.Sequence && !f.fd.Optional {
				return f.warn("value is not set", nil)
			}
			return StatusNone
		}
		return f.validate()

	case ModeGetIfEmpty:
		if !empty {
			return StatusNone
		}
		return f.resolve()

	case ModeValidateOrGetIfEmpty:
		if !empty {
			return f.validate()
		}
		return f.resolve()

	default:
		return f.resolve()
	}
}

func (f *fieldSync) resolve() SyncStatus {
	l, err := find(f.s.ctx, f.s.engine.assets, f.node, f.self, f.fd)
	if err != nil {
		return f.error(err.Error())
	}

	if f.fd.Sequence {
		if len(l.matches) == 0 {
			f.field.Set(reflect.Zero(f.field.Type()))
			return StatusNone
		}
		seq := reflect.MakeSlice(f.field.Type(), len(l.matches), len(l.matches))
		for i, m := range l.matches {
			seq.Index(i).Set(reflect.ValueOf(m))
		}
		f.field.Set(seq)
		return StatusNone
	}

	if len(l.matches) == 0 {
		if f.fd.Optional {
			return StatusNone
		}
		var suggestions []string
		if f.fd.HasNameFilter && len(l.misses) > 0 {
			suggestions = suggest(f.fd.NameFilter, l.misses)
		}
		return f.warn("no "+describeDomain(f.node, f.fd), suggestions)
	}

	f.field.Set(reflect.ValueOf(l.matches[0]))
	return StatusNone
}

func (f *fieldSync) validate() SyncStatus {
	if !f.fd.Sequence {
		return f.validateValue(f.field, "")
	}

	status := StatusNone
	for i := 0; i < f.field.Len(); i++ {
		status |= f.validateValue(f.field.Index(i), fmt.Sprintf("element %d: ", i))
	}
	return status
}

func (f *fieldSync) validateValue(v reflect.Value, where string) SyncStatus {
	if scene.IsNil(v) {
		return f.warn(where+"value is nil", nil)
	}
	value := v.Interface()

	if f.fd.Strategy == StrategyExternal {
		p, ok := f.s.engine.assetPath(value)
		switch {
		case !ok:
			return f.warn(where+"value was not loaded from the asset store", nil)
		case !f.fd.Sequence && p != f.fd.PathFilter:
			return f.error(fmt.Sprintf("%sasset %q does not match path %q", where, p, f.fd.PathFilter))
		case f.fd.Sequence && !strings.HasPrefix(p, f.fd.PathFilter):
			return f.error(fmt.Sprintf("%sasset %q is not under path %q", where, p, f.fd.PathFilter))
		}
		return StatusNone
	}

	c, ok := value.(scene.Component)
	if !ok {
		return f.warn(fmt.Sprintf("%svalue of type %s is not a component", where, typeName(reflect.TypeOf(value))), nil)
	}
	if f.fd.HasNameFilter && scene.NameOf(c) != f.fd.NameFilter {
		return f.error(fmt.Sprintf("%sreferenced %s is named %q, expected %q",
			where, typeName(reflect.TypeOf(c)), scene.NameOf(c), f.fd.NameFilter))
	}
	if !inDomain(f.node, f.self, f.fd, c) {
		return f.warn(fmt.Sprintf("%sreferenced %s on %q is outside the search domain (%s)",
			where, typeName(reflect.TypeOf(c)), nodePath(c.Node()), describeDomain(f.node, f.fd)), nil)
	}
	return StatusNone
}

func (f *fieldSync) warn(message string, suggestions []string) SyncStatus {
	return f.s.report(f.meta, f.node, SeverityWarning, f.fd.Name, f.fd.Annotation, message, suggestions)
}

func (f *fieldSync) error(message string) SyncStatus {
	return f.s.report(f.meta, f.node, SeverityError, f.fd.Name, f.fd.Annotation, message, nil)
}

// isEmpty is nil for singular fields and zero length for sequences. An interface
// holding a nil pointer is nil.
func isEmpty(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Slice:
		return v.Len() == 0
	case reflect.Ptr, reflect.Interface:
		return scene.IsNil(v)
	default:
		return v.IsZero()
	}
}

func nodePath(n *scene.Node) string {
	if n == nil {
		return ""
	}
	return n.Path()
}
