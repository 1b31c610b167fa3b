package scene

import "reflect"

// DataFields returns the fields of the component struct t (or pointer to it) in
// declaration order. Anonymous struct fields are flattened and Base is skipped.
// Each returned field carries its full index path, usable with FieldByIndex.
func DataFields(t reflect.Type) []reflect.StructField {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil
	}
	return appendFields(nil, t, nil)
}

func appendFields(out []reflect.StructField, t reflect.Type, prefix []int) []reflect.StructField {
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		index := append(append([]int{}, prefix...), i)

		if f.Anonymous && f.Type.Kind() == reflect.Struct {
			if IsBase(f.Type) {
				continue
			}
			out = appendFields(out, f.Type, index)
			continue
		}

		f.Index = index
		out = append(out, f)
	}
	return out
}

// IsReferenceType reports whether values of t are encoded as component references.
func IsReferenceType(t reflect.Type) bool {
	return IsComponentType(t) || t.Kind() == reflect.Interface
}

// IsNil reports whether v is nil, including an interface holding a nil pointer.
func IsNil(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Interface:
		return v.IsNil() || IsNil(v.Elem())
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return v.IsNil()
	default:
		return false
	}
}
