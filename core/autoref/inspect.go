package autoref

import "reflect"

// FieldSummary describes a resolvable field for diagnostics.
type FieldSummary struct {
	Name       string   `json:"name"`
	Strategy   Strategy `json:"strategy"`
	Annotation string   `json:"annotation"`
	Target     string   `json:"target"`
	Sequence   bool     `json:"sequence"`
	Mode       SyncMode `json:"mode"`
	NameFilter string   `json:"name_filter,omitempty"`
	PathFilter string   `json:"path_filter,omitempty"`
	Optional   bool     `json:"optional,omitempty"`
}

// TypeSummary is the metadata of one component type.
type TypeSummary struct {
	Package   string         `json:"package"`
	Type      string         `json:"type"`
	Syncable  bool           `json:"syncable"`
	Fields    []FieldSummary `json:"fields"`
	Callbacks []string       `json:"callbacks"`
	Tracked   []string       `json:"tracked"`
	Items     []LogItem      `json:"items"`
}

// Inspect returns the metadata of types without syncing anything.
func (e *Engine) Inspect(types []reflect.Type) []TypeSummary {
	summaries := make([]TypeSummary, 0, len(types))
	for _, t := range types {
		meta := e.cache.GetOrBuild(t)
		pkg, name := typeIdentity(t)

		ts := TypeSummary{
			Package:   pkg,
			Type:      name,
			Syncable:  meta.IsSyncable(),
			Fields:    make([]FieldSummary, 0, len(meta.Fields)),
			Callbacks: make([]string, 0, len(meta.Callbacks)),
			Tracked:   make([]string, 0, len(meta.Tracked)),
			Items:     append([]LogItem{}, meta.Messages...),
		}
		for _, fd := range meta.Fields {
			ts.Fields = append(ts.Fields, FieldSummary{
				Name:       fd.Name,
				Strategy:   fd.Strategy,
				Annotation: fd.Annotation,
				Target:     typeName(fd.Target),
				Sequence:   fd.Sequence,
				Mode:       fd.Mode,
				NameFilter: fd.NameFilter,
				PathFilter: fd.PathFilter,
				Optional:   fd.Optional,
			})
		}
		for _, cb := range meta.Callbacks {
			ts.Callbacks = append(ts.Callbacks, cb.Name)
		}
		for _, tf := range meta.Tracked {
			ts.Tracked = append(ts.Tracked, tf.Name)
		}
		summaries = append(summaries, ts)
	}
	return summaries
}
