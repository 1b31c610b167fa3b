package scene

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"gopkg.in/yaml.v3"
)

// Document is the persisted form of a Scene.
type Document struct {
	Name  string         `yaml:"name"`
	Nodes []NodeDocument `yaml:"nodes,omitempty"`
}

// NodeDocument is the persisted form of a Node.
type NodeDocument struct {
	ID         string              `yaml:"id,omitempty"`
	Name       string              `yaml:"name"`
	Components []ComponentDocument `yaml:"components,omitempty"`
	Children   []NodeDocument      `yaml:"children,omitempty"`
}

// ComponentDocument is the persisted form of a Component.
type ComponentDocument struct {
	ID     string               `yaml:"id,omitempty"`
	Type   string               `yaml:"type"`
	Fields map[string]yaml.Node `yaml:"fields,omitempty"`
}

// AssetLinker resolves external asset references found in documents.
type AssetLinker interface {
	// Load returns the asset stored at path, decoded as t.
	Load(ctx context.Context, path string, t reflect.Type) (any, error)
	// PathOf returns the store path of a previously loaded asset.
	PathOf(v any) (string, bool)
}

// Codec converts between scenes and documents.
type Codec struct {
	// Registry resolves component type names. Required.
	Registry *Registry
	// Assets resolves {asset: path} values. Optional.
	Assets AssetLinker
}

const (
	refKey   = "ref"
	assetKey = "asset"
)

// Marshal encodes s as YAML.
func (c *Codec) Marshal(s *Scene) ([]byte, error) {
	doc, err := c.Encode(s)
	if err != nil {
		return nil, err
	}
	return yaml.Marshal(doc)
}

// Unmarshal decodes a YAML document into a Scene.
func (c *Codec) Unmarshal(ctx context.Context, data []byte) (*Scene, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse scene document: %w", err)
	}
	return c.Decode(ctx, &doc)
}

// Encode converts s into its document form.
func (c *Codec) Encode(s *Scene) (*Document, error) {
	doc := &Document{Name: s.Name}
	for _, root := range s.roots {
		nd, err := c.encodeNode(root)
		if err != nil {
			return nil, err
		}
		doc.Nodes = append(doc.Nodes, nd)
	}
	return doc, nil
}

func (c *Codec) encodeNode(n *Node) (NodeDocument, error) {
	nd := NodeDocument{ID: n.id, Name: n.name}

	for _, comp := range n.components {
		cd, err := c.encodeComponent(comp)
		if err != nil {
			return nd, fmt.Errorf("node %s: %w", n.Path(), err)
		}
		nd.Components = append(nd.Components, cd)
	}

	for _, child := range n.children {
		cnd, err := c.encodeNode(child)
		if err != nil {
			return nd, err
		}
		nd.Children = append(nd.Children, cnd)
	}
	return nd, nil
}

func (c *Codec) encodeComponent(comp Component) (ComponentDocument, error) {
	t := reflect.TypeOf(comp)
	name, ok := c.Registry.NameOf(t)
	if !ok {
		return ComponentDocument{}, fmt.Errorf("%w: %s", ErrUnknownType, t)
	}

	cd := ComponentDocument{ID: comp.ComponentID(), Type: name}
	v := reflect.ValueOf(comp).Elem()

	for _, f := range DataFields(t) {
		key, ok := fieldKey(f)
		if !ok {
			continue
		}

		node, err := c.encodeValue(v.FieldByIndex(f.Index))
		if err != nil {
			return cd, fmt.Errorf("field %s.%s: %w", name, f.Name, err)
		}
		if cd.Fields == nil {
			cd.Fields = make(map[string]yaml.Node)
		}
		cd.Fields[key] = *node
	}
	return cd, nil
}

func (c *Codec) encodeValue(v reflect.Value) (*yaml.Node, error) {
	switch v.Kind() {
	case reflect.Ptr, reflect.Interface:
		if IsNil(v) {
			return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}, nil
		}
		if comp, ok := v.Interface().(Component); ok {
			return linkNode(refKey, comp.ComponentID()), nil
		}
		if c.Assets != nil {
			if path, ok := c.Assets.PathOf(v.Interface()); ok {
				return linkNode(assetKey, path), nil
			}
		}

	case reflect.Slice:
		elem := v.Type().Elem()
		if elem.Kind() == reflect.Ptr || elem.Kind() == reflect.Interface {
			seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
			for i := 0; i < v.Len(); i++ {
				item, err := c.encodeValue(v.Index(i))
				if err != nil {
					return nil, err
				}
				seq.Content = append(seq.Content, item)
			}
			return seq, nil
		}
	}

	node := &yaml.Node{}
	if err := node.Encode(v.Interface()); err != nil {
		return nil, err
	}
	return node, nil
}

// fixup is a reference that can only be set once every component exists.
type fixup struct {
	target reflect.Value
	id     string
	where  string
}

// Decode converts doc into a Scene. Dangling references and asset links are left nil.
func (c *Codec) Decode(ctx context.Context, doc *Document) (*Scene, error) {
	s := New(doc.Name)
	byID := make(map[string]Component)
	var fixups []fixup

	for _, nd := range doc.Nodes {
		root, err := c.decodeNode(ctx, nd, byID, &fixups)
		if err != nil {
			return nil, err
		}
		s.AddRoot(root)
	}

	for _, fx := range fixups {
		comp, ok := byID[fx.id]
		if !ok {
			continue
		}
		cv := reflect.ValueOf(comp)
		if !cv.Type().AssignableTo(fx.target.Type()) {
			return nil, fmt.Errorf("%s: component %s of type %s is not assignable to %s",
				fx.where, fx.id, cv.Type(), fx.target.Type())
		}
		fx.target.Set(cv)
	}

	return s, nil
}

func (c *Codec) decodeNode(ctx context.Context, nd NodeDocument, byID map[string]Component, fixups *[]fixup) (*Node, error) {
	n := NewNode(nd.Name)
	if nd.ID != "" {
		n.id = nd.ID
	}

	for _, cd := range nd.Components {
		comp, err := c.Registry.New(cd.Type)
		if err != nil {
			return nil, fmt.Errorf("node %s: %w", nd.Name, err)
		}
		if cd.ID != "" {
			comp.setID(cd.ID)
		}
		n.AddComponent(comp)
		byID[comp.ComponentID()] = comp

		if err := c.decodeFields(ctx, comp, cd, fixups); err != nil {
			return nil, fmt.Errorf("node %s: %w", nd.Name, err)
		}
	}

	for _, cnd := range nd.Children {
		child, err := c.decodeNode(ctx, cnd, byID, fixups)
		if err != nil {
			return nil, err
		}
		n.AddChild(child)
	}
	return n, nil
}

func (c *Codec) decodeFields(ctx context.Context, comp Component, cd ComponentDocument, fixups *[]fixup) error {
	v := reflect.ValueOf(comp).Elem()
	for _, f := range DataFields(v.Type()) {
		key, ok := fieldKey(f)
		if !ok {
			continue
		}
		node, ok := cd.Fields[key]
		if !ok {
			continue
		}
		where := cd.Type + "." + f.Name
		if err := c.decodeValue(ctx, v.FieldByIndex(f.Index), &node, where, fixups); err != nil {
			return fmt.Errorf("field %s: %w", where, err)
		}
	}
	return nil
}

func (c *Codec) decodeValue(ctx context.Context, field reflect.Value, node *yaml.Node, where string, fixups *[]fixup) error {
	if node.Kind == yaml.ScalarNode && node.Tag == "!!null" {
		return nil
	}

	if key, value, ok := linkOf(node); ok {
		switch key {
		case refKey:
			*fixups = append(*fixups, fixup{target: field, id: value, where: where})
			return nil
		case assetKey:
			if c.Assets == nil {
				return fmt.Errorf("asset %q referenced but no asset store is configured", value)
			}
			asset, err := c.Assets.Load(ctx, value, field.Type())
			if errors.Is(err, ErrDanglingAsset) {
				return nil
			}
			if err != nil {
				return err
			}
			field.Set(reflect.ValueOf(asset))
			return nil
		}
	}

	if node.Kind == yaml.SequenceNode && field.Kind() == reflect.Slice {
		elem := field.Type().Elem()
		if elem.Kind() == reflect.Ptr || elem.Kind() == reflect.Interface {
			slice := reflect.MakeSlice(field.Type(), len(node.Content), len(node.Content))
			field.Set(slice)
			for i, item := range node.Content {
				if err := c.decodeValue(ctx, field.Index(i), item, where, fixups); err != nil {
					return err
				}
			}
			return nil
		}
	}

	if field.Kind() == reflect.Interface {
		return fmt.Errorf("cannot decode %s into interface %s", node.Tag, field.Type())
	}
	return node.Decode(field.Addr().Interface())
}

func linkNode(key, value string) *yaml.Node {
	return &yaml.Node{
		Kind: yaml.MappingNode,
		Tag:  "!!map",
		Content: []*yaml.Node{
			{Kind: yaml.ScalarNode, Tag: "!!str", Value: key},
			{Kind: yaml.ScalarNode, Tag: "!!str", Value: value},
		},
	}
}

func linkOf(node *yaml.Node) (key, value string, ok bool) {
	if node.Kind != yaml.MappingNode || len(node.Content) != 2 {
		return "", "", false
	}
	key = node.Content[0].Value
	if key != refKey && key != assetKey {
		return "", "", false
	}
	return key, node.Content[1].Value, true
}

// fieldKey returns the document key of f. Unexported fields and fields tagged
// yaml:"-" are not persisted.
func fieldKey(f reflect.StructField) (string, bool) {
	if !f.IsExported() {
		return "", false
	}
	tag := f.Tag.Get("yaml")
	if tag == "-" {
		return "", false
	}
	if name, _, _ := strings.Cut(tag, ","); name != "" {
		return name, true
	}
	return f.Name, true
}
