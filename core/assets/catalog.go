package assets

import (
	"context"
	"fmt"
	"reflect"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gopkg.in/yaml.v3"
)

// Document is the on-disk form of an asset.
type Document struct {
	Type string    `yaml:"type"`
	Data yaml.Node `yaml:"data"`
}

// Catalog decodes and caches assets from a Store.
type Catalog struct {
	store  Store
	types  *TypeRegistry
	logger *zap.Logger

	mu     sync.RWMutex
	byPath map[string]any
	paths  map[any]string
	group  singleflight.Group
}

// NewCatalog creates a catalog over store. A nil registry uses DefaultTypes.
func NewCatalog(store Store, types *TypeRegistry, logger *zap.Logger) *Catalog {
	if types == nil {
		types = DefaultTypes
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Catalog{
		store:  store,
		types:  types,
		logger: logger,
		byPath: make(map[string]any),
		paths:  make(map[any]string),
	}
}

// Known reports whether t is a registered asset type.
func (c *Catalog) Known(t reflect.Type) bool {
	return c.types.Known(t)
}

// Load returns the asset at path. When t is not nil, the asset must have type t.
func (c *Catalog) Load(ctx context.Context, p string, t reflect.Type) (any, error) {
	p = CleanPath(p)

	c.mu.RLock()
	v, ok := c.byPath[p]
	c.mu.RUnlock()

	if !ok {
		loaded, err, _ := c.group.Do(p, func() (any, error) {
			return c.fetch(ctx, p)
		})
		if err != nil {
			return nil, err
		}
		v = loaded
	}

	if t != nil && reflect.TypeOf(v) != t {
		return nil, fmt.Errorf("%w: %s is %s, not %s", ErrTypeMismatch, p, reflect.TypeOf(v), t)
	}
	return v, nil
}

func (c *Catalog) fetch(ctx context.Context, p string) (any, error) {
	c.mu.RLock()
	if v, ok := c.byPath[p]; ok {
		c.mu.RUnlock()
		return v, nil
	}
	c.mu.RUnlock()

	data, err := c.store.Get(ctx, p)
	if err != nil {
		return nil, err
	}

	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse asset %s: %w", p, err)
	}

	t, ok := c.types.TypeOf(doc.Type)
	if !ok {
		return nil, fmt.Errorf("%w: %s has unregistered type %q", ErrTypeMismatch, p, doc.Type)
	}

	v := reflect.New(t.Elem())
	if doc.Data.Kind != 0 {
		if err := doc.Data.Decode(v.Interface()); err != nil {
			return nil, fmt.Errorf("failed to decode asset %s: %w", p, err)
		}
	}

	asset := v.Interface()

	c.mu.Lock()
	c.byPath[p] = asset
	c.paths[asset] = p
	c.mu.Unlock()

	c.logger.Debug("Loaded asset", zap.String("path", p), zap.String("type", doc.Type))
	return asset, nil
}

// List returns the asset paths under prefix in lexical order.
func (c *Catalog) List(ctx context.Context, prefix string) ([]string, error) {
	return c.store.List(ctx, prefix)
}

// PathOf returns the path v was loaded from.
func (c *Catalog) PathOf(v any) (string, bool) {
	if v == nil {
		return "", false
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return "", false
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	p, ok := c.paths[v]
	return p, ok
}

// Preload loads every asset under prefix and returns how many were loaded.
// Assets with unregistered types are skipped.
func (c *Catalog) Preload(ctx context.Context, prefix string) (int, error) {
	paths, err := c.List(ctx, prefix)
	if err != nil {
		return 0, err
	}
	loaded := 0
	for _, p := range paths {
		if _, err := c.Load(ctx, p, nil); err != nil {
			c.logger.Warn("Skipping asset", zap.String("path", p), zap.Error(err))
			continue
		}
		loaded++
	}
	return loaded, nil
}

// Len returns the number of cached assets.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.byPath)
}

// Reset discards every cached asset. Values loaded earlier are no longer known to PathOf.
func (c *Catalog) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.byPath = make(map[string]any)
	c.paths = make(map[any]string)
}
