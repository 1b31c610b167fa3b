package autoref

import (
	"fmt"
	"reflect"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/singleflight"
)

// MetadataCache memoizes TypeMetadata by type.
type MetadataCache struct {
	builder *Builder

	mu      sync.RWMutex
	entries map[reflect.Type]*TypeMetadata
	sf      singleflight.Group
	enabled atomic.Bool
	builds  atomic.Int64
}

// NewMetadataCache creates a cache backed by builder.
func NewMetadataCache(builder *Builder, enabled bool) *MetadataCache {
	c := &MetadataCache{
		builder: builder,
		entries: make(map[reflect.Type]*TypeMetadata),
	}
	c.enabled.Store(enabled)
	return c
}

// GetOrBuild returns the metadata of t, building it when absent.
// With caching disabled, metadata is rebuilt on every call.
func (c *MetadataCache) GetOrBuild(t reflect.Type) *TypeMetadata {
	if !c.enabled.Load() {
		return c.build(t)
	}

	// Fast path: already built
	c.mu.RLock()
	meta, ok := c.entries[t]
	c.mu.RUnlock()
	if ok {
		return meta
	}

	// Slow path: build once even when requested concurrently
	result, _, _ := c.sf.Do(cacheKey(t), func() (interface{}, error) {
		c.mu.RLock()
		meta, ok := c.entries[t]
		c.mu.RUnlock()
		if ok {
			return meta, nil
		}

		meta = c.build(t)

		c.mu.Lock()
		c.entries[t] = meta
		c.mu.Unlock()
		return meta, nil
	})

	return result.(*TypeMetadata)
}

func (c *MetadataCache) build(t reflect.Type) *TypeMetadata {
	c.builds.Add(1)
	return c.builder.Build(t)
}

// Clear discards every entry and returns how many were discarded.
func (c *MetadataCache) Clear() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := len(c.entries)
	c.entries = make(map[reflect.Type]*TypeMetadata)
	return n
}

// Count returns the number of cached types.
func (c *MetadataCache) Count() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// SetEnabled toggles memoization. Disabling discards the current entries.
func (c *MetadataCache) SetEnabled(enabled bool) {
	c.enabled.Store(enabled)
	if !enabled {
		c.Clear()
	}
}

// Enabled reports whether memoization is active.
func (c *MetadataCache) Enabled() bool {
	return c.enabled.Load()
}

// Builds returns how many times metadata was built.
func (c *MetadataCache) Builds() int64 {
	return c.builds.Load()
}

// cacheKey is unique per type, including function-local types sharing a name.
func cacheKey(t reflect.Type) string {
	return fmt.Sprintf("%s@%p", t, t)
}
