// Package assets provides the external asset store used by the external
// resolution strategy and by the scene codec.
//
// Assets are YAML documents with a registered type name and a data payload:
//
//	type: game.WeaponConfig
//	data:
//	  damage: 12
//	  range: 4.5
//
// An asset is addressed by its path without extension, for example
// "configs/weapons/rifle". Paths always use forward slashes.
//
// # Stores
//
//   - DirStore: reads <root>/<path>.yaml from the local filesystem.
//   - BucketStore: reads <prefix><path>.yaml from an object storage bucket.
//   - MemoryStore: in-memory documents, used by tests and tools.
//
// # Catalog
//
// The Catalog decodes documents into registered Go types and caches them by
// path, so the same path always yields the same pointer within one catalog
// generation. PathOf gives the reverse mapping used when scenes are saved and
// when change detection snapshots asset references. Reset starts a new
// generation, which callers do whenever the underlying store may have changed.
package assets
