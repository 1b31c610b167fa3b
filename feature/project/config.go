package project

import (
	"fmt"

	"auto-reference/core/assets"
	"auto-reference/core/scene"
	"auto-reference/core/storage"
)

// Config holds the project layout.
type Config struct {
	// SceneSource selects where scenes are persisted (dir, bucket).
	SceneSource string `mapstructure:"scene_source" default:"dir"`
	// ScenesDir is the scene directory when SceneSource is dir.
	ScenesDir string `mapstructure:"scenes_dir" default:"scenes"`
	// ScenePrefix is the object prefix when SceneSource is bucket.
	ScenePrefix string `mapstructure:"scene_prefix" default:"scenes/"`
	// AssetSource selects where asset documents are read from (dir, bucket).
	AssetSource string `mapstructure:"asset_source" default:"dir"`
	// AssetsDir is the asset directory when AssetSource is dir.
	AssetsDir string `mapstructure:"assets_dir" default:"assets"`
	// AssetPrefix is the object prefix when AssetSource is bucket.
	AssetPrefix string `mapstructure:"asset_prefix" default:"assets/"`
	// Manifest is the TOML file listing the build scenes.
	Manifest string `mapstructure:"manifest" default:"project.toml"`
	// SaveModified writes back persisted scenes whose components changed.
	SaveModified bool `mapstructure:"save_modified" default:"true"`
}

const (
	SourceDir    = "dir"
	SourceBucket = "bucket"
)

// NeedsStorage reports whether either source reads from object storage.
func (c Config) NeedsStorage() bool {
	return c.SceneSource == SourceBucket || c.AssetSource == SourceBucket
}

// NewAssetStore builds the asset store selected by AssetSource.
func NewAssetStore(cfg Config, client storage.Client, bucket string) (assets.Store, error) {
	switch cfg.AssetSource {
	case SourceDir, "":
		return assets.NewDirStore(cfg.AssetsDir), nil
	case SourceBucket:
		if client == nil {
			return nil, fmt.Errorf("asset source %q requires a storage client", cfg.AssetSource)
		}
		return assets.NewBucketStore(client, bucket, cfg.AssetPrefix), nil
	default:
		return nil, fmt.Errorf("unknown asset source %q", cfg.AssetSource)
	}
}

// NewRepository builds the scene repository selected by SceneSource.
func NewRepository(cfg Config, client storage.Client, bucket string, codec *scene.Codec) (Repository, error) {
	switch cfg.SceneSource {
	case SourceDir, "":
		return NewDirRepository(cfg.ScenesDir, codec), nil
	case SourceBucket:
		if client == nil {
			return nil, fmt.Errorf("scene source %q requires a storage client", cfg.SceneSource)
		}
		return NewBucketRepository(client, bucket, cfg.ScenePrefix, codec), nil
	default:
		return nil, fmt.Errorf("unknown scene source %q", cfg.SceneSource)
	}
}
