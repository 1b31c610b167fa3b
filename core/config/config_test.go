package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.False(t, cfg.Database.Enabled)
	assert.True(t, cfg.Sync.CacheMetadata)
	assert.True(t, cfg.Sync.FormatMessages)
	assert.False(t, cfg.Sync.Live)
	assert.Equal(t, "dir", cfg.Project.SceneSource)
	assert.Equal(t, "scenes", cfg.Project.ScenesDir)
	assert.Equal(t, "project.toml", cfg.Project.Manifest)
	assert.True(t, cfg.Project.SaveModified)
}

func TestLoadConfig_Env(t *testing.T) {
	t.Setenv("PROJECT_SCENES_DIR", "levels")
	t.Setenv("SYNC_CACHE_METADATA", "false")
	t.Setenv("STORAGE_TIMEOUT_SECONDS", "5")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "levels", cfg.Project.ScenesDir)
	assert.False(t, cfg.Sync.CacheMetadata)
	assert.Equal(t, 5, cfg.Storage.TimeoutSeconds)
}

func TestLoadConfig_File(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(`
project:
  manifest: game.toml
log:
  format: json
`), 0o644))

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, "game.toml", cfg.Project.Manifest)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "scenes", cfg.Project.ScenesDir)
}

func TestLoadConfig_InvalidFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("project: [\n"), 0o644))

	_, err := LoadConfig(dir)
	assert.ErrorContains(t, err, "failed to read config file")
}
