package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadManifest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "project.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
name = "demo"

[build]
scenes = ["Main", "/levels/Arena.yaml", "Main", ""]
`), 0o644))

	m, err := LoadManifest(path)
	require.NoError(t, err)
	assert.Equal(t, "demo", m.Name)
	assert.Equal(t, []string{"Main", "levels/Arena"}, m.Build.Scenes)
	assert.True(t, m.IsBuildScene("levels/Arena.yaml"))
	assert.False(t, m.IsBuildScene("Other"))
}

func TestLoadManifest_Missing(t *testing.T) {
	m, err := LoadManifest(filepath.Join(t.TempDir(), "none.toml"))
	require.NoError(t, err)
	assert.Empty(t, m.Build.Scenes)

	m, err = LoadManifest("")
	require.NoError(t, err)
	assert.Empty(t, m.Name)
}

func TestLoadManifest_Invalid(t *testing.T) {
	dir := t.TempDir()

	broken := filepath.Join(dir, "broken.toml")
	require.NoError(t, os.WriteFile(broken, []byte("name = "), 0o644))
	_, err := LoadManifest(broken)
	assert.Error(t, err)

	unknown := filepath.Join(dir, "unknown.toml")
	require.NoError(t, os.WriteFile(unknown, []byte("[build]\nscene = [\"Main\"]\n"), 0o644))
	_, err = LoadManifest(unknown)
	assert.ErrorContains(t, err, "unknown key build.scene")
}

func TestManifest_SaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "project.toml")
	m, err := ParseManifest("name = \"demo\"\n[build]\nscenes = [\"Main\"]\n")
	require.NoError(t, err)

	require.NoError(t, m.Save(path))

	again, err := LoadManifest(path)
	require.NoError(t, err)
	assert.Equal(t, m, again)
}
