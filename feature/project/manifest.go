package project

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"

	"github.com/BurntSushi/toml"
)

// Manifest describes the project. It is read from a TOML file:
//
//	name = "demo"
//
//	[build]
//	scenes = ["Main", "levels/Arena"]
type Manifest struct {
	Name  string `toml:"name"`
	Build Build  `toml:"build"`
}

// Build lists the scenes shipped in a build, in build order.
type Build struct {
	Scenes []string `toml:"scenes"`
}

// LoadManifest reads the manifest at path. A missing file yields an empty manifest.
func LoadManifest(path string) (*Manifest, error) {
	var m Manifest
	if path == "" {
		return &m, nil
	}
	md, err := toml.DecodeFile(path, &m)
	if errors.Is(err, fs.ErrNotExist) {
		return &m, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("manifest %s: unknown key %s", path, undecoded[0])
	}
	m.normalize()
	return &m, nil
}

// ParseManifest decodes a manifest from TOML text.
func ParseManifest(data string) (*Manifest, error) {
	var m Manifest
	if _, err := toml.Decode(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	m.normalize()
	return &m, nil
}

// Save writes the manifest as TOML.
func (m *Manifest) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create manifest: %w", err)
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(m)
}

// IsBuildScene reports whether name is part of the build.
func (m *Manifest) IsBuildScene(name string) bool {
	return slices.Contains(m.Build.Scenes, sceneName(name))
}

// normalize cleans scene names and drops duplicates keeping the first occurrence.
func (m *Manifest) normalize() {
	seen := make(map[string]bool, len(m.Build.Scenes))
	scenes := m.Build.Scenes[:0]
	for _, s := range m.Build.Scenes {
		s = sceneName(s)
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		scenes = append(scenes, s)
	}
	m.Build.Scenes = scenes
}
