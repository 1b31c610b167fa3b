package project

import (
	"context"
	"testing"

	"auto-reference/core/assets"
	"auto-reference/core/autoref"
	"auto-reference/core/scene"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type barrel struct {
	scene.Base
	Caliber int `yaml:"caliber"`
}

type cannonStats struct {
	Damage int `yaml:"damage"`
}

type turret struct {
	scene.Base
	Barrel *barrel      `autoref:"children" yaml:"barrel"`
	Stats  *cannonStats `autoref:"asset,path=weapons/cannon" yaml:"stats"`
}

type fixture struct {
	registry *scene.Registry
	types    *assets.TypeRegistry
	catalog  *assets.Catalog
	codec    *scene.Codec
	engine   *autoref.Engine
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	registry := scene.NewRegistry()
	scene.MustRegister(registry, "test.Turret", &turret{})
	scene.MustRegister(registry, "test.Barrel", &barrel{})

	types := assets.NewTypeRegistry()
	types.MustRegister("test.CannonStats", &cannonStats{})

	store := assets.NewMemoryStore()
	store.Put("weapons/cannon", []byte("type: test.CannonStats\ndata:\n  damage: 40\n"))

	catalog := assets.NewCatalog(store, types, zap.NewNop())
	return &fixture{
		registry: registry,
		types:    types,
		catalog:  catalog,
		codec:    &scene.Codec{Registry: registry, Assets: catalog},
		engine:   autoref.NewEngine(autoref.Config{CacheMetadata: true}, catalog, zap.NewNop()),
	}
}

// turretScene builds a scene whose turret has nothing resolved yet.
func turretScene(name string) *scene.Scene {
	sc := scene.New(name)
	root := sc.Root("Turret")
	root.AddComponent(&turret{})
	root.AddChild(scene.NewNode("Barrel")).AddComponent(&barrel{Caliber: 50})
	return sc
}

// barrelScene builds a scene without any annotated component.
func barrelScene(name string) *scene.Scene {
	sc := scene.New(name)
	sc.Root("Barrel").AddComponent(&barrel{Caliber: 20})
	return sc
}

func findTurret(t *testing.T, sc *scene.Scene) *turret {
	t.Helper()
	for _, c := range sc.Components() {
		if tr, ok := c.(*turret); ok {
			return tr
		}
	}
	require.FailNow(t, "no turret in scene", sc.Name)
	return nil
}

func (f *fixture) seed(t *testing.T, repo Repository, scenes ...*scene.Scene) {
	t.Helper()
	for _, sc := range scenes {
		require.NoError(t, repo.Save(context.Background(), sc))
	}
}

type fakeRecorder struct {
	runs []BatchResult
	err  error
}

func (r *fakeRecorder) Record(_ context.Context, run BatchResult) error {
	r.runs = append(r.runs, run)
	return r.err
}
