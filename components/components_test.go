package components

import (
	"context"
	"testing"

	"auto-reference/core/assets"
	"auto-reference/core/autoref"
	"auto-reference/core/scene"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newEngine() *autoref.Engine {
	store := assets.NewMemoryStore()
	store.Put("weapons/turret", []byte("type: components.WeaponStats\ndata:\n  damage: 7\n  range: 30\n"))
	store.Put("palettes/default", []byte("type: components.Palette\ndata:\n  primary: red\n  secondary: white\n"))
	catalog := assets.NewCatalog(store, assets.DefaultTypes, zap.NewNop())
	return autoref.NewEngine(autoref.Config{CacheMetadata: true}, catalog, zap.NewNop())
}

func TestRegisteredTypesAreValid(t *testing.T) {
	summaries := newEngine().Inspect(scene.DefaultRegistry.Types())
	require.Len(t, summaries, scene.DefaultRegistry.Len())
	for _, s := range summaries {
		assert.Empty(t, s.Items, s.Type)
	}
}

func TestSquadScene(t *testing.T) {
	sc := scene.New("Arena")
	squadNode := sc.Root("Alpha")
	squad := squadNode.AddComponent(&Squad{Callsign: "alpha"}).(*Squad)

	leaderNode := squadNode.AddChild(scene.NewNode("Leader"))
	leader := leaderNode.AddComponent(&Unit{}).(*Unit)
	body := leaderNode.AddComponent(&Collider{Radius: 1}).(*Collider)
	hp := leaderNode.AddComponent(&Health{Max: 10, Current: 10}).(*Health)
	squad.Leader = leader

	turretNode := leaderNode.AddChild(scene.NewNode("Turret"))
	turret := turretNode.AddComponent(&Turret{}).(*Turret)
	turretNode.AddComponent(&Transform{})
	turretNode.AddChild(scene.NewNode("Left")).AddComponent(&Barrel{Caliber: 20})
	turretNode.AddChild(scene.NewNode("Right")).AddComponent(&Barrel{Caliber: 20})
	turretNode.AddChild(scene.NewNode("Muzzle")).AddComponent(&Muzzle{})

	scoutNode := squadNode.AddChild(scene.NewNode("Scout"))
	scout := scoutNode.AddComponent(&Unit{}).(*Unit)
	scoutNode.AddComponent(&Collider{})
	shield := scoutNode.AddComponent(&Shield{Strength: 5}).(*Shield)

	report := newEngine().SyncScene(context.Background(), sc)
	assert.Empty(t, report.Items())
	assert.True(t, report.Status.Has(autoref.StatusComplete))

	assert.Equal(t, []*Unit{leader, scout}, squad.Members)
	assert.Same(t, leader, squad.Leader)
	assert.Equal(t, 2, squad.Size)
	require.NotNil(t, squad.Banner)
	assert.Equal(t, "red", squad.Banner.Primary)

	assert.Same(t, body, leader.Body)
	assert.Same(t, hp, leader.Health)
	assert.Same(t, squad, leader.Squad)
	assert.Equal(t, []*Turret{turret}, leader.Weapons)
	assert.Equal(t, []Damageable{shield}, leader.Allies)

	assert.Len(t, turret.Barrels, 2)
	assert.NotNil(t, turret.Muzzle)
	assert.Equal(t, 14, turret.Damage)
	assert.Equal(t, 30.0, turret.Range)
}
