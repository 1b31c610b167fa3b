package autoref

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"auto-reference/core/assets"
	"auto-reference/core/scene"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type body struct {
	scene.Base
	Mass float64
}

type gun struct {
	scene.Base
	Ammo int
}

type damageable interface {
	scene.Component
	Damage(n int)
}

type health struct {
	scene.Base
	HP int
}

func (h *health) Damage(n int) { h.HP -= n }

type weaponStats struct {
	Damage int `yaml:"damage"`
}

type armorStats struct {
	Defense int `yaml:"defense"`
}

type player struct {
	scene.Base
	Body   *body        `autoref:"own"`
	Gun    *gun         `autoref:"children,name=Gun"`
	Guns   []*gun       `autoref:"children"`
	Target damageable   `autoref:"siblings,optional"`
	Stats  *weaponStats `autoref:"asset,path=weapons/rifle"`
	Score  int          `autoref:"sync"`
	Notes  string

	synced int
}

func (p *player) OnAfterSyncCount() { p.synced++ }

type squadMember struct {
	scene.Base
	Mates []*body `autoref:"siblings"`
}

type finder struct {
	scene.Base
	Gun *gun `autoref:"children"`
}

type greedy struct {
	scene.Base
	Gun *gun `autoref:"children,mode=get-if-empty"`
}

type stubborn struct {
	scene.Base
	Gun *gun `autoref:"children,mode=always"`
}

type checker struct {
	scene.Base
	Gun *gun `autoref:"children,name=Gun,mode=validate"`
}

type broken struct {
	scene.Base
	Both  *gun `autoref:"own,children"`
	Fine  *gun `autoref:"own"`
	Wrong *int `autoref:"own"`
}

type callbackOnly struct {
	scene.Base
	calls int
}

func (c *callbackOnly) OnAfterSyncPing() { c.calls++ }

type failing struct {
	scene.Base
	Gun *gun `autoref:"own,optional"`
	ran []string
}

func (f *failing) OnAfterSyncA() error {
	f.ran = append(f.ran, "A")
	return errors.New("boom")
}

func (f *failing) OnAfterSyncB() {
	f.ran = append(f.ran, "B")
	panic("kaput")
}

func (f *failing) OnAfterSyncC() {
	f.ran = append(f.ran, "C")
}

type recursive struct {
	scene.Base
	Gun *gun `autoref:"own,optional"`

	engine *Engine
	nested SyncStatus
	during bool
}

func (r *recursive) OnAfterSyncRecurse() {
	r.during = r.engine.IsSyncing(r)
	r.nested = r.engine.SyncComponent(context.Background(), r).Status
}

type plain struct {
	scene.Base
	Value int
}

func newTestCatalog(t *testing.T) *assets.Catalog {
	t.Helper()
	types := assets.NewTypeRegistry()
	types.MustRegister("test.Weapon", &weaponStats{})
	types.MustRegister("test.Armor", &armorStats{})

	store := assets.NewMemoryStore()
	store.Put("weapons/rifle", []byte("type: test.Weapon\ndata:\n  damage: 12\n"))
	store.Put("weapons/pistol", []byte("type: test.Weapon\ndata:\n  damage: 5\n"))
	store.Put("weapons/vest", []byte("type: test.Armor\ndata:\n  defense: 3\n"))

	return assets.NewCatalog(store, types, zap.NewNop())
}

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	return NewEngine(Config{CacheMetadata: true}, newTestCatalog(t), zap.NewNop())
}

func typeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

func loadAsset[T any](t *testing.T, e *Engine, path string) T {
	t.Helper()
	v, err := e.assets.Load(context.Background(), path, typeOf[T]())
	require.NoError(t, err)
	return v.(T)
}
