package autoref

import (
	"context"
	"testing"

	"auto-reference/core/assets"
	"auto-reference/core/scene"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fieldOf(t *testing.T, meta *TypeMetadata, name string) *FieldDescriptor {
	t.Helper()
	for i := range meta.Fields {
		if meta.Fields[i].Name == name {
			return &meta.Fields[i]
		}
	}
	require.FailNow(t, "field not found", name)
	return nil
}

func TestFind_DescendantNameFilterFirstPreOrder(t *testing.T) {
	s := scene.New("level")
	root := s.Root("Player")
	decoy := root.Child("Decoy")
	decoy.AddComponent(&gun{})
	deep := decoy.Child("Holster").Child("Gun")
	want := deep.AddComponent(&gun{})
	root.Child("Gun").AddComponent(&gun{})
	p := root.AddComponent(&player{}).(*player)

	meta := NewBuilder(newTestCatalog(t)).Build(typeOf[*player]())
	l, err := find(context.Background(), nil, root, p, fieldOf(t, meta, "Gun"))
	require.NoError(t, err)
	require.Len(t, l.matches, 2)
	assert.Same(t, want, l.matches[0])
	assert.Equal(t, []string{"Decoy"}, l.misses)
}

func TestFind_DescendantExcludesSelfUnlessAllowed(t *testing.T) {
	type selfish struct {
		scene.Base
		Without []*gun `autoref:"children"`
		With    []*gun `autoref:"children,self"`
	}

	s := scene.New("level")
	root := s.Root("Root")
	own := root.AddComponent(&gun{})
	child := root.Child("Child").AddComponent(&gun{})
	c := root.AddComponent(&selfish{}).(*selfish)

	meta := NewBuilder(nil).Build(typeOf[*selfish]())

	l, err := find(context.Background(), nil, root, c, fieldOf(t, meta, "Without"))
	require.NoError(t, err)
	assert.Equal(t, []any{child}, l.matches)

	l, err = find(context.Background(), nil, root, c, fieldOf(t, meta, "With"))
	require.NoError(t, err)
	assert.Equal(t, []any{own, child}, l.matches)
}

func TestFind_SiblingNeverReturnsOwnComponents(t *testing.T) {
	s := scene.New("level")
	squad := s.Root("Squad")
	a := squad.Child("A")
	b := squad.Child("B")
	c := squad.Child("C")
	first := a.AddComponent(&body{})
	second := c.AddComponent(&body{})
	b.AddComponent(&body{})
	b.Child("Nested").AddComponent(&body{})
	m := b.AddComponent(&squadMember{}).(*squadMember)

	meta := NewBuilder(nil).Build(typeOf[*squadMember]())
	l, err := find(context.Background(), nil, b, m, &meta.Fields[0])
	require.NoError(t, err)
	assert.Equal(t, []any{first, second}, l.matches)
}

func TestFind_SiblingsOfRootAreOtherRoots(t *testing.T) {
	s := scene.New("level")
	left := s.Root("Left").AddComponent(&body{})
	middle := s.Root("Middle")
	m := middle.AddComponent(&squadMember{}).(*squadMember)
	right := s.Root("Right").AddComponent(&body{})

	meta := NewBuilder(nil).Build(typeOf[*squadMember]())
	l, err := find(context.Background(), nil, middle, m, &meta.Fields[0])
	require.NoError(t, err)
	assert.Equal(t, []any{left, right}, l.matches)
}

func TestFind_AncestorFirstMatch(t *testing.T) {
	type rider struct {
		scene.Base
		Mount  *body   `autoref:"parent"`
		Mounts []*body `autoref:"ancestor,self"`
	}

	s := scene.New("level")
	root := s.Root("World")
	root.AddComponent(&body{})
	horse := root.Child("Horse")
	near := horse.AddComponent(&body{})
	saddle := horse.Child("Saddle")
	selfBody := saddle.AddComponent(&body{})
	r := saddle.AddComponent(&rider{}).(*rider)

	meta := NewBuilder(nil).Build(typeOf[*rider]())

	l, err := find(context.Background(), nil, saddle, r, fieldOf(t, meta, "Mount"))
	require.NoError(t, err)
	assert.Equal(t, []any{near}, l.matches)

	l, err = find(context.Background(), nil, saddle, r, fieldOf(t, meta, "Mounts"))
	require.NoError(t, err)
	assert.Equal(t, []any{selfBody}, l.matches)
}

func TestFind_OwnInterfaceTarget(t *testing.T) {
	type attacker struct {
		scene.Base
		Victim damageable `autoref:"own"`
	}

	s := scene.New("level")
	n := s.Root("Enemy")
	n.AddComponent(&body{})
	h := n.AddComponent(&health{HP: 10})
	a := n.AddComponent(&attacker{}).(*attacker)

	meta := NewBuilder(nil).Build(typeOf[*attacker]())
	l, err := find(context.Background(), nil, n, a, &meta.Fields[0])
	require.NoError(t, err)
	assert.Equal(t, []any{h}, l.matches)
}

func TestFind_External(t *testing.T) {
	type armory struct {
		scene.Base
		Rifle   *weaponStats   `autoref:"asset,path=weapons/rifle"`
		Weapons []*weaponStats `autoref:"asset,path=weapons/"`
		Missing *weaponStats   `autoref:"asset,path=weapons/laser"`
		Armor   *weaponStats   `autoref:"asset,path=weapons/vest"`
	}

	catalog := newTestCatalog(t)
	s := scene.New("level")
	n := s.Root("Armory")
	a := n.AddComponent(&armory{}).(*armory)
	meta := NewBuilder(catalog).Build(typeOf[*armory]())
	require.Empty(t, meta.Messages)
	ctx := context.Background()

	l, err := find(ctx, catalog, n, a, fieldOf(t, meta, "Rifle"))
	require.NoError(t, err)
	require.Len(t, l.matches, 1)
	assert.Equal(t, 12, l.matches[0].(*weaponStats).Damage)

	l, err = find(ctx, catalog, n, a, fieldOf(t, meta, "Weapons"))
	require.NoError(t, err)
	require.Len(t, l.matches, 2)
	assert.Equal(t, 5, l.matches[0].(*weaponStats).Damage)
	assert.Equal(t, 12, l.matches[1].(*weaponStats).Damage)

	_, err = find(ctx, catalog, n, a, fieldOf(t, meta, "Missing"))
	assert.ErrorIs(t, err, assets.ErrNotFound)

	_, err = find(ctx, catalog, n, a, fieldOf(t, meta, "Armor"))
	assert.ErrorIs(t, err, assets.ErrTypeMismatch)

	_, err = find(ctx, nil, n, a, fieldOf(t, meta, "Rifle"))
	assert.Error(t, err)
}

func TestInDomain(t *testing.T) {
	s := scene.New("level")
	root := s.Root("Root")
	a := root.Child("A")
	b := root.Child("B")
	aChild := a.Child("A1")

	fd := &FieldDescriptor{Strategy: StrategyDescendant}
	inA1 := aChild.AddComponent(&gun{})
	inB := b.AddComponent(&gun{})
	self := a.AddComponent(&finder{})

	assert.True(t, inDomain(a, self, fd, inA1))
	assert.False(t, inDomain(a, self, fd, inB))

	fd.Strategy = StrategySibling
	assert.True(t, inDomain(a, self, fd, inB))
	assert.False(t, inDomain(a, self, fd, inA1))

	fd.Strategy = StrategyAncestor
	assert.True(t, inDomain(aChild, nil, fd, self))
	assert.False(t, inDomain(a, nil, fd, inA1))
}

func TestSuggest(t *testing.T) {
	assert.Equal(t, []string{"GunLeft", "GunRight"}, suggest("Gun", []string{"GunRight", "Decoy", "GunLeft", "GunLeft"}))
	assert.Equal(t, []string{"Alpha", "Beta", "Delta"}, suggest("zzz", []string{"Delta", "Beta", "Alpha", "Gamma"}))
}
