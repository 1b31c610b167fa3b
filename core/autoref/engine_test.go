package autoref

import (
	"context"
	"reflect"
	"testing"

	"auto-reference/core/scene"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// buildPlayerScene returns a scene where every player field can be resolved.
func buildPlayerScene(t *testing.T) (*scene.Scene, *player, *body, *gun, *health) {
	s := scene.New("level")
	team := s.Root("Team")
	hero := team.Child("Hero")
	b := hero.AddComponent(&body{Mass: 80}).(*body)
	p := hero.AddComponent(&player{}).(*player)
	g := hero.Child("Arm").Child("Gun").AddComponent(&gun{Ammo: 6}).(*gun)
	h := team.Child("Dummy").AddComponent(&health{HP: 100}).(*health)
	return s, p, b, g, h
}

func TestEngine_SyncResolvesEveryField(t *testing.T) {
	e := newTestEngine(t)
	s, p, b, g, h := buildPlayerScene(t)

	report := e.SyncScene(context.Background(), s)

	// body, gun and health have nothing to sync and are skipped.
	assert.Equal(t, StatusComplete|StatusModified|StatusSkip, report.Status)
	assert.Empty(t, report.Items())
	assert.Same(t, b, p.Body)
	assert.Same(t, g, p.Gun)
	assert.Equal(t, []*gun{g}, p.Guns)
	assert.Same(t, h, p.Target)
	require.NotNil(t, p.Stats)
	assert.Equal(t, 12, p.Stats.Damage)
	assert.Equal(t, 1, p.synced)
	assert.True(t, p.IsDirty())

	stats := report.Statistics
	assert.Equal(t, 4, stats.Types)
	assert.Equal(t, 1, stats.Components)
	assert.Equal(t, 5, stats.Fields)
	assert.Equal(t, 1, stats.Callbacks)
	assert.Equal(t, 1, stats.Modified)
	assert.Equal(t, 5, stats.Nodes)
}

func TestEngine_Idempotent(t *testing.T) {
	e := newTestEngine(t)
	s, p, _, _, _ := buildPlayerScene(t)

	e.SyncScene(context.Background(), s)
	s.ClearDirty()

	report := e.SyncScene(context.Background(), s)
	assert.Equal(t, StatusComplete|StatusSkip, report.Status)
	assert.False(t, p.IsDirty())
	assert.Zero(t, report.Statistics.Modified)
}

func TestEngine_Deterministic(t *testing.T) {
	e := newTestEngine(t)
	s := scene.New("level")
	root := s.Root("Root")
	f := root.AddComponent(&finder{}).(*finder)
	first := root.Child("A").AddComponent(&gun{}).(*gun)
	root.Child("B").AddComponent(&gun{})

	for i := 0; i < 5; i++ {
		f.Gun = nil
		e.SyncNode(context.Background(), root.Children()[1])
		e.SyncComponent(context.Background(), f)
		assert.Same(t, first, f.Gun)
	}
}

func TestEngine_GetIfEmptyNeverOverwrites(t *testing.T) {
	e := newTestEngine(t)
	s := scene.New("level")
	root := s.Root("Root")
	g := root.AddComponent(&greedy{}).(*greedy)
	found := root.Child("Child").AddComponent(&gun{}).(*gun)
	elsewhere := s.Root("Elsewhere").AddComponent(&gun{}).(*gun)

	g.Gun = elsewhere
	report := e.SyncComponent(context.Background(), g)
	assert.Same(t, elsewhere, g.Gun)
	assert.Equal(t, StatusComplete, report.Status)

	g.Gun = nil
	e.SyncComponent(context.Background(), g)
	assert.Same(t, found, g.Gun)
}

func TestEngine_AlwaysOverwrites(t *testing.T) {
	e := newTestEngine(t)
	s := scene.New("level")
	root := s.Root("Root")
	st := root.AddComponent(&stubborn{}).(*stubborn)
	found := root.Child("Child").AddComponent(&gun{}).(*gun)
	st.Gun = s.Root("Elsewhere").AddComponent(&gun{}).(*gun)

	report := e.SyncComponent(context.Background(), st)
	assert.Same(t, found, st.Gun)
	assert.True(t, report.Status.Has(StatusModified))
}

func TestEngine_ValidateOrGetIfEmpty(t *testing.T) {
	e := newTestEngine(t)
	s, p, _, _, _ := buildPlayerScene(t)
	e.SyncScene(context.Background(), s)

	// A gun outside the subtree: kept, but flagged as outside the domain.
	stray := s.Root("Stray").Child("Gun").AddComponent(&gun{}).(*gun)
	p.Gun = stray
	report := e.SyncComponent(context.Background(), p)
	assert.Same(t, stray, p.Gun)
	assert.True(t, report.Status.Has(StatusWarning))
	require.Len(t, report.Items(), 1)
	assert.Contains(t, report.Items()[0].Message, "outside the search domain")

	// A gun with the wrong name: error, value kept.
	wrong := s.Find("Team/Hero/Arm").AddComponent(&gun{}).(*gun)
	p.Gun = wrong
	report = e.SyncComponent(context.Background(), p)
	assert.Same(t, wrong, p.Gun)
	assert.True(t, report.Status.Has(StatusError))
	assert.Contains(t, report.Items()[0].Message, `named "Arm", expected "Gun"`)
}

func TestEngine_ValidateOnly(t *testing.T) {
	e := newTestEngine(t)
	s := scene.New("level")
	root := s.Root("Root")
	c := root.AddComponent(&checker{}).(*checker)
	root.Child("Gun").AddComponent(&gun{})

	report := e.SyncComponent(context.Background(), c)
	assert.Nil(t, c.Gun)
	assert.Equal(t, StatusComplete|StatusWarning, report.Status)
	assert.Contains(t, report.Items()[0].Message, "not set")
}

func TestEngine_ExternalValidation(t *testing.T) {
	e := newTestEngine(t)
	s, p, _, _, _ := buildPlayerScene(t)
	p.Stats = loadAsset[*weaponStats](t, e, "weapons/pistol")

	report := e.SyncScene(context.Background(), s)
	assert.True(t, report.Status.Has(StatusError))
	assert.Contains(t, report.Items()[0].Message, `asset "weapons/pistol" does not match path "weapons/rifle"`)

	p.Stats = &weaponStats{Damage: 1}
	report = e.SyncScene(context.Background(), s)
	assert.True(t, report.Status.Has(StatusWarning))
	assert.Contains(t, report.Items()[0].Message, "not loaded from the asset store")
}

func TestEngine_NilSequenceElementWarns(t *testing.T) {
	type explicit struct {
		scene.Base
		Guns []*gun `autoref:"children,mode=validate"`
	}

	e := newTestEngine(t)
	s := scene.New("level")
	root := s.Root("Root")
	g := root.Child("Gun").AddComponent(&gun{}).(*gun)
	c := root.AddComponent(&explicit{Guns: []*gun{g, nil}}).(*explicit)

	report := e.SyncComponent(context.Background(), c)
	require.Len(t, report.Items(), 1)
	assert.Equal(t, "element 1: value is nil", report.Items()[0].Message)
	assert.Equal(t, SeverityWarning, report.Items()[0].Severity)
}

func TestEngine_TypedNilInterfaceIsEmpty(t *testing.T) {
	type targeting struct {
		scene.Base
		Target  damageable   `autoref:"siblings"`
		Targets []damageable `autoref:"siblings,mode=validate"`
	}

	e := newTestEngine(t)
	s := scene.New("level")
	c := s.Root("Hunter").AddComponent(&targeting{
		Target:  (*health)(nil),
		Targets: []damageable{(*health)(nil)},
	}).(*targeting)
	h := s.Root("Dummy").AddComponent(&health{HP: 10}).(*health)

	var report ReportInfo
	require.NotPanics(t, func() {
		report = e.SyncScene(context.Background(), s)
	})
	assert.Same(t, h, c.Target)
	assert.True(t, report.Status.Has(StatusModified))
	require.Len(t, report.Items(), 1)
	assert.Equal(t, "element 0: value is nil", report.Items()[0].Message)
	assert.Equal(t, SeverityWarning, report.Items()[0].Severity)
}

func TestEngine_ScenarioA_NoCandidates(t *testing.T) {
	e := newTestEngine(t)
	s := scene.New("level")
	root := s.Root("Root")
	root.Child("Empty")
	f := root.AddComponent(&finder{}).(*finder)

	report := e.SyncScene(context.Background(), s)

	assert.Nil(t, f.Gun)
	assert.True(t, report.Status.Has(StatusWarning))
	assert.True(t, report.Status.Has(StatusComplete))
	assert.False(t, report.Status.Has(StatusModified))
	require.Len(t, report.Items(), 1)
	item := report.Items()[0]
	assert.Equal(t, "Gun", item.Member)
	assert.Equal(t, "Root", item.Node)
	assert.Equal(t, `no autoref.gun in descendants of "Root"`, item.Message)
}

func TestEngine_NameFilterSuggestions(t *testing.T) {
	e := newTestEngine(t)
	s := scene.New("level")
	hero := s.Root("Hero")
	p := hero.AddComponent(&player{}).(*player)
	hero.Child("GunLeft").AddComponent(&gun{})

	report := e.SyncComponent(context.Background(), p)
	assert.Nil(t, p.Gun)

	var gunItem *LogItem
	for _, item := range report.Items() {
		if item.Member == "Gun" {
			gunItem = &item
		}
	}
	require.NotNil(t, gunItem)
	assert.Equal(t, []string{"GunLeft"}, gunItem.Suggestions)
}

func TestEngine_ScenarioB_SiblingSequence(t *testing.T) {
	e := newTestEngine(t)
	s := scene.New("level")
	squad := s.Root("Squad")
	first := squad.Child("Alpha").AddComponent(&body{}).(*body)
	second := squad.Child("Bravo").AddComponent(&body{}).(*body)
	third := squad.Child("Charlie")
	m := third.AddComponent(&squadMember{}).(*squadMember)
	third.AddComponent(&body{})

	report := e.SyncNode(context.Background(), third)

	assert.Equal(t, []*body{first, second}, m.Mates)
	assert.Equal(t, StatusComplete|StatusModified|StatusSkip, report.Status)
}

func TestEngine_EmptySequenceIsCleared(t *testing.T) {
	e := newTestEngine(t)
	s := scene.New("level")
	alone := s.Root("Alone")
	m := alone.AddComponent(&squadMember{Mates: []*body{{}}}).(*squadMember)

	report := e.SyncComponent(context.Background(), m)
	assert.Nil(t, m.Mates)
	assert.Empty(t, report.Items())
	assert.True(t, report.Status.Has(StatusModified))
}

func TestEngine_ScenarioC_ClearCache(t *testing.T) {
	e := newTestEngine(t)
	s := scene.New("level")
	root := s.Root("Root")
	for _, c := range []scene.Component{&finder{}, &greedy{}, &stubborn{}, &checker{}, &squadMember{}} {
		root.Child("N").AddComponent(c)
	}

	e.SyncScene(context.Background(), s)
	assert.Equal(t, 5, e.CacheCount())
	builds := e.cache.Builds()

	assert.Equal(t, 5, e.ClearCache())
	assert.Zero(t, e.CacheCount())
	assert.Zero(t, e.ClearCache())

	e.SyncScene(context.Background(), s)
	assert.Equal(t, 5, e.CacheCount())
	assert.Equal(t, builds+5, e.cache.Builds())
}

func TestEngine_ScenarioD_Reentrancy(t *testing.T) {
	e := newTestEngine(t)
	s := scene.New("level")
	r := s.Root("Root").AddComponent(&recursive{}).(*recursive)
	r.engine = e

	report := e.SyncComponent(context.Background(), r)

	assert.Equal(t, StatusSkip, r.nested)
	assert.True(t, r.during)
	assert.True(t, report.Status.Has(StatusComplete))
	assert.False(t, report.Status.Has(StatusError|StatusWarning))
	assert.False(t, e.IsSyncing(r))
}

func TestEngine_InvalidAnnotationsOneErrorPerType(t *testing.T) {
	e := newTestEngine(t)
	s := scene.New("level")
	root := s.Root("Root")
	var instances []*broken
	for i := 0; i < 3; i++ {
		node := root.Child("B")
		node.AddComponent(&gun{})
		instances = append(instances, node.AddComponent(&broken{}).(*broken))
	}

	report := e.SyncScene(context.Background(), s)

	require.Len(t, report.Types, 1)
	assert.Len(t, report.Types[0].Items, 2)
	assert.Equal(t, 2, report.Statistics.Errors)
	assert.True(t, report.Status.Has(StatusError|StatusComplete))
	for _, b := range instances {
		assert.Nil(t, b.Both)
	}

	// Each batch reports the build errors again.
	again := e.SyncComponent(context.Background(), instances[0])
	assert.Len(t, again.Items(), 2)
	assert.True(t, again.Status.Has(StatusError))
}

func TestEngine_CallbackFailuresAreIsolated(t *testing.T) {
	e := newTestEngine(t)
	s := scene.New("level")
	f := s.Root("Root").AddComponent(&failing{}).(*failing)

	report := e.SyncComponent(context.Background(), f)

	assert.Equal(t, []string{"A", "B", "C"}, f.ran)
	assert.Equal(t, StatusComplete|StatusError, report.Status)
	items := report.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "OnAfterSyncA", items[0].Member)
	assert.Equal(t, "callback failed: boom", items[0].Message)
	assert.Equal(t, "OnAfterSyncB", items[1].Member)
	assert.Equal(t, "callback panicked: kaput", items[1].Message)
	assert.Equal(t, 3, report.Statistics.Callbacks)
}

func TestEngine_CallbackOnlyAndPlainTypes(t *testing.T) {
	e := newTestEngine(t)
	s := scene.New("level")
	n := s.Root("Root")
	cb := n.AddComponent(&callbackOnly{}).(*callbackOnly)
	n.AddComponent(&plain{})

	report := e.SyncNode(context.Background(), n)
	assert.Equal(t, 1, cb.calls)
	assert.Equal(t, StatusComplete|StatusSkip, report.Status)
	assert.Equal(t, 1, report.Statistics.Components)
	assert.False(t, cb.IsDirty())

	plainOnly := e.SyncComponent(context.Background(), n.Components()[1])
	assert.Equal(t, StatusSkip, plainOnly.Status)
	assert.Equal(t, "Nothing to sync", plainOnly.Summary)
}

func TestEngine_Live(t *testing.T) {
	e := NewEngine(Config{CacheMetadata: true, Live: true}, newTestCatalog(t), zap.NewNop())
	s, p, _, _, _ := buildPlayerScene(t)

	assert.True(t, e.IsLive())
	assert.Equal(t, StatusUnsupported, e.SyncComponent(context.Background(), p).Status)
	assert.Equal(t, StatusUnsupported, e.SyncScene(context.Background(), s).Status)
	assert.Nil(t, p.Body)

	e.SetLive(false)
	assert.True(t, e.SyncScene(context.Background(), s).Status.Has(StatusComplete))
}

func TestEngine_SyncScenes(t *testing.T) {
	e := newTestEngine(t)
	s1, p1, _, _, _ := buildPlayerScene(t)
	s2, p2, _, _, _ := buildPlayerScene(t)

	var seen []*scene.Scene
	report, err := e.SyncScenes(context.Background(), []*scene.Scene{s1, s2}, func(done, total int, current *scene.Scene) {
		assert.Equal(t, 2, total)
		seen = append(seen, current)
	})
	require.NoError(t, err)
	assert.Equal(t, []*scene.Scene{s1, s2}, seen)
	assert.Equal(t, 2, report.Statistics.Components)
	assert.NotNil(t, p1.Body)
	assert.NotNil(t, p2.Body)
}

func TestEngine_SyncScenesCancelled(t *testing.T) {
	e := newTestEngine(t)
	s1, p1, _, _, _ := buildPlayerScene(t)
	s2, p2, _, _, _ := buildPlayerScene(t)

	ctx, cancel := context.WithCancel(context.Background())
	report, err := e.SyncScenes(ctx, []*scene.Scene{s1, s2}, func(int, int, *scene.Scene) { cancel() })

	assert.ErrorIs(t, err, context.Canceled)
	assert.NotNil(t, p1.Body)
	assert.Nil(t, p2.Body)
	assert.Equal(t, 1, report.Statistics.Components)
}

func TestEngine_CacheDisabledSameOutcome(t *testing.T) {
	cached := newTestEngine(t)
	uncached := NewEngine(Config{CacheMetadata: false}, newTestCatalog(t), zap.NewNop())

	s1, p1, _, _, _ := buildPlayerScene(t)
	s2, p2, _, _, _ := buildPlayerScene(t)

	r1 := cached.SyncScene(context.Background(), s1)
	r2 := uncached.SyncScene(context.Background(), s2)

	assert.Equal(t, r1.Status, r2.Status)
	assert.Equal(t, r1.Statistics, r2.Statistics)
	assert.Equal(t, p1.Gun.Ammo, p2.Gun.Ammo)
	assert.Zero(t, uncached.CacheCount())

	cached.SetCacheEnabled(false)
	assert.False(t, cached.CacheEnabled())
	assert.Zero(t, cached.CacheCount())
}

func TestEngine_HasSyncInformationAndInspect(t *testing.T) {
	e := newTestEngine(t)

	assert.True(t, e.HasSyncInformation(typeOf[*player]()))
	assert.True(t, e.HasSyncInformation(typeOf[*callbackOnly]()))
	assert.False(t, e.HasSyncInformation(typeOf[*plain]()))
	assert.False(t, e.HasSyncInformation(reflect.TypeOf(42)))

	summaries := e.Inspect([]reflect.Type{typeOf[*player](), typeOf[*broken]()})
	require.Len(t, summaries, 2)

	ps := summaries[0]
	assert.Equal(t, "player", ps.Type)
	assert.True(t, ps.Syncable)
	assert.Len(t, ps.Fields, 5)
	assert.Equal(t, "autoref.gun", ps.Fields[1].Target)
	assert.Equal(t, []string{"OnAfterSyncCount"}, ps.Callbacks)
	assert.Equal(t, []string{"Score"}, ps.Tracked)
	assert.Empty(t, ps.Items)

	bs := summaries[1]
	assert.Len(t, bs.Items, 2)
	assert.Len(t, bs.Fields, 1)
}

func TestEngine_LogsDiagnostics(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	e := NewEngine(Config{CacheMetadata: true}, newTestCatalog(t), zap.New(core))

	s := scene.New("level")
	s.Root("Root").AddComponent(&finder{})
	e.SyncScene(context.Background(), s)

	warnings := logs.FilterLevelExact(zap.WarnLevel).All()
	require.Len(t, warnings, 1)
	assert.Equal(t, "autoref.finder", warnings[0].ContextMap()["owner"])
	assert.Equal(t, "Root", warnings[0].ContextMap()["node"])

	infos := logs.FilterMessage("Auto-reference sync completed with warnings").All()
	assert.Len(t, infos, 1)

	e.ClearCache()
	assert.Len(t, logs.FilterMessage("Cleared cached auto-reference information of 1 type").All(), 1)
}
