package project

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type batchLog struct {
	mu      sync.Mutex
	results []BatchResult
}

func (l *batchLog) add(res BatchResult, _ error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.results = append(l.results, res)
}

func (l *batchLog) saved() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []string
	for _, r := range l.results {
		out = append(out, r.Saved...)
	}
	return out
}

func (l *batchLog) kinds() []Kind {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []Kind
	for _, r := range l.results {
		out = append(out, r.Kind)
	}
	return out
}

func TestWatcher_SyncsChangedScene(t *testing.T) {
	f := newFixture(t)
	repo := NewDirRepository(t.TempDir(), f.codec)
	svc := NewService(f.engine, repo, nil, f.registry, zap.NewNop(), true)

	log := &batchLog{}
	w, err := NewWatcher(svc, repo, WatchOptions{Debounce: 20 * time.Millisecond, OnBatch: log.add}, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, w.Start())
	defer w.Close()

	// A second repository writes as an editor would.
	editor := NewDirRepository(repo.Dir(), f.codec)
	require.NoError(t, editor.Save(context.Background(), turretScene("Main")))

	require.Eventually(t, func() bool {
		return len(log.saved()) > 0
	}, 5*time.Second, 20*time.Millisecond)
	assert.Equal(t, []string{"Main"}, log.saved())

	sc, err := repo.Load(context.Background(), "Main")
	require.NoError(t, err)
	assert.NotNil(t, findTurret(t, sc).Barrel)
}

func TestWatcher_AssetChangeResyncsPersisted(t *testing.T) {
	f := newFixture(t)
	repo := NewDirRepository(t.TempDir(), f.codec)
	svc := NewService(f.engine, repo, nil, f.registry, zap.NewNop(), true)
	assetsDir := t.TempDir()

	resets := make(chan struct{}, 4)
	log := &batchLog{}
	w, err := NewWatcher(svc, repo, WatchOptions{
		AssetsDir: assetsDir,
		OnAssets:  func() { resets <- struct{}{} },
		OnBatch:   log.add,
		Debounce:  20 * time.Millisecond,
	}, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, w.Start())
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(assetsDir, "palette.yaml"), []byte("type: x\n"), 0o644))

	select {
	case <-resets:
	case <-time.After(5 * time.Second):
		t.Fatal("asset change did not trigger a reset")
	}
	require.Eventually(t, func() bool {
		return len(log.kinds()) > 0
	}, 5*time.Second, 20*time.Millisecond)
	assert.Equal(t, KindPersisted, log.kinds()[0])
}

func TestWatcher_CloseTwice(t *testing.T) {
	f := newFixture(t)
	repo := NewDirRepository(filepath.Join(t.TempDir(), "scenes"), f.codec)
	svc := NewService(f.engine, repo, nil, f.registry, zap.NewNop(), true)

	w, err := NewWatcher(svc, repo, WatchOptions{}, zap.NewNop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, w.Run(ctx))
	assert.NoError(t, w.Close())

	_, err = os.Stat(repo.Dir())
	assert.NoError(t, err)
}

func TestWatcher_PrunesExpiredIgnores(t *testing.T) {
	f := newFixture(t)
	repo := NewDirRepository(t.TempDir(), f.codec)
	svc := NewService(f.engine, repo, nil, f.registry, zap.NewNop(), true)

	w, err := NewWatcher(svc, repo, WatchOptions{Debounce: time.Minute}, zap.NewNop())
	require.NoError(t, err)
	defer w.Close()

	w.ignored["Old"] = time.Now().Add(-time.Second)
	w.ignored["Main"] = time.Now().Add(time.Minute)

	w.handle(fsnotify.Event{Name: repo.PathOf("Other"), Op: fsnotify.Write})
	assert.NotContains(t, w.ignored, "Old")
	assert.Contains(t, w.ignored, "Main")
	assert.Contains(t, w.scenes, "Other")

	w.handle(fsnotify.Event{Name: repo.PathOf("Main"), Op: fsnotify.Write})
	assert.NotContains(t, w.scenes, "Main")
}

func TestWatcher_CloseWaitsForRunningSync(t *testing.T) {
	f := newFixture(t)
	repo := NewDirRepository(t.TempDir(), f.codec)
	svc := NewService(f.engine, repo, nil, f.registry, zap.NewNop(), true)

	started := make(chan struct{})
	var finished atomic.Bool
	w, err := NewWatcher(svc, repo, WatchOptions{
		AssetsDir: t.TempDir(),
		OnAssets: func() {
			close(started)
			time.Sleep(50 * time.Millisecond)
		},
		OnBatch: func(BatchResult, error) { finished.Store(true) },
	}, zap.NewNop())
	require.NoError(t, err)

	w.assets = true
	go w.fire()
	<-started
	require.NoError(t, w.Close())
	assert.True(t, finished.Load())

	// A timer firing after Close does nothing.
	w.assets = true
	w.fire()
}
