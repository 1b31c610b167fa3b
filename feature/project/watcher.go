package project

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce is how long the watcher waits for writes to settle.
const DefaultDebounce = 250 * time.Millisecond

// WatchOptions configure a Watcher.
type WatchOptions struct {
	// AssetsDir, when set, is watched too; an asset change resets OnAssets and
	// re-syncs every persisted scene.
	AssetsDir string
	// OnAssets runs before the re-sync triggered by an asset change.
	OnAssets func()
	// OnBatch receives every batch the watcher runs.
	OnBatch func(BatchResult, error)
	// Debounce defaults to DefaultDebounce.
	Debounce time.Duration
	// DryRun syncs without saving.
	DryRun bool
}

// Watcher re-syncs scenes when their files change on disk.
type Watcher struct {
	service *Service
	repo    *DirRepository
	opts    WatchOptions
	logger  *zap.Logger
	watcher *fsnotify.Watcher

	mu      sync.Mutex
	timer   *time.Timer
	scenes  map[string]struct{}
	assets  bool
	ignored map[string]time.Time
	closed  bool

	stop chan struct{}
	wg   sync.WaitGroup
}

// NewWatcher creates a watcher over the scenes of repo.
func NewWatcher(service *Service, repo *DirRepository, opts WatchOptions, logger *zap.Logger) (*Watcher, error) {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	return &Watcher{
		service: service,
		repo:    repo,
		opts:    opts,
		logger:  logger,
		watcher: fw,
		scenes:  make(map[string]struct{}),
		ignored: make(map[string]time.Time),
		stop:    make(chan struct{}),
	}, nil
}

// Start adds the watched directories and begins handling events.
func (w *Watcher) Start() error {
	if err := os.MkdirAll(w.repo.Dir(), 0o755); err != nil {
		return fmt.Errorf("failed to create scene directory: %w", err)
	}
	if err := w.addTree(w.repo.Dir()); err != nil {
		return err
	}
	if w.opts.AssetsDir != "" {
		if err := w.addTree(w.opts.AssetsDir); err != nil {
			return err
		}
	}

	w.wg.Add(1)
	go w.loop()
	return nil
}

// Close stops the watcher and waits for the event loop and any running sync
// to finish.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()

	close(w.stop)
	w.wg.Wait()
	return w.watcher.Close()
}

// Run starts the watcher and blocks until ctx is done.
func (w *Watcher) Run(ctx context.Context) error {
	if err := w.Start(); err != nil {
		return err
	}
	<-ctx.Done()
	return w.Close()
}

func (w *Watcher) addTree(root string) error {
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") && p != root {
			return filepath.SkipDir
		}
		if err := w.watcher.Add(p); err != nil {
			return fmt.Errorf("failed to watch directory %s: %w", p, err)
		}
		w.logger.Debug("Watching directory", zap.String("dir", p))
		return nil
	})
	if os.IsNotExist(err) {
		w.logger.Warn("Watched directory does not exist", zap.String("dir", root))
		return nil
	}
	return err
}

func (w *Watcher) loop() {
	defer w.wg.Done()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handle(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("File watcher error", zap.Error(err))

		case <-w.stop:
			return
		}
	}
}

func (w *Watcher) handle(event fsnotify.Event) {
	if strings.HasPrefix(filepath.Base(event.Name), ".") {
		return
	}
	if event.Op.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.addTree(event.Name); err != nil {
				w.logger.Warn("Failed to watch new directory", zap.Error(err))
			}
			return
		}
	}
	if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Rename) {
		return
	}
	if filepath.Ext(event.Name) != SceneExtension {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	now := time.Now()
	for name, until := range w.ignored {
		if !now.Before(until) {
			delete(w.ignored, name)
		}
	}

	if name, ok := w.repo.NameOf(event.Name); ok {
		if _, ok := w.ignored[name]; ok {
			return
		}
		w.scenes[name] = struct{}{}
	} else if w.opts.AssetsDir != "" {
		w.assets = true
	} else {
		return
	}

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.opts.Debounce, w.fire)
}

// fire runs a flush unless the watcher is closed. Close waits for it.
func (w *Watcher) fire() {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	w.wg.Add(1)
	w.mu.Unlock()

	defer w.wg.Done()
	w.flush()
}

// flush syncs everything collected since the last flush.
func (w *Watcher) flush() {
	w.mu.Lock()
	names := make([]string, 0, len(w.scenes))
	for name := range w.scenes {
		names = append(names, name)
	}
	assets := w.assets
	w.scenes = make(map[string]struct{})
	w.assets = false
	w.mu.Unlock()

	sort.Strings(names)
	ctx := context.Background()
	opts := Options{DryRun: w.opts.DryRun}

	if assets {
		w.logger.Info("Assets changed, syncing persisted scenes")
		if w.opts.OnAssets != nil {
			w.opts.OnAssets()
		}
		w.done(w.service.SyncPersisted(ctx, opts))
		return
	}

	for _, name := range names {
		w.logger.Info("Scene changed", zap.String("scene", name))
		w.done(w.service.SyncScene(ctx, name, opts))
	}
}

// done ignores the writes of scenes the watcher saved itself.
func (w *Watcher) done(res BatchResult, err error) {
	if err != nil {
		w.logger.Warn("Watch sync failed", zap.Error(err))
	}

	w.mu.Lock()
	until := time.Now().Add(2 * w.opts.Debounce)
	for _, name := range res.Saved {
		w.ignored[name] = until
	}
	w.mu.Unlock()

	if w.opts.OnBatch != nil {
		w.opts.OnBatch(res, err)
	}
}
