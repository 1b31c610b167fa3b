package autoref

import (
	"context"
	"reflect"
	"sync"
	"sync/atomic"

	"auto-reference/core/scene"
	"auto-reference/core/utils"

	"go.uber.org/zap"
)

// ProgressFunc observes the progress of a multi-scene batch.
type ProgressFunc func(done, total int, current *scene.Scene)

// Engine runs sync batches.
type Engine struct {
	cache   *MetadataCache
	assets  AssetResolver
	watcher *Watcher
	logger  *zap.Logger
	live    atomic.Bool

	mu     sync.Mutex
	active *session
}

// NewEngine creates an engine. assets may be nil, in which case external
// fields are rejected when their type is built.
func NewEngine(cfg Config, assets AssetResolver, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}

	var checker TypeChecker
	var paths PathResolver
	if assets != nil {
		checker, paths = assets, assets
	}

	e := &Engine{
		cache:   NewMetadataCache(NewBuilder(checker), cfg.CacheMetadata),
		assets:  assets,
		watcher: NewWatcher(paths),
		logger:  logger,
	}
	e.live.Store(cfg.Live)
	return e
}

// SyncComponent syncs one component.
func (e *Engine) SyncComponent(ctx context.Context, c scene.Component) ReportInfo {
	return e.batch(ctx, func(s *session) SyncStatus {
		return s.syncComponent(c)
	})
}

// SyncNode syncs every component of n, in declaration order.
func (e *Engine) SyncNode(ctx context.Context, n *scene.Node) ReportInfo {
	return e.batch(ctx, func(s *session) SyncStatus {
		return s.syncNode(n)
	})
}

// SyncScene syncs every node of sc in depth-first pre-order.
func (e *Engine) SyncScene(ctx context.Context, sc *scene.Scene) ReportInfo {
	return e.batch(ctx, func(s *session) SyncStatus {
		return s.syncScene(sc)
	})
}

// SyncScenes syncs scenes in order as one batch. The context is checked
// between scenes; when it is done the partial report is returned with its error.
func (e *Engine) SyncScenes(ctx context.Context, scenes []*scene.Scene, progress ProgressFunc) (ReportInfo, error) {
	var cancelled error
	report := e.batch(ctx, func(s *session) SyncStatus {
		status := StatusNone
		for i, sc := range scenes {
			if err := ctx.Err(); err != nil {
				cancelled = err
				break
			}
			status |= s.syncScene(sc)
			if progress != nil {
				progress(i+1, len(scenes), sc)
			}
		}
		return status
	})
	return report, cancelled
}

// batch runs fn in the active session, or in a new outermost session.
// Nested batches only return their status; their diagnostics belong to the outer report.
func (e *Engine) batch(ctx context.Context, fn func(*session) SyncStatus) ReportInfo {
	if e.live.Load() {
		return ReportInfo{Status: StatusUnsupported, Summary: StatusUnsupported.Summary()}
	}

	s, outermost := e.begin(ctx)
	if !outermost {
		status := fn(s)
		s.agg.fold(status)
		return ReportInfo{Status: status, Summary: status.Summary()}
	}
	defer e.end()

	s.agg.fold(fn(s))
	report := s.agg.report()

	e.logger.Info(report.Summary,
		zap.Stringer("status", report.Status),
		zap.Int("types", report.Statistics.Types),
		zap.Int("components", report.Statistics.Components),
		zap.Int("modified", report.Statistics.Modified),
		zap.Int("errors", report.Statistics.Errors),
		zap.Int("warnings", report.Statistics.Warnings),
	)
	return report
}

func (e *Engine) begin(ctx context.Context) (*session, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.active != nil {
		return e.active, false
	}
	e.active = newSession(e, ctx)
	return e.active, true
}

func (e *Engine) end() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.active = nil
}

// IsSyncing reports whether c is being synced by the running batch,
// for example while its callbacks run.
func (e *Engine) IsSyncing(c scene.Component) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.active == nil {
		return false
	}
	_, ok := e.active.inFlight[c]
	return ok
}

// HasSyncInformation reports whether components of type t have anything to sync.
func (e *Engine) HasSyncInformation(t reflect.Type) bool {
	return scene.IsComponentType(t) && e.cache.GetOrBuild(t).IsSyncable()
}

// ClearCache discards all cached metadata and returns how many types were discarded.
func (e *Engine) ClearCache() int {
	n := e.cache.Clear()
	if n > 0 {
		e.logger.Info("Cleared cached auto-reference information of " + utils.FormatCount(n, "type"))
	}
	return n
}

// CacheCount returns the number of types with cached metadata.
func (e *Engine) CacheCount() int {
	return e.cache.Count()
}

// SetCacheEnabled toggles metadata caching.
func (e *Engine) SetCacheEnabled(enabled bool) {
	e.cache.SetEnabled(enabled)
}

// CacheEnabled reports whether metadata caching is active.
func (e *Engine) CacheEnabled() bool {
	return e.cache.Enabled()
}

// SetLive marks the host as live. While live, every sync returns StatusUnsupported.
func (e *Engine) SetLive(live bool) {
	e.live.Store(live)
}

// IsLive reports whether the host is live.
func (e *Engine) IsLive() bool {
	return e.live.Load()
}

func (e *Engine) assetPath(v any) (string, bool) {
	if e.assets == nil {
		return "", false
	}
	return e.assets.PathOf(v)
}
