package project

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"auto-reference/core/autoref"
	"auto-reference/core/scene"

	"go.uber.org/zap"
)

// Kind names a batch sync operation.
type Kind string

const (
	KindOpen      Kind = "open"
	KindPersisted Kind = "persisted"
	KindBuild     Kind = "build"
	KindScene     Kind = "scene"
)

// ParseKind validates a graph kind given by name.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(s); k {
	case KindOpen, KindPersisted, KindBuild:
		return k, nil
	default:
		return "", fmt.Errorf("unknown sync kind %q (want open, persisted or build)", s)
	}
}

// Recorder stores the outcome of finished batches.
type Recorder interface {
	Record(ctx context.Context, run BatchResult) error
}

// Options tune one batch.
type Options struct {
	// DryRun syncs without writing modified scenes back.
	DryRun bool
}

// BatchResult is the outcome of one service batch.
type BatchResult struct {
	Kind     Kind               `json:"kind"`
	Scenes   []string           `json:"scenes"`
	Saved    []string           `json:"saved"`
	Failed   map[string]string  `json:"failed,omitempty"`
	DryRun   bool               `json:"dry_run"`
	Started  time.Time          `json:"started"`
	Duration time.Duration      `json:"duration"`
	Report   autoref.ReportInfo `json:"report"`

	errs map[string]error
}

// SceneInfo describes a scene known to the project.
type SceneInfo struct {
	Name      string `json:"name"`
	Persisted bool   `json:"persisted"`
	Open      bool   `json:"open"`
	Build     bool   `json:"build"`
}

// CacheInfo describes the engine metadata cache.
type CacheInfo struct {
	Enabled bool `json:"enabled"`
	Count   int  `json:"count"`
}

// Service runs sync batches over the project's scenes.
type Service struct {
	engine    *autoref.Engine
	repo      Repository
	manifest  *Manifest
	workspace *Workspace
	registry  *scene.Registry
	recorder  Recorder
	logger    *zap.Logger

	saveModified bool

	// mu serializes batches; an Engine runs one outermost batch at a time.
	mu sync.Mutex
}

// NewService creates a project service.
func NewService(engine *autoref.Engine, repo Repository, manifest *Manifest, registry *scene.Registry, logger *zap.Logger, saveModified bool) *Service {
	if manifest == nil {
		manifest = &Manifest{}
	}
	if registry == nil {
		registry = scene.DefaultRegistry
	}
	return &Service{
		engine:       engine,
		repo:         repo,
		manifest:     manifest,
		workspace:    NewWorkspace(),
		registry:     registry,
		logger:       logger,
		saveModified: saveModified,
	}
}

// SetRecorder enables history recording of every batch.
func (s *Service) SetRecorder(r Recorder) {
	s.recorder = r
}

// Workspace returns the open scenes.
func (s *Service) Workspace() *Workspace {
	return s.workspace
}

// Manifest returns the project manifest.
func (s *Service) Manifest() *Manifest {
	return s.manifest
}

// Scenes lists persisted and open scenes.
func (s *Service) Scenes(ctx context.Context) ([]SceneInfo, error) {
	names, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	var infos []SceneInfo
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		seen[name] = true
		infos = append(infos, SceneInfo{
			Name:      name,
			Persisted: true,
			Open:      s.workspace.IsOpen(name),
			Build:     s.manifest.IsBuildScene(name),
		})
	}
	for _, name := range s.workspace.Names() {
		if seen[name] {
			continue
		}
		infos = append(infos, SceneInfo{Name: name, Open: true, Build: s.manifest.IsBuildScene(name)})
	}
	return infos, nil
}

// Open loads a persisted scene into the workspace.
func (s *Service) Open(ctx context.Context, name string) (*scene.Scene, error) {
	if sc, ok := s.workspace.Get(name); ok {
		return sc, nil
	}
	sc, err := s.repo.Load(ctx, name)
	if err != nil {
		return nil, err
	}
	s.workspace.Open(sc)
	s.logger.Info("Scene opened", zap.String("scene", sc.Name))
	return sc, nil
}

// Close removes a scene from the workspace, discarding unsaved changes.
func (s *Service) Close(name string) error {
	if !s.workspace.Close(name) {
		return fmt.Errorf("%w: %s is not open", ErrSceneNotFound, name)
	}
	s.logger.Info("Scene closed", zap.String("scene", sceneName(name)))
	return nil
}

// SyncOpen syncs every open scene. Open scenes are never written back.
func (s *Service) SyncOpen(ctx context.Context, opts Options) (BatchResult, error) {
	return s.run(ctx, KindOpen, s.workspace.Names(), opts)
}

// SyncPersisted syncs every persisted scene and saves the ones that changed.
func (s *Service) SyncPersisted(ctx context.Context, opts Options) (BatchResult, error) {
	names, err := s.repo.List(ctx)
	if err != nil {
		return BatchResult{}, err
	}
	return s.run(ctx, KindPersisted, names, opts)
}

// SyncBuild syncs the scenes listed in the manifest build, in build order.
func (s *Service) SyncBuild(ctx context.Context, opts Options) (BatchResult, error) {
	return s.run(ctx, KindBuild, s.manifest.Build.Scenes, opts)
}

// SyncScene syncs a single scene, open or persisted.
func (s *Service) SyncScene(ctx context.Context, name string, opts Options) (BatchResult, error) {
	res, err := s.run(ctx, KindScene, []string{sceneName(name)}, opts)
	if err != nil {
		return res, err
	}
	if err, failed := res.errs[sceneName(name)]; failed {
		return res, err
	}
	return res, nil
}

// Sync dispatches a graph kind to its batch operation.
func (s *Service) Sync(ctx context.Context, kind Kind, opts Options) (BatchResult, error) {
	switch kind {
	case KindOpen:
		return s.SyncOpen(ctx, opts)
	case KindPersisted:
		return s.SyncPersisted(ctx, opts)
	case KindBuild:
		return s.SyncBuild(ctx, opts)
	default:
		return BatchResult{}, fmt.Errorf("unknown sync kind %q", kind)
	}
}

// run resolves names to scenes, syncs them as one batch and saves modified
// persisted scenes. Scenes that fail to load or save are reported in Failed.
func (s *Service) run(ctx context.Context, kind Kind, names []string, opts Options) (BatchResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res := BatchResult{
		Kind:    kind,
		Scenes:  []string{},
		Saved:   []string{},
		DryRun:  opts.DryRun,
		Started: time.Now(),
	}

	var scenes []*scene.Scene
	loaded := make(map[*scene.Scene]bool)
	for _, name := range names {
		sc, fromRepo, err := s.resolve(ctx, name)
		if err != nil {
			res.fail(name, err)
			s.logger.Warn("Scene skipped", zap.String("scene", name), zap.Error(err))
			continue
		}
		scenes = append(scenes, sc)
		res.Scenes = append(res.Scenes, sc.Name)
		if fromRepo {
			loaded[sc] = true
		}
	}

	report, err := s.engine.SyncScenes(ctx, scenes, func(done, total int, current *scene.Scene) {
		s.logger.Debug("Scene synced",
			zap.String("scene", current.Name),
			zap.Int("done", done),
			zap.Int("total", total))
	})
	res.Report = report
	if err != nil {
		res.Duration = time.Since(res.Started)
		return res, fmt.Errorf("sync %s interrupted: %w", kind, err)
	}

	if s.saveModified && !opts.DryRun && kind != KindOpen {
		for _, sc := range scenes {
			if !loaded[sc] || !sc.IsDirty() {
				continue
			}
			if err := s.repo.Save(ctx, sc); err != nil {
				res.fail(sc.Name, fmt.Errorf("save: %w", err))
				s.logger.Error("Failed to save scene", zap.String("scene", sc.Name), zap.Error(err))
				continue
			}
			sc.ClearDirty()
			res.Saved = append(res.Saved, sc.Name)
		}
	}

	res.Duration = time.Since(res.Started)
	s.logger.Info("Sync batch finished",
		zap.String("kind", string(kind)),
		zap.Int("scenes", len(res.Scenes)),
		zap.Int("saved", len(res.Saved)),
		zap.Int("failed", len(res.Failed)),
		zap.Stringer("status", report.Status),
		zap.Duration("duration", res.Duration))

	s.record(ctx, res)
	return res, nil
}

func (r *BatchResult) fail(name string, err error) {
	if r.Failed == nil {
		r.Failed = make(map[string]string)
		r.errs = make(map[string]error)
	}
	r.Failed[name] = err.Error()
	r.errs[name] = err
}

// resolve prefers the open copy of a scene over the persisted one.
func (s *Service) resolve(ctx context.Context, name string) (*scene.Scene, bool, error) {
	if sc, ok := s.workspace.Get(name); ok {
		return sc, false, nil
	}
	sc, err := s.repo.Load(ctx, name)
	if err != nil {
		return nil, false, err
	}
	return sc, true, nil
}

func (s *Service) record(ctx context.Context, res BatchResult) {
	if s.recorder == nil {
		return
	}
	if err := s.recorder.Record(ctx, res); err != nil {
		s.logger.Warn("Failed to record sync run", zap.Error(err))
	}
}

// Cache reports the engine metadata cache state.
func (s *Service) Cache() CacheInfo {
	return CacheInfo{Enabled: s.engine.CacheEnabled(), Count: s.engine.CacheCount()}
}

// ClearCache drops cached type metadata and returns how many types were dropped.
func (s *Service) ClearCache() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.ClearCache()
}

// Types inspects every registered component type.
func (s *Service) Types() []autoref.TypeSummary {
	return s.engine.Inspect(s.registry.Types())
}

// IsNotFound reports whether err means a scene could not be found.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrSceneNotFound)
}
