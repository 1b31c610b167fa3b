package cmd

import (
	"context"
	"fmt"

	"auto-reference/core/assets"
	"auto-reference/core/autoref"
	"auto-reference/core/config"
	"auto-reference/core/database"
	"auto-reference/core/logger"
	"auto-reference/core/scene"
	"auto-reference/core/storage"
	"auto-reference/feature/history"
	"auto-reference/feature/project"

	"go.uber.org/zap"
)

// stack is everything a command needs to run batches.
type stack struct {
	cfg     *config.Config
	logger  *zap.Logger
	client  storage.Client
	catalog *assets.Catalog
	engine  *autoref.Engine
	repo    project.Repository
	service *project.Service
	history *history.Service
}

// bootstrap loads configuration and wires the engine, the project service and,
// when the database is enabled and reachable, history recording.
func bootstrap(ctx context.Context) (*stack, error) {
	cfg, err := config.LoadConfig(configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	zap.ReplaceGlobals(logg)

	rt := &stack{cfg: cfg, logger: logg}

	if cfg.Project.NeedsStorage() {
		client, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return nil, fmt.Errorf("failed to create storage client: %w", err)
		}
		if err := storage.EnsureBucket(ctx, client, cfg.Storage.Bucket, cfg.Storage.Region); err != nil {
			return nil, err
		}
		rt.client = client
	}

	store, err := project.NewAssetStore(cfg.Project, rt.client, cfg.Storage.Bucket)
	if err != nil {
		return nil, err
	}
	rt.catalog = assets.NewCatalog(store, assets.DefaultTypes, logg)
	rt.engine = autoref.NewEngine(cfg.Sync, rt.catalog, logg)

	codec := &scene.Codec{Registry: scene.DefaultRegistry, Assets: rt.catalog}
	rt.repo, err = project.NewRepository(cfg.Project, rt.client, cfg.Storage.Bucket, codec)
	if err != nil {
		return nil, err
	}

	manifest, err := project.LoadManifest(cfg.Project.Manifest)
	if err != nil {
		return nil, err
	}

	rt.service = project.NewService(rt.engine, rt.repo, manifest, scene.DefaultRegistry, logg, cfg.Project.SaveModified)

	if cfg.Database.Enabled {
		rt.history = connectHistory(cfg.Database, logg)
		if rt.history != nil {
			rt.service.SetRecorder(rt.history)
		}
	}

	return rt, nil
}

// connectHistory returns nil when the optional database cannot be used.
func connectHistory(cfg database.Config, logg *zap.Logger) *history.Service {
	db, err := database.Connect(cfg)
	if err != nil {
		logg.Warn("Optional database connection failed, history disabled", zap.Error(err))
		return nil
	}
	repo := history.NewRepository(db)
	if err := repo.Migrate(); err != nil {
		logg.Warn("History migration failed, history disabled", zap.Error(err))
		return nil
	}
	logg.Info("Sync history enabled", zap.String("driver", cfg.Driver))
	return history.NewService(repo, logg)
}
