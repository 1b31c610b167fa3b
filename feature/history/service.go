package history

import (
	"context"

	"auto-reference/core/autoref"
	"auto-reference/feature/project"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service records project batches and serves them back.
type Service struct {
	repo   *Repository
	logger *zap.Logger
}

// NewService creates a history service.
func NewService(repo *Repository, logger *zap.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Record stores a finished batch. It implements project.Recorder.
func (s *Service) Record(ctx context.Context, res project.BatchResult) error {
	run := newRun(res)
	if err := s.repo.Create(ctx, run); err != nil {
		return err
	}
	s.logger.Debug("Sync run recorded", zap.String("id", run.ID), zap.Int("items", len(run.Items)))
	return nil
}

// List returns recorded runs, newest first.
func (s *Service) List(ctx context.Context, f Filter) ([]SyncRun, error) {
	return s.repo.List(ctx, f)
}

// Get returns a run with its diagnostics.
func (s *Service) Get(ctx context.Context, id string) (*SyncRun, error) {
	return s.repo.Get(ctx, id)
}

func newRun(res project.BatchResult) *SyncRun {
	stats := res.Report.Statistics
	run := &SyncRun{
		ID:         uuid.NewString(),
		Kind:       string(res.Kind),
		Status:     res.Report.Status.String(),
		Summary:    res.Report.Summary,
		DryRun:     res.DryRun,
		Scenes:     res.Scenes,
		Saved:      res.Saved,
		Failed:     res.Failed,
		Components: stats.Components,
		Nodes:      stats.Nodes,
		Modified:   stats.Modified,
		Errors:     stats.Errors,
		Warnings:   stats.Warnings,
		StartedAt:  res.Started,
		DurationMS: res.Duration.Milliseconds(),
	}
	for _, item := range res.Report.Items() {
		run.Items = append(run.Items, newLogItem(item))
	}
	return run
}

func newLogItem(item autoref.LogItem) SyncLogItem {
	return SyncLogItem{
		Severity:    item.Severity.String(),
		Package:     item.Package,
		Type:        item.Type,
		Member:      item.Member,
		Annotation:  item.Annotation,
		Message:     item.Message,
		Node:        item.Node,
		Suggestions: item.Suggestions,
	}
}
