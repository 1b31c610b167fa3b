package history

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// ErrRunNotFound is returned when no run has the requested id.
var ErrRunNotFound = errors.New("sync run not found")

// Filter narrows a run listing.
type Filter struct {
	Kind   string
	Limit  int
	Offset int
}

const (
	defaultLimit = 20
	maxLimit     = 200
)

// Repository stores sync runs with GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a repository over db.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Migrate creates or updates the history tables.
func (r *Repository) Migrate() error {
	if err := r.db.AutoMigrate(&SyncRun{}, &SyncLogItem{}); err != nil {
		return fmt.Errorf("failed to migrate history tables: %w", err)
	}
	return nil
}

// Create inserts run with its items in one transaction.
func (r *Repository) Create(ctx context.Context, run *SyncRun) error {
	if err := r.db.WithContext(ctx).Create(run).Error; err != nil {
		return fmt.Errorf("failed to save sync run: %w", err)
	}
	return nil
}

// List returns runs newest first, without items.
func (r *Repository) List(ctx context.Context, f Filter) ([]SyncRun, error) {
	limit := f.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	q := r.db.WithContext(ctx).Order("started_at DESC").Order("id DESC").Limit(limit).Offset(f.Offset)
	if f.Kind != "" {
		q = q.Where("kind = ?", f.Kind)
	}

	var runs []SyncRun
	if err := q.Find(&runs).Error; err != nil {
		return nil, fmt.Errorf("failed to list sync runs: %w", err)
	}
	return runs, nil
}

// Get returns one run with its items in insertion order.
func (r *Repository) Get(ctx context.Context, id string) (*SyncRun, error) {
	var run SyncRun
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		First(&run, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get sync run: %w", err)
	}
	return &run, nil
}
