package repository

import (
	"context"

	"github.com/yourusername/sku-target-cleaner/internal/domain/entity"
)

// RunRepository processing history
type RunRepository interface {
	// SaveRun stores a run
	SaveRun(ctx context.Context, run entity.Run) error

	// ListRuns newest first; limit <= 0 means all
	ListRuns(ctx context.Context, limit int) ([]entity.Run, error)

	// GetRun looks a run up by ID
	GetRun(ctx context.Context, id string) (*entity.Run, error)

	// Close releases the underlying store
	Close() error
}
