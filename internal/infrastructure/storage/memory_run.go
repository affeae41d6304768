package storage

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/yourusername/sku-target-cleaner/internal/domain/entity"
	"github.com/yourusername/sku-target-cleaner/internal/domain/repository"
)

type memoryRunRepository struct {
	mu   sync.RWMutex
	runs map[string]entity.Run
}

// NewMemoryRunRepository in-memory run history, used when no database is
// configured and in tests
func NewMemoryRunRepository() repository.RunRepository {
	return &memoryRunRepository{
		runs: make(map[string]entity.Run),
	}
}

// SaveRun stores a run, replacing one with the same ID
func (m *memoryRunRepository) SaveRun(ctx context.Context, run entity.Run) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.runs[run.ID] = run
	return nil
}

// ListRuns newest first
func (m *memoryRunRepository) ListRuns(ctx context.Context, limit int) ([]entity.Run, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	runs := make([]entity.Run, 0, len(m.runs))
	for _, run := range m.runs {
		runs = append(runs, run)
	}
	sort.Slice(runs, func(i, j int) bool {
		if runs[i].CreatedAt.Equal(runs[j].CreatedAt) {
			return runs[i].ID > runs[j].ID
		}
		return runs[i].CreatedAt.After(runs[j].CreatedAt)
	})

	if limit > 0 && len(runs) > limit {
		runs = runs[:limit]
	}
	return runs, nil
}

// GetRun looks a run up by ID
func (m *memoryRunRepository) GetRun(ctx context.Context, id string) (*entity.Run, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	run, exists := m.runs[id]
	if !exists {
		return nil, fmt.Errorf("run %s not found", id)
	}
	return &run, nil
}

func (m *memoryRunRepository) Close() error {
	return nil
}
