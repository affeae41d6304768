package storage

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/sku-target-cleaner/internal/domain/entity"
)

func TestSQLiteRunRepository(t *testing.T) {
	ctx := context.Background()

	repo, err := NewSQLiteRunRepository(filepath.Join(t.TempDir(), "nested", "runs.db"))
	if err != nil && strings.Contains(err.Error(), "cgo") {
		t.Skip("go-sqlite3 needs cgo")
	}
	require.NoError(t, err)
	defer repo.Close()

	created := time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC)
	first := entity.Run{
		ID:          "run-1",
		Source:      "targets.xlsx",
		GradeSource: "grades.xlsx",
		Month:       "2026-01-01",
		Brand:       "freemir",
		Records:     42,
		Skipped:     7,
		Status:      entity.RunOK,
		CreatedAt:   created,
	}
	second := entity.Run{
		ID:          "run-2",
		Source:      "targets.xlsx",
		GradeSource: "grades.xlsx",
		Status:      entity.RunFailed,
		Error:       "no store columns found",
		CreatedAt:   created.Add(time.Hour),
	}
	require.NoError(t, repo.SaveRun(ctx, first))
	require.NoError(t, repo.SaveRun(ctx, second))

	runs, err := repo.ListRuns(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "run-2", runs[0].ID)
	assert.Equal(t, entity.RunFailed, runs[0].Status)
	assert.Equal(t, "no store columns found", runs[0].Error)

	got, err := repo.GetRun(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, 42, got.Records)
	assert.Equal(t, 7, got.Skipped)
	assert.Equal(t, "freemir", got.Brand)
	assert.True(t, created.Equal(got.CreatedAt))

	_, err = repo.GetRun(ctx, "run-404")
	assert.ErrorContains(t, err, "not found")

	_, err = NewSQLiteRunRepository("")
	assert.Error(t, err)
}
