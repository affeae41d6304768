package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/sku-target-cleaner/internal/domain/entity"
)

func TestMemoryRunRepository(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewMemoryRunRepository()
	defer repo.Close()

	base := time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC)
	require.NoError(t, repo.SaveRun(ctx, entity.Run{ID: "a", Status: entity.RunOK, Records: 10, CreatedAt: base}))
	require.NoError(t, repo.SaveRun(ctx, entity.Run{ID: "b", Status: entity.RunEmpty, CreatedAt: base.Add(time.Minute)}))
	require.NoError(t, repo.SaveRun(ctx, entity.Run{ID: "c", Status: entity.RunFailed, Error: "boom", CreatedAt: base.Add(2 * time.Minute)}))

	runs, err := repo.ListRuns(ctx, 0)
	require.NoError(t, err)
	require.Len(t, runs, 3)
	assert.Equal(t, []string{"c", "b", "a"}, []string{runs[0].ID, runs[1].ID, runs[2].ID})

	runs, err = repo.ListRuns(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, runs, 2)

	run, err := repo.GetRun(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, 10, run.Records)

	_, err = repo.GetRun(ctx, "missing")
	assert.Error(t, err)
}
