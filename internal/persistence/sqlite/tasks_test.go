package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"example.com/dashboard/internal/domain"
)

func TestTaskRepositoryPersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.db")
	ctx := context.Background()
	created := time.Date(2025, time.March, 1, 9, 30, 0, 0, time.UTC)

	repo, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, domain.Task{ID: "t-1", Title: "Draft brief", CreatedBy: "Alex Kim", CreatedAt: created}))
	require.NoError(t, repo.Create(ctx, domain.Task{ID: "t-2", Title: "Review copy", Description: "landing page", CreatedBy: "Alex Kim", CreatedAt: created}))
	require.NoError(t, repo.Close())

	repo, err = Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })

	tasks, err := repo.List(ctx, 10)
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	require.Equal(t, "t-2", tasks[0].ID)
	require.Equal(t, "landing page", tasks[0].Description)
	require.True(t, created.Equal(tasks[1].CreatedAt))
}
