package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"progress-tracker/internal/progress"
	"progress-tracker/internal/repository"
	"progress-tracker/internal/repository/sqlite"
)

func setupStore(t *testing.T) *sqlite.SQLiteRepository {
	t.Helper()
	repo, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func setupServices(t *testing.T, strategy progress.Strategy) (*ServiceContainer, *sqlite.SQLiteRepository) {
	t.Helper()
	repo := setupStore(t)
	calc := progress.NewCalculator(progress.NewSource(strategy, repo), strategy, nil)
	return NewServiceContainer(repo, calc, nil, nil), repo
}

func seedProject(t *testing.T, repo repository.Store, name string, tasks ...repository.Task) int64 {
	t.Helper()
	ctx := context.Background()

	project := &repository.Project{Name: name}
	require.NoError(t, repo.CreateProject(ctx, project))
	for _, task := range tasks {
		task.ProjectID = project.ID
		require.NoError(t, repo.CreateTask(ctx, &task))
	}
	return project.ID
}
