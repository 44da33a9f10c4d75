package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"progress-tracker/internal/config"
	"progress-tracker/internal/difficulty"
)

func newTestRoot(t *testing.T, mock *mockAPI) (*RootCommand, *bytes.Buffer, *int, **config.Config) {
	t.Helper()
	t.Setenv(config.ConfigFileEnv, "")

	out := &bytes.Buffer{}
	builds := 0
	var seen *config.Config
	build := func(ctx context.Context, cfg *config.Config) (*Runtime, error) {
		builds++
		seen = cfg
		return &Runtime{API: mock, Close: func() error { return nil }}, nil
	}
	return NewRootCommand(build, out), out, &builds, &seen
}

func TestRootCommand_ProjectWorkflow(t *testing.T) {
	mock := newMockAPI()
	ctx := context.Background()

	run := func(args ...string) string {
		root, out, _, _ := newTestRoot(t, mock)
		root.Command().SetArgs(append(args, "--locale", "en"))
		require.NoError(t, root.Execute(ctx))
		return out.String()
	}

	assert.Contains(t, run("project", "add", "Launch"), "Created project 1: Launch")
	assert.Contains(t, run("task", "add", "1", "low", "Announce"), "Created task 2 (low)")
	assert.Contains(t, run("task", "add", "1", "high", "Build"), "Created task 3 (high)")
	assert.Contains(t, run("task", "toggle", "3"), "progress: 92.31%")
	assert.Contains(t, run("project", "show", "1"), "Progress: 92.31%")
	assert.Contains(t, run("project", "list"), "Page 1 of 1 (1 projects)")
	assert.Contains(t, run("task", "delete", "2"), "Deleted task 2")
}

func TestRootCommand_SeedDefaults(t *testing.T) {
	mock := newMockAPI()
	root, _, _, _ := newTestRoot(t, mock)

	root.Command().SetArgs([]string{"seed"})
	require.NoError(t, root.Execute(context.Background()))
	assert.Equal(t, [][2]int{{DefaultSeedProjects, DefaultSeedMaxTasks}}, mock.seedCalls)

	root, _, _, _ = newTestRoot(t, mock)
	root.Command().SetArgs([]string{"seed", "--projects", "3", "--max-tasks", "7"})
	require.NoError(t, root.Execute(context.Background()))
	assert.Equal(t, [2]int{3, 7}, mock.seedCalls[1])
}

func TestRootCommand_DifficultiesSkipsStore(t *testing.T) {
	root, out, builds, _ := newTestRoot(t, newMockAPI())

	root.Command().SetArgs([]string{"difficulties"})
	require.NoError(t, root.Execute(context.Background()))
	assert.Equal(t, 0, *builds)
	assert.Contains(t, out.String(), difficulty.High.Label())
}

func TestRootCommand_FlagOverrides(t *testing.T) {
	root, _, builds, seen := newTestRoot(t, newMockAPI())

	root.Command().SetArgs([]string{
		"project", "list",
		"--db-dir", "/tmp/pt-test",
		"--strategy", "memory",
		"--app-timeout", "5s",
	})
	require.NoError(t, root.Execute(context.Background()))
	require.Equal(t, 1, *builds)

	cfg := *seen
	assert.Equal(t, "/tmp/pt-test", cfg.Database.Dir)
	assert.Equal(t, config.StrategyMemory, cfg.Progress.Strategy)
	assert.Equal(t, 5*time.Second, cfg.Application.Timeout)
}

func TestRootCommand_ConfigFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pt.yaml")
	require.NoError(t, os.WriteFile(path, []byte("database:\n  filename: from-file.db\nprogress:\n  strategy: memory\n"), 0o600))
	t.Setenv("PT_PROGRESS_STRATEGY", "aggregate")

	root, _, _, seen := newTestRoot(t, newMockAPI())
	root.Command().SetArgs([]string{"project", "list", "--config", path})
	require.NoError(t, root.Execute(context.Background()))

	cfg := *seen
	assert.Equal(t, "from-file.db", cfg.Database.Filename)
	assert.Equal(t, config.StrategyAggregate, cfg.Progress.Strategy)
}

func TestRootCommand_InvalidConfig(t *testing.T) {
	root, _, builds, _ := newTestRoot(t, newMockAPI())

	root.Command().SetArgs([]string{"project", "list", "--strategy", "guess"})
	err := root.Execute(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load configuration")
	assert.Equal(t, 0, *builds)
}

func TestRootCommand_BuildFailure(t *testing.T) {
	t.Setenv(config.ConfigFileEnv, "")
	root := NewRootCommand(func(ctx context.Context, cfg *config.Config) (*Runtime, error) {
		return nil, errors.New("database unavailable")
	}, &bytes.Buffer{})

	root.Command().SetArgs([]string{"project", "show", "1"})
	err := root.Execute(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database unavailable")
}

func TestNewRuntime_SQLite(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Database.Dir = filepath.Join(t.TempDir(), "nested")
	cfg.Logging.Level = "error"

	rt, err := NewRuntime(context.Background(), cfg)
	require.NoError(t, err)
	defer rt.Close()

	ctx := context.Background()
	require.NoError(t, rt.API.Ping(ctx))

	p, err := rt.API.CreateProject(ctx, "Persisted")
	require.NoError(t, err)
	pct, err := rt.API.ProjectProgress(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 0.0, pct)

	_, err = os.Stat(cfg.GetDatabasePath())
	assert.NoError(t, err)
}
