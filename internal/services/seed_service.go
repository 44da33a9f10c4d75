package services

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"progress-tracker/internal/difficulty"
	"progress-tracker/internal/errors"
	"progress-tracker/internal/repository"
)

var (
	seedVerbs = []string{"Review", "Write", "Fix", "Plan", "Test", "Deploy", "Refactor", "Document"}
	seedNouns = []string{"backlog", "API", "login page", "invoices", "reports", "database", "onboarding", "release notes"}
)

// seedServiceImpl implements the SeedService interface
type seedServiceImpl struct {
	repo   repository.Store
	tasks  TaskService
	rng    *rand.Rand
	logger *zap.Logger
}

// NewSeedService creates a SeedService. A nil rng seeds from the clock.
func NewSeedService(repo repository.Store, tasks TaskService, rng *rand.Rand, logger *zap.Logger) SeedService {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &seedServiceImpl{repo: repo, tasks: tasks, rng: rng, logger: logger}
}

// Seed creates the given number of projects, each with between zero and
// maxTasks tasks of random difficulty and completion.
func (s *seedServiceImpl) Seed(ctx context.Context, projects, maxTasks int) (*SeedResult, error) {
	if projects < 0 {
		return nil, errors.NewInvalidInputError("projects", projects, "must not be negative")
	}
	if maxTasks < 0 {
		return nil, errors.NewInvalidInputError("max_tasks", maxTasks, "must not be negative")
	}

	tiers := difficulty.All()
	result := &SeedResult{}

	for i := 0; i < projects; i++ {
		project := &repository.Project{Name: fmt.Sprintf("Project %d", i+1)}
		if err := s.repo.CreateProject(ctx, project); err != nil {
			return result, err
		}
		result.Projects++

		n := s.rng.Intn(maxTasks + 1)
		for j := 0; j < n; j++ {
			title := fmt.Sprintf("%s %s", seedVerbs[s.rng.Intn(len(seedVerbs))], seedNouns[s.rng.Intn(len(seedNouns))])
			task, err := s.tasks.CreateTask(ctx, project.ID, title, tiers[s.rng.Intn(len(tiers))])
			if err != nil {
				return result, err
			}
			if s.rng.Intn(2) == 1 {
				if _, err := s.tasks.ToggleTask(ctx, task.ID); err != nil {
					return result, err
				}
			}
			result.Tasks++
		}
	}

	s.logger.Info("Seeded store", zap.Int("projects", result.Projects), zap.Int("tasks", result.Tasks))
	return result, nil
}
