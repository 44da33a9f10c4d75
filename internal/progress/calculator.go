package progress

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"progress-tracker/internal/domain"
	"progress-tracker/internal/metrics"
	"progress-tracker/internal/repository"
)

// Strategy names how a Source obtains a project's effort.
type Strategy string

const (
	// StrategyAggregate sums effort inside the store with one query.
	StrategyAggregate Strategy = "aggregate"
	// StrategyMemory loads the tasks and sums them in Go.
	StrategyMemory Strategy = "memory"
)

// ParseStrategy validates a configured strategy name. Empty means aggregate.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(s) {
	case "", StrategyAggregate:
		return StrategyAggregate, nil
	case StrategyMemory:
		return StrategyMemory, nil
	default:
		return "", fmt.Errorf("unknown progress strategy %q", s)
	}
}

// Source supplies the weighted effort of one project.
type Source interface {
	ProjectEffort(ctx context.Context, projectID int64) (Effort, error)
}

// EffortStore is the part of the store that can sum effort itself.
type EffortStore interface {
	ProjectEffort(ctx context.Context, projectID int64) (repository.Effort, error)
}

// TaskLister is the part of the store that lists a project's tasks.
type TaskLister interface {
	ListTasksByProject(ctx context.Context, projectID int64) ([]*repository.Task, error)
}

type aggregateSource struct {
	store EffortStore
}

// FromStore returns a Source that delegates the sums to the store.
func FromStore(store EffortStore) Source {
	return aggregateSource{store: store}
}

func (s aggregateSource) ProjectEffort(ctx context.Context, projectID int64) (Effort, error) {
	e, err := s.store.ProjectEffort(ctx, projectID)
	if err != nil {
		return Effort{}, err
	}
	return Effort{Completed: e.Completed, Total: e.Total}, nil
}

type memorySource struct {
	lister TaskLister
	mapper *domain.TaskMapper
}

// FromTasks returns a Source that loads every task and tallies in memory.
func FromTasks(lister TaskLister) Source {
	return memorySource{lister: lister, mapper: domain.NewTaskMapper()}
}

func (s memorySource) ProjectEffort(ctx context.Context, projectID int64) (Effort, error) {
	rows, err := s.lister.ListTasksByProject(ctx, projectID)
	if err != nil {
		return Effort{}, err
	}
	return Tally(s.mapper.FromDatabaseSlice(rows)), nil
}

// Store is satisfied by every repository backend.
type Store interface {
	EffortStore
	TaskLister
}

// NewSource picks the Source for a strategy.
func NewSource(strategy Strategy, store Store) Source {
	if strategy == StrategyMemory {
		return FromTasks(store)
	}
	return FromStore(store)
}

// Calculator computes project progress from a Source. It holds no state
// between calls; every request recomputes.
type Calculator struct {
	source   Source
	strategy Strategy
	logger   *zap.Logger
}

// NewCalculator creates a calculator over source. The strategy is only used
// to label metrics and logs.
func NewCalculator(source Source, strategy Strategy, logger *zap.Logger) *Calculator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Calculator{source: source, strategy: strategy, logger: logger}
}

// Strategy reports which strategy the calculator was built with.
func (c *Calculator) Strategy() Strategy {
	return c.strategy
}

// ProjectProgress returns the weighted progress percentage of a project.
// Errors come from the source unchanged.
func (c *Calculator) ProjectProgress(ctx context.Context, projectID int64) (float64, error) {
	start := time.Now()

	effort, err := c.source.ProjectEffort(ctx, projectID)
	if err != nil {
		metrics.RecordProgress(string(c.strategy), 0, err)
		return 0, err
	}

	pct := effort.Percentage()
	metrics.RecordProgress(string(c.strategy), pct, nil)
	c.logger.Debug("Computed project progress",
		zap.Int64("project_id", projectID),
		zap.String("strategy", string(c.strategy)),
		zap.Int64("completed_effort", effort.Completed),
		zap.Int64("total_effort", effort.Total),
		zap.Float64("progress", pct),
		zap.Duration("elapsed", time.Since(start)),
	)
	return pct, nil
}

// TasksProgress returns the progress of tasks the caller already loaded,
// so the percentage always matches that task list.
func (c *Calculator) TasksProgress(tasks []domain.Task) float64 {
	pct := Compute(tasks)
	metrics.RecordProgress(string(c.strategy), pct, nil)
	return pct
}

// FromEffort converts a store aggregate into a percentage. It is used for
// list pages where the store already summed effort per project.
func FromEffort(e repository.Effort) float64 {
	return Effort{Completed: e.Completed, Total: e.Total}.Percentage()
}
