package services

import (
	"context"

	"go.uber.org/zap"

	"progress-tracker/internal/config"
	"progress-tracker/internal/difficulty"
	"progress-tracker/internal/domain"
	"progress-tracker/internal/errors"
	"progress-tracker/internal/metrics"
	"progress-tracker/internal/repository"
	"progress-tracker/internal/validation"
)

// taskServiceImpl implements the TaskService interface
type taskServiceImpl struct {
	repo          repository.Store
	mapper        *domain.Mapper
	taskValidator *validation.TaskValidator
	logger        *zap.Logger
}

// NewTaskService creates a new TaskService instance
func NewTaskService(repo repository.Store, cfg *config.Config, logger *zap.Logger) TaskService {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &taskServiceImpl{
		repo:          repo,
		mapper:        domain.NewMapper(),
		taskValidator: validation.NewTaskValidator(),
		logger:        logger,
	}
	if cfg != nil {
		s.taskValidator = validation.NewTaskValidatorWithConfig(cfg)
	}
	return s
}

// CreateTask adds a not yet completed task to an existing project. Unknown
// difficulty values are rejected here so they never reach the store.
func (t *taskServiceImpl) CreateTask(ctx context.Context, projectID int64, title string, tier difficulty.Tier) (*domain.Task, error) {
	if err := t.taskValidator.ValidateTaskForCreation(projectID, title, tier); err != nil {
		return nil, errors.NewValidationError("invalid task", err)
	}

	if _, err := t.repo.GetProject(ctx, projectID); err != nil {
		return nil, err
	}

	trimmedTitle, _ := t.taskValidator.GetValidTaskTitle(title)
	dbTask := t.mapper.Task.ToDatabase(domain.NewTask(projectID, trimmedTitle, tier))
	if err := t.repo.CreateTask(ctx, &dbTask); err != nil {
		return nil, err
	}

	metrics.IncrementTasksCreated(tier.String())
	t.logger.Info("Task created",
		zap.Int64("task_id", dbTask.ID),
		zap.Int64("project_id", projectID),
		zap.Stringer("difficulty", tier),
	)

	task := t.mapper.Task.FromDatabase(dbTask)
	return &task, nil
}

// GetTask retrieves a task by its ID
func (t *taskServiceImpl) GetTask(ctx context.Context, id int64) (*domain.Task, error) {
	if err := t.taskValidator.ValidateTaskID(id); err != nil {
		return nil, errors.NewValidationError("invalid task ID", err)
	}

	dbTask, err := t.repo.GetTask(ctx, id)
	if err != nil {
		return nil, err
	}

	task := t.mapper.Task.FromDatabase(*dbTask)
	return &task, nil
}

// ToggleTask flips a task between open and completed
func (t *taskServiceImpl) ToggleTask(ctx context.Context, id int64) (*domain.Task, error) {
	if err := t.taskValidator.ValidateTaskID(id); err != nil {
		return nil, errors.NewValidationError("invalid task ID", err)
	}

	dbTask, err := t.repo.ToggleTask(ctx, id)
	if err != nil {
		return nil, err
	}

	t.logger.Info("Task toggled", zap.Int64("task_id", id), zap.Bool("completed", dbTask.Completed))
	task := t.mapper.Task.FromDatabase(*dbTask)
	return &task, nil
}

// DeleteTask removes a task; it no longer counts towards its project
func (t *taskServiceImpl) DeleteTask(ctx context.Context, id int64) error {
	if err := t.taskValidator.ValidateTaskID(id); err != nil {
		return errors.NewValidationError("invalid task ID", err)
	}

	if err := t.repo.DeleteTask(ctx, id); err != nil {
		return err
	}

	t.logger.Info("Task deleted", zap.Int64("task_id", id))
	return nil
}

// ListProjectTasks returns the tasks of an existing project
func (t *taskServiceImpl) ListProjectTasks(ctx context.Context, projectID int64) ([]domain.Task, error) {
	if _, err := t.repo.GetProject(ctx, projectID); err != nil {
		return nil, err
	}

	dbTasks, err := t.repo.ListTasksByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return t.mapper.Task.FromDatabaseSlice(dbTasks), nil
}
