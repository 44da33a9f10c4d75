package services

import (
	"context"

	"go.uber.org/zap"

	"progress-tracker/internal/config"
	"progress-tracker/internal/domain"
	"progress-tracker/internal/errors"
	"progress-tracker/internal/progress"
	"progress-tracker/internal/repository"
	"progress-tracker/internal/validation"
)

// projectServiceImpl implements the ProjectService interface
type projectServiceImpl struct {
	repo             repository.Store
	calculator       *progress.Calculator
	mapper           *domain.Mapper
	projectValidator *validation.ProjectValidator
	maxPerPage       int
	logger           *zap.Logger
}

// NewProjectService creates a new ProjectService instance
func NewProjectService(repo repository.Store, calc *progress.Calculator, cfg *config.Config, logger *zap.Logger) ProjectService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if calc == nil {
		calc = progress.NewCalculator(progress.FromStore(repo), progress.StrategyAggregate, logger)
	}

	s := &projectServiceImpl{
		repo:             repo,
		calculator:       calc,
		mapper:           domain.NewMapper(),
		projectValidator: validation.NewProjectValidator(),
		logger:           logger,
	}
	if cfg != nil {
		s.projectValidator = validation.NewProjectValidatorWithConfig(cfg)
		s.maxPerPage = cfg.Server.MaxPerPage
	}
	return s
}

// CreateProject creates a new project with the given name
func (s *projectServiceImpl) CreateProject(ctx context.Context, name string) (*domain.Project, error) {
	trimmedName, err := s.projectValidator.GetValidProjectName(name)
	if err != nil {
		return nil, errors.NewValidationError("invalid project", err)
	}

	dbProject := s.mapper.Project.ToDatabase(domain.NewProject(trimmedName))
	if err := s.repo.CreateProject(ctx, &dbProject); err != nil {
		return nil, err
	}

	s.logger.Info("Project created", zap.Int64("project_id", dbProject.ID))
	project := s.mapper.Project.FromDatabase(dbProject)
	return &project, nil
}

// GetProject returns a project with its tasks and current progress
func (s *projectServiceImpl) GetProject(ctx context.Context, id int64) (*domain.ProjectDetail, error) {
	if err := s.projectValidator.ValidateProjectID(id); err != nil {
		return nil, errors.NewValidationError("invalid project ID", err)
	}

	dbProject, err := s.repo.GetProject(ctx, id)
	if err != nil {
		return nil, err
	}

	dbTasks, err := s.repo.ListTasksByProject(ctx, id)
	if err != nil {
		return nil, err
	}

	tasks := s.mapper.Task.FromDatabaseSlice(dbTasks)

	// The memory strategy would list the same tasks again; reuse them.
	var pct float64
	if s.calculator.Strategy() == progress.StrategyMemory {
		pct = s.calculator.TasksProgress(tasks)
	} else if pct, err = s.calculator.ProjectProgress(ctx, id); err != nil {
		return nil, err
	}

	return &domain.ProjectDetail{
		Project:  s.mapper.Project.FromDatabase(*dbProject),
		Tasks:    tasks,
		Progress: pct,
	}, nil
}

// ListProjects returns one page of projects. Effort for the whole page is
// summed by a single store query; the memory strategy recomputes each row
// through the calculator instead.
func (s *projectServiceImpl) ListProjects(ctx context.Context, page, perPage int) (*domain.ProjectPage, error) {
	if err := s.projectValidator.ValidatePagination(page, perPage, s.maxPerPage); err != nil {
		return nil, errors.NewValidationError("invalid page", err)
	}

	total, err := s.repo.CountProjects(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := s.repo.ListProjectsWithEffort(ctx, perPage, (page-1)*perPage)
	if err != nil {
		return nil, err
	}

	summaries := make([]domain.ProjectSummary, 0, len(rows))
	for _, row := range rows {
		pct := progress.FromEffort(row.Effort)
		if s.calculator.Strategy() == progress.StrategyMemory {
			if pct, err = s.calculator.ProjectProgress(ctx, row.ID); err != nil {
				return nil, err
			}
		}
		summaries = append(summaries, domain.ProjectSummary{
			Project:  s.mapper.Project.FromDatabase(row.Project),
			Progress: pct,
		})
	}

	return &domain.ProjectPage{
		Projects: summaries,
		Page:     page,
		PerPage:  perPage,
		Total:    total,
	}, nil
}

// ProjectProgress returns the current progress of an existing project
func (s *projectServiceImpl) ProjectProgress(ctx context.Context, id int64) (float64, error) {
	if err := s.projectValidator.ValidateProjectID(id); err != nil {
		return 0, errors.NewValidationError("invalid project ID", err)
	}

	if _, err := s.repo.GetProject(ctx, id); err != nil {
		return 0, err
	}

	return s.calculator.ProjectProgress(ctx, id)
}
