package services

import (
	"context"

	"progress-tracker/internal/difficulty"
	"progress-tracker/internal/domain"
)

// ProjectService handles project creation and progress reporting
type ProjectService interface {
	CreateProject(ctx context.Context, name string) (*domain.Project, error)
	// GetProject returns the project with its tasks and current progress
	GetProject(ctx context.Context, id int64) (*domain.ProjectDetail, error)
	// ListProjects returns one page of projects, each with its progress
	ListProjects(ctx context.Context, page, perPage int) (*domain.ProjectPage, error)
	ProjectProgress(ctx context.Context, id int64) (float64, error)
}

// TaskService handles the task lifecycle
type TaskService interface {
	CreateTask(ctx context.Context, projectID int64, title string, tier difficulty.Tier) (*domain.Task, error)
	GetTask(ctx context.Context, id int64) (*domain.Task, error)
	ToggleTask(ctx context.Context, id int64) (*domain.Task, error)
	DeleteTask(ctx context.Context, id int64) error
	ListProjectTasks(ctx context.Context, projectID int64) ([]domain.Task, error)
}

// SeedResult counts what a seeding run created
type SeedResult struct {
	Projects int `json:"projects"`
	Tasks    int `json:"tasks"`
}

// SeedService fills a store with sample data
type SeedService interface {
	Seed(ctx context.Context, projects, maxTasks int) (*SeedResult, error)
}

// ServiceContainer manages all services and their dependencies
type ServiceContainer struct {
	ProjectService ProjectService
	TaskService    TaskService
	SeedService    SeedService
}
