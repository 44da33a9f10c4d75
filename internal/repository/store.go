// Package repository defines the persistence contract shared by the SQLite
// and PostgreSQL backends.
package repository

import "context"

// Store defines the database operations the services rely on.
type Store interface {
	// Project operations
	CreateProject(ctx context.Context, project *Project) error
	GetProject(ctx context.Context, id int64) (*Project, error)
	ListProjects(ctx context.Context) ([]*Project, error)
	CountProjects(ctx context.Context) (int64, error)
	ListProjectsWithEffort(ctx context.Context, limit, offset int) ([]*ProjectEffort, error)

	// Task operations
	CreateTask(ctx context.Context, task *Task) error
	GetTask(ctx context.Context, id int64) (*Task, error)
	ListTasksByProject(ctx context.Context, projectID int64) ([]*Task, error)
	ToggleTask(ctx context.Context, id int64) (*Task, error)
	DeleteTask(ctx context.Context, id int64) error

	// ProjectEffort sums weighted effort for one project in a single
	// read-only aggregate query.
	ProjectEffort(ctx context.Context, projectID int64) (Effort, error)

	// Utility
	Ping(ctx context.Context) error
	Close() error
}
