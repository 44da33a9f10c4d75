package domain

import (
	"progress-tracker/internal/difficulty"
	"progress-tracker/internal/repository"
)

// TaskMapper handles conversion between domain and database Task models.
type TaskMapper struct{}

// NewTaskMapper creates a new TaskMapper instance.
func NewTaskMapper() *TaskMapper {
	return &TaskMapper{}
}

// ToDatabase converts a domain Task to a database Task.
func (m *TaskMapper) ToDatabase(domainTask Task) repository.Task {
	return repository.Task{
		ID:         domainTask.ID,
		ProjectID:  domainTask.ProjectID,
		Title:      domainTask.Title,
		Difficulty: int(domainTask.Difficulty),
		Completed:  domainTask.Completed,
		CreatedAt:  domainTask.CreatedAt,
		UpdatedAt:  domainTask.UpdatedAt,
	}
}

// FromDatabase converts a database Task to a domain Task. The stored
// difficulty is kept as is, even when it is not a known tier.
func (m *TaskMapper) FromDatabase(dbTask repository.Task) Task {
	return Task{
		ID:         dbTask.ID,
		ProjectID:  dbTask.ProjectID,
		Title:      dbTask.Title,
		Difficulty: difficulty.Tier(dbTask.Difficulty),
		Completed:  dbTask.Completed,
		CreatedAt:  dbTask.CreatedAt,
		UpdatedAt:  dbTask.UpdatedAt,
	}
}

// FromDatabaseSlice converts database Tasks to domain Tasks.
func (m *TaskMapper) FromDatabaseSlice(dbTasks []*repository.Task) []Task {
	domainTasks := make([]Task, len(dbTasks))
	for i, task := range dbTasks {
		domainTasks[i] = m.FromDatabase(*task)
	}
	return domainTasks
}

// ProjectMapper handles conversion between domain and database Project models.
type ProjectMapper struct{}

// NewProjectMapper creates a new ProjectMapper instance.
func NewProjectMapper() *ProjectMapper {
	return &ProjectMapper{}
}

// ToDatabase converts a domain Project to a database Project.
func (m *ProjectMapper) ToDatabase(p Project) repository.Project {
	return repository.Project{
		ID:        p.ID,
		Name:      p.Name,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

// FromDatabase converts a database Project to a domain Project.
func (m *ProjectMapper) FromDatabase(p repository.Project) Project {
	return Project{
		ID:        p.ID,
		Name:      p.Name,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

// FromDatabaseSlice converts database Projects to domain Projects.
func (m *ProjectMapper) FromDatabaseSlice(dbProjects []*repository.Project) []Project {
	projects := make([]Project, len(dbProjects))
	for i, p := range dbProjects {
		projects[i] = m.FromDatabase(*p)
	}
	return projects
}

// Mapper provides a unified interface for all mapping operations.
type Mapper struct {
	Task    *TaskMapper
	Project *ProjectMapper
}

// NewMapper creates a new Mapper instance with all sub-mappers.
func NewMapper() *Mapper {
	return &Mapper{
		Task:    NewTaskMapper(),
		Project: NewProjectMapper(),
	}
}
