package domain

import "time"

// Project is a named container of tasks. Progress is never stored on it.
type Project struct {
	ID        int64
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewProject creates a new Project with the given name.
func NewProject(name string) Project {
	return Project{Name: name}
}

// String returns the project name for display purposes.
func (p Project) String() string {
	return p.Name
}

// ProjectSummary is a project together with its computed progress.
type ProjectSummary struct {
	Project
	Progress float64
}

// ProjectDetail is a project with its tasks and computed progress.
type ProjectDetail struct {
	Project
	Tasks    []Task
	Progress float64
}

// ProjectPage is one page of project summaries.
type ProjectPage struct {
	Projects []ProjectSummary
	Page     int
	PerPage  int
	Total    int64
}

// LastPage returns the number of the last page, at least 1.
func (p ProjectPage) LastPage() int {
	if p.PerPage <= 0 || p.Total == 0 {
		return 1
	}
	return int((p.Total + int64(p.PerPage) - 1) / int64(p.PerPage))
}
