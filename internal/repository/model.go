package repository

import "time"

// Project is a row of the projects table.
type Project struct {
	ID        int64
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Task is a row of the tasks table. Difficulty holds the stored tier value.
type Task struct {
	ID         int64
	ProjectID  int64
	Title      string
	Difficulty int
	Completed  bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Effort is the weighted effort of one project as summed by the store.
type Effort struct {
	Completed int64
	Total     int64
}

// ProjectEffort pairs a project row with its aggregated effort.
type ProjectEffort struct {
	Project
	Effort Effort
}
