package domain

import (
	"time"

	"progress-tracker/internal/difficulty"
)

// Task represents a task in the domain model.
// This is a pure domain model without database-specific concerns.
type Task struct {
	ID         int64
	ProjectID  int64
	Title      string
	Difficulty difficulty.Tier
	Completed  bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NewTask creates a new, not yet completed task for a project.
func NewTask(projectID int64, title string, tier difficulty.Tier) Task {
	return Task{
		ProjectID:  projectID,
		Title:      title,
		Difficulty: tier,
	}
}

// Weight is the effort the task contributes to its project's total.
// Unknown tiers weigh nothing.
func (t Task) Weight() int {
	return t.Difficulty.Weight()
}

// String returns the task title for display purposes.
func (t Task) String() string {
	return t.Title
}
