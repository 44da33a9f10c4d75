package validation

import (
	"progress-tracker/internal/config"
	"progress-tracker/internal/difficulty"
	"progress-tracker/internal/domain"
)

// TaskValidator provides validation for Task-related operations
type TaskValidator struct {
	validator *Validator
}

// NewTaskValidator creates a new task validator
func NewTaskValidator() *TaskValidator {
	return &TaskValidator{
		validator: NewValidator(),
	}
}

// NewTaskValidatorWithConfig creates a task validator using configured limits
func NewTaskValidatorWithConfig(cfg *config.Config) *TaskValidator {
	return &TaskValidator{
		validator: NewValidatorWithConfig(cfg),
	}
}

// ValidateTaskTitle validates a task title
func (tv *TaskValidator) ValidateTaskTitle(title string) error {
	min, max := tv.validator.taskTitleLimits()
	return tv.validator.validateText("title", title, min, max).OrNil()
}

// ValidateDifficulty rejects tiers outside the known set
func (tv *TaskValidator) ValidateDifficulty(tier difficulty.Tier) error {
	if !tv.validator.IsValidDifficulty(tier) {
		validationError := NewValidationError()
		validationError.AddInvalidValueError("difficulty", int(tier), "must be one of 1 (low), 2 (medium), 3 (high)")
		return validationError
	}
	return nil
}

// ValidateTaskForCreation validates every field of a new task
func (tv *TaskValidator) ValidateTaskForCreation(projectID int64, title string, tier difficulty.Tier) error {
	validationError := NewValidationError()

	if !tv.validator.IsValidID(projectID) {
		validationError.AddInvalidValueError("project_id", projectID, "must be a positive integer")
	}
	validationError.Merge(tv.ValidateTaskTitle(title))
	validationError.Merge(tv.ValidateDifficulty(tier))

	return validationError.OrNil()
}

// ValidateTask validates a domain.Task object
func (tv *TaskValidator) ValidateTask(task domain.Task) error {
	validationError := NewValidationError()

	if err := tv.ValidateTaskForCreation(task.ProjectID, task.Title, task.Difficulty); err != nil {
		validationError.Merge(err)
	}

	// If task has an ID, validate it
	if task.ID != 0 && !tv.validator.IsValidID(task.ID) {
		validationError.AddInvalidValueError("task_id", task.ID, "must be a positive integer")
	}

	return validationError.OrNil()
}

// ValidateTaskID validates a task ID
func (tv *TaskValidator) ValidateTaskID(id int64) error {
	if !tv.validator.IsValidID(id) {
		validationError := NewValidationError()
		validationError.AddInvalidValueError("task_id", id, "must be a positive integer")
		return validationError
	}
	return nil
}

// GetValidTaskTitle returns a cleaned task title if valid
func (tv *TaskValidator) GetValidTaskTitle(title string) (string, error) {
	if err := tv.ValidateTaskTitle(title); err != nil {
		return "", err
	}
	return tv.validator.TrimAndValidateString(title), nil
}
