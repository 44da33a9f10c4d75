package validation

import "progress-tracker/internal/config"

// ProjectValidator provides validation for Project-related operations
type ProjectValidator struct {
	validator *Validator
}

// NewProjectValidator creates a new project validator with default limits
func NewProjectValidator() *ProjectValidator {
	return &ProjectValidator{validator: NewValidator()}
}

// NewProjectValidatorWithConfig creates a project validator using configured limits
func NewProjectValidatorWithConfig(cfg *config.Config) *ProjectValidator {
	return &ProjectValidator{validator: NewValidatorWithConfig(cfg)}
}

// ValidateProjectName validates a project name for creation
func (pv *ProjectValidator) ValidateProjectName(name string) error {
	min, max := pv.validator.projectNameLimits()
	return pv.validator.validateText("name", name, min, max).OrNil()
}

// ValidateProjectID validates a project ID
func (pv *ProjectValidator) ValidateProjectID(id int64) error {
	if !pv.validator.IsValidID(id) {
		validationError := NewValidationError()
		validationError.AddInvalidValueError("project_id", id, "must be a positive integer")
		return validationError
	}
	return nil
}

// ValidatePagination checks a requested page and page size against maxPerPage
func (pv *ProjectValidator) ValidatePagination(page, perPage, maxPerPage int) error {
	validationError := NewValidationError()
	if page < 1 {
		validationError.AddInvalidValueError("page", page, "must be at least 1")
	}
	if perPage < 1 || (maxPerPage > 0 && perPage > maxPerPage) {
		validationError.AddInvalidValueError("per_page", perPage, "must be between 1 and the maximum page size")
	}
	return validationError.OrNil()
}

// GetValidProjectName returns a cleaned project name if valid
func (pv *ProjectValidator) GetValidProjectName(name string) (string, error) {
	if err := pv.ValidateProjectName(name); err != nil {
		return "", err
	}
	return pv.validator.TrimAndValidateString(name), nil
}
