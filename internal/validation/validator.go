package validation

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"progress-tracker/internal/config"
	"progress-tracker/internal/difficulty"
)

// Validator provides common validation utilities
type Validator struct {
	config *config.Config
}

// NewValidator creates a new validator instance using default limits
func NewValidator() *Validator {
	return &Validator{}
}

// NewValidatorWithConfig creates a new validator instance with configuration
func NewValidatorWithConfig(cfg *config.Config) *Validator {
	return &Validator{config: cfg}
}

// IsNonEmptyString checks if a string is not empty after trimming whitespace
func (v *Validator) IsNonEmptyString(s string) bool {
	return strings.TrimSpace(s) != ""
}

// IsValidStringLength checks that the trimmed string has between min and
// max characters. Characters are runes, so "média" is five long.
func (v *Validator) IsValidStringLength(s string, min, max int) bool {
	length := utf8.RuneCountInString(strings.TrimSpace(s))
	return length >= min && length <= max
}

// HasControlCharacters reports whether s contains newlines, tabs or other
// control characters. Any printable text, accents included, is allowed.
func (v *Validator) HasControlCharacters(s string) bool {
	return strings.IndexFunc(s, unicode.IsControl) >= 0
}

// IsValidID checks if an identifier is valid (positive)
func (v *Validator) IsValidID(id int64) bool {
	return id > 0
}

// IsValidDifficulty checks the tier is one of the known tiers
func (v *Validator) IsValidDifficulty(tier difficulty.Tier) bool {
	return tier.Valid()
}

// TrimAndValidateString trims whitespace and returns the cleaned string
func (v *Validator) TrimAndValidateString(s string) string {
	return strings.TrimSpace(s)
}

func (v *Validator) projectNameLimits() (int, int) {
	if v.config != nil {
		return v.config.Validation.ProjectNameMinLength, v.config.Validation.ProjectNameMaxLength
	}
	return 1, 255
}

func (v *Validator) taskTitleLimits() (int, int) {
	if v.config != nil {
		return v.config.Validation.TaskTitleMinLength, v.config.Validation.TaskTitleMaxLength
	}
	return 1, 255
}

// validateText checks a free text field for presence, length and control characters
func (v *Validator) validateText(field, value string, min, max int) *ValidationError {
	validationError := NewValidationError()
	trimmed := v.TrimAndValidateString(value)

	if !v.IsNonEmptyString(trimmed) {
		validationError.AddRequiredError(field)
		return validationError
	}
	if !v.IsValidStringLength(trimmed, min, max) {
		validationError.AddInvalidLengthError(field, trimmed, min, max)
	}
	if v.HasControlCharacters(trimmed) {
		validationError.AddInvalidCharacterError(field, trimmed)
	}
	return validationError
}
