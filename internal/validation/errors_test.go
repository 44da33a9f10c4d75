package validation

import (
	"fmt"
	"strings"
	"testing"
)

func TestValidationError_Error(t *testing.T) {
	tests := []struct {
		name        string
		errors      []FieldError
		expectError string
	}{
		{"No errors", []FieldError{}, "validation error"},
		{"Single error", []FieldError{{Field: "name", Message: "is required"}}, "validation error for field 'name': is required"},
		{"Multiple errors", []FieldError{
			{Field: "title", Message: "is required"},
			{Field: "difficulty", Message: "must be known"},
		}, "multiple validation errors"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ve := &ValidationError{Errors: tt.errors}
			result := ve.Error()

			if !strings.HasPrefix(result, tt.expectError) {
				t.Errorf("ValidationError.Error() = %v, expected prefix %v", result, tt.expectError)
			}
		})
	}
}

func TestValidationError_OrNil(t *testing.T) {
	ve := NewValidationError()
	if err := ve.OrNil(); err != nil {
		t.Errorf("OrNil() on empty error = %v, expected nil", err)
	}

	ve.AddRequiredError("name")
	if err := ve.OrNil(); err == nil {
		t.Error("OrNil() with errors returned nil")
	}
}

func TestValidationError_Merge(t *testing.T) {
	first := NewValidationError()
	first.AddRequiredError("title")

	second := NewValidationError()
	second.AddInvalidValueError("difficulty", 9, "unknown tier")

	first.Merge(second)
	first.Merge(nil)
	first.Merge(fmt.Errorf("not a validation error"))

	if len(first.Errors) != 2 {
		t.Fatalf("expected 2 errors after merge, got %d", len(first.Errors))
	}
	if first.Errors[1].Field != "difficulty" {
		t.Errorf("expected merged field difficulty, got %s", first.Errors[1].Field)
	}
}

func TestIsValidationError(t *testing.T) {
	ve := NewValidationError()
	ve.AddRequiredError("name")

	if !IsValidationError(ve) {
		t.Error("IsValidationError(ve) = false")
	}
	if !IsValidationError(fmt.Errorf("wrapped: %w", ve)) {
		t.Error("IsValidationError should see through wrapping")
	}
	if IsValidationError(fmt.Errorf("plain")) {
		t.Error("IsValidationError(plain) = true")
	}
}

func TestValidationError_AddInvalidLengthError(t *testing.T) {
	tests := []struct {
		min, max int
		expected string
	}{
		{1, 10, "name must be between 1 and 10 characters long"},
		{3, 0, "name must be at least 3 characters long"},
		{0, 5, "name must be at most 5 characters long"},
		{0, 0, "name has invalid length"},
	}

	for _, tt := range tests {
		ve := NewValidationError()
		ve.AddInvalidLengthError("name", "x", tt.min, tt.max)
		if ve.Errors[0].Message != tt.expected {
			t.Errorf("message = %q, expected %q", ve.Errors[0].Message, tt.expected)
		}
	}
}

func TestValidationError_Fields(t *testing.T) {
	ve := NewValidationError()
	ve.AddRequiredError("title")
	ve.AddInvalidCharacterError("title", "x\ty")
	ve.AddInvalidValueError("difficulty", 0, "unknown tier")

	fields := ve.Fields()
	if len(fields) != 2 {
		t.Fatalf("expected 2 fields, got %d", len(fields))
	}
	if fields["title"] != "title is required" {
		t.Errorf("expected first title message, got %q", fields["title"])
	}
}

func TestValidationError_GetFieldErrors(t *testing.T) {
	ve := NewValidationError()
	ve.AddRequiredError("title")
	ve.AddInvalidValueError("project_id", -1, "must be positive")
	ve.AddInvalidCharacterError("title", "x")

	if got := len(ve.GetFieldErrors("title")); got != 2 {
		t.Errorf("GetFieldErrors(title) = %d errors, expected 2", got)
	}
	if got := len(ve.GetFieldErrors("name")); got != 0 {
		t.Errorf("GetFieldErrors(name) = %d errors, expected 0", got)
	}
}

func TestValidationError_GetUserFriendlyMessage(t *testing.T) {
	ve := NewValidationError()
	if got := ve.GetUserFriendlyMessage(); got != "Input validation failed" {
		t.Errorf("empty message = %q", got)
	}

	ve.AddRequiredError("title")
	if got := ve.GetUserFriendlyMessage(); got != "title is required" {
		t.Errorf("single message = %q", got)
	}

	ve.AddRequiredError("name")
	got := ve.GetUserFriendlyMessage()
	if !strings.Contains(got, "- title is required") || !strings.Contains(got, "- name is required") {
		t.Errorf("multi message = %q", got)
	}
}
