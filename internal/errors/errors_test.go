package errors

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestNewValidationError(t *testing.T) {
	cause := errors.New("title is required")
	err := NewValidationError("invalid task", cause)

	if err.Type != ErrorTypeValidation {
		t.Errorf("NewValidationError type = %v, want %v", err.Type, ErrorTypeValidation)
	}
	if err.Message != "invalid task" {
		t.Errorf("NewValidationError message = %v, want %v", err.Message, "invalid task")
	}
	if err.Code != "VALIDATION_FAILED" {
		t.Errorf("NewValidationError code = %v, want %v", err.Code, "VALIDATION_FAILED")
	}
	if err.Cause != cause {
		t.Errorf("NewValidationError cause = %v, want %v", err.Cause, cause)
	}
}

func TestNewNotFoundError(t *testing.T) {
	err := NewNotFoundError("project", "42")

	if err.Type != ErrorTypeNotFound {
		t.Errorf("NewNotFoundError type = %v, want %v", err.Type, ErrorTypeNotFound)
	}
	if err.Message != "project not found: 42" {
		t.Errorf("NewNotFoundError message = %v, want %v", err.Message, "project not found: 42")
	}

	resource, ok := err.GetContext("resource")
	if !ok || resource != "project" {
		t.Errorf("NewNotFoundError should set resource context")
	}
	identifier, ok := err.GetContext("identifier")
	if !ok || identifier != "42" {
		t.Errorf("NewNotFoundError should set identifier context")
	}
}

func TestNewDatabaseError(t *testing.T) {
	cause := errors.New("disk I/O error")
	err := NewDatabaseError("create task", cause)

	if err.Type != ErrorTypeDatabase {
		t.Errorf("NewDatabaseError type = %v, want %v", err.Type, ErrorTypeDatabase)
	}
	if err.Message != "database operation failed: create task" {
		t.Errorf("NewDatabaseError message = %v", err.Message)
	}
	if !errors.Is(err, cause) {
		t.Errorf("NewDatabaseError should wrap its cause")
	}
}

func TestNewDatabaseError_DeadlineBecomesTimeout(t *testing.T) {
	cause := fmt.Errorf("query: %w", context.DeadlineExceeded)
	err := NewDatabaseError("list tasks", cause)

	if err.Type != ErrorTypeTimeout {
		t.Fatalf("type = %v, want %v", err.Type, ErrorTypeTimeout)
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("timeout error should still unwrap to context.DeadlineExceeded")
	}
}

func TestNewInvalidInputError(t *testing.T) {
	err := NewInvalidInputError("difficulty", "extreme", "unknown tier")

	if err.Message != "invalid input for difficulty: unknown tier" {
		t.Errorf("NewInvalidInputError message = %v", err.Message)
	}
	if err.Code != "INVALID_INPUT" {
		t.Errorf("NewInvalidInputError code = %v", err.Code)
	}
	if value, ok := err.GetContext("value"); !ok || value != "extreme" {
		t.Errorf("NewInvalidInputError should set value context")
	}
}

func TestIsAppError(t *testing.T) {
	wrapped := fmt.Errorf("service: %w", NewNotFoundError("task", "1"))

	if !IsAppError(wrapped) {
		t.Errorf("IsAppError should see through wrapping")
	}
	if IsAppError(errors.New("plain")) {
		t.Errorf("IsAppError should return false for a plain error")
	}
	if IsAppError(nil) {
		t.Errorf("IsAppError should return false for nil")
	}
}

func TestIsErrorType(t *testing.T) {
	appError := NewNotFoundError("task", "7")

	if !IsErrorType(appError, ErrorTypeNotFound) {
		t.Errorf("IsErrorType should return true for matching type")
	}
	if IsErrorType(appError, ErrorTypeDatabase) {
		t.Errorf("IsErrorType should return false for different type")
	}
	if !IsNotFound(fmt.Errorf("wrapped: %w", appError)) {
		t.Errorf("IsNotFound should see through wrapping")
	}
}

func TestAppError_IsAcrossResources(t *testing.T) {
	a := NewNotFoundError("task", "1")
	b := NewNotFoundError("project", "2")

	if !errors.Is(a, b) {
		t.Errorf("not found errors with the same code should match")
	}
	if errors.Is(a, NewDatabaseError("x", nil)) {
		t.Errorf("different types should not match")
	}
}

func TestGetUserMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"Validation error", NewValidationError("invalid input", nil), "invalid input"},
		{"Validation error with cause", NewValidationError("invalid task", errors.New("title is required")), "invalid task: title is required"},
		{"Not found error", NewNotFoundError("project", "123"), "project not found: 123"},
		{"Database error", NewDatabaseError("query", errors.New("locked")), "A database error occurred. Please try again."},
		{"Timeout error", NewTimeoutError("query", "5s"), "The operation timed out. Please try again."},
		{"Regular error", errors.New("regular error"), "regular error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := GetUserMessage(tt.err); result != tt.expected {
				t.Errorf("GetUserMessage() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestGetErrorCode(t *testing.T) {
	if GetErrorCode(NewNotFoundError("task", "1")) != "NOT_FOUND" {
		t.Errorf("GetErrorCode should return correct code for AppError")
	}
	if GetErrorCode(errors.New("regular error")) != "UNKNOWN_ERROR" {
		t.Errorf("GetErrorCode should return UNKNOWN_ERROR for regular error")
	}
}

func TestShouldLogError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"Validation error", NewValidationError("invalid input", nil), false},
		{"Not found error", NewNotFoundError("task", "123"), false},
		{"Invalid input error", NewInvalidInputError("page", "x", "not a number"), false},
		{"Database error", NewDatabaseError("query", errors.New("locked")), true},
		{"Timeout error", NewTimeoutError("query", "5s"), true},
		{"Regular error", errors.New("regular error"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := ShouldLogError(tt.err); result != tt.expected {
				t.Errorf("ShouldLogError() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"Validation", NewValidationError("bad", nil), http.StatusUnprocessableEntity},
		{"Invalid input", NewInvalidInputError("id", "x", "not a number"), http.StatusUnprocessableEntity},
		{"Not found", NewNotFoundError("project", "9"), http.StatusNotFound},
		{"Database", NewDatabaseError("query", errors.New("locked")), http.StatusInternalServerError},
		{"Timeout", NewTimeoutError("query", nil), http.StatusGatewayTimeout},
		{"Plain", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HTTPStatus(tt.err); got != tt.expected {
				t.Errorf("HTTPStatus() = %d, want %d", got, tt.expected)
			}
		})
	}
}
