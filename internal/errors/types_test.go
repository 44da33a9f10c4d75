package errors

import (
	"errors"
	"net/http"
	"testing"
)

func TestErrorType_Kinds(t *testing.T) {
	tests := []struct {
		errorType ErrorType
		name      string
		status    int
		caller    bool
	}{
		{ErrorTypeValidation, "validation", http.StatusUnprocessableEntity, true},
		{ErrorTypeNotFound, "not_found", http.StatusNotFound, true},
		{ErrorTypeDatabase, "database", http.StatusInternalServerError, false},
		{ErrorTypeInvalidInput, "invalid_input", http.StatusUnprocessableEntity, true},
		{ErrorTypeTimeout, "timeout", http.StatusGatewayTimeout, false},
		{ErrorType(999), "unknown", http.StatusInternalServerError, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.errorType.String(); got != tt.name {
				t.Errorf("String() = %q, want %q", got, tt.name)
			}
			if got := tt.errorType.HTTPStatus(); got != tt.status {
				t.Errorf("HTTPStatus() = %d, want %d", got, tt.status)
			}
			if got := tt.errorType.CallerFault(); got != tt.caller {
				t.Errorf("CallerFault() = %v, want %v", got, tt.caller)
			}
		})
	}
}

func TestAppError_Error(t *testing.T) {
	plain := &AppError{Type: ErrorTypeValidation, Message: "name is required"}
	if got := plain.Error(); got != "validation: name is required" {
		t.Errorf("Error() = %q", got)
	}

	wrapped := newAppError(ErrorTypeDatabase, "DATABASE_ERROR", "insert task").WithCause(errors.New("disk full"))
	if got := wrapped.Error(); got != "database: insert task (caused by: disk full)" {
		t.Errorf("Error() = %q", got)
	}
	if wrapped.Unwrap() == nil || wrapped.Unwrap().Error() != "disk full" {
		t.Errorf("Unwrap() = %v, want the cause", wrapped.Unwrap())
	}
}

func TestAppError_Is(t *testing.T) {
	notFound := NewNotFoundError("project", "7")

	if !errors.Is(notFound, &AppError{Type: ErrorTypeNotFound, Code: "NOT_FOUND"}) {
		t.Errorf("errors.Is should match on type and code")
	}
	if errors.Is(notFound, &AppError{Type: ErrorTypeNotFound, Code: "GONE"}) {
		t.Errorf("errors.Is should not match a different code")
	}
	if notFound.Is(errors.New("project not found: 7")) {
		t.Errorf("Is should not match a plain error")
	}
	if !notFound.IsType(ErrorTypeNotFound) || notFound.IsType(ErrorTypeDatabase) {
		t.Errorf("IsType mismatch for %v", notFound.Type)
	}
}

func TestAppError_Context(t *testing.T) {
	var appErr AppError
	if _, ok := appErr.GetContext("field"); ok {
		t.Errorf("GetContext on an empty error should report a miss")
	}
	if got := appErr.ContextString("field"); got != "" {
		t.Errorf("ContextString() = %q, want empty", got)
	}

	if appErr.WithContext("field", "page").WithContext("value", 0) != &appErr {
		t.Errorf("WithContext should return the receiver")
	}
	if got := appErr.ContextString("field"); got != "page" {
		t.Errorf("ContextString(field) = %q, want page", got)
	}
	if got := appErr.ContextString("value"); got != "0" {
		t.Errorf("ContextString(value) = %q, want 0", got)
	}
}

func TestAppError_LogFields(t *testing.T) {
	err := NewInvalidInputError("page_size", 500, "must be at most 100")

	fields := err.LogFields()
	want := []string{"field", "reason", "value", "code"}
	if len(fields) != len(want) {
		t.Fatalf("LogFields() returned %d fields, want %d", len(fields), len(want))
	}
	for i, key := range want {
		if fields[i].Key != key {
			t.Errorf("field %d key = %q, want %q", i, fields[i].Key, key)
		}
	}
	if fields[3].String != "INVALID_INPUT" {
		t.Errorf("code field = %q, want INVALID_INPUT", fields[3].String)
	}
}
