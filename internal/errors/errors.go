package errors

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// NewValidationError creates a new validation error
func NewValidationError(message string, cause error) *AppError {
	return newAppError(ErrorTypeValidation, "VALIDATION_FAILED", message).WithCause(cause)
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(resource string, identifier string) *AppError {
	return newAppError(ErrorTypeNotFound, "NOT_FOUND", fmt.Sprintf("%s not found: %s", resource, identifier)).
		WithContext("resource", resource).
		WithContext("identifier", identifier)
}

// NewDatabaseError creates a new database error. A cause that is a context
// deadline becomes a timeout error instead.
func NewDatabaseError(operation string, cause error) *AppError {
	if errors.Is(cause, context.DeadlineExceeded) {
		return NewTimeoutError(operation, nil).WithCause(cause)
	}
	return newAppError(ErrorTypeDatabase, "DATABASE_ERROR", "database operation failed: "+operation).
		WithCause(cause).
		WithContext("operation", operation)
}

// NewInvalidInputError creates a new invalid input error
func NewInvalidInputError(field string, value interface{}, reason string) *AppError {
	return newAppError(ErrorTypeInvalidInput, "INVALID_INPUT", fmt.Sprintf("invalid input for %s: %s", field, reason)).
		WithContext("field", field).
		WithContext("value", value).
		WithContext("reason", reason)
}

// NewTimeoutError creates a new timeout error. A nil timeout is left out of
// the context.
func NewTimeoutError(operation string, timeout interface{}) *AppError {
	err := newAppError(ErrorTypeTimeout, "TIMEOUT", "operation timed out: "+operation).
		WithContext("operation", operation)
	if timeout != nil {
		err.WithContext("timeout", timeout)
	}
	return err
}

// IsAppError checks if the error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// AsAppError converts an error to an AppError if possible
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsErrorType checks if the error is of the specified type
func IsErrorType(err error, errorType ErrorType) bool {
	if appErr, ok := AsAppError(err); ok {
		return appErr.IsType(errorType)
	}
	return false
}

// IsNotFound is shorthand for IsErrorType(err, ErrorTypeNotFound).
func IsNotFound(err error) bool {
	return IsErrorType(err, ErrorTypeNotFound)
}

// GetUserMessage returns a user-friendly error message
func GetUserMessage(err error) string {
	if appErr, ok := AsAppError(err); ok {
		switch appErr.Type {
		case ErrorTypeValidation, ErrorTypeNotFound, ErrorTypeInvalidInput:
			if appErr.Type == ErrorTypeValidation && appErr.Cause != nil {
				return fmt.Sprintf("%s: %v", appErr.Message, appErr.Cause)
			}
			return appErr.Message
		case ErrorTypeDatabase:
			return "A database error occurred. Please try again."
		case ErrorTypeTimeout:
			return "The operation timed out. Please try again."
		default:
			return "An unexpected error occurred. Please try again."
		}
	}
	return err.Error()
}

// GetErrorCode returns the error code for the error
func GetErrorCode(err error) string {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code
	}
	return "UNKNOWN_ERROR"
}

// ShouldLogError determines if an error should be logged based on its type
func ShouldLogError(err error) bool {
	if appErr, ok := AsAppError(err); ok {
		return !appErr.Type.CallerFault()
	}
	return true
}

// HTTPStatus maps an error to the response status used by the HTTP layer.
func HTTPStatus(err error) int {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Type.HTTPStatus()
	}
	return http.StatusInternalServerError
}
