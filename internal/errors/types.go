package errors

import (
	"fmt"
	"net/http"
	"sort"

	"go.uber.org/zap"
)

// ErrorType represents the category of error
type ErrorType int

const (
	ErrorTypeValidation ErrorType = iota
	ErrorTypeNotFound
	ErrorTypeDatabase
	ErrorTypeInvalidInput
	ErrorTypeTimeout
)

type errorKind struct {
	name   string
	status int
	// caller marks mistakes made by the caller rather than system faults.
	caller bool
}

var errorKinds = map[ErrorType]errorKind{
	ErrorTypeValidation:   {name: "validation", status: http.StatusUnprocessableEntity, caller: true},
	ErrorTypeNotFound:     {name: "not_found", status: http.StatusNotFound, caller: true},
	ErrorTypeDatabase:     {name: "database", status: http.StatusInternalServerError},
	ErrorTypeInvalidInput: {name: "invalid_input", status: http.StatusUnprocessableEntity, caller: true},
	ErrorTypeTimeout:      {name: "timeout", status: http.StatusGatewayTimeout},
}

var unknownKind = errorKind{name: "unknown", status: http.StatusInternalServerError}

func (et ErrorType) kind() errorKind {
	if k, ok := errorKinds[et]; ok {
		return k
	}
	return unknownKind
}

// String returns the string representation of the error type
func (et ErrorType) String() string {
	return et.kind().name
}

// HTTPStatus is the response status for errors of this type.
func (et ErrorType) HTTPStatus() int {
	return et.kind().status
}

// CallerFault reports whether errors of this type come from bad input
// rather than a failing dependency.
func (et ErrorType) CallerFault() bool {
	return et.kind().caller
}

// AppError is the structured error passed between the store, services and
// the outer surfaces (CLI, HTTP). Context carries the values that identify
// the failing operation or input; it is logged, never shown to users.
type AppError struct {
	Type    ErrorType
	Message string
	Code    string
	Cause   error
	Context map[string]interface{}
}

func newAppError(errorType ErrorType, code, message string) *AppError {
	return &AppError{Type: errorType, Code: code, Message: message}
}

func (e *AppError) Error() string {
	msg := e.Type.String() + ": " + e.Message
	if e.Cause == nil {
		return msg
	}
	return fmt.Sprintf("%s (caused by: %v)", msg, e.Cause)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is matches another AppError with the same type and code.
func (e *AppError) Is(target error) bool {
	other, ok := target.(*AppError)
	return ok && e.Type == other.Type && e.Code == other.Code
}

func (e *AppError) IsType(errorType ErrorType) bool {
	return e.Type == errorType
}

// WithCause sets the underlying error.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithContext records key in the error context and returns e for chaining.
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

func (e *AppError) GetContext(key string) (interface{}, bool) {
	value, ok := e.Context[key]
	return value, ok
}

// ContextString returns a context value formatted as a string, or "" when
// the key is absent.
func (e *AppError) ContextString(key string) string {
	value, ok := e.GetContext(key)
	if !ok || value == nil {
		return ""
	}
	if s, ok := value.(string); ok {
		return s
	}
	return fmt.Sprint(value)
}

// LogFields renders the context as zap fields, ordered by key, followed by
// the error code.
func (e *AppError) LogFields() []zap.Field {
	keys := make([]string, 0, len(e.Context))
	for k := range e.Context {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	fields := make([]zap.Field, 0, len(keys)+1)
	for _, k := range keys {
		fields = append(fields, zap.Any(k, e.Context[k]))
	}
	return append(fields, zap.String("code", e.Code))
}
