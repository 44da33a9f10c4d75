package cli

import (
	"fmt"

	"go.uber.org/zap"

	"progress-tracker/internal/errors"
	"progress-tracker/internal/validation"
)

// ErrorHandler turns service errors into messages fit for the terminal and
// logs the structured context the message leaves out.
type ErrorHandler struct {
	logger *zap.Logger
}

// NewErrorHandler creates a new error handler
func NewErrorHandler(logger *zap.Logger) *ErrorHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ErrorHandler{logger: logger}
}

// Handle prefixes a user-friendly message with the failed operation
func (eh *ErrorHandler) Handle(operation string, err error) error {
	if validationErr, ok := validation.AsValidationError(err); ok && !errors.IsAppError(err) {
		return fmt.Errorf("failed to %s: %s", operation, validationErr.GetUserFriendlyMessage())
	}

	if appErr, ok := errors.AsAppError(err); ok {
		fields := append([]zap.Field{zap.String("command", operation), zap.Error(err)}, appErr.LogFields()...)
		if errors.ShouldLogError(err) {
			eh.logger.Error("Command failed", fields...)
		} else {
			eh.logger.Debug("Command rejected", fields...)
		}
		return fmt.Errorf("failed to %s: %s", operation, errors.GetUserMessage(err))
	}

	eh.logger.Error("Command failed", zap.String("command", operation), zap.Error(err))
	return fmt.Errorf("failed to %s: %w", operation, err)
}
