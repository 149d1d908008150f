package wizard

import (
	"errors"
	"fmt"
)

// Validation errors for the wizard answers.
var (
	errProjectNameRequired = errors.New("project name is required")
	errProjectNameInvalid  = errors.New("project name must be 1-63 lowercase alphanumeric characters or hyphens, starting with a letter and ending with an alphanumeric character")
	errMissionRequired     = errors.New("mission is required")
	errRuntimeRequired     = errors.New("runtime is required")
	errClusterRequired     = errors.New("cluster is required for continuous delivery")
)

// ValidationError reports an answer that cannot be used.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func newValidationError(field string, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}
