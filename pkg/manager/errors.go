package manager

import (
	"fmt"
	"strings"
)

// LoadError represents a file system error during contract loading, such as
// "file not found", "permission denied", size limit or encoding violations.
type LoadError struct {
	// FilePath is the path to the file that failed to load
	FilePath string

	// Message describes the error
	Message string

	// Cause is the underlying error
	Cause error
}

// Error implements the error interface.
func (e *LoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to load contract file %q: %s: %v", e.FilePath, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to load contract file %q: %s", e.FilePath, e.Message)
}

// Unwrap implements the errors.Unwrap interface for error chain support.
func (e *LoadError) Unwrap() error {
	return e.Cause
}

// RegistryError represents an error during registry operations.
type RegistryError struct {
	// Path is the contract file path involved in the error
	Path string

	// Operation is the operation that failed (e.g., "register", "replace")
	Operation string

	// Message describes the error
	Message string
}

// Error implements the error interface.
func (e *RegistryError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("registry error for %q during %s: %s", e.Path, e.Operation, e.Message)
	}
	return fmt.Sprintf("registry error during %s: %s", e.Operation, e.Message)
}

// ErrorList collects multiple errors from a run where some files may succeed
// and others fail.
type ErrorList struct {
	Errors []error
}

// Error implements the error interface.
func (e *ErrorList) Error() string {
	if len(e.Errors) == 0 {
		return "no errors"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d errors occurred:\n", len(e.Errors)))
	for i, err := range e.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %v\n", i+1, err))
	}
	return sb.String()
}

// Add adds an error to the list.
func (e *ErrorList) Add(err error) {
	if err != nil {
		e.Errors = append(e.Errors, err)
	}
}

// HasErrors returns true if the list contains any errors.
func (e *ErrorList) HasErrors() bool {
	return len(e.Errors) > 0
}

// ToError returns nil for an empty list, the single error for a list of one,
// or the list itself otherwise.
func (e *ErrorList) ToError() error {
	if len(e.Errors) == 0 {
		return nil
	}
	if len(e.Errors) == 1 {
		return e.Errors[0]
	}
	return e
}
