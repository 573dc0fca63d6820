package findings

import "fmt"

// StorageError wraps a failure from a storage backend with the backend name
// and the operation that failed.
type StorageError struct {
	Backend string
	Op      string
	Err     error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("findings storage %s: %s: %v", e.Backend, e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// NewStorageError creates a StorageError.
func NewStorageError(backend, op string, err error) *StorageError {
	return &StorageError{Backend: backend, Op: op, Err: err}
}

// RetentionError wraps a failure during retention pruning.
type RetentionError struct {
	RetentionDays int
	Err           error
}

func (e *RetentionError) Error() string {
	return fmt.Sprintf("findings retention (%d days): %v", e.RetentionDays, e.Err)
}

func (e *RetentionError) Unwrap() error {
	return e.Err
}

// NewRetentionError creates a RetentionError.
func NewRetentionError(retentionDays int, err error) *RetentionError {
	return &RetentionError{RetentionDays: retentionDays, Err: err}
}
