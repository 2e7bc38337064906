package usage

import "fmt"

// StorageError indicates a store operation failed.
type StorageError struct {
	// Backend is the store backend, e.g. "sqlite" or "memory".
	Backend string

	// Operation is the operation that failed, e.g. "insert" or "query".
	Operation string

	// Cause is the underlying error.
	Cause error
}

// Error implements the error interface.
func (e *StorageError) Error() string {
	return fmt.Sprintf("usage storage error [backend=%s, operation=%s]: %v",
		e.Backend, e.Operation, e.Cause)
}

// Unwrap returns the underlying error.
func (e *StorageError) Unwrap() error {
	return e.Cause
}

// NewStorageError creates a new storage error.
func NewStorageError(backend, operation string, cause error) *StorageError {
	return &StorageError{
		Backend:   backend,
		Operation: operation,
		Cause:     cause,
	}
}

// RecorderError indicates the async recorder failed.
type RecorderError struct {
	// RecordID is the affected record's ID, empty when the failure is
	// not tied to a single record.
	RecordID string

	// Cause is the underlying error.
	Cause error
}

// Error implements the error interface.
func (e *RecorderError) Error() string {
	if e.RecordID == "" {
		return fmt.Sprintf("usage recorder error: %v", e.Cause)
	}
	return fmt.Sprintf("usage recorder error [record=%s]: %v", e.RecordID, e.Cause)
}

// Unwrap returns the underlying error.
func (e *RecorderError) Unwrap() error {
	return e.Cause
}

// NewRecorderError creates a new recorder error.
func NewRecorderError(recordID string, cause error) *RecorderError {
	return &RecorderError{
		RecordID: recordID,
		Cause:    cause,
	}
}

// RetentionError indicates retention pruning failed.
type RetentionError struct {
	// RetentionDays is the configured retention period.
	RetentionDays int

	// Cause is the underlying error.
	Cause error
}

// Error implements the error interface.
func (e *RetentionError) Error() string {
	return fmt.Sprintf("usage retention error [retention_days=%d]: %v",
		e.RetentionDays, e.Cause)
}

// Unwrap returns the underlying error.
func (e *RetentionError) Unwrap() error {
	return e.Cause
}

// NewRetentionError creates a new retention error.
func NewRetentionError(retentionDays int, cause error) *RetentionError {
	return &RetentionError{
		RetentionDays: retentionDays,
		Cause:         cause,
	}
}

// ExportError indicates an export failed.
type ExportError struct {
	// Format is the export format, e.g. "csv" or "json".
	Format string

	// RecordCount is how many records had been written when the export
	// failed.
	RecordCount int

	// Cause is the underlying error.
	Cause error
}

// Error implements the error interface.
func (e *ExportError) Error() string {
	return fmt.Sprintf("usage export error [format=%s, records=%d]: %v",
		e.Format, e.RecordCount, e.Cause)
}

// Unwrap returns the underlying error.
func (e *ExportError) Unwrap() error {
	return e.Cause
}

// NewExportError creates a new export error.
func NewExportError(format string, recordCount int, cause error) *ExportError {
	return &ExportError{
		Format:      format,
		RecordCount: recordCount,
		Cause:       cause,
	}
}
