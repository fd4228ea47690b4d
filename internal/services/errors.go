package services

import (
	"errors"
	"fmt"
)

// ValidationError reports a rejected field definition, value or chart. It is
// always recoverable: the caller fixes the input and retries.
type ValidationError struct {
	Rule    string // machine-readable rule name, e.g. "select_options_required"
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed (%s): %s", e.Rule, e.Message)
}

func newValidationError(rule, format string, args ...interface{}) *ValidationError {
	return &ValidationError{Rule: rule, Message: fmt.Sprintf(format, args...)}
}

// IsValidationError reports whether err is (or wraps) a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// PersistenceError wraps a failure from the underlying store. The subsystem
// does not retry; retry policy belongs to the storage layer.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failure in %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

func wrapPersistence(op string, err error) error {
	if err == nil {
		return nil
	}
	return &PersistenceError{Op: op, Err: err}
}

// ConfigurationConflictError signals a write that would create a second row
// for a pair the schema requires to be unique, such as a duplicate custom
// field column.
type ConfigurationConflictError struct {
	Message string
}

func (e *ConfigurationConflictError) Error() string { return e.Message }
