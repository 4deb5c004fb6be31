package service

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"
)

// ValidationError means the request itself is at fault. The transaction it
// aborted never commits anything.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func newValidationError(field, format string, args ...interface{}) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// TransientError marks store failures (deadlock, lock timeout, lost
// connection) that are safe to retry with the identical request. A retried
// checkout still creates a new order; dedup is the caller's problem.
type TransientError struct {
	Err error
}

func (e *TransientError) Error() string {
	return "transient store error: " + e.Err.Error()
}

func (e *TransientError) Unwrap() error {
	return e.Err
}

var transientMarkers = []string{
	"deadlock",
	"lock wait timeout",
	"database is locked",
	"connection refused",
	"connection reset",
	"broken pipe",
}

// classifyStoreError wraps retryable store failures as TransientError and
// passes everything else through.
func classifyStoreError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, driver.ErrBadConn) {
		return &TransientError{Err: err}
	}
	msg := strings.ToLower(err.Error())
	for _, marker := range transientMarkers {
		if strings.Contains(msg, marker) {
			return &TransientError{Err: err}
		}
	}
	return err
}
