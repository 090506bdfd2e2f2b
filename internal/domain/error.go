package domain

import (
	"errors"
	"strings"
)

var (
	// Common domain errors
	ErrNotFound           = errors.New("entity not found")
	ErrAlreadyExists      = errors.New("entity already exists")
	ErrInvalidArgument    = errors.New("invalid argument")
	ErrOperationFailed    = errors.New("operation failed")
	ErrInvalidExecContext = errors.New("invalid execution context")
	ErrReadDatabaseRow    = errors.New("failed to read database row")
)

// ValidationError carries one message per failing field so the API layer
// can echo all of them back in a single 400 response.
type ValidationError struct {
	Fields []string
}

func NewValidationError(messages ...string) *ValidationError {
	return &ValidationError{Fields: messages}
}

func (e *ValidationError) Add(message string) {
	e.Fields = append(e.Fields, message)
}

func (e *ValidationError) Empty() bool { return e == nil || len(e.Fields) == 0 }

func (e *ValidationError) Error() string {
	return strings.Join(e.Fields, "; ")
}

// OrNil returns nil when no field failed, so callers can write
// `return v.OrNil()` at the end of a validation pass.
func (e *ValidationError) OrNil() error {
	if e.Empty() {
		return nil
	}
	return e
}
