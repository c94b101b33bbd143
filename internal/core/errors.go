package core

import (
	"errors"
	"fmt"
)

// ErrNotFound marks lookups of records that do not exist.
var ErrNotFound = errors.New("not found")

// ValidationError marks input rejected before any mutation was attempted.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func validationErrorf(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// notFound wraps ErrNotFound with the entity and id for log context.
func notFound(entity string, id any) error {
	return fmt.Errorf("%s %v: %w", entity, id, ErrNotFound)
}
