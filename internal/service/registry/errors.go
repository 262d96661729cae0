package registry

import (
	"errors"
	"fmt"
)

var (
	ErrOperationNotFound     = errors.New("operation not found")
	ErrOperationNotInvocable = errors.New("operation is not invocable")
)

// OperationError wraps a failure raised while an operation was running.
type OperationError struct {
	Operation string
	Err       error
}

func (e *OperationError) Error() string {
	return fmt.Sprintf("Error ejecutando %s: %v", e.Operation, e.Err)
}

func (e *OperationError) Unwrap() error {
	return e.Err
}
