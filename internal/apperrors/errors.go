package apperrors

import (
	"errors"
	"fmt"

	pkgerrors "github.com/pkg/errors"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrStorage indicates that the backing store was unreachable or rejected the operation.
// Messages wrapping it may contain driver details and must not be shown to end users.
var ErrStorage = errors.New("storage error")

// Storage wraps a driver error with ErrStorage and records the call stack, so
// operators can log it with "%+v" while callers still match it with errors.Is.
func Storage(op string, err error) error {
	if err == nil {
		return nil
	}
	return pkgerrors.WithStack(fmt.Errorf("%w: %s: %w", ErrStorage, op, err))
}

// StackTrace renders the stack recorded by Storage, or "" if none was captured.
func StackTrace(err error) string {
	var st interface{ StackTrace() pkgerrors.StackTrace }
	if !errors.As(err, &st) {
		return ""
	}
	return fmt.Sprintf("%+v", st.StackTrace())
}
