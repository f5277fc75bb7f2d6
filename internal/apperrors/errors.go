package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrUnauthorized indicates missing or invalid authentication.
var ErrUnauthorized = errors.New("unauthorized")

// ErrForbidden indicates the authenticated user is not allowed to perform the action.
var ErrForbidden = errors.New("forbidden")

// ErrConflict indicates the request conflicts with existing state
// (overlapping time ranges, already-paid entries, companies that still have users).
var ErrConflict = errors.New("conflict with existing state")

// ErrInvalidState indicates the action is illegal for the entity's current state,
// e.g. editing an approved time entry.
var ErrInvalidState = errors.New("invalid state for this operation")

// ErrManagerWithoutCompany indicates a MANAGER principal with no company assignment
// attempted an approval action. Kept distinct from ErrForbidden so the client can
// tell the user to contact an administrator.
var ErrManagerWithoutCompany = errors.New("manager has no company assigned")

// AppError wraps an underlying error with an HTTP-ish status code and a message.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}
