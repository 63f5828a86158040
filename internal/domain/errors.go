package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a record addressed by id does not exist
type ErrNotFound struct {
	Entity string
	ID     string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found with ID: %s", e.Entity, e.ID)
}

// ErrContentNotFound is returned when no document is stored under Key
type ErrContentNotFound struct {
	Key string
}

func (e *ErrContentNotFound) Error() string {
	return fmt.Sprintf("content not found for key: %s", e.Key)
}

type ErrUserAlreadyExists struct {
	Email string
}

func (e *ErrUserAlreadyExists) Error() string {
	return fmt.Sprintf("user already exists with email: %s", e.Email)
}

// ErrRateLimited carries the number of seconds the caller should wait
type ErrRateLimited struct {
	RetryAfter int
}

func (e *ErrRateLimited) Error() string {
	return fmt.Sprintf("too many attempts, retry in %d seconds", e.RetryAfter)
}

var ErrInvalidCredentials = errors.New("invalid credentials")

// ValidationError represents an error that occurs due to invalid input
type ValidationError struct {
	Message string
}

// Error implements the error interface
func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s", e.Message)
}

// NewValidationError creates a new validation error with the given message
func NewValidationError(message string) error {
	return ValidationError{
		Message: message,
	}
}

// IsNotFound reports whether err wraps ErrNotFound or ErrContentNotFound
func IsNotFound(err error) bool {
	var nf *ErrNotFound
	var cnf *ErrContentNotFound
	return errors.As(err, &nf) || errors.As(err, &cnf)
}

// IsValidationError reports whether err wraps a ValidationError
func IsValidationError(err error) bool {
	var ve ValidationError
	return errors.As(err, &ve)
}
