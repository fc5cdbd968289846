// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
	"fmt"
)

// Common application errors.
var (
	// Storage errors.
	ErrNotFound = errors.New("not found")

	// Classifier errors.
	ErrEmptySelection            = errors.New("no equipment selected")
	ErrClassificationFailed      = errors.New("classification failed")
	ErrInvalidClassifierResponse = errors.New("invalid classifier response")

	// Import errors.
	ErrImportFailed              = errors.New("import failed")
	ErrInvalidNormalizerResponse = errors.New("invalid normalizer response")

	// Export errors.
	ErrNothingToExport = errors.New("nothing to export")

	// Configuration errors.
	ErrMissingConfig = errors.New("missing configuration")
)

// UserError represents an error that should be shown to the user.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new user-friendly error.
func NewUserError(userMessage string, err error) error {
	return &UserError{
		UserMessage: userMessage,
		Err:         err,
	}
}
