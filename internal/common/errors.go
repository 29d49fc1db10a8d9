// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
	"fmt"
)

// Common application errors.
var (
	// Input validation errors. These are the only errors a search call
	// returns outright; everything downstream degrades and logs instead.
	ErrNoLocations        = errors.New("no locations provided")
	ErrInvalidDateRange   = errors.New("start date is after end date")
	ErrNegativeTarget     = errors.New("target points must not be negative")
	ErrNegativeBalance    = errors.New("current balance must not be negative")
	ErrInvalidMaxOverlaps = errors.New("max overlaps must be at least 1")
	ErrInvalidMilesRate   = errors.New("card miles rate must be 1 or 10")
	ErrUnknownStrategy    = errors.New("unknown strategy")

	// Session errors.
	ErrNoHeaders     = errors.New("no session headers available")
	ErrCurlNoURL     = errors.New("no URL found in curl command")
	ErrCurlNoHeaders = errors.New("no headers found in curl command")
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
