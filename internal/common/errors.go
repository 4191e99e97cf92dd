// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
	"fmt"
)

// Common application errors.
var (
	// Database errors.
	ErrNotFound       = errors.New("not found")
	ErrDuplicateEntry = errors.New("duplicate entry")

	// Configuration errors.
	ErrMissingConfig = errors.New("missing configuration")
	ErrInvalidConfig = errors.New("invalid configuration")
)

// ErrorDetail is a single sub-error inside a remote error payload.
type ErrorDetail struct {
	Message string `json:"message"`
}

// RemoteError mirrors the heterogeneous error payloads returned by the
// remote layer. Body holds either a []ErrorDetail, an ErrorDetail, or nil;
// Message is the top-level message when the payload carries one.
type RemoteError struct {
	Body    any
	Message string
}

func (e *RemoteError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "remote call failed"
}

// NewRemoteError builds a RemoteError with a top-level message only.
func NewRemoteError(format string, args ...any) error {
	return &RemoteError{Message: fmt.Sprintf(format, args...)}
}

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
