package service

import "fmt"

// ValidationError reports input that failed a schema or business check.
type ValidationError struct {
	Message string
	Details []string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalid(message string, details ...string) *ValidationError {
	return &ValidationError{Message: message, Details: details}
}

// NotFoundError reports that no document matched the lookup.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

// ExpiredError reports an entity that exists but is past its deadline.
type ExpiredError struct {
	Message string
}

func (e *ExpiredError) Error() string {
	return e.Message
}

// InternalError wraps a persistence or unexpected failure. Op names the
// operation for server-side logs; the wrapped error is never shown to callers.
type InternalError struct {
	Op  string
	Err error
}

func (e *InternalError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *InternalError) Unwrap() error {
	return e.Err
}

func internal(op string, err error) *InternalError {
	return &InternalError{Op: op, Err: err}
}

// UnauthorizedError reports failed credentials.
type UnauthorizedError struct {
	Message string
}

func (e *UnauthorizedError) Error() string {
	return e.Message
}
