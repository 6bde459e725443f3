// Package errors provides centralized error definitions for the application.
// Errors are organized by domain to avoid duplication and provide consistent naming.
//
// Naming conventions:
//   - Exported errors (Err*): Use for errors that callers need to check with errors.Is
//   - All sentinel errors should be defined as variables, not inline errors.New calls
//   - Use fmt.Errorf with %w to wrap sentinel errors with context
package errors

import "errors"

// Queue errors.
var (
	// ErrEnqueueTimeout indicates the bounded enqueue wait elapsed.
	ErrEnqueueTimeout = errors.New("enqueue timed out")
)

// Producer errors.
var (
	// ErrSourceExhausted indicates the comment source has no more records.
	ErrSourceExhausted = errors.New("comment source exhausted")
)

// Sentiment coprocessor errors.
var (
	// ErrUnexpectedStatus indicates a non-2xx response from the sentiment service.
	ErrUnexpectedStatus = errors.New("unexpected response status")
)

// Configuration errors.
var (
	// ErrInvalidConfig indicates an unrecoverable configuration problem.
	// The pipeline must fail fast on this before accepting work.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// Is is a convenience wrapper around errors.Is.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As is a convenience wrapper around errors.As.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
