// ABOUTME: Custom error types for the core business logic
// ABOUTME: Provides structured errors so callers can branch on failure class

package errors

import (
	"errors"
	"fmt"
)

// FetchError represents a network or HTTP status failure while fetching a page.
// The crawler recovers from these locally by skipping the page.
type FetchError struct {
	URL        string
	StatusCode int
	Reason     string
}

// Error implements the error interface
func (e *FetchError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("fetch failed for %s: status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("fetch failed for %s: %s", e.URL, e.Reason)
}

// ExtractionError represents a failure to parse a page into a structure.
// Callers must treat the page as unusable and continue.
type ExtractionError struct {
	URL     string
	Message string
}

// Error implements the error interface
func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extraction failed for %s: %s", e.URL, e.Message)
}

// SecurityBreachError is raised when the security mediator detects an
// adversarial query or manipulated model output. It is never recovered
// silently: the triggering request must not be retried or resubmitted.
type SecurityBreachError struct {
	Reason string
}

// Error implements the error interface
func (e *SecurityBreachError) Error() string {
	return fmt.Sprintf("security breach detected: %s", e.Reason)
}

// EngineUnavailableError represents a non-security LLM failure (timeout,
// auth, quota). Callers fall back to the keyword strategy.
type EngineUnavailableError struct {
	Cause error
}

// Error implements the error interface
func (e *EngineUnavailableError) Error() string {
	return fmt.Sprintf("relevance engine unavailable: %v", e.Cause)
}

// Unwrap exposes the underlying cause
func (e *EngineUnavailableError) Unwrap() error {
	return e.Cause
}

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}

// IsFetch checks if an error is a FetchError
func IsFetch(err error) bool {
	var fetchErr *FetchError
	return errors.As(err, &fetchErr)
}

// IsExtraction checks if an error is an ExtractionError
func IsExtraction(err error) bool {
	var extractErr *ExtractionError
	return errors.As(err, &extractErr)
}

// IsSecurityBreach checks if an error is a SecurityBreachError
func IsSecurityBreach(err error) bool {
	var breachErr *SecurityBreachError
	return errors.As(err, &breachErr)
}

// IsEngineUnavailable checks if an error is an EngineUnavailableError
func IsEngineUnavailable(err error) bool {
	var engineErr *EngineUnavailableError
	return errors.As(err, &engineErr)
}

// IsValidation checks if an error is a ValidationError
func IsValidation(err error) bool {
	var validationErr *ValidationError
	return errors.As(err, &validationErr)
}

// WrapError wraps an error with additional context
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
