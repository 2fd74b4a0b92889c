package provider

import (
	"context"
	"errors"
	"fmt"
)

// Class is the retry classification of a provider error.
type Class int

const (
	// ClassUnknown is an error the backend could not classify.
	ClassUnknown Class = iota
	// ClassTransient errors are expected to resolve on their own (rate
	// limiting, eventual consistency lag, locked resources).
	ClassTransient
	// ClassTerminal errors never resolve by retrying (not found, invalid
	// input, conflicting state).
	ClassTerminal
)

// String returns the string representation of Class.
func (c Class) String() string {
	switch c {
	case ClassTransient:
		return "transient"
	case ClassTerminal:
		return "terminal"
	default:
		return "unknown"
	}
}

// Error codes produced by the tracker itself rather than a provider.
const (
	CodeSnapshotNotFound = "InvalidSnapshotId.NotFound"
	CodeInstanceNotFound = "InvalidInstanceId.NotFound"
	CodeTooManyInstances = "InvalidParameter.TooManyInstances"
	CodeSnapshotNotReady = "Snapshot.NotReady"
	CodeMissingParameter = "MissingParameter"
)

// APIError is a classified provider error.
type APIError struct {
	Code     string
	Message  string
	Class    Class
	NotFound bool
	Err      error // Underlying SDK error, if any
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return e.Code
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// NotFoundError builds a terminal not-found error.
func NotFoundError(code, format string, args ...any) *APIError {
	return &APIError{
		Code:     code,
		Message:  fmt.Sprintf(format, args...),
		Class:    ClassTerminal,
		NotFound: true,
	}
}

// AsAPIError extracts an APIError from err's chain.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// IsTransient reports whether err is a provider error classified as transient.
// Context cancellation and unclassified errors are not transient.
func IsTransient(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	apiErr, ok := AsAPIError(err)
	return ok && apiErr.Class == ClassTransient
}

// IsTerminal reports whether err is a provider error classified as terminal.
func IsTerminal(err error) bool {
	apiErr, ok := AsAPIError(err)
	return ok && apiErr.Class == ClassTerminal
}

// IsNotFound reports whether err says the resource does not exist.
func IsNotFound(err error) bool {
	apiErr, ok := AsAPIError(err)
	return ok && apiErr.NotFound
}

// ErrorCode returns the provider error code of err, or "" if it has none.
func ErrorCode(err error) string {
	if apiErr, ok := AsAPIError(err); ok {
		return apiErr.Code
	}
	return ""
}
