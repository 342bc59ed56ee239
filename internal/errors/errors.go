package errors

import (
	"fmt"
	"net/http"

	"github.com/cockroachdb/errors"
)

// Common error types that can be used across the application
var (
	ErrNotFound           = new(ErrCodeNotFound, "resource not found")
	ErrValidation         = new(ErrCodeValidation, "validation error")
	ErrMalformedParameter = new(ErrCodeMalformedParameter, "malformed parameter")
	ErrMethodNotAllowed   = new(ErrCodeMethodNotAllowed, "method not allowed")
	ErrInvalidAction      = new(ErrCodeInvalidAction, "invalid message action")
	ErrInvalidCarMessage  = new(ErrCodeInvalidCarMessage, "invalid car message")
	ErrAlreadyRunning     = new(ErrCodeAlreadyRunning, "job already running")
	ErrDatabase           = new(ErrCodeDatabase, "database error")
	ErrSystem             = new(ErrCodeSystemError, "system error")
	// maps errors to http status codes
	statusCodeMap = []struct {
		err    error
		status int
	}{
		{ErrNotFound, http.StatusNotFound},
		{ErrValidation, http.StatusBadRequest},
		{ErrMalformedParameter, http.StatusBadRequest},
		{ErrInvalidAction, http.StatusBadRequest},
		{ErrInvalidCarMessage, http.StatusBadRequest},
		{ErrMethodNotAllowed, http.StatusMethodNotAllowed},
		{ErrAlreadyRunning, http.StatusConflict},
		{ErrDatabase, http.StatusInternalServerError},
		{ErrSystem, http.StatusInternalServerError},
	}
)

const (
	ErrCodeNotFound           = "not_found"
	ErrCodeValidation         = "validation_error"
	ErrCodeMalformedParameter = "malformed_parameter"
	ErrCodeMethodNotAllowed   = "method_not_allowed"
	ErrCodeInvalidAction      = "invalid_action"
	ErrCodeInvalidCarMessage  = "invalid_car_message"
	ErrCodeAlreadyRunning     = "already_running"
	ErrCodeDatabase           = "database_error"
	ErrCodeSystemError        = "system_error"
)

// InternalError represents a domain error
type InternalError struct {
	Code    string // Machine-readable error code
	Message string // Human-readable error message
	Op      string // Logical operation name
	Err     error  // Underlying error
}

func (e *InternalError) Error() string {
	if e.Err == nil {
		return e.DisplayError()
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Err.Error())
}

func (e *InternalError) DisplayError() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *InternalError) Unwrap() error {
	return e.Err
}

// Is implements error matching for wrapped errors
func (e *InternalError) Is(target error) bool {
	if target == nil {
		return false
	}

	t, ok := target.(*InternalError)
	if !ok {
		return errors.Is(e.Err, target)
	}

	return e.Code == t.Code
}

func new(code string, message string) *InternalError {
	return &InternalError{
		Code:    code,
		Message: message,
	}
}

func As(err error, target any) bool {
	return errors.As(err, target)
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidation checks if an error is a validation error
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsMalformedParameter checks if an error is a path or query parameter parse error
func IsMalformedParameter(err error) bool {
	return errors.Is(err, ErrMalformedParameter)
}

// IsMethodNotAllowed checks if an error is a method not allowed error
func IsMethodNotAllowed(err error) bool {
	return errors.Is(err, ErrMethodNotAllowed)
}

// IsInvalidAction checks if an error is an unrecognized queue action error
func IsInvalidAction(err error) bool {
	return errors.Is(err, ErrInvalidAction)
}

// IsInvalidCarMessage checks if an error is a queue message carrying an invalid car
func IsInvalidCarMessage(err error) bool {
	return errors.Is(err, ErrInvalidCarMessage)
}

// IsAlreadyRunning checks if an error is a job re-entry error
func IsAlreadyRunning(err error) bool {
	return errors.Is(err, ErrAlreadyRunning)
}

// IsDatabase checks if an error is a database error
func IsDatabase(err error) bool {
	return errors.Is(err, ErrDatabase)
}

// HTTPStatusFromErr returns the status code of the first sentinel the error is marked with.
// Anything unmarked is an unhandled fault.
func HTTPStatusFromErr(err error) int {
	for _, m := range statusCodeMap {
		if errors.Is(err, m.err) {
			return m.status
		}
	}
	return http.StatusInternalServerError
}
