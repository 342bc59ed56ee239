package errors

import (
	"net/http"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPStatusFromErr(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"not found", NewError("car 7 missing").Mark(ErrNotFound), http.StatusNotFound},
		{"validation", NewError("bad car").Mark(ErrValidation), http.StatusBadRequest},
		{"malformed parameter", NewError("bad id").Mark(ErrMalformedParameter), http.StatusBadRequest},
		{"invalid action", NewError("bad action").Mark(ErrInvalidAction), http.StatusBadRequest},
		{"method not allowed", NewError("nope").Mark(ErrMethodNotAllowed), http.StatusMethodNotAllowed},
		{"already running", NewError("busy").Mark(ErrAlreadyRunning), http.StatusConflict},
		{"database", WithError(errors.New("conn reset")).Mark(ErrDatabase), http.StatusInternalServerError},
		{"unmarked", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, HTTPStatusFromErr(tt.err))
		})
	}
}

func TestMarkSurvivesWrapping(t *testing.T) {
	err := NewError("car 3 missing").Mark(ErrNotFound)
	wrapped := errors.Wrap(err, "loading car")

	assert.True(t, IsNotFound(wrapped))
	assert.False(t, IsValidation(wrapped))
}

func TestToErrorMessageCollection_Validation(t *testing.T) {
	err := NewError("car validation failed").
		WithHints([]string{
			"Brand field can't be empty.",
			"Country field for Car can't be empty.",
		}).
		Mark(ErrValidation)

	status, payload := ToErrorMessageCollection(err)

	assert.Equal(t, http.StatusBadRequest, status)
	require.Len(t, payload.Errors, 2)
	assert.Equal(t, ErrorMessage{Message: "Brand field can't be empty.", Code: 400}, payload.Errors[0])
	assert.Equal(t, ErrorMessage{Message: "Country field for Car can't be empty.", Code: 400}, payload.Errors[1])
}

func TestToErrorMessageCollection_NotFound(t *testing.T) {
	err := NewError("car not found").
		WithHint("Car with id 42 not found.").
		Mark(ErrNotFound)

	status, payload := ToErrorMessageCollection(err)

	assert.Equal(t, http.StatusNotFound, status)
	require.Len(t, payload.Errors, 1)
	assert.Equal(t, "Car with id 42 not found.", payload.Errors[0].Message)
	assert.Equal(t, http.StatusNotFound, payload.Errors[0].Code)
}

func TestToErrorMessageCollection_Unhandled(t *testing.T) {
	status, payload := ToErrorMessageCollection(errors.New("connection refused"))

	assert.Equal(t, http.StatusInternalServerError, status)
	require.Len(t, payload.Errors, 1)
	assert.Equal(t, "connection refused", payload.Errors[0].Message)
	assert.Equal(t, 500, payload.Errors[0].Code)
}

func TestToErrorMessageCollection_NoHint(t *testing.T) {
	status, payload := ToErrorMessageCollection(NewError("route").Mark(ErrMethodNotAllowed))

	assert.Equal(t, http.StatusMethodNotAllowed, status)
	require.Len(t, payload.Errors, 1)
	assert.Equal(t, http.StatusText(http.StatusMethodNotAllowed), payload.Errors[0].Message)
}
