package errors

import (
	"net/http"
	"strings"

	"github.com/cockroachdb/errors"
)

// ErrorMessage is a single fault reported to the caller
type ErrorMessage struct {
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// ErrorMessageCollection is the uniform error payload of every failed request
type ErrorMessageCollection struct {
	Errors []ErrorMessage `json:"errors"`
}

// NewErrorMessageCollection builds a collection holding one message per entry, all with the same code
func NewErrorMessageCollection(code int, messages ...string) ErrorMessageCollection {
	c := ErrorMessageCollection{Errors: make([]ErrorMessage, 0, len(messages))}
	for _, m := range messages {
		c.AddError(ErrorMessage{Message: m, Code: code})
	}
	return c
}

func (c *ErrorMessageCollection) AddError(e ErrorMessage) {
	c.Errors = append(c.Errors, e)
}

// ToErrorMessageCollection maps an error to its HTTP status and payload.
// Validation faults yield one message per violation hint; every other kind yields one message.
func ToErrorMessageCollection(err error) (int, ErrorMessageCollection) {
	status := HTTPStatusFromErr(err)

	hints := GetHints(err)
	if IsValidation(err) && len(hints) > 0 {
		return status, NewErrorMessageCollection(status, hints...)
	}

	if len(hints) > 0 {
		return status, NewErrorMessageCollection(status, hints[0])
	}

	// Unhandled faults surface their own text
	if status == http.StatusInternalServerError {
		return status, NewErrorMessageCollection(status, err.Error())
	}
	return status, NewErrorMessageCollection(status, http.StatusText(status))
}

// GetHints returns the non-empty user facing hints attached to the error, innermost first
func GetHints(err error) []string {
	all := errors.GetAllHints(err)
	hints := make([]string, 0, len(all))
	for _, h := range all {
		if h = strings.TrimSpace(h); h != "" {
			hints = append(hints, h)
		}
	}
	return hints
}
