package validator

import (
	"fmt"
	"reflect"
	"sync"

	ierr "github.com/carsapp/cars/internal/errors"
	"github.com/carsapp/cars/internal/types"
	"github.com/go-playground/validator/v10"
)

var (
	validate *validator.Validate
	once     sync.Once
)

// ViolationMessenger is implemented by types that phrase their own violation messages
type ViolationMessenger interface {
	ViolationMessage(fe validator.FieldError) string
}

func NewValidator() *validator.Validate {
	v := validator.New()
	// a zero DateTime reads as absent so that required applies to it
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if dt, ok := field.Interface().(types.DateTime); ok && !dt.IsZero() {
			return dt.Time
		}
		return nil
	}, types.DateTime{})
	validate = v
	return validate
}

func GetValidator() *validator.Validate {
	once.Do(func() {
		if validate == nil {
			NewValidator()
		}
	})
	return validate
}

// Violations returns every rule the object breaks, in field order.
// An empty slice means the object is valid.
func Violations(obj interface{}) []string {
	violations := make([]string, 0)

	err := GetValidator().Struct(obj)
	if err == nil {
		return violations
	}

	var validateErrs validator.ValidationErrors
	if !ierr.As(err, &validateErrs) {
		return append(violations, err.Error())
	}

	messenger, _ := obj.(ViolationMessenger)
	for _, fe := range validateErrs {
		if messenger != nil {
			if msg := messenger.ViolationMessage(fe); msg != "" {
				violations = append(violations, msg)
				continue
			}
		}
		violations = append(violations, defaultMessage(fe))
	}
	return violations
}

// ValidateRequest returns nil or a validation error carrying one hint per violation
func ValidateRequest(req interface{}) error {
	violations := Violations(req)
	if len(violations) == 0 {
		return nil
	}

	return ierr.NewError("request validation failed").
		WithHints(violations).
		WithReportableDetails(map[string]any{
			"violations": violations,
		}).
		Mark(ierr.ErrValidation)
}

func defaultMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s field can't be empty.", fe.Field())
	case "min", "max", "len":
		return fmt.Sprintf("%s field has an invalid length.", fe.Field())
	case "oneof":
		return fmt.Sprintf("%s field must be one of [%s].", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s field failed on the '%s' rule.", fe.Field(), fe.Tag())
	}
}
