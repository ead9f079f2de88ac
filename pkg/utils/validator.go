package utils

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// emailPattern is the accepted email shape, matched case-insensitively.
var emailPattern = regexp.MustCompile(`(?i)^[\w+\-.]+@[a-z\d\-.]+\.[a-z]+$`)

var validate = newValidator()

// ValidationErrors maps a form field name to a human-readable message.
type ValidationErrors map[string]string

func (ve ValidationErrors) Error() string {
	return "validation failed: " + FormatValidationErrors(ve)
}

// Add records msg for field unless the field already has a message.
func (ve ValidationErrors) Add(field, msg string) {
	if _, ok := ve[field]; !ok {
		ve[field] = msg
	}
}

// AsValidationErrors reports whether err carries field errors.
func AsValidationErrors(err error) (ValidationErrors, bool) {
	var ve ValidationErrors
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// report errors under the name the form submitted
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	v.RegisterValidation("email_shape", func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(fl.Field().String())
	})

	return v
}

func ValidateStruct(data interface{}) ValidationErrors {
	err := validate.Struct(data)
	if err == nil {
		return nil
	}

	errs := make(ValidationErrors)
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		for _, fe := range validationErrors {
			errs.Add(fe.Field(), getErrorMessage(fe))
		}
	}

	return errs
}

// converts validator errors to human-readable messages
func getErrorMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required", "notblank":
		return "can't be blank"
	case "email_shape":
		return "is invalid"
	case "min":
		return fmt.Sprintf("is too short (minimum is %s characters)", err.Param())
	case "max":
		return fmt.Sprintf("is too long (maximum is %s characters)", err.Param())
	case "oneof":
		options := strings.ReplaceAll(err.Param(), " ", ", ")
		return fmt.Sprintf("must be one of: %s", options)
	case "number", "numeric":
		return "is not a number"
	default:
		return fmt.Sprintf("is invalid (%s)", err.Tag())
	}
}

// formats validation errors map into single string, sorted by field
func FormatValidationErrors(errors map[string]string) string {
	fields := make([]string, 0, len(errors))
	for field := range errors {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	msgs := make([]string, 0, len(fields))
	for _, field := range fields {
		msgs = append(msgs, fmt.Sprintf("%s %s", field, errors[field]))
	}
	return strings.Join(msgs, "; ")
}
