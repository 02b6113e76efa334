package common

import (
	"errors"
	"fmt"
)

// ErrValidation marks input rejected on the client before any request is sent.
var ErrValidation = errors.New("validation error")

// ValidationError names the offending form field. It matches ErrValidation
// with errors.Is.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// Required returns a ValidationError for a missing mandatory field.
func Required(field string) error {
	return &ValidationError{Field: field, Message: "is required"}
}

// Invalid returns a ValidationError with a custom message.
func Invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}
