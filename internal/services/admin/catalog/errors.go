package catalog

import (
	"errors"
	"fmt"
)

// ErrUndefinedCategory rejects edits and deletion of the sentinel category.
var ErrUndefinedCategory = errors.New("the undefined category cannot be modified")

// Validation messages double as translation keys.
const (
	MsgNameTooShort  = "Name must contain at least 3 characters"
	MsgNameNotUnique = "Category name must be unique"
	MsgNameRequired  = "Name is required"
	MsgCountNegative = "Count must not be negative"
)

// ValidationError reports one invalid input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// AsValidationError extracts a ValidationError from err.
func AsValidationError(err error) (*ValidationError, bool) {
	var validation *ValidationError
	if errors.As(err, &validation) {
		return validation, true
	}
	return nil, false
}

// FieldName returns the invalid field.
func (e *ValidationError) FieldName() string { return e.Field }

// FieldMessage returns the message shown next to the field.
func (e *ValidationError) FieldMessage() string { return e.Message }
