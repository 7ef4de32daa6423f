package model

import (
	"fmt"
	"strings"
)

// FieldError is a validation failure scoped to a single input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError aggregates field errors for one request. The zero value is
// usable; Err returns nil while no field has been added, so callers can
// collect errors and bail out once at the end.
type ValidationError struct {
	Fields []FieldError
}

func NewFieldError(field, message string) *ValidationError {
	ve := &ValidationError{}
	ve.Add(field, message)
	return ve
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = fmt.Sprintf("%s: %s", f.Field, f.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

// Merge folds another error's fields into e. Non-validation errors are
// ignored; callers must not pass infrastructure errors here.
func (e *ValidationError) Merge(err error) {
	if err == nil {
		return
	}
	if ve, ok := err.(*ValidationError); ok {
		e.Fields = append(e.Fields, ve.Fields...)
	}
}

// Err returns e as an error, or nil when no field error was recorded.
func (e *ValidationError) Err() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

// FieldMap flattens the errors for the API payload. The first message per
// field wins.
func (e *ValidationError) FieldMap() map[string]string {
	m := make(map[string]string, len(e.Fields))
	for _, f := range e.Fields {
		if _, ok := m[f.Field]; !ok {
			m[f.Field] = f.Message
		}
	}
	return m
}
