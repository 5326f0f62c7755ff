// Inkwell - Publishing API Edge Caching and Rate Limiting
// Copyright 2026 Inkwell Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/inkwell-app/inkwell

// Package validation provides struct validation using go-playground/validator v10.
//
// It wraps the validator library in a thread-safe singleton with translated,
// human-readable error messages. Configuration loading uses it to validate
// route quota entries before the server starts.
package validation

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// singleton validator instance
var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// FieldError represents a single field validation failure.
type FieldError struct {
	Field   string
	Tag     string
	Param   string
	Message string
}

// Error returns the human-readable message.
func (e FieldError) Error() string {
	return e.Message
}

// StructError is a collection of field validation failures for one struct.
type StructError struct {
	fields []FieldError
}

// Fields returns the individual field errors.
func (e *StructError) Fields() []FieldError {
	return e.fields
}

// Error implements the error interface, joining all field messages.
func (e *StructError) Error() string {
	if len(e.fields) == 0 {
		return "validation failed"
	}
	messages := make([]string, len(e.fields))
	for i, fe := range e.fields {
		messages[i] = fe.Message
	}
	return strings.Join(messages, "; ")
}

// GetValidator returns the singleton validator instance.
// The validator caches struct metadata, so sharing one instance is
// both safe and significantly faster than constructing per call.
func GetValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// ValidateStruct validates a struct using the singleton validator.
// Returns nil if validation passes, or *StructError describing every
// failed field.
func ValidateStruct(s interface{}) *StructError {
	err := GetValidator().Struct(s)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return &StructError{fields: []FieldError{{
			Field:   "unknown",
			Tag:     "unknown",
			Message: err.Error(),
		}}}
	}

	fields := make([]FieldError, len(validationErrs))
	for i, fe := range validationErrs {
		fields[i] = FieldError{
			Field:   fe.Field(),
			Tag:     fe.Tag(),
			Param:   fe.Param(),
			Message: translateError(fe),
		}
	}
	return &StructError{fields: fields}
}

// translateError converts a validator.FieldError to a readable message.
func translateError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", fe.Field(), fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	case "startswith":
		return fmt.Sprintf("%s must start with %q", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s failed validation (%s)", fe.Field(), fe.Tag())
	}
}
