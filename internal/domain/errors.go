package domain

import (
	"errors" // Sentinel errors
	"fmt"    // Error formatting
	"strings"
)

// Sentinel errors shared by the stores, the services and the API
var (
	ErrNotFound           = errors.New("record not found")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// FieldError describes one field that failed validation
type FieldError struct {
	Field  string `json:"field"`  // Field name, e.g. "email"
	Reason string `json:"reason"` // Rule that failed, e.g. "required"
}

// ValidationError is returned when input fails shape or format rules
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Reason)
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

// Has reports whether the named field is among the failures
func (e *ValidationError) Has(field string) bool {
	for _, f := range e.Fields {
		if f.Field == field {
			return true
		}
	}
	return false
}

// UniquenessError is returned when a unique constraint would be violated
type UniquenessError struct {
	Field string
	Value string
}

func (e *UniquenessError) Error() string {
	return fmt.Sprintf("%s %q already exists", e.Field, e.Value)
}

// ConnectionError is returned when the storage backend cannot be reached
type ConnectionError struct {
	Driver string
	Err    error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("connect to %s: %v", e.Driver, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// ShapeError signals an inconsistency in the static seed dataset
type ShapeError struct {
	Index  int    // Position of the offending source entry
	Reason string // What is wrong with it
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("seed dataset entry %d: %s", e.Index, e.Reason)
}

// IsValidation reports whether err is (or wraps) a ValidationError
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsUniqueness reports whether err is (or wraps) a UniquenessError
func IsUniqueness(err error) bool {
	var ue *UniquenessError
	return errors.As(err, &ue)
}
