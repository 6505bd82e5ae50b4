// Package common defines sentinel errors, shared constants and the document
// upload rules used by both the dashboard client and the API server. Callers
// should match errors with errors.Is / errors.As.
package common

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors.
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorForbidden    = errors.New("forbidden")
	ErrorValidation   = errors.New("validation error")

	// Token errors.
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")

	// Upload constraint errors.
	ErrFileTooLarge        = errors.New("file too large")
	ErrUnsupportedFileType = errors.New("unsupported file type")
)

// FieldError reports invalid or missing input fields. It unwraps to
// ErrorValidation.
type FieldError struct {
	Fields []string
	Reason string
}

// NewFieldError builds a FieldError for one or more fields.
func NewFieldError(reason string, fields ...string) *FieldError {
	return &FieldError{Fields: fields, Reason: reason}
}

func (e *FieldError) Error() string {
	if len(e.Fields) == 0 {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Reason, strings.Join(e.Fields, ", "))
}

func (e *FieldError) Unwrap() error { return ErrorValidation }
