package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound also covers résumés owned by somebody else.
	ErrNotFound           = errors.New("not found")
	ErrInvalidID          = errors.New("invalid id")
	ErrInvalidPayload     = errors.New("invalid payload")
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("unauthorized")
)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError is returned when input fails the authoritative schema.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Has reports whether any field error refers to field or one of its children.
func (e *ValidationError) Has(field string) bool {
	for _, f := range e.Fields {
		if f.Field == field || strings.HasPrefix(f.Field, field+".") {
			return true
		}
	}
	return false
}

// StrategyFailure records why one PDF strategy did not produce a document.
type StrategyFailure struct {
	Strategy string
	Err      error
}

// ExportError is returned once every export strategy has failed.
type ExportError struct {
	Failures []StrategyFailure
}

func (e *ExportError) Error() string {
	if len(e.Failures) == 0 {
		return "export failed: no strategies configured"
	}
	parts := make([]string, 0, len(e.Failures))
	for _, f := range e.Failures {
		parts = append(parts, fmt.Sprintf("%s: %v", f.Strategy, f.Err))
	}
	return "export failed: " + strings.Join(parts, "; ")
}

func (e *ExportError) Unwrap() []error {
	out := make([]error, 0, len(e.Failures))
	for _, f := range e.Failures {
		out = append(out, f.Err)
	}
	return out
}
