// Package errors provides standardized error types and helpers for the splitter codebase.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common cases
var (
	// ErrEmptyInput indicates the normalized text has no content to split
	ErrEmptyInput = errors.New("empty input")
	// ErrInvalidPlan indicates an unusable reading plan (speed, minutes or budget)
	ErrInvalidPlan = errors.New("invalid reading plan")
	// ErrPhraseNotFound indicates a start phrase was supplied but is absent from the text
	ErrPhraseNotFound = errors.New("phrase not found")
	// ErrInvalidInput indicates invalid input or validation failure
	ErrInvalidInput = errors.New("invalid input")
	// ErrUnsupported indicates an unsupported format or operation
	ErrUnsupported = errors.New("unsupported")
)

// EmptyInputError reports text that has nothing left to split, with context
// about what reduced it to nothing.
type EmptyInputError struct {
	Source string // Where the text came from (e.g., a file path)
	Reason string // Why it is empty (e.g., "no words after cleanup")
	Err    error  // Underlying error, if any
}

func (e *EmptyInputError) Error() string {
	if e.Source != "" {
		return fmt.Sprintf("empty input from %s: %s", e.Source, e.Reason)
	}
	return fmt.Sprintf("empty input: %s", e.Reason)
}

func (e *EmptyInputError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrEmptyInput
}

// PlanError reports an invalid reading plan parameter.
type PlanError struct {
	Field   string // Parameter that failed (e.g., "speed_wpm")
	Value   string // Offending value
	Message string // Human-readable error message
}

func (e *PlanError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid reading plan: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("invalid reading plan: %s", e.Message)
}

func (e *PlanError) Unwrap() error {
	return ErrInvalidPlan
}

// PhraseError reports a start phrase that could not be located in the text.
type PhraseError struct {
	Phrase string // Phrase that was searched for
}

func (e *PhraseError) Error() string {
	return fmt.Sprintf("start phrase not found: %q", e.Phrase)
}

func (e *PhraseError) Unwrap() error {
	return ErrPhraseNotFound
}

// ValidationError represents an input validation error with context
type ValidationError struct {
	Field   string // Field name that failed validation
	Value   string // Value that failed validation (may be redacted)
	Message string // Human-readable error message
	Err     error  // Underlying error, if any
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

func (e *ValidationError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrInvalidInput
}

// ParseError represents a parsing or deserialization error
type ParseError struct {
	Format  string // Format being parsed (e.g., "FB2", "EPUB", "JSON")
	Path    string // File path, if applicable
	Message string // Error details
	Err     error  // Underlying error, if any
}

func (e *ParseError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("failed to parse %s at %s: %s", e.Format, e.Path, e.Message)
	}
	return fmt.Sprintf("failed to parse %s: %s", e.Format, e.Message)
}

func (e *ParseError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrInvalidInput
}

// IOError represents an I/O operation error with context
type IOError struct {
	Operation string // Operation being performed (e.g., "read", "write", "open")
	Path      string // File/resource path involved
	Err       error  // Underlying error
}

func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("failed to %s %s: %v", e.Operation, e.Path, e.Err)
	}
	return fmt.Sprintf("failed to %s: %v", e.Operation, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// UnsupportedError represents an unsupported format or feature
type UnsupportedError struct {
	Feature string // Feature or format that is unsupported
	Reason  string // Why it's not supported
	Err     error  // Underlying error, if any
}

func (e *UnsupportedError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("unsupported %s: %s", e.Feature, e.Reason)
	}
	return fmt.Sprintf("unsupported %s", e.Feature)
}

func (e *UnsupportedError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrUnsupported
}

// Helper functions for creating common errors

// NewEmptyInput creates an EmptyInputError
func NewEmptyInput(source, reason string) *EmptyInputError {
	return &EmptyInputError{
		Source: source,
		Reason: reason,
	}
}

// NewPlan creates a PlanError
func NewPlan(field, value, message string) *PlanError {
	return &PlanError{
		Field:   field,
		Value:   value,
		Message: message,
	}
}

// NewPhrase creates a PhraseError
func NewPhrase(phrase string) *PhraseError {
	return &PhraseError{Phrase: phrase}
}

// NewValidation creates a ValidationError
func NewValidation(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// NewParse creates a ParseError
func NewParse(format, path, message string) *ParseError {
	return &ParseError{
		Format:  format,
		Path:    path,
		Message: message,
	}
}

// NewIO creates an IOError
func NewIO(operation, path string, err error) *IOError {
	return &IOError{
		Operation: operation,
		Path:      path,
		Err:       err,
	}
}

// NewUnsupported creates an UnsupportedError
func NewUnsupported(feature, reason string) *UnsupportedError {
	return &UnsupportedError{
		Feature: feature,
		Reason:  reason,
	}
}

// Wrap adds context to an error. If err is nil, returns nil.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf adds formatted context to an error. If err is nil, returns nil.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// Is wraps errors.Is for convenience
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As wraps errors.As for convenience
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
