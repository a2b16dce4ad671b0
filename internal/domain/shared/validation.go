package shared

import "strings"

// FieldViolation describes one rejected input field.
type FieldViolation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError collects every field rejected by an aggregate before it is
// written. It matches ErrInvalidInput under errors.Is.
type ValidationError struct {
	Violations []FieldViolation
}

// NewValidationError creates an empty validation error
func NewValidationError() *ValidationError {
	return &ValidationError{}
}

// Add records a violation for field
func (e *ValidationError) Add(field, message string) {
	e.Violations = append(e.Violations, FieldViolation{Field: field, Message: message})
}

// HasViolations reports whether any field was rejected
func (e *ValidationError) HasViolations() bool {
	return len(e.Violations) > 0
}

// OrNil returns nil when nothing was rejected, so callers can return it directly.
func (e *ValidationError) OrNil() error {
	if !e.HasViolations() {
		return nil
	}
	return e
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		parts = append(parts, v.Field+": "+v.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Is matches ErrInvalidInput
func (e *ValidationError) Is(target error) bool {
	t, ok := target.(*DomainError)
	return ok && t.Code == ErrInvalidInput.Code
}
