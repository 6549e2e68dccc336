package validator

import (
	"errors"
	"fmt"
	"strings"
)

// ValidationError represents a single failed check on one field.
type ValidationError struct {
	Field   string
	Message string
}

// ValidationErrors represents a collection of validation errors in check order.
type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return ErrValidationFailed.Error()
	}

	parts := make([]string, 0, len(ve))
	for _, err := range ve {
		parts = append(parts, fmt.Sprintf("%s: %s", err.Field, err.Message))
	}
	return ErrValidationFailed.Error() + ": " + strings.Join(parts, "; ")
}

// Unwrap lets errors.Is match ErrValidationFailed.
func (ve ValidationErrors) Unwrap() error {
	return ErrValidationFailed
}

func (ve *ValidationErrors) Add(err ValidationError) {
	*ve = append(*ve, err)
}

// First returns the earliest recorded error.
func (ve ValidationErrors) First() (ValidationError, bool) {
	if len(ve) == 0 {
		return ValidationError{}, false
	}
	return ve[0], true
}

func (ve ValidationErrors) IsEmpty() bool {
	return len(ve) == 0
}

// Rule represents a single validation rule.
type Rule struct {
	Check func() bool
	Error ValidationError
}

// WithMessage returns a copy of the rule reporting message on failure.
func (r Rule) WithMessage(message string) Rule {
	r.Error.Message = message
	return r
}

// Apply executes rules in order and returns every failure as ValidationErrors.
// It returns nil when all rules pass.
func Apply(rules ...Rule) error {
	var errs ValidationErrors

	for _, rule := range rules {
		if !rule.Check() {
			errs = append(errs, rule.Error)
		}
	}

	if errs.IsEmpty() {
		return nil
	}

	return errs
}

// ExtractValidationErrors extracts ValidationErrors from an error.
func ExtractValidationErrors(err error) ValidationErrors {
	if err == nil {
		return nil
	}

	var validationErr ValidationErrors
	if errors.As(err, &validationErr) {
		return validationErr
	}

	return nil
}
