package validator

import "strings"

// IsNonEmptyAfterTrim reports whether s has any non-whitespace content.
func IsNonEmptyAfterTrim(s string) bool {
	return strings.TrimSpace(s) != ""
}

// LooksLikeEmail reports whether s contains an '@'.
// The check is intentionally loose; delivery is the only real verification.
func LooksLikeEmail(s string) bool {
	return strings.Contains(s, "@")
}

// RequiredString validates that a string is not empty after trimming whitespace.
func RequiredString(field, value string) Rule {
	return Rule{
		Check: func() bool {
			return IsNonEmptyAfterTrim(value)
		},
		Error: ValidationError{
			Field:   field,
			Message: "field is required",
		},
	}
}

// LooseEmail validates that value looks like an email address.
func LooseEmail(field, value string) Rule {
	return Rule{
		Check: func() bool {
			return LooksLikeEmail(value)
		},
		Error: ValidationError{
			Field:   field,
			Message: "must be a valid email address",
		},
	}
}
