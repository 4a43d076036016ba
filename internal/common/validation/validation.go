// Package validation checks admin request payloads field by field. Every
// violation is collected with a stable code, not just the first, so one
// round trip tells the caller everything wrong with the request.
package validation

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	// E.164: leading plus, 8 to 15 digits.
	phonePattern = regexp.MustCompile(`^\+[1-9][0-9]{7,14}$`)
)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type Result struct {
	Valid  bool         `json:"valid"`
	Errors []FieldError `json:"errors,omitempty"`
}

// Check starts a new validation pass. The checks chain and the result is read
// off at the end.
func Check() *Result {
	return &Result{Valid: true}
}

func (r *Result) add(field, message, code string) {
	r.Valid = false
	r.Errors = append(r.Errors, FieldError{Field: field, Message: message, Code: code})
}

// RequireID rejects zero or negative identifiers.
func (r *Result) RequireID(field string, value int64) *Result {
	if value <= 0 {
		r.add(field, "a positive identifier is required", "REQUIRED_FIELD_MISSING")
	}
	return r
}

// RequireString rejects empty or whitespace-only values.
func (r *Result) RequireString(field, value string) *Result {
	if strings.TrimSpace(value) == "" {
		r.add(field, "required field missing", "REQUIRED_FIELD_MISSING")
	}
	return r
}

// MaxLength rejects values longer than max characters. Empty values pass;
// pair with RequireString when the field is mandatory.
func (r *Result) MaxLength(field, value string, max int) *Result {
	if len(value) > max {
		r.add(field, fmt.Sprintf("value must be at most %d characters", max), "MAX_LENGTH_VIOLATION")
	}
	return r
}

// OptionalEmail validates the address format when a value is present.
func (r *Result) OptionalEmail(field, value string) *Result {
	if value != "" && !emailPattern.MatchString(value) {
		r.add(field, "value must be a valid email address", "PATTERN_MISMATCH")
	}
	return r
}

// OptionalPhone validates E.164 format when a value is present.
func (r *Result) OptionalPhone(field, value string) *Result {
	if value != "" && !phonePattern.MatchString(value) {
		r.add(field, "value must be an E.164 phone number", "PATTERN_MISMATCH")
	}
	return r
}

// Summary renders the violations as one line for response messages, e.g.
// "userId: a positive identifier is required; planId: required field missing".
func (r *Result) Summary() string {
	if r.Valid {
		return ""
	}
	parts := make([]string, 0, len(r.Errors))
	for _, e := range r.Errors {
		parts = append(parts, e.Field+": "+e.Message)
	}
	return strings.Join(parts, "; ")
}
