// file: internal/schema/errors.go
package schema

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

// ErrorCode defines validation error codes.
type ErrorCode int

// Defined validation error codes.
const (
	ErrSchemaNotFound ErrorCode = iota + 1000
	ErrSchemaCompileFailed
	ErrValidationFailed
	ErrInvalidJSONFormat
)

// ValidationError represents a schema validation error.
type ValidationError struct {
	// Code is the numeric error code.
	Code ErrorCode
	// Message is a human-readable error message.
	Message string
	// Cause is the underlying error, if any.
	Cause error
	// Problems lists each violation as "location: message", most specific first.
	Problems []string
}

// Error implements the error interface. Argument problems are joined so the
// message is readable on its own.
func (e *ValidationError) Error() string {
	if len(e.Problems) > 0 {
		return strings.Join(e.Problems, "; ")
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Cause
}

// NewValidationError creates a new ValidationError.
func NewValidationError(code ErrorCode, message string, cause error) *ValidationError {
	return &ValidationError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// convertValidationError flattens a jsonschema.ValidationError tree into leaf problems.
func convertValidationError(valErr *jsonschema.ValidationError) *ValidationError {
	var problems []string
	seen := map[string]bool{}
	var walk func(e *jsonschema.ValidationError)
	walk = func(e *jsonschema.ValidationError) {
		if len(e.Causes) == 0 {
			p := describe(e.InstanceLocation, e.Message)
			if !seen[p] {
				seen[p] = true
				problems = append(problems, p)
			}
			return
		}
		for _, c := range e.Causes {
			walk(c)
		}
	}
	walk(valErr)
	sort.Strings(problems)

	return &ValidationError{
		Code:     ErrValidationFailed,
		Message:  valErr.Message,
		Cause:    errors.WithStack(valErr),
		Problems: problems,
	}
}

// describe renders one violation. The JSON pointer "/seriesId" becomes "seriesId".
func describe(location, message string) string {
	field := strings.TrimPrefix(location, "/")
	field = strings.ReplaceAll(field, "/", ".")
	if field == "" {
		return message
	}
	return field + ": " + message
}
