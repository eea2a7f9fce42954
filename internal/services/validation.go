package services

import (
	"errors"
	"sort"
	"strings"
)

// ErrValidation matches every *ValidationError via errors.Is.
var ErrValidation = errors.New("validation failed")

// ValidationError reports one message per offending input field.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return ErrValidation.Error() + ": " + strings.Join(parts, "; ")
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

func newValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}

// violations collects field messages; err returns nil when there are none.
type violations map[string]string

func (v violations) add(field, message string) {
	if _, exists := v[field]; !exists {
		v[field] = message
	}
}

func (v violations) err() error {
	if len(v) == 0 {
		return nil
	}
	return &ValidationError{Fields: v}
}

const (
	msgRequired    = "This field is required."
	msgBlank       = "This field may not be blank."
	msgEmail       = "Enter a valid email address."
	msgDateFormat  = "Date has wrong format. Use one of these formats instead: YYYY-MM-DD."
	msgEmailExists = "client with this email already exists."
)
