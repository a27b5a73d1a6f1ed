// Package serializer maps entities to their JSON wire objects and validates
// incoming request bodies field by field.  Validation never panics: every
// problem is collected into FieldErrors, which handlers render as a 400 body
// of the form {"field": ["message", ...]}.
package serializer

import (
	"sort"
	"strings"
)

// NonFieldErrors is the key used for errors that do not belong to a single
// field, such as rejected credentials.
const NonFieldErrors = "non_field_errors"

// FieldErrors maps a field name to its validation messages.
type FieldErrors map[string][]string

// Add appends msg to the messages of field.
func (fe FieldErrors) Add(field, msg string) {
	fe[field] = append(fe[field], msg)
}

func (fe FieldErrors) Error() string {
	keys := make([]string, 0, len(fe))
	for k := range fe {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+strings.Join(fe[k], " "))
	}
	return strings.Join(parts, "; ")
}

// Result is either a validated value or the errors that prevented it.
type Result[T any] struct {
	Value  T
	Errors FieldErrors
}

// OK reports whether validation succeeded.
func (r Result[T]) OK() bool {
	return len(r.Errors) == 0
}

func result[T any](v T, errs FieldErrors) Result[T] {
	if len(errs) == 0 {
		return Result[T]{Value: v}
	}
	return Result[T]{Errors: errs}
}

// ValidationError is the message produced by a single field parser.
type ValidationError string

func (e ValidationError) Error() string { return string(e) }

const (
	msgRequired = "This field is required."
	msgNull     = "This field may not be null."
	msgBlank    = "This field may not be blank."
)
