package validation

import (
	"fmt"
	"sort"
	"strings"
)

// Violations maps a field name to the reason it was rejected. It is the
// aggregated result of validating a whole todo.
type Violations map[string]string

func (v Violations) Error() string {
	keys := make([]string, 0, len(v))
	for k := range v {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + ": " + v[k]
	}
	return "invalid field inputs: " + strings.Join(parts, "; ")
}

// FieldError is the first failing field of a partial update.
type FieldError struct {
	Field   string
	Message string
	Err     error
}

func (e *FieldError) Error() string { return e.Message }

func (e *FieldError) Unwrap() error { return e.Err }

// UnexpectedFieldError rejects a partial update key that does not name a
// mutable todo field.
type UnexpectedFieldError struct {
	Key string
}

func (e *UnexpectedFieldError) Error() string {
	return fmt.Sprintf("Unexpected value: %s", e.Key)
}
