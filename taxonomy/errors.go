package taxonomy

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned when a requested entry does not exist.
var ErrNotFound = errors.New("taxonomy entry not found")

// SchemaError reports a malformed individual record.
type SchemaError struct {
	// Key is the fides_key of the offending record, when known.
	Key string
	// Field is the record field that failed validation.
	Field string
	// Message describes the violation.
	Message string
}

func (e *SchemaError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("schema: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("schema: %s: %s: %s", e.Key, e.Field, e.Message)
}

// DuplicateKeyError reports a fides_key collision across records.
type DuplicateKeyError struct {
	Key string
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("duplicate fides_key: %s", e.Key)
}

// DanglingReferenceError reports a parent_key that resolves to no entry.
type DanglingReferenceError struct {
	// Key is the entry carrying the broken reference.
	Key string
	// ParentKey is the missing referenced key.
	ParentKey string
}

func (e *DanglingReferenceError) Error() string {
	return fmt.Sprintf("entry %s references missing parent %s", e.Key, e.ParentKey)
}

// CycleError reports a circular parent_key chain.
type CycleError struct {
	// Keys is the cycle path, starting and ending at the repeated key.
	Keys []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("parent_key cycle: %s", strings.Join(e.Keys, " -> "))
}

// NotFoundError reports a query for an unknown fides_key.
type NotFoundError struct {
	Key string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("taxonomy entry not found: %s", e.Key)
}

// Unwrap allows errors.Is(err, ErrNotFound).
func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}
