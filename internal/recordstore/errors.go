package recordstore

import (
	"errors"
	"fmt"
)

// Common record store errors.
var (
	// ErrNotFound is returned when a column label is not present in a record.
	ErrNotFound = errors.New("column not found")
)

// SchemaError describes a malformed column write rejected at the store
// boundary.
type SchemaError struct {
	Label  string
	Reason string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("schema violation for column %q: %s", e.Label, e.Reason)
}
