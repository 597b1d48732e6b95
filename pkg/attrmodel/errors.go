package attrmodel

import (
	"errors"
	"fmt"
)

// Error types
var (
	// ErrAttributeNotFound indicates a table-backed attribute is absent or holds the nil sentinel
	ErrAttributeNotFound = errors.New("attribute not found")

	// ErrGuardedAttribute indicates a write to an attribute that is not fillable
	ErrGuardedAttribute = errors.New("attribute is guarded")

	// ErrRecordNotPresent indicates a record-mapped attribute was used on a model without a record
	ErrRecordNotPresent = errors.New("record not present")

	// ErrRecordField indicates the record rejected a field read or write
	ErrRecordField = errors.New("invalid record field")

	// ErrInvalidRecord indicates a value given under the record key is not a Record
	ErrInvalidRecord = errors.New("invalid record")

	// ErrComputeCycle indicates a computed attribute depends on itself
	ErrComputeCycle = errors.New("computed attribute cycle")

	// ErrInvalidSchema indicates a schema definition is inconsistent
	ErrInvalidSchema = errors.New("invalid schema")

	// ErrSchemaNotFound indicates a registry lookup for an unknown schema
	ErrSchemaNotFound = errors.New("schema not found")

	// ErrSchemaExists indicates a schema name is already registered
	ErrSchemaExists = errors.New("schema already registered")
)

// AttributeError represents an error related to a single attribute operation
type AttributeError struct {
	Schema string
	Name   string
	Op     string
	Err    error
}

func (e *AttributeError) Error() string {
	return fmt.Sprintf("attribute operation %s failed for %s.%s: %v", e.Op, e.Schema, e.Name, e.Err)
}

func (e *AttributeError) Unwrap() error {
	return e.Err
}
