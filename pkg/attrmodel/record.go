package attrmodel

import (
	"fmt"
	"slices"

	"golang.org/x/exp/maps"
)

// Record is the fixed-shape structured record a model maps part of its
// attributes onto. The record is owned by the host storage layer; the model
// only reads and writes its fields by name.
type Record interface {
	// Field returns the value of the named record field.
	Field(name string) (any, error)

	// SetField writes the named record field. A nil value resets the field
	// to its zero value.
	SetField(name string, value any) error

	// SetRecordType stores the type discriminator on the record.
	SetRecordType(tag string)

	// Clone returns a deep, independent copy of the record.
	Clone() Record
}

// RecordFactory constructs a blank record carrying host-assigned defaults.
type RecordFactory func() Record

// DecodeRecord returns a copy of attrs in which a decoded "record" object,
// a map of field names to values, has been replaced by a fresh record of
// the schema with those fields set in name order. Any other non-Record value
// under the record key fails with ErrInvalidRecord. A nil attrs yields an
// empty bag.
func (s *Schema) DecodeRecord(attrs *Attributes) (*Attributes, error) {
	out := attrs.Clone()

	v, ok := out.Get(RecordKey)
	if !ok {
		return out, nil
	}
	if _, ok := v.(Record); ok {
		return out, nil
	}
	fields, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: record must be an object of fields, got %T", ErrInvalidRecord, v)
	}

	record, err := s.NewRecord()
	if err != nil {
		return nil, err
	}
	names := maps.Keys(fields)
	slices.Sort(names)
	for _, name := range names {
		if err := record.SetField(name, fields[name]); err != nil {
			return nil, err
		}
	}

	out.Set(RecordKey, record)
	return out, nil
}
