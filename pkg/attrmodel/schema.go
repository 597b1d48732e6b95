package attrmodel

import (
	"fmt"
	"slices"
)

// Reserved attribute names
const (
	// TypeKey always resolves to the schema's record type and is never stored.
	TypeKey = "type"

	// RecordKey replaces the model's record wholesale when written.
	RecordKey = "record"
)

// ComputeFunc derives a virtual attribute from the model's other attributes.
type ComputeFunc func(m *Model) (any, error)

type bindingKind int

const (
	tableBacked bindingKind = iota
	recordField
	computed
)

// binding is the resolution of one attribute name: a record field, a
// computed value, or (the default) a table entry.
type binding struct {
	kind    bindingKind
	field   string
	compute ComputeFunc
}

// Schema is the static definition shared by every model of one type: which
// record it wraps, how attribute names resolve, and the four attribute key
// lists. A Schema is immutable once built and safe for concurrent use.
type Schema struct {
	name       string
	usesRecord bool
	newRecord  RecordFactory
	recordType string
	hasType    bool
	defaults   []func(Record) error

	fillable []string
	guarded  []string
	hidden   []string
	visible  []string

	bindings map[string]binding

	declared     []string
	tableKeys    []string
	recordKeys   []string
	computedKeys []string
}

// SchemaOption represents a functional option for configuring a schema
type SchemaOption func(*Schema) error

// WithRecord makes models of this schema wrap a record built by factory.
func WithRecord(factory RecordFactory) SchemaOption {
	return func(s *Schema) error {
		if factory == nil {
			return fmt.Errorf("%w: record factory is nil", ErrInvalidSchema)
		}
		s.usesRecord = true
		s.newRecord = factory
		return nil
	}
}

// WithRecordType sets the type tag forced onto every record.
func WithRecordType(tag string) SchemaOption {
	return func(s *Schema) error {
		s.recordType = tag
		s.hasType = true
		return nil
	}
}

// WithRecordDefaults adds a step run on every new or overriding record after
// the type tag has been applied.
func WithRecordDefaults(fn func(Record) error) SchemaOption {
	return func(s *Schema) error {
		if fn != nil {
			s.defaults = append(s.defaults, fn)
		}
		return nil
	}
}

// WithFillable sets the names that may be mass-assigned while guarded.
func WithFillable(names ...string) SchemaOption {
	return func(s *Schema) error {
		s.fillable = append(s.fillable, names...)
		return nil
	}
}

// WithGuarded sets the names considered sensitive.
func WithGuarded(names ...string) SchemaOption {
	return func(s *Schema) error {
		s.guarded = append(s.guarded, names...)
		return nil
	}
}

// WithHidden sets the names left out of serialization.
func WithHidden(names ...string) SchemaOption {
	return func(s *Schema) error {
		s.hidden = append(s.hidden, names...)
		return nil
	}
}

// WithVisible sets the only names included in serialization.
func WithVisible(names ...string) SchemaOption {
	return func(s *Schema) error {
		s.visible = append(s.visible, names...)
		return nil
	}
}

// MapField maps attribute name onto a record field.
func MapField(name, field string) SchemaOption {
	return func(s *Schema) error {
		if err := s.bind(name); err != nil {
			return err
		}
		if field == "" {
			return fmt.Errorf("%w: empty record field for %q", ErrInvalidSchema, name)
		}
		s.bindings[name] = binding{kind: recordField, field: field}
		return nil
	}
}

// Compute declares name as a computed attribute.
func Compute(name string, fn ComputeFunc) SchemaOption {
	return func(s *Schema) error {
		if err := s.bind(name); err != nil {
			return err
		}
		if fn == nil {
			return fmt.Errorf("%w: nil compute function for %q", ErrInvalidSchema, name)
		}
		s.bindings[name] = binding{kind: computed, compute: fn}
		return nil
	}
}

func (s *Schema) bind(name string) error {
	switch name {
	case "":
		return fmt.Errorf("%w: empty attribute name", ErrInvalidSchema)
	case TypeKey, RecordKey:
		return fmt.Errorf("%w: %q is reserved", ErrInvalidSchema, name)
	}
	if _, ok := s.bindings[name]; ok {
		return fmt.Errorf("%w: %q is bound twice", ErrInvalidSchema, name)
	}
	return nil
}

// NewSchema builds a schema named name from the given options.
func NewSchema(name string, options ...SchemaOption) (*Schema, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: schema name is required", ErrInvalidSchema)
	}

	s := &Schema{
		name:     name,
		bindings: make(map[string]binding),
	}

	for _, option := range options {
		if option == nil {
			continue
		}
		if err := option(s); err != nil {
			return nil, err
		}
	}

	s.catalog()
	return s, nil
}

// MustSchema is like NewSchema but panics on error. It is meant for
// package-level schema variables.
func MustSchema(name string, options ...SchemaOption) *Schema {
	s, err := NewSchema(name, options...)
	if err != nil {
		panic(err)
	}
	return s
}

// catalog derives the declared key universe and its partitions. The lists
// and bindings never change after NewSchema, so this runs once.
func (s *Schema) catalog() {
	seen := make(map[string]bool)
	for _, list := range [][]string{s.fillable, s.guarded, s.hidden, s.visible} {
		for _, k := range list {
			if seen[k] {
				continue
			}
			seen[k] = true
			s.declared = append(s.declared, k)
		}
	}

	for _, k := range s.declared {
		switch s.bindings[k].kind {
		case recordField:
			s.recordKeys = append(s.recordKeys, k)
		case computed:
			s.computedKeys = append(s.computedKeys, k)
		default:
			s.tableKeys = append(s.tableKeys, k)
		}
	}
}

// Name returns the schema name
func (s *Schema) Name() string { return s.name }

// UsesRecord reports whether models of this schema wrap a record
func (s *Schema) UsesRecord() bool { return s.usesRecord }

// RecordType returns the type tag and whether one is configured
func (s *Schema) RecordType() (string, bool) { return s.recordType, s.hasType }

// Fillable returns the fillable names
func (s *Schema) Fillable() []string { return slices.Clone(s.fillable) }

// Guarded returns the guarded names
func (s *Schema) Guarded() []string { return slices.Clone(s.guarded) }

// Hidden returns the hidden names
func (s *Schema) Hidden() []string { return slices.Clone(s.hidden) }

// Visible returns the visible names
func (s *Schema) Visible() []string { return slices.Clone(s.visible) }

// DeclaredKeys returns the ordered, de-duplicated union of the fillable,
// guarded, hidden and visible names.
func (s *Schema) DeclaredKeys() []string { return slices.Clone(s.declared) }

// TableKeys returns the declared keys stored in the key/value table.
func (s *Schema) TableKeys() []string { return slices.Clone(s.tableKeys) }

// RecordKeys returns the declared keys mapped onto record fields.
func (s *Schema) RecordKeys() []string { return slices.Clone(s.recordKeys) }

// ComputedKeys returns the declared keys that are computed.
func (s *Schema) ComputedKeys() []string { return slices.Clone(s.computedKeys) }

// IsOpen reports whether the schema declares no keys at all, in which case
// a model's key universe is whatever its table currently holds.
func (s *Schema) IsOpen() bool { return len(s.declared) == 0 }

// RecordField returns the record field name is mapped to, if any.
func (s *Schema) RecordField(name string) (string, bool) {
	b, ok := s.bindings[name]
	if !ok || b.kind != recordField {
		return "", false
	}
	return b.field, true
}

// IsComputed reports whether name is a computed attribute.
func (s *Schema) IsComputed(name string) bool {
	b, ok := s.bindings[name]
	return ok && b.kind == computed
}

// NewRecord builds a blank record with the schema defaults applied. It
// fails with ErrRecordNotPresent when the schema has no record.
func (s *Schema) NewRecord() (Record, error) {
	if !s.usesRecord {
		return nil, ErrRecordNotPresent
	}
	return s.enforceDefaults(s.newRecord())
}

// enforceDefaults applies the values a record of this schema must always carry.
func (s *Schema) enforceDefaults(r Record) (Record, error) {
	if s.hasType {
		r.SetRecordType(s.recordType)
	}
	for _, fn := range s.defaults {
		if err := fn(r); err != nil {
			return nil, err
		}
	}
	return r, nil
}
