package attrmodel

import (
	"errors"
	"fmt"
)

// attributeStore holds one copy of a model's state: the optional record and
// the key/value table.
type attributeStore struct {
	record Record
	table  *Attributes
}

// Model presents one uniform attribute surface over a structured record and
// a key/value table, routed by its Schema.
//
// A Model is not safe for concurrent mutation; confine each instance to one
// goroutine at a time or guard it externally.
type Model struct {
	schema    *Schema
	guarded   bool
	current   attributeStore
	original  attributeStore
	computing map[string]bool
}

// New constructs a model of schema and applies attrs through the regular
// write path, in the bag's order. The record key may be used in attrs to
// supply the underlying record.
func New(schema *Schema, attrs *Attributes) (*Model, error) {
	if schema == nil {
		return nil, fmt.Errorf("%w: schema is nil", ErrInvalidSchema)
	}

	m := &Model{
		schema:  schema,
		guarded: true,
		current: attributeStore{table: NewAttributes()},
	}
	m.SyncOriginal()

	if schema.usesRecord {
		r, err := schema.NewRecord()
		if err != nil {
			return nil, m.wrap(RecordKey, "construct", err)
		}
		m.current.record = r
	}

	if err := m.Refresh(attrs); err != nil {
		return nil, err
	}
	return m, nil
}

// Schema returns the model's schema
func (m *Model) Schema() *Schema { return m.schema }

// Get resolves name: the type tag, a record field, a computed value or a
// table entry, in that order of precedence.
func (m *Model) Get(name string) (any, error) {
	if name == TypeKey {
		if !m.schema.hasType {
			return nil, nil
		}
		return m.schema.recordType, nil
	}

	b := m.schema.bindings[name]
	switch b.kind {
	case recordField:
		if m.current.record == nil {
			return nil, m.wrap(name, "get", ErrRecordNotPresent)
		}
		v, err := m.current.record.Field(b.field)
		if err != nil {
			return nil, m.wrap(name, "get", err)
		}
		return v, nil

	case computed:
		if m.computing[name] {
			return nil, m.wrap(name, "compute", ErrComputeCycle)
		}
		if m.computing == nil {
			m.computing = make(map[string]bool)
		}
		m.computing[name] = true
		defer delete(m.computing, name)

		v, err := b.compute(m)
		if err != nil {
			var attrErr *AttributeError
			if errors.As(err, &attrErr) {
				return nil, err
			}
			return nil, m.wrap(name, "compute", err)
		}
		return v, nil

	default:
		v, ok := m.current.table.Get(name)
		if !ok || v == nil {
			return nil, m.wrap(name, "get", ErrAttributeNotFound)
		}
		return v, nil
	}
}

// Set writes value to name. Writing the record key replaces the record (see
// OverrideRecord) without consulting the guard; every other name must be
// fillable. On error the model is left unchanged.
func (m *Model) Set(name string, value any) error {
	if name == RecordKey {
		r, ok := value.(Record)
		if !ok || r == nil {
			return m.wrap(name, "set", fmt.Errorf("%w: got %T", ErrInvalidRecord, value))
		}
		return m.OverrideRecord(r)
	}

	if !m.IsFillable(name) {
		return m.wrap(name, "set", ErrGuardedAttribute)
	}

	if field, ok := m.schema.RecordField(name); ok {
		if !m.schema.usesRecord {
			return m.wrap(name, "set", ErrRecordNotPresent)
		}
		if m.current.record == nil {
			r, err := m.schema.NewRecord()
			if err != nil {
				return m.wrap(name, "set", err)
			}
			m.current.record = r
		}
		if err := m.current.record.SetField(field, value); err != nil {
			return m.wrap(name, "set", err)
		}
		return nil
	}

	m.current.table.Set(name, value)
	return nil
}

// OverrideRecord replaces the model's record with r after forcing the
// schema's record defaults onto it. The guard does not apply.
func (m *Model) OverrideRecord(r Record) error {
	if !m.schema.usesRecord {
		return m.wrap(RecordKey, "override", ErrRecordNotPresent)
	}
	if r == nil {
		return m.wrap(RecordKey, "override", ErrInvalidRecord)
	}
	r, err := m.schema.enforceDefaults(r)
	if err != nil {
		return m.wrap(RecordKey, "override", err)
	}
	m.current.record = r
	return nil
}

// Record returns the underlying record, or nil if the model has none.
func (m *Model) Record() Record {
	return m.current.record
}

// TableAttributes returns a copy of the key/value table, including entries
// cleared to nil.
func (m *Model) TableAttributes() *Attributes {
	return m.current.table.Clone()
}

// AttributeKeys returns the schema's declared keys, or for an open schema
// every key currently in the table.
func (m *Model) AttributeKeys() []string {
	if m.schema.IsOpen() {
		return m.current.table.Keys()
	}
	return m.schema.DeclaredKeys()
}

// TableKeys returns the attribute keys stored in the table.
func (m *Model) TableKeys() []string {
	if !m.schema.IsOpen() {
		return m.schema.TableKeys()
	}
	var keys []string
	for _, k := range m.current.table.Keys() {
		if _, bound := m.schema.bindings[k]; !bound {
			keys = append(keys, k)
		}
	}
	return keys
}

// Refresh clears the model and then writes each attribute in attrs, in order.
func (m *Model) Refresh(attrs *Attributes) error {
	if err := m.Clear(); err != nil {
		return err
	}
	for name, value := range attrs.All() {
		if err := m.Set(name, value); err != nil {
			return err
		}
	}
	return nil
}

// Clear resets every table and record-mapped attribute to nil. Attributes
// that are not currently fillable are skipped, so a guarded model keeps its
// guarded values until it is unguarded. The record itself stays attached.
func (m *Model) Clear() error {
	var keys []string
	if m.schema.IsOpen() {
		keys = m.current.table.Keys()
	} else {
		keys = m.schema.TableKeys()
		if m.schema.usesRecord {
			keys = append(keys, m.schema.RecordKeys()...)
		}
	}

	for _, k := range keys {
		if !m.IsFillable(k) {
			continue
		}
		if err := m.Set(k, nil); err != nil {
			return err
		}
	}
	return nil
}

func (m *Model) wrap(name, op string, err error) error {
	return &AttributeError{
		Schema: m.schema.name,
		Name:   name,
		Op:     op,
		Err:    err,
	}
}
