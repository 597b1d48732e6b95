package attrmodel

import "reflect"

// SyncOriginal makes the current state the model's original state. The
// record is deep-copied so later writes to the current record do not reach
// the snapshot.
func (m *Model) SyncOriginal() {
	m.original = attributeStore{table: m.current.table.Clone()}
	if m.current.record != nil {
		m.original.record = m.current.record.Clone()
	}
}

// OriginalTableAttributes returns a copy of the table as of the last sync.
func (m *Model) OriginalTableAttributes() *Attributes {
	return m.original.table.Clone()
}

// OriginalRecord returns a copy of the record as of the last sync, or nil.
func (m *Model) OriginalRecord() Record {
	if m.original.record == nil {
		return nil
	}
	return m.original.record.Clone()
}

// IsDirty reports whether any stored attribute differs from the original.
func (m *Model) IsDirty() (bool, error) {
	changes, err := m.Changes()
	if err != nil {
		return false, err
	}
	return changes.Len() > 0, nil
}

// Changes returns the stored attributes whose current value differs from
// the original, mapped to their current value. Cleared table entries are
// reported with a nil value. Computed attributes are never reported.
func (m *Model) Changes() (*Attributes, error) {
	changes := NewAttributes()

	for _, k := range m.diffTableKeys() {
		cur, _ := m.current.table.Get(k)
		orig, _ := m.original.table.Get(k)
		if !reflect.DeepEqual(cur, orig) {
			changes.Set(k, cur)
		}
	}

	if !m.schema.usesRecord {
		return changes, nil
	}
	for _, k := range m.schema.recordKeys {
		field := m.schema.bindings[k].field
		cur, err := fieldOf(m.current.record, field)
		if err != nil {
			return nil, m.wrap(k, "diff", err)
		}
		orig, err := fieldOf(m.original.record, field)
		if err != nil {
			return nil, m.wrap(k, "diff", err)
		}
		if !reflect.DeepEqual(cur, orig) {
			changes.Set(k, cur)
		}
	}
	return changes, nil
}

func (m *Model) diffTableKeys() []string {
	if !m.schema.IsOpen() {
		return m.schema.tableKeys
	}
	keys := m.TableKeys()
	for _, k := range m.original.table.Keys() {
		if !m.current.table.Has(k) {
			keys = append(keys, k)
		}
	}
	return keys
}

func fieldOf(r Record, field string) (any, error) {
	if r == nil {
		return nil, nil
	}
	return r.Field(field)
}
