package attrmodel

import "slices"

// IsFillable reports whether name may currently be mass-assigned.
//
// The type key is never fillable. Otherwise everything is fillable when the
// schema declares no fillable names or the model is unguarded; while guarded,
// only the declared fillable names are.
func (m *Model) IsFillable(name string) bool {
	if name == TypeKey {
		return false
	}
	if len(m.schema.fillable) == 0 {
		return true
	}
	if !m.guarded {
		return true
	}
	return slices.Contains(m.schema.fillable, name)
}

// Unguard allows every attribute except the type key to be written.
func (m *Model) Unguard() {
	m.guarded = false
}

// Reguard restores the fillable restriction.
func (m *Model) Reguard() {
	m.guarded = true
}

// IsGuarded reports whether the fillable restriction is active
func (m *Model) IsGuarded() bool {
	return m.guarded
}
