package attrmodel

import "slices"

// Serialize projects the model onto an ordered attribute bag.
//
// With visible names set, exactly those are emitted in their declared order.
// Otherwise every attribute key is emitted except the hidden ones. A missing
// attribute fails the whole call rather than being dropped.
func (m *Model) Serialize() (*Attributes, error) {
	var keys []string
	if len(m.schema.visible) > 0 {
		keys = m.schema.visible
	} else {
		for _, k := range m.AttributeKeys() {
			if !slices.Contains(m.schema.hidden, k) {
				keys = append(keys, k)
			}
		}
	}

	out := NewAttributes()
	for _, k := range keys {
		v, err := m.Get(k)
		if err != nil {
			return nil, err
		}
		out.Set(k, v)
	}
	return out, nil
}

// MarshalJSON encodes the serialized model.
func (m *Model) MarshalJSON() ([]byte, error) {
	attrs, err := m.Serialize()
	if err != nil {
		return nil, err
	}
	return attrs.MarshalJSON()
}
