package attrmodel

import (
	"bytes"
	"encoding/json"
	"fmt"
	"iter"
)

// Attributes is an insertion-ordered bag of named values.
//
// It is used both for the attribute bags handed to New and Refresh, where the
// caller's order decides the order of writes, and for the output of
// Serialize, where order follows the schema's declared keys.
// The zero value is ready to use.
type Attributes struct {
	keys   []string
	values map[string]any
}

// NewAttributes creates an empty attribute bag
func NewAttributes() *Attributes {
	return &Attributes{values: make(map[string]any)}
}

// With sets name to value and returns the bag, for building literals:
//
//	attrmodel.NewAttributes().With("title", "Hello").With("text", "World")
func (a *Attributes) With(name string, value any) *Attributes {
	a.Set(name, value)
	return a
}

// Set stores value under name. A new name is appended; an existing name
// keeps its position.
func (a *Attributes) Set(name string, value any) {
	if a.values == nil {
		a.values = make(map[string]any)
	}
	if _, ok := a.values[name]; !ok {
		a.keys = append(a.keys, name)
	}
	a.values[name] = value
}

// Get returns the value stored under name and whether the name is present.
func (a *Attributes) Get(name string) (any, bool) {
	if a == nil {
		return nil, false
	}
	v, ok := a.values[name]
	return v, ok
}

// Has reports whether name is present, even if it holds nil.
func (a *Attributes) Has(name string) bool {
	_, ok := a.Get(name)
	return ok
}

// Delete removes name from the bag.
func (a *Attributes) Delete(name string) {
	if a == nil {
		return
	}
	if _, ok := a.values[name]; !ok {
		return
	}
	delete(a.values, name)
	for i, k := range a.keys {
		if k == name {
			a.keys = append(a.keys[:i], a.keys[i+1:]...)
			break
		}
	}
}

// Len returns the number of names in the bag
func (a *Attributes) Len() int {
	if a == nil {
		return 0
	}
	return len(a.keys)
}

// Keys returns the names in insertion order
func (a *Attributes) Keys() []string {
	if a == nil {
		return nil
	}
	return append([]string(nil), a.keys...)
}

// All iterates over name/value pairs in insertion order
func (a *Attributes) All() iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		if a == nil {
			return
		}
		for _, k := range a.keys {
			if !yield(k, a.values[k]) {
				return
			}
		}
	}
}

// Map returns an unordered copy of the bag
func (a *Attributes) Map() map[string]any {
	m := make(map[string]any, a.Len())
	for k, v := range a.All() {
		m[k] = v
	}
	return m
}

// Clone returns a shallow copy of the bag
func (a *Attributes) Clone() *Attributes {
	c := &Attributes{
		keys:   make([]string, 0, a.Len()),
		values: make(map[string]any, a.Len()),
	}
	for k, v := range a.All() {
		c.Set(k, v)
	}
	return c
}

// MarshalJSON encodes the bag as a JSON object keeping insertion order.
func (a *Attributes) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	i := 0
	for k, v := range a.All() {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("failed to encode attribute %q: %w", k, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
		i++
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object into the bag keeping document order.
// Nested values decode the way encoding/json decodes into interface{}.
func (a *Attributes) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("attributes must be a JSON object")
	}

	a.keys = nil
	a.values = make(map[string]any)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("unexpected token %v in attributes", tok)
		}
		var value any
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("failed to decode attribute %q: %w", key, err)
		}
		a.Set(key, value)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}
