package attrmodel

import (
	"fmt"
	"slices"
	"sync"
)

// Registry holds schemas by name. It is constructed once by the application
// and passed to whatever needs to build models; there is no global instance.
type Registry struct {
	mu      sync.RWMutex
	schemas map[string]*Schema
}

// NewRegistry creates a registry holding the given schemas
func NewRegistry(schemas ...*Schema) (*Registry, error) {
	r := &Registry{schemas: make(map[string]*Schema)}
	for _, s := range schemas {
		if err := r.Register(s); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register adds s to the registry. Names are unique.
func (r *Registry) Register(s *Schema) error {
	if s == nil {
		return fmt.Errorf("%w: schema is nil", ErrInvalidSchema)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.schemas[s.name]; ok {
		return fmt.Errorf("%w: %s", ErrSchemaExists, s.name)
	}
	r.schemas[s.name] = s
	return nil
}

// Get returns the schema registered under name
func (r *Registry) Get(name string) (*Schema, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.schemas[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSchemaNotFound, name)
	}
	return s, nil
}

// Names returns the registered schema names in sorted order
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.schemas))
	for name := range r.schemas {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// New builds a model of the named schema from attrs.
func (r *Registry) New(name string, attrs *Attributes) (*Model, error) {
	s, err := r.Get(name)
	if err != nil {
		return nil, err
	}
	return New(s, attrs)
}
