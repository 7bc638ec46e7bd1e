package schema

import (
	"fmt"
	"sync"

	"github.com/rediwo/mongo-join/types"
)

// Registry holds the models known to the application. It is safe for
// concurrent use.
type Registry struct {
	mu      sync.RWMutex
	schemas map[string]*Schema
	order   []string
}

func NewRegistry() *Registry {
	return &Registry{schemas: make(map[string]*Schema)}
}

// Register validates and adds schemas. Relations are checked by Validate
// once every model is registered.
func (r *Registry) Register(schemas ...*Schema) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, s := range schemas {
		if s == nil {
			return fmt.Errorf("schema cannot be nil")
		}
		if err := s.Validate(); err != nil {
			return fmt.Errorf("invalid schema %s: %w", s.Name, err)
		}
		if _, exists := r.schemas[s.Name]; exists {
			return fmt.Errorf("model %s already registered", s.Name)
		}
		r.schemas[s.Name] = s
		r.order = append(r.order, s.Name)
	}
	return nil
}

// Get returns the schema registered under name
func (r *Registry) Get(name string) (*Schema, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.schemas[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrModelNotFound, name)
	}
	return s, nil
}

// Model implements types.SchemaRegistry
func (r *Registry) Model(name string) (types.Model, error) {
	s, err := r.Get(name)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Models returns the registered model names in registration order
func (r *Registry) Models() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// Validate checks that every relation, including those of embedded
// documents, points at a registered model
func (r *Registry) Validate() error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, name := range r.order {
		s := r.schemas[name]
		err := s.walkRelations("", func(path string, relation Relation) error {
			if _, exists := r.schemas[relation.Model]; !exists {
				return fmt.Errorf("relation %s.%s references unknown model %s", s.Name, path, relation.Model)
			}
			return nil
		})
		if err != nil {
			return err
		}
	}
	return nil
}
