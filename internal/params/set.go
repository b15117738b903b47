package params

import (
	"fmt"
	"strings"
)

// Set is an ordered collection of definitions with unique names.
//
// A Set is mutated only while the tool configuration is being built; after
// that it is treated as read-only and may be shared between goroutines.
type Set struct {
	defs  []Definition
	index map[string]int
}

// NewSet returns a set containing defs in order.
func NewSet(defs ...Definition) (*Set, error) {
	s := &Set{index: make(map[string]int, len(defs))}
	for _, d := range defs {
		if err := s.Add(d); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Add appends a definition. The name is trimmed before use.
func (s *Set) Add(d Definition) error {
	d.Name = strings.TrimSpace(d.Name)
	d.Description = strings.TrimSpace(d.Description)
	if err := d.Validate(); err != nil {
		return err
	}
	if s.index == nil {
		s.index = make(map[string]int)
	}
	if s.Has(d.Name) {
		return fmt.Errorf("%w: %q", ErrDuplicateParameter, d.Name)
	}
	s.index[d.Name] = len(s.defs)
	s.defs = append(s.defs, d)
	return nil
}

// SetAllRequired sets the required flag on every definition.
func (s *Set) SetAllRequired(required bool) {
	for i := range s.defs {
		s.defs[i].Required = required
	}
}

// SetRequired sets the required flag on the named definitions. If any name
// is unknown nothing is changed and an *UnknownParameterError is returned.
func (s *Set) SetRequired(names []string, required bool) error {
	var unknown []string
	for _, name := range names {
		if !s.Has(name) {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) > 0 {
		return &UnknownParameterError{Names: unknown, Valid: s.Names()}
	}

	for _, name := range names {
		s.defs[s.index[name]].Required = required
	}
	return nil
}

// Get returns the named definition.
func (s *Set) Get(name string) (Definition, bool) {
	i, ok := s.index[name]
	if !ok {
		return Definition{}, false
	}
	return s.defs[i], true
}

// Has reports whether name is in the set.
func (s *Set) Has(name string) bool {
	_, ok := s.index[name]
	return ok
}

// Len returns the number of definitions.
func (s *Set) Len() int {
	return len(s.defs)
}

// Names returns the definition names in order.
func (s *Set) Names() []string {
	names := make([]string, len(s.defs))
	for i, d := range s.defs {
		names[i] = d.Name
	}
	return names
}

// RequiredNames returns the names of required definitions in order.
func (s *Set) RequiredNames() []string {
	var names []string
	for _, d := range s.defs {
		if d.Required {
			names = append(names, d.Name)
		}
	}
	return names
}

// Definitions returns a copy of the definitions in order.
func (s *Set) Definitions() []Definition {
	out := make([]Definition, len(s.defs))
	copy(out, s.defs)
	return out
}

// Clone returns an independent copy of the set.
func (s *Set) Clone() *Set {
	c := &Set{
		defs:  make([]Definition, len(s.defs)),
		index: make(map[string]int, len(s.index)),
	}
	copy(c.defs, s.defs)
	for k, v := range s.index {
		c.index[k] = v
	}
	return c
}
