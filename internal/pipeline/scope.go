package pipeline

import (
	"go.dot.industries/cccpt/internal/config"
)

// Scope is the configuration view of one pipeline run. Every command pushes
// a layer on entry and pops it on exit, so values a command sets (a build
// directory override, a cloned source root) are seen by the commands it
// invokes but not by its siblings or callers. Reads fall through the
// layers, topmost first, to the merged base tree.
type Scope struct {
	base   *config.Tree
	layers []map[string]any
}

// NewScope wraps base. A nil base is treated as empty.
func NewScope(base *config.Tree) *Scope {
	if base == nil {
		base = config.NewTree(nil)
	}
	return &Scope{base: base}
}

// Enter pushes a layer and returns the function that pops it. Popping also
// discards any layers pushed after this one and not yet popped.
func (s *Scope) Enter() func() {
	depth := len(s.layers)
	s.layers = append(s.layers, make(map[string]any))
	return func() {
		if len(s.layers) > depth {
			s.layers = s.layers[:depth]
		}
	}
}

// Depth returns the number of pushed layers.
func (s *Scope) Depth() int {
	return len(s.layers)
}

// Base returns the merged configuration tree under all layers.
func (s *Scope) Base() *config.Tree {
	return s.base
}

// Get returns the value for path from the topmost layer that sets it, or
// from the base tree.
func (s *Scope) Get(path string) (any, bool) {
	key := config.CleanPath(path)
	for i := len(s.layers) - 1; i >= 0; i-- {
		if v, ok := s.layers[i][key]; ok {
			return v, true
		}
	}
	return s.base.Get(key)
}

// Set stores value at path in the topmost layer. Without a layer it writes
// the base tree.
func (s *Scope) Set(path string, value any) error {
	if len(s.layers) == 0 {
		return s.base.Set(path, value)
	}
	s.layers[len(s.layers)-1][config.CleanPath(path)] = value
	return nil
}

// Export writes value to the base tree so it outlives the current command.
func (s *Scope) Export(path string, value any) error {
	return s.base.Set(path, value)
}

// String returns the scalar at path as a string, or fallback.
func (s *Scope) String(path, fallback string) string {
	v, ok := s.Get(path)
	if !ok {
		return fallback
	}
	if str, ok := config.AsString(v); ok && str != "" {
		return str
	}
	return fallback
}

// Strings returns the list at path, splitting strings with shell rules.
func (s *Scope) Strings(path string, lookup config.Lookup) ([]string, error) {
	v, ok := s.Get(path)
	if !ok {
		return nil, nil
	}
	return config.AsStrings(v, lookup)
}

// Int returns the integer at path.
func (s *Scope) Int(path string) (int, bool) {
	v, ok := s.Get(path)
	if !ok {
		return 0, false
	}
	return config.AsInt(v)
}

// Bool returns the boolean at path, false when unset.
func (s *Scope) Bool(path string) bool {
	v, ok := s.Get(path)
	if !ok {
		return false
	}
	return config.AsBool(v)
}
