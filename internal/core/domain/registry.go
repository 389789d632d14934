package domain

import "iter"

// Registry is an ordered, read-only snapshot of the tracked systems.
// Names keep their first position; hints are optional per system.
type Registry struct {
	names []string
	index map[string]int
	hints map[string]Coordinate
}

// NewRegistry builds a Registry from names in order. Duplicate names keep their first position.
func NewRegistry(names []string, hints map[string]Coordinate) *Registry {
	r := &Registry{
		names: make([]string, 0, len(names)),
		index: make(map[string]int, len(names)),
		hints: make(map[string]Coordinate, len(hints)),
	}
	for _, name := range names {
		if _, dup := r.index[name]; dup {
			continue
		}
		r.index[name] = len(r.names)
		r.names = append(r.names, name)
	}
	for name, c := range hints {
		if _, ok := r.index[name]; ok {
			r.hints[name] = c
		}
	}
	return r
}

// Len returns the number of systems.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.names)
}

// Names returns a copy of the system names in registry order.
func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// All yields system names in registry order.
func (r *Registry) All() iter.Seq[string] {
	return func(yield func(string) bool) {
		if r == nil {
			return
		}
		for _, name := range r.names {
			if !yield(name) {
				return
			}
		}
	}
}

// Contains reports whether name is tracked.
func (r *Registry) Contains(name string) bool {
	if r == nil {
		return false
	}
	_, ok := r.index[name]
	return ok
}

// Hint returns the coordinate embedded in the registry for name, if any.
func (r *Registry) Hint(name string) (Coordinate, bool) {
	if r == nil {
		return Coordinate{}, false
	}
	c, ok := r.hints[name]
	return c, ok
}
