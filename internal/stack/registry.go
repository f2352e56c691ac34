// File: internal/stack/registry.go
// Brief: Per-collection validator registry and exhaustive dispatch.

package stack

import "fmt"

// ValidateFunc checks one entity and returns the entity to keep (the input
// itself, or an amended copy with defaults applied) plus any issues. The
// engine treats validators as opaque; they are supplied by the surrounding
// schema set.
type ValidateFunc func(e Entity) (Entity, []Issue)

// Registry maps collection names to their entity validators. Collections
// without a registered validator pass through unchecked.
type Registry map[string]ValidateFunc

// Validate runs every registered validator over every element of every
// collection. Validation never short-circuits: all issues across the whole
// stack are aggregated into one *ValidationError. On success the returned
// definition carries the validator-amended entities; the input definition
// is left untouched.
func (r Registry) Validate(def *Definition) (*Definition, error) {
	out := &Definition{
		Manifest:    def.Manifest,
		I18n:        def.I18n,
		Collections: make(map[string][]Entity, len(def.Collections)),
	}

	var issues []Issue
	for _, name := range CollectionNames {
		entities, ok := def.Collections[name]
		if !ok {
			continue
		}
		check := r[name]
		if check == nil {
			out.Collections[name] = entities
			continue
		}
		kept := make([]Entity, 0, len(entities))
		for i, e := range entities {
			value, found := check(e)
			if value == nil {
				value = e
			}
			kept = append(kept, value)
			for _, is := range found {
				if is.Collection == "" {
					is.Collection = name
				}
				if is.Name == "" {
					is.Name = entityRef(e, i)
				}
				issues = append(issues, is)
			}
		}
		out.Collections[name] = kept
	}

	if len(issues) > 0 {
		return nil, &ValidationError{Issues: issues}
	}
	return out, nil
}

// entityRef identifies an entity by name, falling back to its index.
func entityRef(e Entity, index int) string {
	if n := e.Name(); n != "" {
		return n
	}
	return fmt.Sprintf("#%d", index)
}
