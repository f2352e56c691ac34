// File: internal/stack/compose.go
// Brief: Structural composition of N stacks into one.

package stack

import (
	"fmt"
	"strconv"

	"dario.cat/mergo"
)

// ObjectConflict selects how Compose treats an object name defined by more
// than one stack.
type ObjectConflict string

const (
	// ObjectConflictError fails composition on the first duplicate name.
	ObjectConflictError ObjectConflict = "error"
	// ObjectConflictOverride replaces the earlier object wholesale with the
	// later one, keeping the earlier position.
	ObjectConflictOverride ObjectConflict = "override"
	// ObjectConflictMerge shallow-merges top-level fields (later wins) and
	// deep-merges the "fields" sub-maps key-wise (later wins).
	ObjectConflictMerge ObjectConflict = "merge"
)

// Manifest selection modes. Any decimal string is also accepted and picks
// that stack's manifest by input position.
const (
	ManifestFirst = "first"
	ManifestLast  = "last"
)

// ManifestAt selects the manifest of the stack at the given input index.
func ManifestAt(i int) string {
	return strconv.Itoa(i)
}

// ComposeOptions configures Compose. The zero value means objectConflict
// "error" and manifest "last". Namespace is reserved for multi-tenant
// isolation and currently has no merge effect.
type ComposeOptions struct {
	ObjectConflict ObjectConflict
	Manifest       string
	Namespace      string
}

// Compose merges independently authored stacks into one definition.
// Inputs must already be in canonical array form (see Normalize); Compose
// performs no schema or cross-reference validation, the caller re-validates
// explicitly when it needs to.
//
// Zero stacks produce an empty definition; a single stack is returned
// unchanged. All collections except objects are concatenated in input order
// with no collision detection; objects are governed by the conflict policy.
func Compose(stacks []*Definition, opts ComposeOptions) (*Definition, error) {
	switch len(stacks) {
	case 0:
		return NewDefinition(), nil
	case 1:
		return stacks[0], nil
	}

	conflict := opts.ObjectConflict
	if conflict == "" {
		conflict = ObjectConflictError
	}
	switch conflict {
	case ObjectConflictError, ObjectConflictOverride, ObjectConflictMerge:
	default:
		return nil, fmt.Errorf("unknown objectConflict %q (expected error, override, or merge)", conflict)
	}

	out := NewDefinition()

	manifest, err := selectManifest(stacks, opts.Manifest)
	if err != nil {
		return nil, err
	}
	out.Manifest = manifest

	for _, s := range stacks {
		if s.I18n != nil {
			out.I18n = s.I18n
		}
	}

	objects, haveObjects, err := composeObjects(stacks, conflict)
	if err != nil {
		return nil, err
	}
	if haveObjects {
		out.Collections[CollectionObjects] = objects
	}

	for _, name := range CollectionNames {
		if name == CollectionObjects {
			continue
		}
		var combined []Entity
		present := false
		for _, s := range stacks {
			if !s.HasCollection(name) {
				continue
			}
			present = true
			combined = append(combined, s.Collections[name]...)
		}
		if present {
			out.Collections[name] = combined
		}
	}
	return out, nil
}

func composeObjects(stacks []*Definition, conflict ObjectConflict) ([]Entity, bool, error) {
	var out []Entity
	present := false
	position := map[string]int{}

	for _, s := range stacks {
		if !s.HasCollection(CollectionObjects) {
			continue
		}
		present = true
		for _, o := range s.Collections[CollectionObjects] {
			name := o.Name()
			idx, seen := position[name]
			if !seen || name == "" {
				position[name] = len(out)
				out = append(out, o)
				continue
			}
			switch conflict {
			case ObjectConflictError:
				return nil, false, &ConflictError{Name: name}
			case ObjectConflictOverride:
				out[idx] = o
			case ObjectConflictMerge:
				merged, err := mergeObject(out[idx], o)
				if err != nil {
					return nil, false, err
				}
				out[idx] = merged
			}
		}
	}
	if present && out == nil {
		out = []Entity{}
	}
	return out, present, nil
}

// mergeObject combines two same-named objects: later wins per top-level
// key, and the "fields" sub-maps are deep-merged key-wise with later
// winning. Neither input is mutated.
func mergeObject(earlier, later Entity) (Entity, error) {
	out := make(Entity, len(earlier)+len(later))
	for k, v := range earlier {
		out[k] = v
	}
	for k, v := range later {
		if k == "fields" {
			continue
		}
		out[k] = v
	}

	earlierFields, hasEarlier := asStringMap(earlier["fields"])
	laterFields, hasLater := asStringMap(later["fields"])
	switch {
	case hasEarlier && hasLater:
		// Merge into a deep copy: mergo shares nested maps from src into
		// dst, so merging straight over earlierFields would let the second
		// merge write through into the earlier stack's own sub-maps.
		merged := cloneStringMap(earlierFields)
		if err := mergo.Merge(&merged, laterFields, mergo.WithOverride); err != nil {
			return nil, fmt.Errorf("merge object %q fields: %w", later.Name(), err)
		}
		out["fields"] = merged
	case hasLater:
		out["fields"] = laterFields
	}
	return out, nil
}

// cloneStringMap copies a map recursively, descending into nested keyed
// maps; other values are shared.
func cloneStringMap(in map[string]any) map[string]any {
	out := make(map[string]any, len(in))
	for k, v := range in {
		if m, ok := asStringMap(v); ok {
			out[k] = cloneStringMap(m)
			continue
		}
		out[k] = v
	}
	return out
}

func selectManifest(stacks []*Definition, mode string) (Entity, error) {
	switch mode {
	case "", ManifestLast:
		for i := len(stacks) - 1; i >= 0; i-- {
			if stacks[i].Manifest != nil {
				return stacks[i].Manifest, nil
			}
		}
		return nil, nil
	case ManifestFirst:
		for _, s := range stacks {
			if s.Manifest != nil {
				return s.Manifest, nil
			}
		}
		return nil, nil
	}
	idx, err := strconv.Atoi(mode)
	if err != nil {
		return nil, fmt.Errorf("unknown manifest selection %q (expected first, last, or a stack index)", mode)
	}
	if idx < 0 || idx >= len(stacks) {
		return nil, fmt.Errorf("manifest stack index %d out of range (%d stacks)", idx, len(stacks))
	}
	return stacks[idx].Manifest, nil
}
