// File: internal/stack/normalize.go
// Brief: Canonicalization of raw stack input into array form.

package stack

import (
	"fmt"
	"sort"

	"github.com/spf13/cast"
)

// Normalize converts a raw stack value into canonical array form. Every
// collection field may arrive as an array of entities or as a name-keyed
// map; map entries become array entries with the key written into "name"
// (the key wins over an embedded name). Map keys are walked in sorted order
// so the result is deterministic. The input is never mutated.
//
// A collection field that is neither an array nor a keyed map is a
// *NormalizeError; normalization fails fast on the first such field.
func Normalize(raw map[string]any) (*Definition, error) {
	def := NewDefinition()

	if v, ok := raw["manifest"]; ok && v != nil {
		e, ok := asEntity(v)
		if !ok {
			return nil, &NormalizeError{Field: "manifest", Reason: shapeReason(v, "a record")}
		}
		def.Manifest = e
	}
	if v, ok := raw["i18n"]; ok && v != nil {
		e, ok := asEntity(v)
		if !ok {
			return nil, &NormalizeError{Field: "i18n", Reason: shapeReason(v, "a record")}
		}
		def.I18n = e
	}

	for _, name := range CollectionNames {
		v, ok := raw[name]
		if !ok || v == nil {
			continue
		}
		entities, err := normalizeCollection(name, v)
		if err != nil {
			return nil, err
		}
		def.Collections[name] = entities
	}
	return def, nil
}

func normalizeCollection(field string, v any) ([]Entity, error) {
	if items, ok := asEntitySlice(v); ok {
		out := make([]Entity, 0, len(items))
		for i, item := range items {
			e, ok := asEntity(item)
			if !ok {
				return nil, &NormalizeError{
					Field:  fmt.Sprintf("%s[%d]", field, i),
					Reason: shapeReason(item, "an entity record"),
				}
			}
			out = append(out, e)
		}
		return out, nil
	}

	if keyed, ok := asStringMap(v); ok {
		keys := make([]string, 0, len(keyed))
		for k := range keyed {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		out := make([]Entity, 0, len(keys))
		for _, k := range keys {
			e, ok := asEntity(keyed[k])
			if !ok {
				return nil, &NormalizeError{
					Field:  field + "." + k,
					Reason: shapeReason(keyed[k], "an entity record"),
				}
			}
			e["name"] = k
			out = append(out, e)
		}
		return out, nil
	}

	return nil, &NormalizeError{Field: field, Reason: shapeReason(v, "an array or a name-keyed map")}
}

// asEntity converts a keyed value into a fresh Entity. The copy is shallow;
// nested values are shared, which is safe because definitions are treated
// as immutable.
func asEntity(v any) (Entity, bool) {
	m, ok := asStringMap(v)
	if !ok {
		return nil, false
	}
	e := make(Entity, len(m))
	for k, val := range m {
		e[k] = val
	}
	return e, true
}

func asStringMap(v any) (map[string]any, bool) {
	switch vv := v.(type) {
	case Entity:
		return map[string]any(vv), true
	case map[string]any, map[any]any:
		m, err := cast.ToStringMapE(vv)
		if err != nil {
			return nil, false
		}
		return m, true
	}
	return nil, false
}

func asEntitySlice(v any) ([]any, bool) {
	switch vv := v.(type) {
	case []any:
		return vv, true
	case []Entity:
		out := make([]any, len(vv))
		for i, e := range vv {
			out[i] = e
		}
		return out, true
	case []map[string]any:
		out := make([]any, len(vv))
		for i, e := range vv {
			out[i] = e
		}
		return out, true
	}
	return nil, false
}

func shapeReason(v any, want string) string {
	return fmt.Sprintf("must be %s (got %T)", want, v)
}
