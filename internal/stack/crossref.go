// File: internal/stack/crossref.go
// Brief: Resolution of string cross-references against the object universe.

package stack

import (
	"fmt"

	"github.com/spf13/cast"
)

// CheckRefs verifies that every cross-reference names an entity present in
// the objects collection. When the stack defines zero objects the check is
// skipped entirely: an empty object universe means the objects are owned by
// a sibling stack that has not been merged yet. Violations are collected
// exhaustively and returned as one *RefError; nil means the stack is clean.
// The input is not mutated.
func CheckRefs(def *Definition) error {
	objects := make(map[string]struct{})
	for _, o := range def.Collection(CollectionObjects) {
		if n := o.Name(); n != "" {
			objects[n] = struct{}{}
		}
	}
	if len(objects) == 0 {
		return nil
	}

	var issues []Issue
	report := func(collection string, e Entity, index int, path, target string) {
		issues = append(issues, Issue{
			Collection: collection,
			Name:       entityRef(e, index),
			Path:       path,
			Message:    fmt.Sprintf("references unknown object %q", target),
			Code:       "unknown-object",
		})
	}
	resolved := func(target string) bool {
		_, ok := objects[target]
		return ok
	}

	for i, w := range def.Collection("workflows") {
		if target := cast.ToString(w["objectName"]); target != "" && !resolved(target) {
			report("workflows", w, i, "objectName", target)
		}
	}

	for i, a := range def.Collection("approvals") {
		if target := cast.ToString(a["object"]); target != "" && !resolved(target) {
			report("approvals", a, i, "object", target)
		}
	}

	for i, h := range def.Collection("hooks") {
		switch ref := h["object"].(type) {
		case nil:
		case []any:
			for j, item := range ref {
				if target := cast.ToString(item); target != "" && !resolved(target) {
					report("hooks", h, i, fmt.Sprintf("object[%d]", j), target)
				}
			}
		default:
			if target := cast.ToString(ref); target != "" && !resolved(target) {
				report("hooks", h, i, "object", target)
			}
		}
	}

	for i, v := range def.Collection("views") {
		for _, section := range []string{"list", "form"} {
			sec, ok := asStringMap(v[section])
			if !ok {
				continue
			}
			data, ok := asStringMap(sec["data"])
			if !ok {
				continue
			}
			if cast.ToString(data["provider"]) != "object" {
				continue
			}
			if target := cast.ToString(data["object"]); target != "" && !resolved(target) {
				report("views", v, i, section+".data.object", target)
			}
		}
	}

	if len(issues) > 0 {
		return &RefError{Issues: issues}
	}
	return nil
}
