package stack

import (
	"errors"
	"testing"
)

func TestRegistry_AggregatesAcrossCollections(t *testing.T) {
	reject := func(e Entity) (Entity, []Issue) {
		return e, []Issue{{Path: "name", Message: "rejected"}}
	}
	r := Registry{"objects": reject, "views": reject}

	def := defWith(map[string][]Entity{
		"objects": {{"name": "a"}, {"name": "b"}},
		"views":   {{"name": "v"}},
		"roles":   {{"name": "unchecked"}},
	})
	_, err := r.Validate(def)
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("err=%v, want ValidationError", err)
	}
	if len(ve.Issues) != 3 {
		t.Fatalf("issues=%d want=3 (no short-circuit):\n%s", len(ve.Issues), err)
	}
	// Dispatch fills in entity identity.
	if ve.Issues[0].Collection != "objects" || ve.Issues[0].Name != "a" {
		t.Fatalf("issue[0]=%+v", ve.Issues[0])
	}
	if ve.Issues[2].Collection != "views" || ve.Issues[2].Name != "v" {
		t.Fatalf("issue[2]=%+v", ve.Issues[2])
	}
}

func TestRegistry_AppliesValidatorDefaults(t *testing.T) {
	addKind := func(e Entity) (Entity, []Issue) {
		out := make(Entity, len(e)+1)
		for k, v := range e {
			out[k] = v
		}
		out["kind"] = "defaulted"
		return out, nil
	}
	r := Registry{"views": addKind}

	def := defWith(map[string][]Entity{"views": {{"name": "v"}}})
	got, err := r.Validate(def)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if got.Collections["views"][0]["kind"] != "defaulted" {
		t.Fatalf("defaults not applied: %v", got.Collections["views"][0])
	}
	if _, ok := def.Collections["views"][0]["kind"]; ok {
		t.Fatalf("input mutated: %v", def.Collections["views"][0])
	}
}

func TestRegistry_UnregisteredCollectionPassesThrough(t *testing.T) {
	r := Registry{}
	def := defWith(map[string][]Entity{"themes": {{"name": "dark", "weird": []any{1, 2}}}})
	got, err := r.Validate(def)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if got.Collections["themes"][0].Name() != "dark" {
		t.Fatalf("themes=%v", got.Collections["themes"])
	}
}

func TestRegistry_IndexFallbackForNamelessEntities(t *testing.T) {
	reject := func(e Entity) (Entity, []Issue) {
		return e, []Issue{{Path: "name", Message: "missing"}}
	}
	r := Registry{"objects": reject}
	def := defWith(map[string][]Entity{"objects": {{}}})
	_, err := r.Validate(def)
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("err=%v", err)
	}
	if ve.Issues[0].Name != "#0" {
		t.Fatalf("name=%q want=#0", ve.Issues[0].Name)
	}
}
