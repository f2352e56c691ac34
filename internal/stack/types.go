// File: internal/stack/types.go
// Brief: Stack definition types and the collection registry.

// Package stack implements the stack composition and referential-integrity
// engine: normalization of raw stack input into canonical array form,
// dispatch to per-collection entity validators, cross-reference checking,
// and structural composition of multiple stacks into one.
package stack

import "github.com/spf13/cast"

// Entity is one named item of a collection. Entities carry arbitrary
// collection-specific fields; the engine only interprets "name" and the
// cross-reference fields.
type Entity map[string]any

// Name returns the entity's name field, or "" when absent.
func (e Entity) Name() string {
	return cast.ToString(e["name"])
}

// Definition is a stack definition in canonical array form. Manifest and
// I18n are nil when the stack does not define them; Collections holds only
// the collections present in the input.
//
// A Definition produced by this package is treated as immutable: no engine
// operation mutates an entity in place.
type Definition struct {
	Manifest    Entity
	I18n        Entity
	Collections map[string][]Entity
}

// Collection returns the named collection, or nil when absent.
func (d *Definition) Collection(name string) []Entity {
	if d == nil || d.Collections == nil {
		return nil
	}
	return d.Collections[name]
}

// HasCollection reports whether the stack defines the named collection,
// even as an empty list.
func (d *Definition) HasCollection(name string) bool {
	if d == nil || d.Collections == nil {
		return false
	}
	_, ok := d.Collections[name]
	return ok
}

// NewDefinition returns an empty definition.
func NewDefinition() *Definition {
	return &Definition{Collections: map[string][]Entity{}}
}

// CollectionObjects is the one globally namespaced collection: it is the
// sole target of cross-references and the only collection composed with
// conflict detection.
const CollectionObjects = "objects"

// CollectionNames lists every known collection in declaration order. The
// order is load-bearing: normalization, validation, and composition all
// iterate it so their output and error text are deterministic. Adding a new
// collection type is a data change here plus a validator registration.
var CollectionNames = []string{
	CollectionObjects,
	"views",
	"pages",
	"dashboards",
	"reports",
	"actions",
	"themes",
	"workflows",
	"approvals",
	"flows",
	"roles",
	"permissions",
	"sharingRules",
	"policies",
	"apis",
	"webhooks",
	"agents",
	"ragPipelines",
	"hooks",
	"mappings",
	"analyticsCubes",
	"connectors",
	"data",
	"plugins",
	"devPlugins",
	"datasources",
	"translations",
}

var collectionSet = func() map[string]struct{} {
	s := make(map[string]struct{}, len(CollectionNames))
	for _, n := range CollectionNames {
		s[n] = struct{}{}
	}
	return s
}()

// IsCollection reports whether name is a known collection field.
func IsCollection(name string) bool {
	_, ok := collectionSet[name]
	return ok
}
