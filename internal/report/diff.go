// diff.go renders the textual diff view between two normalized stacks.
package report

import (
	"fmt"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
	"gopkg.in/yaml.v3"

	"github.com/example/appstack/internal/stack"
	"github.com/example/appstack/internal/stackfile"
)

// DiffSummary aggregates entity-level change counts.
type DiffSummary struct {
	Added   int
	Removed int
	Changed int
}

// CollectionDiff captures per-collection drift between two stacks.
type CollectionDiff struct {
	Collection string
	Added      []string
	Removed    []string
	Changed    []string
}

// StackDiff encapsulates drift between two stack definitions.
type StackDiff struct {
	Left        string
	Right       string
	Summary     DiffSummary
	Collections []CollectionDiff
	Unified     string
}

// BuildStackDiff compares two normalized definitions: a per-collection
// entity summary keyed by name, plus a unified diff over the canonical
// YAML rendering.
func BuildStackDiff(left, right *stack.Definition, leftName, rightName string) (*StackDiff, error) {
	out := &StackDiff{Left: leftName, Right: rightName}

	for _, name := range stack.CollectionNames {
		cd := diffCollection(name, left.Collection(name), right.Collection(name))
		if len(cd.Added)+len(cd.Removed)+len(cd.Changed) == 0 {
			continue
		}
		out.Summary.Added += len(cd.Added)
		out.Summary.Removed += len(cd.Removed)
		out.Summary.Changed += len(cd.Changed)
		out.Collections = append(out.Collections, cd)
	}

	leftYAML, err := stackfile.Marshal(left)
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", leftName, err)
	}
	rightYAML, err := stackfile.Marshal(right)
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", rightName, err)
	}
	unified, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(leftYAML)),
		B:        difflib.SplitLines(string(rightYAML)),
		FromFile: leftName,
		ToFile:   rightName,
		Context:  3,
	})
	if err != nil {
		return nil, err
	}
	out.Unified = unified
	return out, nil
}

func diffCollection(name string, left, right []stack.Entity) CollectionDiff {
	cd := CollectionDiff{Collection: name}
	leftByName := entitiesByName(left)
	rightByName := entitiesByName(right)

	for _, e := range right {
		n := e.Name()
		if n == "" {
			continue
		}
		prev, ok := leftByName[n]
		switch {
		case !ok:
			cd.Added = append(cd.Added, n)
		case !entitiesEqual(prev, e):
			cd.Changed = append(cd.Changed, n)
		}
	}
	for _, e := range left {
		n := e.Name()
		if n == "" {
			continue
		}
		if _, ok := rightByName[n]; !ok {
			cd.Removed = append(cd.Removed, n)
		}
	}
	return cd
}

func entitiesByName(entities []stack.Entity) map[string]stack.Entity {
	m := make(map[string]stack.Entity, len(entities))
	for _, e := range entities {
		if n := e.Name(); n != "" {
			m[n] = e
		}
	}
	return m
}

// entitiesEqual compares by canonical YAML so nested maps compare by value.
func entitiesEqual(a, b stack.Entity) bool {
	return canonical(a) == canonical(b)
}

func canonical(e stack.Entity) string {
	raw, err := yaml.Marshal(map[string]any(e))
	if err != nil {
		return ""
	}
	return string(raw)
}

// Render writes the summary and unified diff as one report string.
func (d *StackDiff) Render() string {
	var b strings.Builder
	fmt.Fprintf(&b, "STACKS  %s -> %s\n", d.Left, d.Right)
	fmt.Fprintf(&b, "CHANGES %d added, %d removed, %d changed\n", d.Summary.Added, d.Summary.Removed, d.Summary.Changed)
	for _, cd := range d.Collections {
		fmt.Fprintf(&b, "  %s:", cd.Collection)
		if len(cd.Added) > 0 {
			fmt.Fprintf(&b, " +%s", strings.Join(cd.Added, ",+"))
		}
		if len(cd.Removed) > 0 {
			fmt.Fprintf(&b, " -%s", strings.Join(cd.Removed, ",-"))
		}
		if len(cd.Changed) > 0 {
			fmt.Fprintf(&b, " ~%s", strings.Join(cd.Changed, ",~"))
		}
		b.WriteString("\n")
	}
	if strings.TrimSpace(d.Unified) != "" {
		b.WriteString("\n")
		b.WriteString(d.Unified)
	}
	return b.String()
}
