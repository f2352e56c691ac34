// File: internal/stack/errors.go
// Brief: Engine error taxonomy.

package stack

import "fmt"

// Issue is one validation or cross-reference finding. Collection and Name
// identify the entity, Path the field chain inside it. Hint carries
// advisory text only; it never changes pass/fail.
type Issue struct {
	Collection string
	Name       string
	Path       string
	Message    string
	Code       string
	Hint       string
}

// Location renders the issue's position, e.g. "workflows[w].objectName".
func (i Issue) Location() string {
	loc := i.Collection
	if i.Name != "" {
		loc += "[" + i.Name + "]"
	}
	if i.Path != "" {
		if loc != "" {
			loc += "."
		}
		loc += i.Path
	}
	if loc == "" {
		loc = "stack"
	}
	return loc
}

// NormalizeError reports a collection field whose value is neither an array
// nor a name-keyed map. Normalization fails fast on the first such field.
type NormalizeError struct {
	Field  string
	Reason string
}

func (e *NormalizeError) Error() string {
	return FormatIssues("normalization failed", []Issue{{
		Path:    e.Field,
		Message: e.Reason,
	}})
}

// ValidationError aggregates every entity-validator failure across every
// collection of one stack.
type ValidationError struct {
	Issues []Issue
}

func (e *ValidationError) Error() string {
	return FormatIssues("schema validation failed", e.Issues)
}

// RefError aggregates every unresolved cross-reference in one stack.
type RefError struct {
	Issues []Issue
}

func (e *RefError) Error() string {
	return FormatIssues("cross-reference check failed", e.Issues)
}

// ConflictError reports a duplicate object name met while composing under
// the "error" conflict policy.
type ConflictError struct {
	Name string
}

func (e *ConflictError) Error() string {
	return FormatIssues("composition conflict", []Issue{{
		Collection: CollectionObjects,
		Name:       e.Name,
		Message:    fmt.Sprintf("object %q is defined by more than one stack", e.Name),
		Hint:       `compose with objectConflict "override" or "merge" to allow it`,
	}})
}
