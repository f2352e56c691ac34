package report

import (
	"strings"
	"testing"

	"github.com/example/appstack/internal/stack"
)

func TestBuildStackDiff_Summary(t *testing.T) {
	left := stack.NewDefinition()
	left.Collections["objects"] = []stack.Entity{
		{"name": "task", "fields": map[string]any{"title": "text"}},
		{"name": "note"},
	}
	right := stack.NewDefinition()
	right.Collections["objects"] = []stack.Entity{
		{"name": "task", "fields": map[string]any{"title": "text", "due": "date"}},
		{"name": "lead"},
	}

	diff, err := BuildStackDiff(left, right, "a.yaml", "b.yaml")
	if err != nil {
		t.Fatalf("diff: %v", err)
	}
	if diff.Summary.Added != 1 || diff.Summary.Removed != 1 || diff.Summary.Changed != 1 {
		t.Fatalf("summary=%+v", diff.Summary)
	}
	if len(diff.Collections) != 1 || diff.Collections[0].Collection != "objects" {
		t.Fatalf("collections=%+v", diff.Collections)
	}
	if !strings.Contains(diff.Unified, "a.yaml") || !strings.Contains(diff.Unified, "due") {
		t.Fatalf("unified diff missing content:\n%s", diff.Unified)
	}

	rendered := diff.Render()
	for _, want := range []string{"+lead", "-note", "~task"} {
		if !strings.Contains(rendered, want) {
			t.Fatalf("missing %q in:\n%s", want, rendered)
		}
	}
}

func TestBuildStackDiff_IdenticalStacks(t *testing.T) {
	def := stack.NewDefinition()
	def.Collections["views"] = []stack.Entity{{"name": "taskList"}}

	diff, err := BuildStackDiff(def, def, "a.yaml", "a.yaml")
	if err != nil {
		t.Fatalf("diff: %v", err)
	}
	if diff.Summary != (DiffSummary{}) {
		t.Fatalf("summary=%+v, want zero", diff.Summary)
	}
	if strings.TrimSpace(diff.Unified) != "" {
		t.Fatalf("unexpected unified diff:\n%s", diff.Unified)
	}
}
