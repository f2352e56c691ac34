package stack

import (
	"errors"
	"strings"
	"testing"
)

func TestCheckRefs_WorkflowUnknownObject(t *testing.T) {
	def := defWith(map[string][]Entity{
		"objects": {{"name": "lead"}},
		"workflows": {{
			"name":        "w",
			"objectName":  "nonexistent",
			"triggerType": "on_create",
		}},
	})
	err := CheckRefs(def)
	var re *RefError
	if !errors.As(err, &re) {
		t.Fatalf("err=%v, want RefError", err)
	}
	text := err.Error()
	if !strings.Contains(text, "w") || !strings.Contains(text, "nonexistent") {
		t.Fatalf("error should name the workflow and the missing target:\n%s", text)
	}
}

func TestCheckRefs_SkippedWhenNoObjects(t *testing.T) {
	def := defWith(map[string][]Entity{
		"workflows": {{
			"name":        "w",
			"objectName":  "nonexistent",
			"triggerType": "on_create",
		}},
	})
	if err := CheckRefs(def); err != nil {
		t.Fatalf("expected skip with empty object universe, got %v", err)
	}
}

func TestCheckRefs_CollectsAllSites(t *testing.T) {
	def := defWith(map[string][]Entity{
		"objects":   {{"name": "lead"}},
		"approvals": {{"name": "ap", "object": "ghost"}},
		"hooks": {
			{"name": "h1", "object": "ghost"},
			{"name": "h2", "object": []any{"lead", "phantom"}},
		},
		"views": {{
			"name": "leadBoard",
			"list": map[string]any{
				"data": map[string]any{"provider": "object", "object": "spirit"},
			},
		}},
	})
	err := CheckRefs(def)
	var re *RefError
	if !errors.As(err, &re) {
		t.Fatalf("err=%v, want RefError", err)
	}
	if len(re.Issues) != 4 {
		t.Fatalf("issues=%d want=4:\n%s", len(re.Issues), err)
	}
	for _, target := range []string{"ghost", "phantom", "spirit"} {
		if !strings.Contains(err.Error(), target) {
			t.Fatalf("missing target %q in:\n%s", target, err)
		}
	}
}

func TestCheckRefs_ResolvedRefsPass(t *testing.T) {
	def := defWith(map[string][]Entity{
		"objects": {{"name": "lead"}, {"name": "task"}},
		"workflows": {{
			"name":        "w",
			"objectName":  "lead",
			"triggerType": "on_create",
		}},
		"hooks": {{"name": "h", "object": []any{"lead", "task"}}},
		"views": {{
			"name": "leadList",
			"list": map[string]any{
				"data": map[string]any{"provider": "object", "object": "lead"},
			},
			"form": map[string]any{
				"data": map[string]any{"provider": "api", "object": "ignored_for_api"},
			},
		}},
	})
	if err := CheckRefs(def); err != nil {
		t.Fatalf("unexpected: %v", err)
	}
}
