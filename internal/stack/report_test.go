package stack

import "testing"

func TestFormatIssues_Golden(t *testing.T) {
	issues := []Issue{
		{Collection: "workflows", Name: "w", Path: "objectName", Message: `references unknown object "ghost"`},
		{Collection: "views", Name: "#2", Path: "type", Message: `unexpected value "lst" (expected one of list, form, detail, board, calendar)`, Hint: `did you mean "list"?`},
	}
	want := `cross-reference check failed: 2 issues
  ✗ workflows[w].objectName: references unknown object "ghost"
  ✗ views[#2].type: unexpected value "lst" (expected one of list, form, detail, board, calendar)
      hint: did you mean "list"?`
	if got := FormatIssues("cross-reference check failed", issues); got != want {
		t.Fatalf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestFormatIssues_SingularAndDefaults(t *testing.T) {
	got := FormatIssues("", []Issue{{Message: "boom"}})
	want := `found: 1 issue
  ✗ stack: boom`
	if got != want {
		t.Fatalf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestFormatIssues_Deterministic(t *testing.T) {
	issues := []Issue{{Collection: "objects", Name: "x", Message: "dup"}}
	a := FormatIssues("composition conflict", issues)
	b := FormatIssues("composition conflict", issues)
	if a != b {
		t.Fatalf("formatter is not stable:\n%s\n%s", a, b)
	}
}
