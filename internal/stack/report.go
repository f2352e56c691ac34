// File: internal/stack/report.go
// Brief: Stable multi-line rendering of aggregated issues.

package stack

import (
	"fmt"
	"strings"
)

const issueMarker = "✗"

// FormatIssues renders an issue list as a report: a header with the label
// and count, then one marker-prefixed line per issue with an indented hint
// line when present. Output is byte-stable for identical input.
func FormatIssues(label string, issues []Issue) string {
	if strings.TrimSpace(label) == "" {
		label = "found"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %d %s", label, len(issues), pluralIssue(len(issues)))
	for _, is := range issues {
		fmt.Fprintf(&b, "\n  %s %s: %s", issueMarker, is.Location(), is.Message)
		if is.Hint != "" {
			fmt.Fprintf(&b, "\n      hint: %s", is.Hint)
		}
	}
	return b.String()
}

func pluralIssue(n int) string {
	if n == 1 {
		return "issue"
	}
	return "issues"
}
