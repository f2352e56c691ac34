// File: internal/schema/suggest.go
// Brief: Edit-distance suggestions for enum mismatches.

package schema

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// maxSuggestDistance bounds how far a typo may be from a valid option
// before suggesting it would be noise.
const maxSuggestDistance = 3

// closest returns the allowed value nearest to got by edit distance, or ""
// when nothing is close enough to be a plausible typo. Comparison is
// case-insensitive so casing mistakes still match.
func closest(got string, allowed []string) string {
	needle := strings.ToLower(got)
	best := ""
	bestDistance := maxSuggestDistance + 1
	for _, candidate := range allowed {
		d := levenshtein.ComputeDistance(needle, strings.ToLower(candidate))
		if d < bestDistance {
			bestDistance = d
			best = candidate
		}
	}
	return best
}
