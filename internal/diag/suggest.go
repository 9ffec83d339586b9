package diag

import (
	"fmt"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Suggest returns the closest candidate to name by edit distance, for
// "did you mean" hints attached to UndefinedName diagnostics. It
// reports false if candidates is empty or nothing is close enough to
// be worth suggesting. Distance is plain Levenshtein rather than
// fuzzy subsequence matching, since the typos worth catching here
// (transpositions like "fatc") are not subsequences of their target.
func Suggest(name string, candidates []string) (string, bool) {
	best, bestDist := "", -1
	for _, c := range candidates {
		d := fuzzy.LevenshteinDistance(name, c)
		if bestDist == -1 || d < bestDist {
			best, bestDist = c, d
		}
	}
	maxDistance := len(name)/2 + 1
	if bestDist == -1 || bestDist > maxDistance {
		return "", false
	}
	return best, true
}

// WithSuggestion appends a "did you mean" clause to e's message when
// Suggest finds a candidate close to name that differs from name,
// returning e for chaining.
func (e *Error) WithSuggestion(name string, candidates []string) *Error {
	sug, ok := Suggest(name, candidates)
	if !ok || sug == name {
		return e
	}
	e.Message = e.Message + fmt.Sprintf(" (did you mean %q?)", sug)
	return e
}
