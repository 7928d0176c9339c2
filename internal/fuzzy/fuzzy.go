// Package fuzzy scores string similarity for vendor and item matching.
// Scores are on a 0-100 scale; MatchThreshold is the inclusive cutoff the
// analytics engine uses.
package fuzzy

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// MatchThreshold is the minimum PartialRatio score considered a match.
const MatchThreshold = 80

// normalize lowercases and collapses whitespace so "Trader  Joe's" and
// "trader joe's" compare equal.
func normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// ratio is the plain similarity of two strings: 100 when equal, scaled down
// by edit distance relative to the longer string.
func ratio(a, b string) int {
	if a == b {
		return 100
	}
	longest := len([]rune(a))
	if l := len([]rune(b)); l > longest {
		longest = l
	}
	if longest == 0 {
		return 100
	}
	dist := levenshtein.ComputeDistance(a, b)
	score := 100 - (100*dist+longest/2)/longest
	if score < 0 {
		return 0
	}
	return score
}

// PartialRatio returns the best ratio between the shorter string and any
// equal-length window of the longer string. A query contained verbatim in a
// candidate therefore scores 100 regardless of the candidate's extra text.
func PartialRatio(query, candidate string) int {
	a := normalize(query)
	b := normalize(candidate)
	if a == "" || b == "" {
		return 0
	}
	if len(a) > len(b) {
		a, b = b, a
	}
	if strings.Contains(b, a) {
		return 100
	}

	runesB := []rune(b)
	window := len([]rune(a))
	best := 0
	for start := 0; start+window <= len(runesB); start++ {
		if score := ratio(a, string(runesB[start:start+window])); score > best {
			best = score
		}
	}
	return best
}

// Matches reports whether candidate is similar enough to query. The
// threshold is inclusive: a score of exactly MatchThreshold matches.
func Matches(query, candidate string) bool {
	return PartialRatio(query, candidate) >= MatchThreshold
}
