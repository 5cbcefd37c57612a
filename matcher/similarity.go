package matcher

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// Similarity scores two strings in [0,1] from their Levenshtein edit
// distance: 1 - distance/max(len(a), len(b)), measured in runes. Inputs are
// trimmed and lowercased first, so the score is case-insensitive. Identical
// strings (including two empty strings) score 1.0.
func Similarity(a, b string) float64 {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))
	if a == b {
		return 1.0
	}

	maxLen := len([]rune(a))
	if lb := len([]rune(b)); lb > maxLen {
		maxLen = lb
	}

	// a == b above covers the degenerate both-empty case, so maxLen > 0 here.
	dist := levenshtein.ComputeDistance(a, b)
	return 1.0 - float64(dist)/float64(maxLen)
}
