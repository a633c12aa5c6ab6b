// Package similarity provides the edit-distance and ratio primitives the
// component scorer and fuzzy strategy build on top of.
package similarity

import (
	"github.com/agnivade/levenshtein"
	"github.com/mozillazg/go-unidecode"
	"github.com/xrash/smetrics"
)

// Levenshtein returns the classic edit distance between a and b. The
// underlying library never allocates in a way that can fail for Go strings
// (no fixed-capacity buffer as in the reference's C implementation), so the
// "falls back to a conservative upper bound on allocation failure" case
// described by the source has no analog to trigger here; Levenshtein always
// returns the true edit distance.
func Levenshtein(a, b string) int {
	return levenshtein.ComputeDistance(a, b)
}

// Similarity returns a normalized similarity ratio in [0,1]: 0 if either
// string is empty, 1 if they are equal, otherwise 1 - distance/maxLen.
func Similarity(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}
	if a == b {
		return 1
	}
	maxLen := len(a)
	if len(b) > maxLen {
		maxLen = len(b)
	}
	if maxLen == 0 {
		return 1
	}
	ratio := 1 - float64(Levenshtein(a, b))/float64(maxLen)
	if ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}
	return ratio
}

// JaroWinkler returns the Jaro-Winkler similarity of a and b in [0,1]. The
// core scorer does not use it; it is pinned to Levenshtein-derived
// Similarity.
func JaroWinkler(a, b string) float64 {
	return smetrics.JaroWinkler(a, b, 0.7, 4)
}

// Unaccent transliterates non-ASCII runes to their closest ASCII
// equivalent (e.g. "Cañon" -> "Canon"). The scorer does its accent folding
// through normalizer.RemoveAccentsAndLowercase, not through this function.
func Unaccent(s string) string {
	return unidecode.Unidecode(s)
}
