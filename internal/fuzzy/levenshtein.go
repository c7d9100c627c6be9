// Package fuzzy provides string-similarity primitives for matching noisy
// names, specialties, and locations against registry records.
package fuzzy

import "strings"

// Distance calculates the minimum number of single-character edits
// (insertions, deletions, or substitutions) required to change one string
// into another. Comparison is case-insensitive. Pure function, symmetric.
func Distance(a, b string) int {
	a = strings.ToLower(a)
	b = strings.ToLower(b)
	if a == b {
		return 0
	}
	if len(a) == 0 {
		return len([]rune(b))
	}
	if len(b) == 0 {
		return len([]rune(a))
	}

	// Convert to runes for proper Unicode handling
	runesA := []rune(a)
	runesB := []rune(b)
	lenA := len(runesA)
	lenB := len(runesB)

	// Two rows are enough for plain Levenshtein
	prev := make([]int, lenB+1)
	curr := make([]int, lenB+1)
	for j := 0; j <= lenB; j++ {
		prev[j] = j
	}

	for i := 1; i <= lenA; i++ {
		curr[0] = i
		for j := 1; j <= lenB; j++ {
			cost := 0
			if runesA[i-1] != runesB[j-1] {
				cost = 1
			}
			curr[j] = min(
				prev[j]+1,      // deletion
				curr[j-1]+1,    // insertion
				prev[j-1]+cost, // substitution
			)
		}
		prev, curr = curr, prev
	}

	return prev[lenB]
}

// Similarity returns a normalized similarity in [0, 1]:
// 1 - distance/max(len). Two empty strings are identical (1.0).
func Similarity(a, b string) float64 {
	la := len([]rune(a))
	lb := len([]rune(b))
	if la == 0 && lb == 0 {
		return 1.0
	}
	longest := max(la, lb)
	return 1.0 - float64(Distance(a, b))/float64(longest)
}
