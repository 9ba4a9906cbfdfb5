package fuzzy

import "unicode"

// Scoring weights.
const (
	PrefixBase    = 100
	MatchPoints   = 1
	AdjacentBonus = 5
	BoundaryBonus = 10
)

// isWordBoundary checks if the rune at idx starts a word. lowered is the
// lower-cased form of original.
//
// The camelCase rule reads the preceding rune from lowered, so any genuinely
// upper-case rune after the first counts, including every letter of an
// acronym.
func isWordBoundary(original, lowered []rune, idx int) bool {
	if idx == 0 {
		return true
	}
	if idx >= len(original) {
		return false
	}

	switch original[idx-1] {
	case ' ', '-', '_':
		return true
	}

	prev := lowered[idx-1]
	curr := original[idx]
	prevLower := prev == unicode.ToLower(prev)
	currUpper := curr == unicode.ToUpper(curr) && curr != unicode.ToLower(curr)
	return prevLower && currUpper
}

// lowerRunes lower-cases rune by rune so indices line up with the original.
func lowerRunes(runes []rune) []rune {
	out := make([]rune, len(runes))
	for i, r := range runes {
		out[i] = unicode.ToLower(r)
	}
	return out
}
