package textutil

import (
	"regexp"
	"strings"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)

// NormalizePositions lowercases a position list, turns "/" separators
// into "," and removes all whitespace, so "Centre-back / Right-back"
// becomes "centre-back,right-back".
func NormalizePositions(positions string) string {
	positions = strings.ToLower(positions)
	positions = strings.ReplaceAll(positions, "/", ",")
	positions = whitespaceRegex.ReplaceAllString(positions, "")
	return positions
}

// containsInOrder reports whether every token appears in s, each one
// after the end of the previous match.
func containsInOrder(s string, tokens []string) bool {
	for _, token := range tokens {
		idx := strings.Index(s, token)
		if idx < 0 {
			return false
		}
		s = s[idx+len(token):]
	}
	return true
}

// PositionsOverlap is true when the comma separated tokens of either
// normalized position list occur, in order, inside the other one.
func PositionsOverlap(a, b string) bool {
	a = NormalizePositions(a)
	b = NormalizePositions(b)
	return containsInOrder(b, strings.Split(a, ",")) ||
		containsInOrder(a, strings.Split(b, ","))
}
