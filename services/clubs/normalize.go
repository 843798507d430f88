package clubs

import (
	"regexp"
	"strings"
)

var (
	loanSuffixRegex = regexp.MustCompile(`(?i)\s*\(on loan from [^)]+\)`)
	typePrefixRegex = regexp.MustCompile(`(?i)^(?:[FCA]\.?C\.?[ ]*)+\b`)
	typeSuffixRegex = regexp.MustCompile(`(?i)\b[FC. ]+$`)
)

// Normalize strips loan annotations and club type abbreviations such
// as "FC", "F.C." or "A.C." from a club name.
//
//	"FC Barcelona (on loan from Real Madrid)" -> "Barcelona"
//	"Real Madrid C.F."                        -> "Real Madrid"
//
// Normalize(Normalize(x)) == Normalize(x) for every x.
func Normalize(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	// removing one annotation can close up another around it
	for loanSuffixRegex.MatchString(name) {
		name = loanSuffixRegex.ReplaceAllString(name, "")
	}
	name = strings.TrimSpace(name)
	name = strings.TrimSpace(typePrefixRegex.ReplaceAllString(name, ""))
	name = strings.TrimSpace(typeSuffixRegex.ReplaceAllString(name, ""))
	return name
}
