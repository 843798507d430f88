package clubs

import (
	"unicode/utf8"

	"github.com/antzucaro/matchr"
)

const DefaultThreshold = 90

// Mapping rewrites one club name to its canonical spelling.
type Mapping struct {
	Original  string
	Canonical string
}

// Similarity scores two strings from 0 to 100 using the length of their
// longest common subsequence relative to their combined length. It is
// symmetric and case sensitive.
func Similarity(a, b string) float64 {
	total := utf8.RuneCountInString(a) + utf8.RuneCountInString(b)
	if total == 0 {
		return 100
	}
	return 200 * float64(matchr.LongestCommonSubsequence(a, b)) / float64(total)
}

// Deduplicate greedily clusters names in the order given. Each name is
// compared against the normalized form of every existing representative,
// oldest first, and joins the first one scoring at least threshold;
// otherwise it becomes a new representative of itself. The result holds
// one mapping per name, in input order.
func Deduplicate(names []string, threshold float64) []Mapping {
	type representative struct {
		name       string
		normalized string
	}

	var representatives []representative
	mappings := make([]Mapping, 0, len(names))
	for _, name := range names {
		normalized := Normalize(name)

		canonical := name
		found := false
		for _, rep := range representatives {
			if Similarity(normalized, rep.normalized) >= threshold {
				canonical = rep.name
				found = true
				break
			}
		}
		if !found {
			representatives = append(representatives, representative{
				name:       name,
				normalized: normalized,
			})
		}

		mappings = append(mappings, Mapping{
			Original:  name,
			Canonical: canonical,
		})
	}
	return mappings
}
