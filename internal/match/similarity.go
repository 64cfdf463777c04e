package match

import (
	"strings"

	"slatelink/internal/textutil"
)

// Similarity rule constants. A score is always the maximum of whichever
// rules apply, never a sum.
const (
	exactScore        = 1.0
	abbreviationScore = 0.95
	substringFloor    = 0.8
	prefixWeight      = 0.7
	prefixMinLen      = 3
)

// abbreviation maps a short production code to its known long forms.
type abbreviation struct {
	key        string
	expansions []string
}

var abbreviations = []abbreviation{
	{"mi", []string{"missionimpossible", "mission impossible"}},
	{"jp", []string{"jurassicpark", "jurassic park"}},
	{"sw", []string{"starwars", "star wars"}},
	{"lotr", []string{"lordoftherings", "lord of the rings"}},
	{"got", []string{"gameofthrones", "game of thrones"}},
}

// Similarity scores two strings in [0, 1] after normalization (case folded,
// non-alphanumerics stripped). Exact normalized equality scores 1.0, an
// abbreviation-table hit 0.95; otherwise a sequence ratio applies, raised to
// at least 0.8 when one string contains the other and to a prefix-weighted
// floor when the strings share a prefix of three or more characters.
// Symmetric in its arguments.
func Similarity(a, b string) float64 {
	na := textutil.Normalize(a)
	nb := textutil.Normalize(b)

	if na == nb {
		return exactScore
	}
	if abbreviationMatch(na, nb) {
		return abbreviationScore
	}

	score := sequenceRatio(na, nb)

	if na != "" && nb != "" && (strings.Contains(na, nb) || strings.Contains(nb, na)) {
		score = max(score, substringFloor)
	}

	if prefix := textutil.SharedPrefixLen(na, nb); prefix >= prefixMinLen {
		longest := max(len(na), len(nb))
		score = max(score, float64(prefix)/float64(longest)*prefixWeight)
	}

	return score
}

func abbreviationMatch(na, nb string) bool {
	for _, e1 := range expandAbbreviations(na) {
		for _, e2 := range expandAbbreviations(nb) {
			if e1 == e2 {
				return true
			}
		}
	}
	return false
}

// expandAbbreviations returns the normalized input plus every normalized
// expansion the abbreviation table knows for it.
func expandAbbreviations(normalized string) []string {
	variants := []string{normalized}
	for _, entry := range abbreviations {
		if entry.key == normalized {
			for _, expansion := range entry.expansions {
				variants = append(variants, textutil.Normalize(expansion))
			}
			break
		}
	}
	return variants
}

// sequenceRatio is a longest-common-subsequence similarity:
// 2*lcs / (len(a)+len(b)), symmetric and in [0, 1].
func sequenceRatio(a, b string) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1.0
	}
	if len(a) == 0 || len(b) == 0 {
		return 0.0
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				curr[j] = prev[j-1] + 1
			} else {
				curr[j] = max(prev[j], curr[j-1])
			}
		}
		prev, curr = curr, prev
	}

	lcs := prev[len(b)]
	return 2.0 * float64(lcs) / float64(len(a)+len(b))
}
