package match

import (
	"path/filepath"
	"sort"

	"slatelink/internal/dataset"
)

// Candidate is one fuzzy match: a row index and the best similarity score
// observed for it across the tried column/token combinations.
type Candidate struct {
	Index      int
	Confidence float64
}

// Explanation describes how a fuzzy match was computed, for human-readable
// status output. Purely informational; nothing reads it back into the
// algorithm.
type Explanation struct {
	Filename       string
	Identity       Identity
	KeysTried      []string
	CandidateCount int
	BestConfidence float64
}

// MatchFuzzy scores every row against tokens extracted from the image
// filename and returns candidates at or above minConfidence, sorted by
// confidence descending. Ties keep table order (stable sort). An empty
// table or absent columns produce an empty result, never an error.
func MatchFuzzy(imageName string, table *dataset.Table, primaryKey string, fallbackKeys []string, minConfidence float64) ([]Candidate, Explanation) {
	base := filepath.Base(imageName)
	identity := ExtractIdentity(base)
	explanation := Explanation{Filename: base, Identity: identity}

	if table.Empty() {
		return nil, explanation
	}

	var candidates []Candidate

	if table.HasColumn(primaryKey) {
		explanation.KeysTried = append(explanation.KeysTried, primaryKey)
		candidates = append(candidates, scoreColumn(table, primaryKey, identity, minConfidence)...)
	}

	if len(candidates) == 0 {
		for _, key := range fallbackKeys {
			if key == primaryKey || !table.HasColumn(key) {
				continue
			}
			explanation.KeysTried = append(explanation.KeysTried, key)
			candidates = append(candidates, scoreColumn(table, key, identity, minConfidence)...)
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Confidence > candidates[j].Confidence
	})

	explanation.CandidateCount = len(candidates)
	if len(candidates) > 0 {
		explanation.BestConfidence = candidates[0].Confidence
	}
	return candidates, explanation
}

// scoreColumn scores every row's cell in one column against the extracted
// production token and the full stem, keeping the per-row best when it
// clears the floor.
func scoreColumn(table *dataset.Table, column string, identity Identity, minConfidence float64) []Candidate {
	var out []Candidate
	for i, row := range table.Rows {
		cell, ok := row[column]
		if !ok || cell == "" {
			continue
		}

		best := 0.0
		if identity.Production != "" {
			best = Similarity(identity.Production, cell)
		}
		if score := Similarity(identity.Full, cell); score > best {
			best = score
		}

		if best >= minConfidence {
			out = append(out, Candidate{Index: i, Confidence: best})
		}
	}
	return out
}
