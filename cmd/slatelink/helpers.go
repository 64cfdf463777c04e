package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"slatelink/internal/config"
	"slatelink/internal/dataset"
	"slatelink/internal/match"
)

// loadDataset resolves the dataset path for an image (explicit flag first,
// then auto-discovery next to the image) and loads it.
func loadDataset(imagePath, csvFlag string) (*dataset.LoadResult, error) {
	path := strings.TrimSpace(csvFlag)
	if path == "" {
		path = dataset.AutoFind(imagePath)
		if path == "" {
			return nil, errors.New("no dataset found next to the image; pass --csv")
		}
	}
	return dataset.Load(path)
}

// matchOutcome is the combined result of exact matching with an optional
// fuzzy pass, shared by the match and link commands.
type matchOutcome struct {
	JoinKey     string
	Exact       match.Result
	UsedFuzzy   bool
	Fuzzy       []match.Candidate
	Explanation match.Explanation
}

// Kind reports the effective match type: the exact result's kind, or
// "fuzzy" when the fuzzy pass produced candidates.
func (o matchOutcome) Kind() string {
	if o.UsedFuzzy && len(o.Fuzzy) > 0 {
		return "fuzzy"
	}
	return string(o.Exact.Kind)
}

// RowIndex returns the effective row: the exact match, or the best fuzzy
// candidate. -1 when nothing matched.
func (o matchOutcome) RowIndex() int {
	if o.Exact.Kind != match.NoMatch {
		return o.Exact.RowIndex()
	}
	if o.UsedFuzzy && len(o.Fuzzy) > 0 {
		return o.Fuzzy[0].Index
	}
	return -1
}

// Confidence returns 1.0 for exact matches and the best candidate's score
// for fuzzy ones.
func (o matchOutcome) Confidence() float64 {
	if o.Exact.Kind == match.Unique || o.Exact.Kind == match.Ambiguous {
		return 1.0
	}
	if o.UsedFuzzy && len(o.Fuzzy) > 0 {
		return o.Fuzzy[0].Confidence
	}
	return 0
}

// performMatch runs exact matching and, on no-match, the fuzzy pass.
func performMatch(cfg *config.Config, imageName string, table *dataset.Table, joinKey string, allowFuzzy bool) matchOutcome {
	outcome := matchOutcome{
		JoinKey: joinKey,
		Exact:   match.Match(imageName, table, joinKey, cfg.Match.FallbackKeys),
	}
	if outcome.Exact.Kind == match.NoMatch && allowFuzzy {
		outcome.UsedFuzzy = true
		outcome.Fuzzy, outcome.Explanation = match.MatchFuzzy(
			imageName, table, joinKey, cfg.Match.FallbackKeys, cfg.Match.MinConfidence)
	}
	return outcome
}

func formatConfidence(confidence float64) string {
	return strconv.FormatFloat(confidence, 'f', 2, 64)
}

func formatIndices(indices []int) string {
	parts := make([]string, len(indices))
	for i, idx := range indices {
		parts[i] = strconv.Itoa(idx)
	}
	return strings.Join(parts, ", ")
}

// rowPreview renders a short key=value summary of a row for candidate
// listings.
func rowPreview(table *dataset.Table, index int, columns []string, limit int) string {
	if index < 0 || index >= len(table.Rows) {
		return ""
	}
	var parts []string
	for _, col := range columns {
		if len(parts) == limit {
			break
		}
		if value := table.Value(index, col); value != "" {
			parts = append(parts, fmt.Sprintf("%s=%s", col, value))
		}
	}
	return strings.Join(parts, " ")
}
