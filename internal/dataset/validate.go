package dataset

import (
	"fmt"
	"sort"
	"strings"
)

// IssueKind classifies a join-column data quality finding.
type IssueKind string

const (
	IssueMissing   IssueKind = "missing"
	IssueDuplicate IssueKind = "duplicate"
)

// Issue describes one join-column problem. Rows are 1-based for display.
type Issue struct {
	Kind    IssueKind
	Value   string
	Rows    []int
	Message string
}

// Validation summarizes join-column quality for a table. Issues never block
// loading; ambiguous matches surface later, at match time.
type Validation struct {
	Valid          bool
	Issues         []Issue
	TotalRows      int
	MissingCount   int
	DuplicateCount int
}

// ValidateJoinColumn reports missing and duplicate values in the join column.
func ValidateJoinColumn(table *Table, joinKey string) Validation {
	result := Validation{Valid: true, TotalRows: len(table.Rows)}
	if table.Empty() || !table.HasColumn(joinKey) {
		return result
	}

	occurrences := make(map[string][]int)
	for i, row := range table.Rows {
		value := strings.TrimSpace(row[joinKey])
		if value == "" {
			result.Issues = append(result.Issues, Issue{
				Kind:    IssueMissing,
				Rows:    []int{i + 1},
				Message: fmt.Sprintf("row %d: missing or blank %s", i+1, joinKey),
			})
			result.MissingCount++
			continue
		}
		occurrences[value] = append(occurrences[value], i+1)
	}

	duplicates := make([]string, 0)
	for value, rows := range occurrences {
		if len(rows) > 1 {
			duplicates = append(duplicates, value)
		}
	}
	sort.Strings(duplicates)
	for _, value := range duplicates {
		rows := occurrences[value]
		result.Issues = append(result.Issues, Issue{
			Kind:    IssueDuplicate,
			Value:   value,
			Rows:    rows,
			Message: fmt.Sprintf("duplicate %s %q in rows %s", joinKey, value, joinRowList(rows)),
		})
		result.DuplicateCount++
	}

	result.Valid = len(result.Issues) == 0
	return result
}

func joinRowList(rows []int) string {
	parts := make([]string, len(rows))
	for i, r := range rows {
		parts[i] = fmt.Sprint(r)
	}
	return strings.Join(parts, ", ")
}
