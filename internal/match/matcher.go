package match

import (
	"path/filepath"
	"strings"

	"slatelink/internal/dataset"
)

// basenameColumn is the internal column substituted when a fallback key has
// the "basename" role.
const basenameColumn = "filename"

// Match finds the metadata row for an image by exact key lookup.
//
// The filename is tried with its extension first, then without (unless the
// primary key itself means "basename", where the second pass would repeat
// the first). When the primary key yields nothing, fallback keys are tried
// in order: a key named "basename" substitutes the internal filename column
// and retries both forms; any other fallback compares only the stem. The
// first fallback with at least one hit wins.
func Match(imageName string, table *dataset.Table, primaryKey string, fallbackKeys []string) Result {
	if table.Empty() {
		return Result{Kind: NoMatch}
	}

	base := filepath.Base(imageName)
	stem := strings.TrimSuffix(base, filepath.Ext(base))

	if indices := findMatches(table, primaryKey, base); len(indices) > 0 {
		return verdict(indices, primaryKey, base)
	}
	if !strings.EqualFold(primaryKey, "basename") {
		if indices := findMatches(table, primaryKey, stem); len(indices) > 0 {
			return verdict(indices, primaryKey, stem)
		}
	}

	for _, key := range fallbackKeys {
		if strings.EqualFold(key, "basename") {
			if indices := findMatches(table, basenameColumn, base); len(indices) > 0 {
				return verdict(indices, basenameColumn, base)
			}
			if indices := findMatches(table, basenameColumn, stem); len(indices) > 0 {
				return verdict(indices, basenameColumn, stem)
			}
			continue
		}
		if indices := findMatches(table, key, stem); len(indices) > 0 {
			return verdict(indices, key, stem)
		}
	}

	return Result{Kind: NoMatch}
}

func findMatches(table *dataset.Table, column, value string) []int {
	var indices []int
	for i, row := range table.Rows {
		cell, ok := row[column]
		if !ok {
			continue
		}
		if cell == value {
			indices = append(indices, i)
		}
	}
	return indices
}

func verdict(indices []int, key, identifier string) Result {
	kind := Unique
	if len(indices) > 1 {
		kind = Ambiguous
	}
	return Result{Kind: kind, Indices: indices, Key: key, Identifier: identifier}
}
