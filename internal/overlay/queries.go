package overlay

import "sort"

// TCSource names which end of a clip the displayed timecode came from.
type TCSource string

const (
	TCStart TCSource = "Start"
	TCEnd   TCSource = "End"
	TCNone  TCSource = "none"
)

// tcColumns is the priority list of timecode-like column names. The first
// entry selected and populated in a row wins.
var tcColumns = []struct {
	column string
	source TCSource
}{
	{"TC Start", TCStart},
	{"TC End", TCEnd},
	{"Timecode Start", TCStart},
	{"Timecode In", TCStart},
}

// DetectTCSource reports which timecode column, if any, backs the status
// display for a row. Display-only; overlay positioning never consults it.
func DetectTCSource(row map[string]string, selectedFields []string) TCSource {
	selected := make(map[string]bool, len(selectedFields))
	for _, f := range selectedFields {
		selected[f] = true
	}
	for _, tc := range tcColumns {
		if selected[tc.column] && row[tc.column] != "" {
			return tc.source
		}
	}
	return TCNone
}

// PinnedFields returns the fields with an explicit position, sorted by
// name. Pinned fields render at their fixed location and stay out of the
// compact slate bar.
func PinnedFields(spec Spec) []string {
	fields := make([]string, 0, len(spec.Positions))
	for f := range spec.Positions {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fields
}

// SlateBarFields returns the fields the slate bar should show: the spec's
// field order filtered to the selection, with selected fields missing from
// the order appended at the end, and pinned fields removed throughout.
func SlateBarFields(selectedFields []string, spec Spec) []string {
	ordered := selectedFields
	if len(spec.FieldOrder) > 0 {
		selected := make(map[string]bool, len(selectedFields))
		for _, f := range selectedFields {
			selected[f] = true
		}
		ordered = make([]string, 0, len(selectedFields))
		seen := make(map[string]bool, len(selectedFields))
		for _, f := range spec.FieldOrder {
			if selected[f] && !seen[f] {
				ordered = append(ordered, f)
				seen[f] = true
			}
		}
		for _, f := range selectedFields {
			if !seen[f] {
				ordered = append(ordered, f)
				seen[f] = true
			}
		}
	}

	bar := make([]string, 0, len(ordered))
	for _, f := range ordered {
		if _, pinned := spec.Positions[f]; !pinned {
			bar = append(bar, f)
		}
	}
	return bar
}
