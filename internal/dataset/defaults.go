package dataset

import "slatelink/internal/config"

// Defaults are the dataset-level configuration defaults derived from the
// headers actually present in a loaded table. They sit at the bottom of the
// overlay precedence chain and never carry positions.
type Defaults struct {
	JoinKey        string
	SelectedFields []string
	FieldOrder     []string
}

// DetectJoinKey picks the preferred join key from the configured priority
// list. Falls back to the first header, then to "filename".
func DetectJoinKey(headers []string, priority []string) string {
	present := make(map[string]struct{}, len(headers))
	for _, h := range headers {
		present[h] = struct{}{}
	}
	for _, candidate := range priority {
		if _, ok := present[candidate]; ok {
			return candidate
		}
	}
	if len(headers) > 0 {
		return headers[0]
	}
	return "filename"
}

// DefaultsFor builds dataset defaults for the given headers: the configured
// initial selection filtered to present columns, with field order matching
// the selection.
func DefaultsFor(headers []string, cfg *config.Config) Defaults {
	present := make(map[string]struct{}, len(headers))
	for _, h := range headers {
		present[h] = struct{}{}
	}

	selection := make([]string, 0, len(cfg.Dataset.InitialSelection))
	for _, field := range cfg.Dataset.InitialSelection {
		if _, ok := present[field]; ok {
			selection = append(selection, field)
		}
	}

	order := make([]string, len(selection))
	copy(order, selection)

	return Defaults{
		JoinKey:        DetectJoinKey(headers, cfg.Match.JoinPriority),
		SelectedFields: selection,
		FieldOrder:     order,
	}
}

// SuggestedFields filters the configured suggestion list to headers actually
// present, preserving the configured order.
func SuggestedFields(headers []string, cfg *config.Config) []string {
	present := make(map[string]struct{}, len(headers))
	for _, h := range headers {
		present[h] = struct{}{}
	}
	out := make([]string, 0, len(cfg.Dataset.SuggestedFields))
	for _, field := range cfg.Dataset.SuggestedFields {
		if _, ok := present[field]; ok {
			out = append(out, field)
		}
	}
	return out
}
