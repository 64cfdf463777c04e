package match

// Kind classifies the outcome of an exact match.
type Kind string

const (
	// Unique means exactly one row matched.
	Unique Kind = "unique"
	// Ambiguous means several rows carry the same key value. The engine
	// never picks among them; the caller must disambiguate.
	Ambiguous Kind = "ambiguous"
	// NoMatch means no row matched any tried key. Not an error.
	NoMatch Kind = "none"
)

// Result is the outcome of exact row matching for one image.
type Result struct {
	Kind Kind
	// Indices holds every matching row index in table order. Empty for
	// NoMatch, one entry for Unique, two or more for Ambiguous.
	Indices []int
	// Key is the column that produced the match, "" for NoMatch.
	Key string
	// Identifier is the filename form that matched (with or without
	// extension), "" for NoMatch.
	Identifier string
}

// RowIndex returns the single matched row for Unique results, and the first
// candidate as an interim placeholder for Ambiguous ones. -1 for NoMatch.
func (r Result) RowIndex() int {
	if len(r.Indices) == 0 {
		return -1
	}
	return r.Indices[0]
}
