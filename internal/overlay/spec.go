package overlay

import "math"

// Anchor names the corner an overlay block hangs from.
type Anchor string

const (
	TopLeft     Anchor = "top_left"
	TopRight    Anchor = "top_right"
	BottomLeft  Anchor = "bottom_left"
	BottomRight Anchor = "bottom_right"
)

// Point is a normalized image coordinate: each component is a fraction of
// the image dimension in [0, 1].
type Point struct {
	X float64
	Y float64
}

// Spec is an overlay layout configuration. FieldOrder lists column names in
// display order; Positions pins individual fields to explicit normalized
// coordinates. A zero FieldOrder or Positions means the source has no
// opinion, not an empty layout.
type Spec struct {
	Anchor         Anchor
	FontPt         int
	PaddingPx      int
	LineSpacingPx  int
	BoxOpacity     float64
	ShowBackground bool
	FieldOrder     []string
	Positions      map[string]Point
}

// DefaultSpec returns the engine display defaults used when no source
// supplies display attributes.
func DefaultSpec() Spec {
	return Spec{
		Anchor:         TopLeft,
		FontPt:         16,
		PaddingPx:      12,
		LineSpacingPx:  6,
		BoxOpacity:     0.8,
		ShowBackground: true,
	}
}

// round4 keeps coordinates at four decimal places, the precision positions
// are persisted with.
func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}

// clamp01 rounds to four decimals then clamps into [0, 1].
func clamp01(v float64) float64 {
	r := round4(v)
	if r < 0 {
		return 0
	}
	if r > 1 {
		return 1
	}
	return r
}
