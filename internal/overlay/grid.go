package overlay

import "math"

// SnapToGrid rounds a normalized coordinate to the resolver's grid step and
// clamps the result inside the safe margin. Input assist for interactive
// placement only; persisted positions are not snapped.
func (r Resolver) SnapToGrid(x, y float64) (float64, float64) {
	return r.snap(x), r.snap(y)
}

func (r Resolver) snap(v float64) float64 {
	snapped := math.Round(v/r.GridStep) * r.GridStep
	if snapped < r.SafeMargin {
		snapped = r.SafeMargin
	}
	if limit := 1.0 - r.SafeMargin; snapped > limit {
		snapped = limit
	}
	return round4(snapped)
}

// ToPixel converts a normalized point to pixel coordinates for an image of
// the given dimensions.
func ToPixel(p Point, width, height int) (int, int) {
	return int(p.X * float64(width)), int(p.Y * float64(height))
}

// FromPixel converts pixel coordinates back to a normalized point, rounded
// to four decimals. Zero dimensions map to the origin.
func FromPixel(x, y, width, height int) Point {
	var p Point
	if width > 0 {
		p.X = round4(float64(x) / float64(width))
	}
	if height > 0 {
		p.Y = round4(float64(y) / float64(height))
	}
	return p
}
