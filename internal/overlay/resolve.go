package overlay

import "fmt"

// Source identifies where a resolved attribute came from.
type Source string

const (
	SourcePerImage Source = "per-image"
	SourcePreset   Source = "preset"
	SourceDataset  Source = "dataset"
	SourceAuto     Source = "auto"
)

// WarningKind classifies a non-fatal data-quality event seen during
// resolution.
type WarningKind string

const (
	WarnUnknownOrderField    WarningKind = "unknown-order-field"
	WarnUnknownPositionField WarningKind = "unknown-position-field"
	WarnPositionClamped      WarningKind = "position-clamped"
)

// Warning records one dropped or adjusted value. Warnings never block
// resolution.
type Warning struct {
	Kind  WarningKind
	Field string
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %s", w.Kind, w.Field)
}

// Precedence records which source won each resolved attribute, plus the
// match diagnostics for the current row. Display-only output; nothing reads
// it back into resolution.
type Precedence struct {
	OrderSource    Source
	PositionSource Source
	TCSource       TCSource
	MatchType      string
	// MatchConfidence is meaningful for fuzzy matches; exact matches carry
	// 1.0 and unmatched images 0.
	MatchConfidence float64
	Warnings        []Warning
}

// StatusLine formats the precedence record for single-line status display.
func (p Precedence) StatusLine() string {
	match := p.MatchType
	if match == "" {
		match = "unknown"
	}
	if p.MatchConfidence > 0 && p.MatchConfidence < 1 {
		match = fmt.Sprintf("%s (%.0f%%)", match, p.MatchConfidence*100)
	}
	return fmt.Sprintf("Order: %s · Positions: %s · TC: %s · Match: %s",
		p.OrderSource, p.PositionSource, p.TCSource, match)
}

// Resolver holds the tunable limits of precedence resolution. The zero
// value is unusable; construct with NewResolver.
type Resolver struct {
	// MinFontPt floors any source-supplied font size.
	MinFontPt int
	// GridStep is the normalized snap increment for SnapToGrid.
	GridStep float64
	// SafeMargin is the normalized inset snapped positions are kept inside.
	SafeMargin float64
}

// NewResolver returns a resolver with the engine defaults: 12pt font floor,
// 1% snap grid, 5% safe margin.
func NewResolver() Resolver {
	return Resolver{MinFontPt: 12, GridStep: 0.01, SafeMargin: 0.05}
}

// Resolve merges up to three configuration sources into one validated Spec.
//
// Field order comes from the first non-empty source in the chain per-image,
// preset, dataset, auto. Positions follow their own chain per-image, preset,
// auto; dataset defaults never carry positions. Either winning list is
// filtered to names in headers, coordinates are clamped to [0, 1] at four
// decimals, and every dropped or clamped value is reported as a warning.
// Display attributes are copied verbatim from the preset when one is
// present, else from the per-image spec, with the font size floored either
// way. Nil inputs mean the source is absent.
func (r Resolver) Resolve(perImage, preset *Spec, datasetOrder, headers []string) (Spec, Precedence) {
	resolved := DefaultSpec()
	precedence := Precedence{OrderSource: SourceAuto, PositionSource: SourceAuto, TCSource: TCNone}

	switch {
	case perImage != nil && len(perImage.FieldOrder) > 0:
		resolved.FieldOrder = filterFields(perImage.FieldOrder, headers, &precedence)
		precedence.OrderSource = SourcePerImage
	case preset != nil && len(preset.FieldOrder) > 0:
		resolved.FieldOrder = filterFields(preset.FieldOrder, headers, &precedence)
		precedence.OrderSource = SourcePreset
	case len(datasetOrder) > 0:
		resolved.FieldOrder = filterFields(datasetOrder, headers, &precedence)
		precedence.OrderSource = SourceDataset
	}

	switch {
	case perImage != nil && len(perImage.Positions) > 0:
		resolved.Positions = filterPositions(perImage.Positions, headers, &precedence)
		precedence.PositionSource = SourcePerImage
	case preset != nil && len(preset.Positions) > 0:
		resolved.Positions = filterPositions(preset.Positions, headers, &precedence)
		precedence.PositionSource = SourcePreset
	}

	switch {
	case preset != nil:
		r.copyDisplay(&resolved, preset)
	case perImage != nil:
		r.copyDisplay(&resolved, perImage)
	}

	return resolved, precedence
}

func (r Resolver) copyDisplay(dst *Spec, src *Spec) {
	dst.Anchor = src.Anchor
	dst.FontPt = max(r.MinFontPt, src.FontPt)
	dst.PaddingPx = src.PaddingPx
	dst.LineSpacingPx = src.LineSpacingPx
	dst.BoxOpacity = src.BoxOpacity
	dst.ShowBackground = src.ShowBackground
}

func filterFields(order, headers []string, precedence *Precedence) []string {
	known := headerSet(headers)
	kept := make([]string, 0, len(order))
	for _, field := range order {
		if !known[field] {
			precedence.Warnings = append(precedence.Warnings, Warning{Kind: WarnUnknownOrderField, Field: field})
			continue
		}
		kept = append(kept, field)
	}
	return kept
}

func filterPositions(positions map[string]Point, headers []string, precedence *Precedence) map[string]Point {
	known := headerSet(headers)
	kept := make(map[string]Point, len(positions))
	for field, point := range positions {
		if !known[field] {
			precedence.Warnings = append(precedence.Warnings, Warning{Kind: WarnUnknownPositionField, Field: field})
			continue
		}
		clamped := Point{X: clamp01(point.X), Y: clamp01(point.Y)}
		if clamped != point {
			precedence.Warnings = append(precedence.Warnings, Warning{Kind: WarnPositionClamped, Field: field})
		}
		kept[field] = clamped
	}
	return kept
}

func headerSet(headers []string) map[string]bool {
	set := make(map[string]bool, len(headers))
	for _, h := range headers {
		set[h] = true
	}
	return set
}
