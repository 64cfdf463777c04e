// Package preset persists named overlay/match presets as TOML documents,
// one file per preset.
package preset

import (
	"math"

	"slatelink/internal/overlay"
)

// Preset bundles everything a saved workflow needs: which fields are
// selected, how the overlay is laid out, and which keys drive matching.
type Preset struct {
	Name           string        `toml:"name"`
	SelectedFields []string      `toml:"selected_fields"`
	Overlay        OverlayConfig `toml:"overlay"`
	Match          MatchConfig   `toml:"match"`
}

// OverlayConfig is the stored shape of an overlay spec: plain keys and
// values, positions as 2-element arrays rounded to 4 decimals.
type OverlayConfig struct {
	Anchor         string                `toml:"anchor"`
	FontPt         int                   `toml:"font_pt"`
	PaddingPx      int                   `toml:"padding_px"`
	LineSpacingPx  int                   `toml:"line_spacing_px"`
	BoxOpacity     float64               `toml:"box_opacity"`
	ShowBackground bool                  `toml:"show_background"`
	FieldOrder     []string              `toml:"field_order,omitempty"`
	Positions      map[string][2]float64 `toml:"positions,omitempty"`
}

// MatchConfig names the columns matching should try for this preset.
type MatchConfig struct {
	JoinKey      string   `toml:"join_key"`
	FallbackKeys []string `toml:"fallback_keys"`
}

// New returns a preset with engine-default overlay and match settings.
func New(name string, selectedFields []string) Preset {
	return Preset{
		Name:           name,
		SelectedFields: selectedFields,
		Overlay:        FromSpec(overlay.DefaultSpec()),
		Match:          MatchConfig{JoinKey: "Name", FallbackKeys: []string{"basename", "clip"}},
	}
}

// FromSpec converts a resolved overlay spec into its stored shape.
func FromSpec(spec overlay.Spec) OverlayConfig {
	cfg := OverlayConfig{
		Anchor:         string(spec.Anchor),
		FontPt:         spec.FontPt,
		PaddingPx:      spec.PaddingPx,
		LineSpacingPx:  spec.LineSpacingPx,
		BoxOpacity:     spec.BoxOpacity,
		ShowBackground: spec.ShowBackground,
		FieldOrder:     spec.FieldOrder,
	}
	if len(spec.Positions) > 0 {
		cfg.Positions = make(map[string][2]float64, len(spec.Positions))
		for field, p := range spec.Positions {
			cfg.Positions[field] = [2]float64{round4(p.X), round4(p.Y)}
		}
	}
	return cfg
}

// ToSpec converts the stored shape back into an overlay spec for
// resolution.
func (c OverlayConfig) ToSpec() overlay.Spec {
	spec := overlay.Spec{
		Anchor:         overlay.Anchor(c.Anchor),
		FontPt:         c.FontPt,
		PaddingPx:      c.PaddingPx,
		LineSpacingPx:  c.LineSpacingPx,
		BoxOpacity:     c.BoxOpacity,
		ShowBackground: c.ShowBackground,
		FieldOrder:     c.FieldOrder,
	}
	if len(c.Positions) > 0 {
		spec.Positions = make(map[string]overlay.Point, len(c.Positions))
		for field, xy := range c.Positions {
			spec.Positions[field] = overlay.Point{X: xy[0], Y: xy[1]}
		}
	}
	return spec
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
