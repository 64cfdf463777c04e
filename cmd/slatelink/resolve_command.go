package main

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"slatelink/internal/config"
	"slatelink/internal/dataset"
	"slatelink/internal/match"
	"slatelink/internal/overlay"
	"slatelink/internal/preset"
	"slatelink/internal/sidecar"
)

func newResolveCommand(ctx *commandContext) *cobra.Command {
	var csvFlag string
	var presetFlag string

	cmd := &cobra.Command{
		Use:   "resolve <image>",
		Short: "Resolve overlay layout for an image under precedence rules",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			result, err := loadDataset(args[0], csvFlag)
			if err != nil {
				return err
			}

			resolution, err := resolveForImage(ctx, cfg, logger, args[0], presetFlag, result)
			if err != nil {
				return err
			}

			if ctx.jsonOutput() {
				return writeJSON(cmd, buildResolveReport(resolution))
			}
			return writeResolveText(cmd, resolution)
		},
	}

	cmd.Flags().StringVar(&csvFlag, "csv", "", "Dataset path (default: discovered next to the image)")
	cmd.Flags().StringVar(&presetFlag, "preset", "", "Preset to apply")
	return cmd
}

// resolution bundles everything one precedence pass produces for an image.
type resolution struct {
	ImagePath      string
	Dataset        *dataset.LoadResult
	Outcome        matchOutcome
	SelectedFields []string
	Spec           overlay.Spec
	Precedence     overlay.Precedence
	SlateBar       []string
	Pinned         []string
	PresetName     string
}

// resolveForImage runs the full precedence pass: per-image sidecar, named
// preset, dataset defaults, then matching for the diagnostics row.
func resolveForImage(ctx *commandContext, cfg *config.Config, logger *slog.Logger, imagePath, presetName string, result *dataset.LoadResult) (*resolution, error) {
	headers := result.Table.Headers
	defaults := dataset.DefaultsFor(headers, cfg)

	var perImage *overlay.Spec
	var sidecarInfo sidecar.Info
	if sidecar.Exists(imagePath) {
		info, err := sidecar.Read(sidecar.PathFor(imagePath))
		if err != nil {
			logger.Warn("ignoring unreadable sidecar", "path", sidecar.PathFor(imagePath), "error", err)
		} else {
			sidecarInfo = info
			perImage = info.Spec()
		}
	}

	var presetSpec *overlay.Spec
	var loadedPreset *preset.Preset
	if presetName != "" {
		store, err := preset.NewStore(cfg.Paths.PresetDir, logger)
		if err != nil {
			return nil, err
		}
		p, err := store.Load(presetName)
		if err != nil {
			return nil, err
		}
		loadedPreset = &p
		spec := p.Overlay.ToSpec()
		presetSpec = &spec
	}

	joinKey := defaults.JoinKey
	if loadedPreset != nil && loadedPreset.Match.JoinKey != "" && result.Table.HasColumn(loadedPreset.Match.JoinKey) {
		joinKey = loadedPreset.Match.JoinKey
	}
	outcome := performMatch(cfg, imagePath, &result.Table, joinKey, true)

	resolver := ctx.resolver()
	spec, precedence := resolver.Resolve(perImage, presetSpec, defaults.FieldOrder, headers)
	precedence.MatchType = outcome.Kind()
	precedence.MatchConfidence = outcome.Confidence()

	selected := selectedFields(sidecarInfo, loadedPreset, defaults, headers)

	var row dataset.Row
	if idx := outcome.RowIndex(); idx >= 0 && outcome.Exact.Kind != match.Ambiguous {
		row = result.Table.Rows[idx]
	}
	precedence.TCSource = overlay.DetectTCSource(row, selected)

	res := &resolution{
		ImagePath:      imagePath,
		Dataset:        result,
		Outcome:        outcome,
		SelectedFields: selected,
		Spec:           spec,
		Precedence:     precedence,
		SlateBar:       overlay.SlateBarFields(selected, spec),
		Pinned:         overlay.PinnedFields(spec),
	}
	if loadedPreset != nil {
		res.PresetName = loadedPreset.Name
	}
	return res, nil
}

// selectedFields picks the field selection by the same source order as the
// layout: sidecar, preset, dataset defaults. Always filtered to live
// headers.
func selectedFields(info sidecar.Info, p *preset.Preset, defaults dataset.Defaults, headers []string) []string {
	var candidate []string
	switch {
	case len(info.SelectedFields) > 0:
		candidate = info.SelectedFields
	case p != nil && len(p.SelectedFields) > 0:
		candidate = p.SelectedFields
	default:
		candidate = defaults.SelectedFields
	}

	present := make(map[string]bool, len(headers))
	for _, h := range headers {
		present[h] = true
	}
	kept := make([]string, 0, len(candidate))
	for _, f := range candidate {
		if present[f] {
			kept = append(kept, f)
		}
	}
	return kept
}

func buildResolveReport(res *resolution) map[string]any {
	warnings := make([]string, 0, len(res.Precedence.Warnings))
	for _, w := range res.Precedence.Warnings {
		warnings = append(warnings, w.String())
	}

	positions := make(map[string][2]float64, len(res.Spec.Positions))
	for field, p := range res.Spec.Positions {
		positions[field] = [2]float64{p.X, p.Y}
	}

	return map[string]any{
		"image":           res.ImagePath,
		"preset":          res.PresetName,
		"order_source":    string(res.Precedence.OrderSource),
		"position_source": string(res.Precedence.PositionSource),
		"tc_source":       string(res.Precedence.TCSource),
		"match_type":      res.Precedence.MatchType,
		"confidence":      res.Precedence.MatchConfidence,
		"selected_fields": res.SelectedFields,
		"field_order":     res.Spec.FieldOrder,
		"slate_bar":       res.SlateBar,
		"pinned":          res.Pinned,
		"positions":       positions,
		"anchor":          string(res.Spec.Anchor),
		"font_pt":         res.Spec.FontPt,
		"warnings":        warnings,
	}
}

func writeResolveText(cmd *cobra.Command, res *resolution) error {
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, res.Precedence.StatusLine())
	if res.PresetName != "" {
		fmt.Fprintf(out, "Preset:    %s\n", res.PresetName)
	}
	fmt.Fprintf(out, "Selected:  %s\n", strings.Join(res.SelectedFields, ", "))
	fmt.Fprintf(out, "Order:     %s\n", strings.Join(res.Spec.FieldOrder, ", "))
	fmt.Fprintf(out, "Slate bar: %s\n", strings.Join(res.SlateBar, ", "))
	if len(res.Pinned) > 0 {
		fmt.Fprintf(out, "Pinned:    %s\n", strings.Join(res.Pinned, ", "))
		fields := make([]string, 0, len(res.Spec.Positions))
		for f := range res.Spec.Positions {
			fields = append(fields, f)
		}
		sort.Strings(fields)
		for _, f := range fields {
			p := res.Spec.Positions[f]
			fmt.Fprintf(out, "  %s at (%.4f, %.4f)\n", f, p.X, p.Y)
		}
	}
	fmt.Fprintf(out, "Display:   anchor=%s font=%dpt padding=%dpx opacity=%.2f background=%s\n",
		res.Spec.Anchor, res.Spec.FontPt, res.Spec.PaddingPx, res.Spec.BoxOpacity, yesNo(res.Spec.ShowBackground))

	for _, w := range res.Precedence.Warnings {
		fmt.Fprintf(out, "Warning:   %s\n", w)
	}
	return nil
}
