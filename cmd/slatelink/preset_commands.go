package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"slatelink/internal/audit"
	"slatelink/internal/dataset"
	"slatelink/internal/preset"
)

func newPresetCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preset",
		Short: "Manage saved field selections and overlay layouts",
	}
	cmd.AddCommand(newPresetListCommand(ctx))
	cmd.AddCommand(newPresetShowCommand(ctx))
	cmd.AddCommand(newPresetSaveCommand(ctx))
	cmd.AddCommand(newPresetDeleteCommand(ctx))
	return cmd
}

func openPresetStore(ctx *commandContext) (*preset.Store, error) {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := ctx.ensureLogger()
	if err != nil {
		return nil, err
	}
	return preset.NewStore(cfg.Paths.PresetDir, logger)
}

func newPresetListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openPresetStore(ctx)
			if err != nil {
				return err
			}
			presets, err := store.List()
			if err != nil {
				return err
			}

			if ctx.jsonOutput() {
				return writeJSON(cmd, presets)
			}

			out := cmd.OutOrStdout()
			if len(presets) == 0 {
				fmt.Fprintln(out, "No presets saved")
				return nil
			}
			rows := make([][]string, 0, len(presets))
			for _, p := range presets {
				rows = append(rows, []string{
					p.Name,
					strings.Join(p.SelectedFields, ", "),
					p.Match.JoinKey,
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Name", "Fields", "Join Key"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft},
			))
			return nil
		},
	}
}

func newPresetShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <name>",
		Short: "Show one preset in full",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openPresetStore(ctx)
			if err != nil {
				return err
			}
			p, err := store.Load(args[0])
			if err != nil {
				return err
			}

			if ctx.jsonOutput() {
				return writeJSON(cmd, p)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Name:       %s\n", p.Name)
			fmt.Fprintf(out, "Fields:     %s\n", strings.Join(p.SelectedFields, ", "))
			fmt.Fprintf(out, "Join key:   %s (fallbacks: %s)\n", p.Match.JoinKey, strings.Join(p.Match.FallbackKeys, ", "))
			if len(p.Overlay.FieldOrder) > 0 {
				fmt.Fprintf(out, "Order:      %s\n", strings.Join(p.Overlay.FieldOrder, ", "))
			}
			fmt.Fprintf(out, "Display:    anchor=%s font=%dpt padding=%dpx opacity=%.2f background=%s\n",
				p.Overlay.Anchor, p.Overlay.FontPt, p.Overlay.PaddingPx, p.Overlay.BoxOpacity, yesNo(p.Overlay.ShowBackground))
			for field, xy := range p.Overlay.Positions {
				fmt.Fprintf(out, "Position:   %s at (%.4f, %.4f)\n", field, xy[0], xy[1])
			}
			return nil
		},
	}
}

func newPresetSaveCommand(ctx *commandContext) *cobra.Command {
	var fieldsFlag []string
	var csvFlag string
	var keyFlag string

	cmd := &cobra.Command{
		Use:   "save <name>",
		Short: "Save a preset from explicit fields or a dataset's defaults",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := openPresetStore(ctx)
			if err != nil {
				return err
			}

			p := preset.New(args[0], fieldsFlag)
			if csvFlag != "" {
				result, err := dataset.Load(csvFlag)
				if err != nil {
					return err
				}
				defaults := dataset.DefaultsFor(result.Table.Headers, cfg)
				if len(p.SelectedFields) == 0 {
					p.SelectedFields = defaults.SelectedFields
				}
				p.Overlay.FieldOrder = p.SelectedFields
				p.Match.JoinKey = defaults.JoinKey
			}
			if keyFlag != "" {
				p.Match.JoinKey = keyFlag
			}
			p.Match.FallbackKeys = cfg.Match.FallbackKeys

			if err := store.Save(p); err != nil {
				return err
			}

			auditLog, err := audit.New(cfg.Paths.AuditDir, cfg.Audit.Enabled)
			if err == nil {
				_ = auditLog.LogPresetSave(p.Name, p.SelectedFields)
				_ = auditLog.Close()
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Saved preset %q (%d fields)\n", p.Name, len(p.SelectedFields))
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&fieldsFlag, "fields", nil, "Selected fields, comma separated")
	cmd.Flags().StringVar(&csvFlag, "csv", "", "Derive selection and join key from this dataset")
	cmd.Flags().StringVar(&keyFlag, "key", "", "Join column override")
	return cmd
}

func newPresetDeleteCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a preset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openPresetStore(ctx)
			if err != nil {
				return err
			}
			if err := store.Delete(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted preset %q\n", args[0])
			return nil
		},
	}
}
