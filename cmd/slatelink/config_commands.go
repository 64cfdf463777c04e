package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"slatelink/internal/config"
)

func newConfigCommand(ctx *commandContext) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration utilities",
	}

	configCmd.AddCommand(newConfigInitCommand())
	configCmd.AddCommand(newConfigShowCommand(ctx))

	return configCmd
}

func newConfigInitCommand() *cobra.Command {
	var targetPath string
	var overwrite bool

	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Create a sample configuration file",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			target := strings.TrimSpace(targetPath)
			if target == "" {
				defaultPath, err := config.DefaultConfigPath()
				if err != nil {
					return fmt.Errorf("determine default config path: %w", err)
				}
				target = defaultPath
			} else {
				expanded, err := config.ExpandPath(target)
				if err != nil {
					return fmt.Errorf("resolve config path: %w", err)
				}
				target = expanded
			}

			dir := filepath.Dir(target)
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("create config directory %q: %w", dir, err)
			}

			if !overwrite {
				if _, err := os.Stat(target); err == nil {
					return fmt.Errorf("config file already exists at %s (use --overwrite to replace it)", target)
				} else if err != nil && !os.IsNotExist(err) {
					return fmt.Errorf("check config path: %w", err)
				}
			}

			if err := config.CreateSample(target); err != nil {
				return fmt.Errorf("create sample config: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Wrote sample configuration to %s\n", target)
			return nil
		},
	}

	cmd.Flags().StringVarP(&targetPath, "path", "p", "", "Destination for the configuration file")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Overwrite existing configuration if present")
	return cmd
}

func newConfigShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the resolved configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			if ctx.jsonOutput() {
				return writeJSON(cmd, cfg)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Config path:    %s\n", ctx.configPath)
			fmt.Fprintf(out, "Preset dir:     %s\n", cfg.Paths.PresetDir)
			fmt.Fprintf(out, "State dir:      %s\n", cfg.Paths.StateDir)
			fmt.Fprintf(out, "Log dir:        %s\n", cfg.Paths.LogDir)
			fmt.Fprintf(out, "Audit:          %s (%s)\n", yesNo(cfg.Audit.Enabled), cfg.Paths.AuditDir)
			fmt.Fprintf(out, "Join priority:  %s\n", strings.Join(cfg.Match.JoinPriority, ", "))
			fmt.Fprintf(out, "Fallback keys:  %s\n", strings.Join(cfg.Match.FallbackKeys, ", "))
			fmt.Fprintf(out, "Min confidence: %.2f\n", cfg.Match.MinConfidence)
			fmt.Fprintf(out, "Safe margin:    %.1f%%\n", cfg.Overlay.SafeMarginPct)
			fmt.Fprintf(out, "Snap grid:      %.1f%%\n", cfg.Overlay.SnapPct)
			fmt.Fprintf(out, "Min font:       %dpt\n", cfg.Overlay.MinFontPt)
			fmt.Fprintf(out, "Export mode:    %s (suffix %q)\n", cfg.Export.Mode, cfg.Export.SuffixPattern)
			fmt.Fprintf(out, "Log format:     %s at %s\n", cfg.Logging.Format, cfg.Logging.Level)
			return nil
		},
	}
}
