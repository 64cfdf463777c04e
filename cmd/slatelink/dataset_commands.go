package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"slatelink/internal/dataset"
)

func newDatasetCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dataset",
		Short: "Inspect and validate delimited datasets",
	}
	cmd.AddCommand(newDatasetInfoCommand(ctx))
	cmd.AddCommand(newDatasetValidateCommand(ctx))
	return cmd
}

func newDatasetInfoCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "info <csv>",
		Short: "Show dataset headers, encoding, and derived defaults",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			result, err := dataset.Load(args[0])
			if err != nil {
				return err
			}
			defaults := dataset.DefaultsFor(result.Table.Headers, cfg)
			suggested := dataset.SuggestedFields(result.Table.Headers, cfg)

			if ctx.jsonOutput() {
				return writeJSON(cmd, map[string]any{
					"path":              result.Path,
					"encoding":          result.Encoding,
					"encoding_fallback": result.EncodingFallback,
					"delimiter":         string(result.Delimiter),
					"rows":              len(result.Table.Rows),
					"headers":           result.Table.Headers,
					"join_key":          defaults.JoinKey,
					"suggested_fields":  suggested,
					"initial_selection": defaults.SelectedFields,
				})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Path:      %s\n", result.Path)
			fmt.Fprintf(out, "Encoding:  %s (fallback: %s)\n", result.Encoding, yesNo(result.EncodingFallback))
			fmt.Fprintf(out, "Delimiter: %q\n", result.Delimiter)
			fmt.Fprintf(out, "Rows:      %d\n", len(result.Table.Rows))
			fmt.Fprintf(out, "Headers:   %s\n", strings.Join(result.Table.Headers, ", "))
			fmt.Fprintf(out, "Join key:  %s\n", defaults.JoinKey)
			if len(suggested) > 0 {
				fmt.Fprintf(out, "Suggested: %s\n", strings.Join(suggested, ", "))
			}
			if len(defaults.SelectedFields) > 0 {
				fmt.Fprintf(out, "Selection: %s\n", strings.Join(defaults.SelectedFields, ", "))
			}
			return nil
		},
	}
}

func newDatasetValidateCommand(ctx *commandContext) *cobra.Command {
	var keyFlag string

	cmd := &cobra.Command{
		Use:   "validate <csv>",
		Short: "Check the join column for missing or duplicate values",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			result, err := dataset.Load(args[0])
			if err != nil {
				return err
			}

			joinKey := keyFlag
			if joinKey == "" {
				joinKey = dataset.DetectJoinKey(result.Table.Headers, cfg.Match.JoinPriority)
			}

			validation := dataset.ValidateJoinColumn(&result.Table, joinKey)

			if ctx.jsonOutput() {
				issues := make([]map[string]any, 0, len(validation.Issues))
				for _, issue := range validation.Issues {
					issues = append(issues, map[string]any{
						"kind":    string(issue.Kind),
						"value":   issue.Value,
						"rows":    issue.Rows,
						"message": issue.Message,
					})
				}
				return writeJSON(cmd, map[string]any{
					"path":     result.Path,
					"join_key": joinKey,
					"clean":    len(validation.Issues) == 0,
					"issues":   issues,
				})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Join key: %s\n", joinKey)
			if len(validation.Issues) == 0 {
				fmt.Fprintln(out, "No issues found")
				return nil
			}
			rows := make([][]string, 0, len(validation.Issues))
			for _, issue := range validation.Issues {
				rows = append(rows, []string{string(issue.Kind), issue.Value, issue.Message})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Issue", "Value", "Detail"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft},
			))
			return nil
		},
	}

	cmd.Flags().StringVar(&keyFlag, "key", "", "Join column (default: detected from the dataset)")
	return cmd
}
