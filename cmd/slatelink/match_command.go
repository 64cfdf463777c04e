package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"slatelink/internal/dataset"
	"slatelink/internal/match"
)

func newMatchCommand(ctx *commandContext) *cobra.Command {
	var csvFlag string
	var keyFlag string
	var noFuzzy bool

	cmd := &cobra.Command{
		Use:   "match <image>",
		Short: "Find the dataset row for an image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			result, err := loadDataset(args[0], csvFlag)
			if err != nil {
				return err
			}

			joinKey := keyFlag
			if joinKey == "" {
				joinKey = dataset.DetectJoinKey(result.Table.Headers, cfg.Match.JoinPriority)
			}

			outcome := performMatch(cfg, args[0], &result.Table, joinKey, !noFuzzy)
			if ctx.jsonOutput() {
				return writeMatchJSON(cmd, args[0], result, outcome)
			}
			return writeMatchText(cmd, args[0], result, outcome)
		},
	}

	cmd.Flags().StringVar(&csvFlag, "csv", "", "Dataset path (default: discovered next to the image)")
	cmd.Flags().StringVar(&keyFlag, "key", "", "Join column (default: detected from the dataset)")
	cmd.Flags().BoolVar(&noFuzzy, "no-fuzzy", false, "Skip the fuzzy pass on no-match")
	return cmd
}

type matchReport struct {
	Image       string            `json:"image"`
	Dataset     string            `json:"dataset"`
	JoinKey     string            `json:"join_key"`
	Kind        string            `json:"kind"`
	RowIndex    int               `json:"row_index"`
	Indices     []int             `json:"indices,omitempty"`
	Key         string            `json:"key,omitempty"`
	Identifier  string            `json:"identifier,omitempty"`
	Confidence  float64           `json:"confidence"`
	Identity    string            `json:"identity,omitempty"`
	Candidates  []candidateReport `json:"candidates,omitempty"`
	EncodingFbk bool              `json:"encoding_fallback,omitempty"`
}

type candidateReport struct {
	RowIndex   int     `json:"row_index"`
	Confidence float64 `json:"confidence"`
	Preview    string  `json:"preview,omitempty"`
}

func buildMatchReport(imagePath string, result *dataset.LoadResult, outcome matchOutcome) matchReport {
	report := matchReport{
		Image:       filepath.Base(imagePath),
		Dataset:     result.Path,
		JoinKey:     outcome.JoinKey,
		Kind:        outcome.Kind(),
		RowIndex:    outcome.RowIndex(),
		Indices:     outcome.Exact.Indices,
		Key:         outcome.Exact.Key,
		Identifier:  outcome.Exact.Identifier,
		Confidence:  outcome.Confidence(),
		EncodingFbk: result.EncodingFallback,
	}
	if outcome.UsedFuzzy {
		report.Identity = outcome.Explanation.Identity.String()
		for _, c := range outcome.Fuzzy {
			report.Candidates = append(report.Candidates, candidateReport{
				RowIndex:   c.Index,
				Confidence: c.Confidence,
				Preview:    rowPreview(&result.Table, c.Index, result.Table.Headers, 3),
			})
		}
	}
	return report
}

func writeMatchJSON(cmd *cobra.Command, imagePath string, result *dataset.LoadResult, outcome matchOutcome) error {
	return writeJSON(cmd, buildMatchReport(imagePath, result, outcome))
}

func writeMatchText(cmd *cobra.Command, imagePath string, result *dataset.LoadResult, outcome matchOutcome) error {
	out := cmd.OutOrStdout()
	report := buildMatchReport(imagePath, result, outcome)

	fmt.Fprintf(out, "Image:    %s\n", report.Image)
	fmt.Fprintf(out, "Dataset:  %s\n", report.Dataset)
	fmt.Fprintf(out, "Join key: %s\n", report.JoinKey)

	switch outcome.Exact.Kind {
	case match.Unique:
		fmt.Fprintf(out, "Match:    unique row %d (%s = %q)\n",
			report.RowIndex, report.Key, report.Identifier)
	case match.Ambiguous:
		fmt.Fprintf(out, "Match:    ambiguous rows %s (%s = %q); pick one explicitly\n",
			formatIndices(report.Indices), report.Key, report.Identifier)
	default:
		if !outcome.UsedFuzzy {
			fmt.Fprintln(out, "Match:    none")
			break
		}
		if len(outcome.Fuzzy) == 0 {
			fmt.Fprintf(out, "Match:    none (fuzzy found nothing above the floor; identity %s)\n", report.Identity)
			break
		}
		fmt.Fprintf(out, "Match:    fuzzy, best row %d at %s (identity %s)\n",
			report.RowIndex, formatConfidence(report.Confidence), report.Identity)
		rows := make([][]string, 0, len(report.Candidates))
		for _, c := range report.Candidates {
			rows = append(rows, []string{
				fmt.Sprint(c.RowIndex),
				formatConfidence(c.Confidence),
				c.Preview,
			})
		}
		fmt.Fprintln(out, renderTable(
			[]string{"Row", "Confidence", "Preview"},
			rows,
			[]columnAlignment{alignRight, alignRight, alignLeft},
		))
	}

	if result.EncodingFallback {
		fmt.Fprintf(out, "Note:     dataset decoded as %s (encoding fallback)\n", result.Encoding)
	}
	return nil
}
