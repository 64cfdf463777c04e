package main

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"slatelink/internal/linkstore"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var imageFlag string
	var limitFlag int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show previously recorded links",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			store, err := linkstore.Open(cfg.Paths.StateDir)
			if err != nil {
				return err
			}
			defer store.Close()

			var links []linkstore.Link
			if imageFlag != "" {
				links, err = store.ForImage(cmd.Context(), imageFlag)
			} else {
				links, err = store.List(cmd.Context(), limitFlag)
			}
			if err != nil {
				return err
			}

			if ctx.jsonOutput() {
				return writeJSON(cmd, links)
			}

			out := cmd.OutOrStdout()
			if len(links) == 0 {
				fmt.Fprintln(out, "No links recorded")
				return nil
			}
			rows := make([][]string, 0, len(links))
			for _, link := range links {
				rows = append(rows, []string{
					link.CreatedAt.Local().Format(time.DateTime),
					filepath.Base(link.ImagePath),
					fmt.Sprint(link.RowIndex),
					link.MatchKind,
					formatConfidence(link.Confidence),
					link.OrderSource,
					filepath.Base(link.SidecarPath),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"When", "Image", "Row", "Match", "Confidence", "Order", "Sidecar"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignRight, alignLeft, alignRight, alignLeft, alignLeft},
			))
			return nil
		},
	}

	cmd.Flags().StringVar(&imageFlag, "image", "", "Only links for this image path")
	cmd.Flags().IntVar(&limitFlag, "limit", 20, "Maximum links to show (0 for all)")
	return cmd
}
