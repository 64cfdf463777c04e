package main

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"slatelink/internal/audit"
	"slatelink/internal/hashutil"
	"slatelink/internal/linkstore"
	"slatelink/internal/match"
	"slatelink/internal/sidecar"
)

func newLinkCommand(ctx *commandContext) *cobra.Command {
	var csvFlag string
	var presetFlag string
	var rowFlag int
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "link <image>...",
		Short: "Match images, resolve layout, and write XMP sidecars",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			var store *linkstore.Store
			var auditLog *audit.Logger
			if !dryRun {
				store, err = linkstore.Open(cfg.Paths.StateDir)
				if err != nil {
					return err
				}
				defer store.Close()

				auditLog, err = audit.New(cfg.Paths.AuditDir, cfg.Audit.Enabled)
				if err != nil {
					return err
				}
				defer auditLog.Close()
			}

			hashes := hashutil.NewCache()
			writer := sidecar.NewWriter(cfg.Export.Mode, cfg.Export.SuffixPattern)

			out := cmd.OutOrStdout()
			linked, skipped := 0, 0
			for _, imagePath := range args {
				result, err := loadDataset(imagePath, csvFlag)
				if err != nil {
					return fmt.Errorf("%s: %w", imagePath, err)
				}

				res, err := resolveForImage(ctx, cfg, logger, imagePath, presetFlag, result)
				if err != nil {
					return fmt.Errorf("%s: %w", imagePath, err)
				}

				rowIndex := res.Outcome.RowIndex()
				if rowFlag >= 0 && len(args) == 1 {
					// Explicit disambiguation for a single image.
					if rowFlag >= len(result.Table.Rows) {
						return fmt.Errorf("--row %d out of range (%d rows)", rowFlag, len(result.Table.Rows))
					}
					rowIndex = rowFlag
				} else if res.Outcome.Exact.Kind == match.Ambiguous {
					fmt.Fprintf(out, "%s: ambiguous rows %s; rerun with --row to pick one\n",
						filepath.Base(imagePath), formatIndices(res.Outcome.Exact.Indices))
					skipped++
					continue
				}
				if rowIndex < 0 {
					fmt.Fprintf(out, "%s: no match\n", filepath.Base(imagePath))
					skipped++
					continue
				}

				if dryRun {
					fmt.Fprintf(out, "%s: would link row %d (%s)\n",
						filepath.Base(imagePath), rowIndex, res.Precedence.StatusLine())
					linked++
					continue
				}

				imageSHA, err := hashes.SHA256(imagePath)
				if err != nil {
					return err
				}
				csvSHA, err := hashes.SHA256(result.Path)
				if err != nil {
					return err
				}

				doc := sidecar.Document{
					ImagePath:      imagePath,
					CSVName:        filepath.Base(result.Path),
					Row:            result.Table.Rows[rowIndex],
					SelectedFields: res.SelectedFields,
					FieldOrder:     res.Spec.FieldOrder,
					Positions:      res.Spec.Positions,
					JoinKey:        res.Outcome.JoinKey,
					ImageSHA256:    imageSHA,
					CSVSHA256:      csvSHA,
				}
				sidecarPath, err := writer.Write(doc)
				if errors.Is(err, sidecar.ErrExists) {
					fmt.Fprintf(out, "%s: sidecar exists, skipped (export mode %q)\n",
						filepath.Base(imagePath), cfg.Export.Mode)
					skipped++
					continue
				}
				if err != nil {
					return fmt.Errorf("%s: %w", imagePath, err)
				}

				if _, err := store.Record(cmd.Context(), linkstore.Link{
					ImagePath:      imagePath,
					CSVPath:        result.Path,
					RowIndex:       rowIndex,
					MatchKind:      res.Outcome.Kind(),
					MatchKey:       res.Outcome.JoinKey,
					Confidence:     res.Outcome.Confidence(),
					OrderSource:    string(res.Precedence.OrderSource),
					PositionSource: string(res.Precedence.PositionSource),
					SidecarPath:    sidecarPath,
					ImageSHA256:    imageSHA,
					CSVSHA256:      csvSHA,
				}); err != nil {
					return err
				}

				if err := auditLog.LogExport(imagePath, result.Path, res.SelectedFields,
					imageSHA, csvSHA, res.Outcome.JoinKey, string(res.Precedence.OrderSource)); err != nil {
					logger.Warn("audit write failed", "error", err)
				}

				fmt.Fprintf(out, "%s: linked row %d -> %s\n",
					filepath.Base(imagePath), rowIndex, sidecarPath)
				linked++
			}

			if !dryRun && auditLog != nil && len(args) > 1 {
				if err := auditLog.LogBatch(linked, presetFlag); err != nil {
					logger.Warn("audit write failed", "error", err)
				}
			}

			fmt.Fprintf(out, "Done: %d linked, %d skipped\n", linked, skipped)
			return nil
		},
	}

	cmd.Flags().StringVar(&csvFlag, "csv", "", "Dataset path (default: discovered next to each image)")
	cmd.Flags().StringVar(&presetFlag, "preset", "", "Preset to apply")
	cmd.Flags().IntVar(&rowFlag, "row", -1, "Row index to use, for disambiguation (single image only)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Report what would happen without writing")
	return cmd
}
