package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/calebward/fueltally/internal/cli"
	"github.com/calebward/fueltally/internal/common"
	"github.com/calebward/fueltally/internal/model"
	"github.com/calebward/fueltally/internal/report"
	"github.com/calebward/fueltally/internal/tabio"
)

func exportCmd() *cobra.Command {
	var formatFlag, outFlag string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export recorded rounds to a file",
		Long: `Write every recorded round to a spreadsheet (one row per line item plus
a total-fuel summary row) or to a styled HTML report.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			if outFlag == "" {
				return fmt.Errorf("--out is required")
			}

			store, err := openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			rounds, err := store.GetRounds(ctx)
			if err != nil {
				return fmt.Errorf("failed to load rounds: %w", err)
			}

			switch formatFlag {
			case "xlsx":
				rows, err := report.ToTabularRows(rounds)
				if err != nil {
					return exportError(err)
				}
				if err := tabio.WriteTable(report.TableHeaders, rows, "Fuel Rounds", outFlag); err != nil {
					return fmt.Errorf("failed to write workbook: %w", err)
				}
			case "html":
				markup, err := report.ToDocument(rounds)
				if err != nil {
					return exportError(err)
				}
				if err := tabio.WriteDocument(markup, outFlag); err != nil {
					return fmt.Errorf("failed to write report: %w", err)
				}
			default:
				return fmt.Errorf("unknown format %q: expected xlsx or html", formatFlag)
			}

			addLog(ctx, store, model.LogSuccess, fmt.Sprintf("Exported %d rounds to %s (%s)", len(rounds), outFlag, formatFlag))
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("✓ Exported %d rounds to %s", len(rounds), outFlag)))
			return nil
		},
	}

	cmd.Flags().StringVar(&formatFlag, "format", "xlsx", "export format: xlsx or html")
	cmd.Flags().StringVar(&outFlag, "out", "", "output file path")
	return cmd
}

func exportError(err error) error {
	if errors.Is(err, common.ErrNothingToExport) {
		return common.NewUserError("no rounds recorded yet; record a round before exporting", err)
	}
	return fmt.Errorf("failed to build export: %w", err)
}
