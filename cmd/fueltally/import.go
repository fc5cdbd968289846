package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/calebward/fueltally/internal/cli"
	"github.com/calebward/fueltally/internal/importer"
	"github.com/calebward/fueltally/internal/model"
	"github.com/calebward/fueltally/internal/storage"
	"github.com/calebward/fueltally/internal/tabio"
)

func importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.xlsx>",
		Short: "Import a usage spreadsheet into the selection",
		Long: `Parse a spreadsheet of free-form usage rows, normalize them against the
equipment catalog, and replace the current selection with the result.
Rows that match no known equipment are dropped.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			rows, err := tabio.ParseWorkbook(args[0])
			if err != nil {
				return fmt.Errorf("failed to parse workbook: %w", err)
			}

			store, err := openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			client, err := newLLMClient()
			if err != nil {
				return err
			}

			addLog(ctx, store, model.LogInfo, fmt.Sprintf("Importing %d rows from %s", len(rows), args[0]))

			totalBatches := (len(rows) + importer.BatchSize - 1) / importer.BatchSize
			bar := progressbar.NewOptions(totalBatches,
				progressbar.OptionSetWriter(os.Stderr),
				progressbar.OptionEnableColorCodes(true),
				progressbar.OptionShowCount(),
				progressbar.OptionSetWidth(40),
				progressbar.OptionSetDescription("[cyan][bold]Normalizing rows...[reset]"),
			)

			norm := importer.NewNormalizer(client, slog.Default())
			norm.OnBatch = func(completed, _ int) {
				if err := bar.Set(completed); err != nil {
					slog.Debug("progress bar update failed", "error", err)
				}
			}

			result, err := norm.Normalize(ctx, rows)
			if err != nil {
				addLog(ctx, store, model.LogError, fmt.Sprintf("Import failed: %v", err))
				return fmt.Errorf("failed to normalize rows: %w", err)
			}
			fmt.Fprintln(os.Stderr)

			// Each recognized row becomes its own quantity-1 line item so
			// per-row hours survive the import.
			items := make([]model.LineItem, 0, len(result.Rows))
			for _, row := range result.Rows {
				item := model.NewLineItem(model.Equipment{Name: row.Name, Category: row.Category})
				item.Hours = row.Hours
				item.IdleHours = row.IdleHours
				items = append(items, item)
			}
			if err := store.ClearSelection(ctx); err != nil {
				return fmt.Errorf("failed to clear selection: %w", err)
			}
			if err := store.ClearState(ctx); err != nil {
				return fmt.Errorf("failed to clear session state: %w", err)
			}
			if err := store.SaveSelection(ctx, items); err != nil {
				return fmt.Errorf("failed to save selection: %w", err)
			}
			if result.RoundNameCandidate != "" {
				if err := store.SetState(ctx, storage.StateRoundName, result.RoundNameCandidate); err != nil {
					return fmt.Errorf("failed to save session state: %w", err)
				}
			}

			dropped := result.TotalRows - len(result.Rows)
			addLog(ctx, store, model.LogSuccess,
				fmt.Sprintf("Imported %d of %d rows into %d line items", len(result.Rows), result.TotalRows, len(items)))

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("✓ Imported %d rows into %d line items", len(result.Rows), len(items))))
			if dropped > 0 {
				fmt.Println(cli.FormatInfo(fmt.Sprintf("%d rows matched no known equipment and were dropped", dropped)))
			}
			if result.RoundNameCandidate != "" {
				fmt.Println(cli.FormatSubtle("Suggested round name: " + result.RoundNameCandidate))
			}
			fmt.Println(cli.FormatInfo("Run 'fueltally estimate' to calculate fuel."))
			return nil
		},
	}
}
