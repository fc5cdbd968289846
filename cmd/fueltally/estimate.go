package main

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/calebward/fueltally/internal/classify"
	"github.com/calebward/fueltally/internal/cli"
	"github.com/calebward/fueltally/internal/common"
	"github.com/calebward/fueltally/internal/estimate"
	"github.com/calebward/fueltally/internal/model"
	"github.com/calebward/fueltally/internal/storage"
)

func estimateCmd() *cobra.Command {
	var fromFlag, toFlag string

	cmd := &cobra.Command{
		Use:   "estimate",
		Short: "Calculate fuel for the current selection",
		Long: `Classify every equipment type in the selection into a consumption tier
and compute per-item and total fuel for the given usage period.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			period, err := parsePeriod(fromFlag, toFlag)
			if err != nil {
				return err
			}

			store, err := openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			sel, err := loadSelection(ctx, store)
			if err != nil {
				return err
			}

			client, err := newLLMClient()
			if err != nil {
				return err
			}

			orch := classify.NewOrchestrator(client, slog.Default())
			addLog(ctx, store, model.LogInfo, fmt.Sprintf("Estimating fuel for %d line items", len(sel.Items)))

			result, err := orch.Estimate(ctx, sel.Items, period)
			if err != nil {
				addLog(ctx, store, model.LogError, fmt.Sprintf("Estimate failed: %v", err))
				if errors.Is(err, common.ErrEmptySelection) {
					return common.NewUserError("selection is empty; use 'fueltally add' or 'fueltally import' first", err)
				}
				return fmt.Errorf("failed to estimate fuel: %w", err)
			}

			sel.Items = result.Items
			if err := store.SaveSelection(ctx, sel.Items); err != nil {
				return fmt.Errorf("failed to save selection: %w", err)
			}
			if err := store.SetState(ctx, storage.StateJustification, result.Justification); err != nil {
				return fmt.Errorf("failed to save session state: %w", err)
			}
			if err := store.SetState(ctx, storage.StatePeriodFrom, period.From.Format(time.RFC3339)); err != nil {
				return fmt.Errorf("failed to save session state: %w", err)
			}
			if err := store.SetState(ctx, storage.StatePeriodTo, period.To.Format(time.RFC3339)); err != nil {
				return fmt.Errorf("failed to save session state: %w", err)
			}

			addLog(ctx, store, model.LogAI, "Classification prompt:\n"+result.Prompt)
			addLog(ctx, store, model.LogAI, "Classifier justification: "+result.Justification)
			total := estimate.AggregateRoundTotal(sel.Items)
			addLog(ctx, store, model.LogSuccess, fmt.Sprintf("Estimated %.2f L across %d line items", total, len(sel.Items)))

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("✓ Total fuel: %.2f L", total)))
			fmt.Println(cli.FormatSubtle("AI: " + result.Justification))
			for _, src := range result.Sources {
				fmt.Println(cli.FormatSubtle(fmt.Sprintf("  source: %s (%s)", src.Title, src.URI)))
			}
			fmt.Println(cli.FormatInfo("Run 'fueltally show' for the per-item breakdown, or 'fueltally record' to save this round."))
			return nil
		},
	}

	cmd.Flags().StringVar(&fromFlag, "from", "", "period start date (2006-01-02)")
	cmd.Flags().StringVar(&toFlag, "to", "", "period end date (2006-01-02)")
	return cmd
}
