package main

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/calebward/fueltally/internal/cli"
	"github.com/calebward/fueltally/internal/estimate"
	"github.com/calebward/fueltally/internal/model"
	"github.com/calebward/fueltally/internal/storage"
)

func recordCmd() *cobra.Command {
	var nameFlag string

	cmd := &cobra.Command{
		Use:   "record",
		Short: "Record the estimated selection as a round",
		Long: `Snapshot the current selection and its total fuel as an immutable round,
then clear the selection for the next period.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			sel, err := loadSelection(ctx, store)
			if err != nil {
				return err
			}
			total := estimate.AggregateRoundTotal(sel.Items)
			if total <= 0 {
				return fmt.Errorf("nothing to record: run 'fueltally estimate' first")
			}

			name := nameFlag
			if name == "" {
				name, _ = store.GetState(ctx, storage.StateRoundName)
			}
			if name == "" {
				name = fmt.Sprintf("Round %s", time.Now().Format("2006-01-02"))
			}

			justification, _ := store.GetState(ctx, storage.StateJustification)
			period := loadPeriodState(ctx, store)

			round := model.Round{
				ID:              "R-" + shortID(uuid.NewString()),
				Name:            name,
				Period:          period,
				Items:           sel.Snapshot(),
				TotalFuel:       total,
				Timestamp:       time.Now(),
				AIJustification: justification,
			}
			if err := store.SaveRound(ctx, round); err != nil {
				return fmt.Errorf("failed to save round: %w", err)
			}
			if err := store.ClearSelection(ctx); err != nil {
				return fmt.Errorf("failed to clear selection: %w", err)
			}
			if err := store.ClearState(ctx); err != nil {
				return fmt.Errorf("failed to clear session state: %w", err)
			}

			addLog(ctx, store, model.LogSuccess, fmt.Sprintf("Recorded round %s (%s): %.2f L", round.ID, round.Name, round.TotalFuel))
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("✓ Recorded %s as %s: %.2f L", round.Name, round.ID, round.TotalFuel)))
			return nil
		},
	}

	cmd.Flags().StringVar(&nameFlag, "name", "", "round name (defaults to the imported candidate or today's date)")
	return cmd
}

func loadPeriodState(ctx context.Context, store *storage.Store) model.Period {
	var p model.Period
	if from, _ := store.GetState(ctx, storage.StatePeriodFrom); from != "" {
		p.From, _ = time.Parse(time.RFC3339, from)
	}
	if to, _ := store.GetState(ctx, storage.StatePeriodTo); to != "" {
		p.To, _ = time.Parse(time.RFC3339, to)
	}
	return p
}
