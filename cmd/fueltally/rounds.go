package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/calebward/fueltally/internal/cli"
	"github.com/calebward/fueltally/internal/report"
)

func roundsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rounds",
		Short: "List recorded rounds and fuel totals",
		Long: `Display all recorded rounds, newest first, with the running grand total
and a per-category fuel breakdown.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			rounds, err := store.GetRounds(ctx)
			if err != nil {
				return fmt.Errorf("failed to load rounds: %w", err)
			}
			if len(rounds) == 0 {
				fmt.Println(cli.FormatInfo("No rounds recorded yet. Use 'fueltally record' after an estimate."))
				return nil
			}

			fmt.Println(cli.FormatTitle("Recorded Rounds"))
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tName\tRecorded\tItems\tFuel (L)")
			for _, r := range rounds {
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%.2f\n",
					r.ID, r.Name, r.Timestamp.Format("2006-01-02 15:04"), len(r.Items), r.TotalFuel)
			}
			w.Flush()

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Grand total: %.2f L across %d rounds", report.GrandTotal(rounds), len(rounds))))

			fmt.Println(cli.FormatInfo("Fuel by category:"))
			cw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			for _, ct := range report.FuelByCategory(rounds) {
				fmt.Fprintf(cw, "  %s\t%.2f\n", ct.Category, ct.TotalFuel)
			}
			cw.Flush()

			fmt.Println(cli.FormatInfo("Fuel over time:"))
			tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			for _, tp := range report.FuelOverTime(rounds) {
				fmt.Fprintf(tw, "  %s\t%.2f\n", tp.Label, tp.TotalFuel)
			}
			tw.Flush()
			return nil
		},
	}

	cmd.AddCommand(deleteRoundCmd())
	return cmd
}

func deleteRoundCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <round id>",
		Short: "Delete a recorded round",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.DeleteRound(ctx, args[0]); err != nil {
				return fmt.Errorf("failed to delete round %s: %w", args[0], err)
			}
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("✓ Round %s deleted", args[0])))
			return nil
		},
	}
}
