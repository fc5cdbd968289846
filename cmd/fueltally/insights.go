package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/calebward/fueltally/internal/cli"
	"github.com/calebward/fueltally/internal/insights"
	"github.com/calebward/fueltally/internal/model"
)

func insightsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "insights",
		Short: "Generate an AI analysis of recorded rounds",
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

			client, err := newLLMClient()
			if err != nil {
				return err
			}

			analyzer := insights.NewAnalyzer(client, slog.Default())
			text, err := analyzer.Analyze(ctx, rounds)
			if err != nil {
				addLog(ctx, store, model.LogError, fmt.Sprintf("Insights failed: %v", err))
				return fmt.Errorf("failed to generate insights: %w", err)
			}

			addLog(ctx, store, model.LogAI, "Generated fleet insights")
			fmt.Println(cli.FormatTitle("Fleet Insights"))
			fmt.Println(text)
			return nil
		},
	}
}
