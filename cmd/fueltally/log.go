package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/calebward/fueltally/internal/cli"
	"github.com/calebward/fueltally/internal/model"
)

func logCmd() *cobra.Command {
	var clearFlag bool

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Show the activity log",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			if clearFlag {
				if err := store.ClearLog(ctx); err != nil {
					return fmt.Errorf("failed to clear activity log: %w", err)
				}
				fmt.Println(cli.FormatSuccess("✓ Activity log cleared"))
				return nil
			}

			entries, err := store.GetLog(ctx)
			if err != nil {
				return fmt.Errorf("failed to load activity log: %w", err)
			}
			if len(entries) == 0 {
				fmt.Println(cli.FormatInfo("Activity log is empty."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()
			for _, e := range entries {
				level := string(e.Level)
				switch e.Level {
				case model.LogSuccess:
					level = cli.FormatSuccess(level)
				case model.LogError:
					level = cli.FormatError(level)
				case model.LogAI:
					level = cli.FormatInfo(level)
				}
				fmt.Fprintf(w, "%s\t%s\t%s\n", e.Timestamp.Format("2006-01-02 15:04:05"), level, e.Message)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&clearFlag, "clear", false, "clear the activity log")
	return cmd
}
