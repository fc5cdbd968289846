package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/calebward/fueltally/internal/cli"
	"github.com/calebward/fueltally/internal/model"
)

func equipmentCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "equipment",
		Short: "List the equipment catalog",
		Long:  `Display every known equipment type grouped by category.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Println(cli.FormatTitle("Equipment Catalog"))

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()

			var lastCategory string
			for _, eq := range model.Catalog() {
				if eq.Category != lastCategory {
					fmt.Fprintf(w, "%s\t\n", cli.FormatInfo(eq.Category))
					lastCategory = eq.Category
				}
				fmt.Fprintf(w, "  %s\t\n", eq.Name)
			}
			return nil
		},
	}
}
