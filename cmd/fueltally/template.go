package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/calebward/fueltally/internal/cli"
	"github.com/calebward/fueltally/internal/tabio"
)

func templateCmd() *cobra.Command {
	var outFlag string

	cmd := &cobra.Command{
		Use:   "template",
		Short: "Write an import template workbook",
		Long:  `Write an example spreadsheet with instructions and sample usage rows, ready to fill in and import.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := tabio.WriteTemplate(outFlag); err != nil {
				return fmt.Errorf("failed to write template: %w", err)
			}
			fmt.Println(cli.FormatSuccess("✓ Template written to " + outFlag))
			return nil
		},
	}

	cmd.Flags().StringVar(&outFlag, "out", "fueltally-template.xlsx", "output file path")
	return cmd
}
