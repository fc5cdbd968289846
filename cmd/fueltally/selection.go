package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/calebward/fueltally/internal/cli"
	"github.com/calebward/fueltally/internal/estimate"
	"github.com/calebward/fueltally/internal/model"
	"github.com/calebward/fueltally/internal/storage"
)

func addCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <equipment name>",
		Short: "Add equipment to the current selection",
		Long: `Add a catalog equipment type to the working selection. Adding a type
already present increments its quantity instead of creating a duplicate line.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			name := strings.Join(args, " ")

			eq, ok := model.FindEquipment(name)
			if !ok {
				return fmt.Errorf("unknown equipment %q; run 'fueltally equipment' to list the catalog", name)
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
			item := sel.Add(eq)
			if err := store.SaveSelection(ctx, sel.Items); err != nil {
				return fmt.Errorf("failed to save selection: %w", err)
			}

			addLog(ctx, store, model.LogInfo, fmt.Sprintf("Added %s (qty %d)", item.Name, item.Quantity))
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("✓ %s added (quantity now %d)", item.Name, item.Quantity)))
			return nil
		},
	}
}

func updateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "update <item id> <quantity|hours|idle-hours> <value>",
		Short: "Update a selection line item",
		Long: `Change quantity, hours, or idle hours on one line item. Negative values
are clamped to zero. Any change discards the item's previous fuel estimate.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			field, err := parseField(args[1])
			if err != nil {
				return err
			}
			value, err := strconv.ParseFloat(args[2], 64)
			if err != nil {
				return fmt.Errorf("invalid value %q: %w", args[2], err)
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
			if err := sel.Update(args[0], field, value); err != nil {
				return fmt.Errorf("failed to update item %s: %w", args[0], err)
			}
			if err := store.SaveSelection(ctx, sel.Items); err != nil {
				return fmt.Errorf("failed to save selection: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("✓ Updated %s %s to %s", args[0], field, args[2])))
			return nil
		},
	}
}

func removeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <item id>",
		Short: "Remove a line item from the selection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
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
			if err := sel.Remove(args[0]); err != nil {
				return fmt.Errorf("failed to remove item %s: %w", args[0], err)
			}
			if err := store.SaveSelection(ctx, sel.Items); err != nil {
				return fmt.Errorf("failed to save selection: %w", err)
			}

			fmt.Println(cli.FormatSuccess("✓ Item removed"))
			return nil
		},
	}
}

func showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the current selection",
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
			if len(sel.Items) == 0 {
				fmt.Println(cli.FormatInfo("Selection is empty. Use 'fueltally add' or 'fueltally import' to build one."))
				return nil
			}

			roundName, _ := store.GetState(ctx, storage.StateRoundName)
			title := "Current Selection"
			if roundName != "" {
				title = fmt.Sprintf("Current Selection: %s", roundName)
			}
			fmt.Println(cli.FormatTitle(title))

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tEquipment\tCategory\tQty\tHours\tIdle\tFuel (L)")
			for _, item := range sel.Items {
				fuel := "-"
				if item.Estimated() {
					fuel = fmt.Sprintf("%.2f", *item.FuelPerUnit*float64(item.Quantity))
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%.1f\t%.1f\t%s\n",
					shortID(item.ID), item.Name, item.Category,
					item.Quantity, item.Hours, item.IdleHours, fuel)
			}
			w.Flush()

			if sel.Estimated() {
				total := estimate.AggregateRoundTotal(sel.Items)
				fmt.Println(cli.FormatSuccess(fmt.Sprintf("Total fuel: %.2f L", total)))
				if just, _ := store.GetState(ctx, storage.StateJustification); just != "" {
					fmt.Println(cli.FormatSubtle("AI: " + just))
				}
			} else {
				fmt.Println(cli.FormatSubtle("Run 'fueltally estimate' to calculate fuel."))
			}
			return nil
		},
	}
}

func clearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Clear the current selection",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.ClearSelection(ctx); err != nil {
				return fmt.Errorf("failed to clear selection: %w", err)
			}
			if err := store.ClearState(ctx); err != nil {
				return fmt.Errorf("failed to clear session state: %w", err)
			}

			addLog(ctx, store, model.LogInfo, "Selection cleared")
			fmt.Println(cli.FormatSuccess("✓ Selection cleared"))
			return nil
		},
	}
}

func loadSelection(ctx context.Context, store *storage.Store) (*model.Selection, error) {
	items, err := store.GetSelection(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load selection: %w", err)
	}
	return &model.Selection{Items: items}, nil
}

func parseField(s string) (model.Field, error) {
	switch strings.ToLower(s) {
	case "quantity", "qty":
		return model.FieldQuantity, nil
	case "hours":
		return model.FieldHours, nil
	case "idle-hours", "idle":
		return model.FieldIdleHours, nil
	default:
		return "", fmt.Errorf("unknown field %q: expected quantity, hours, or idle-hours", s)
	}
}

// shortID trims a UUID to its first segment for display.
func shortID(id string) string {
	if i := strings.IndexByte(id, '-'); i > 0 {
		return id[:i]
	}
	return id
}
