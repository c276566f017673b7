package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/AzureCamel/Bastion-Manager/internal/domain/services"
	"github.com/AzureCamel/Bastion-Manager/internal/domain/slots"
)

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show ACTOR",
		Short: "Show one bastion in detail",
		Long:  "Shows an actor's bastion: slot availability per category, facilities and their occupancy arrays.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(cmd, args[0])
		},
	}
}

func runShow(cmd *cobra.Command, actorName string) error {
	ctx := cmd.Context()

	return withDeps(func(d *Deps) error {
		detail, err := d.Bastion.HandleDetail(ctx, globalWorld, actorName, viewer())
		if err != nil {
			return fmt.Errorf("building detail view: %w", err)
		}

		printDetail(detail)
		return nil
	})
}

func printDetail(detail *services.Detail) {
	fmt.Printf("%s (level %d)\n", detail.DisplayName, detail.Actor.Level)
	if detail.Description != "" {
		fmt.Printf("\n%s\n", detail.Description)
	}

	fmt.Printf("\nBasic slots:   %d/%d (%d open)\n", detail.Basic.Value, detail.Basic.Max, len(detail.Basic.Available))
	fmt.Printf("Special slots: %d/%d (%d open)\n", detail.Special.Value, detail.Special.Max, len(detail.Special.Available))

	if len(detail.Facilities) == 0 {
		fmt.Println("\nNo facilities built.")
		return
	}

	for _, view := range detail.Facilities {
		f := view.Facility
		fmt.Printf("\n%s [%s, %s]", f.Name, f.Category, f.Size)
		switch {
		case f.UnderConstruction:
			fmt.Printf(" - under construction, %d days left", f.BuildDaysLeft)
		case f.Order != "":
			fmt.Printf(" - %s order, %d days left", f.Order, f.OrderDaysLeft)
		}
		fmt.Println()

		if f.DefenderCapacity > 0 {
			fmt.Printf("  defenders: %s\n", formatOccupancy(view.Defenders))
		}
		if f.HirelingCapacity > 0 {
			fmt.Printf("  hirelings: %s\n", formatOccupancy(view.Hirelings))
		}
	}
}

// formatOccupancy renders a fixed-capacity occupancy array, one cell
// per slot.
func formatOccupancy(occupancy []slots.OccupancySlot) string {
	cells := make([]string, 0, len(occupancy))
	for _, slot := range occupancy {
		switch {
		case slot.Empty:
			cells = append(cells, "[empty]")
		case slot.Occupant != nil && slot.Occupant.Name != "":
			cells = append(cells, "["+slot.Occupant.Name+"]")
		default:
			cells = append(cells, "["+slot.Ref+"]")
		}
	}
	return strings.Join(cells, " ")
}
