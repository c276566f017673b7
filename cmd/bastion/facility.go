package main

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/AzureCamel/Bastion-Manager/internal/domain/entities"
	"github.com/AzureCamel/Bastion-Manager/internal/domain/services"
)

func newFacilityCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "facility",
		Short: "Manage bastion facilities",
	}

	cmd.AddCommand(
		newFacilityAddCmd(),
		newFacilityRemoveCmd(),
		newFacilityListCmd(),
		newFacilityRenameCmd(),
		newFacilityResizeCmd(),
		newFacilityOrderCmd(),
		newFacilityProgressCmd(),
	)

	return cmd
}

func newFacilityAddCmd() *cobra.Command {
	var (
		name string
		size string
		free bool
	)

	cmd := &cobra.Command{
		Use:   "add ACTOR BLUEPRINT",
		Short: "Build a facility from a blueprint",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFacilityAdd(cmd, args[0], args[1], services.AddOptions{
				Name: name,
				Size: entities.FacilitySize(size),
				Free: free,
			})
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "Display name (defaults to the blueprint name)")
	cmd.Flags().StringVarP(&size, "size", "s", "", "Facility size (cramped, roomy, vast)")
	cmd.Flags().BoolVar(&free, "free", false, "GM-granted: skips level and slot checks, consumes no special slot")

	return cmd
}

func runFacilityAdd(cmd *cobra.Command, actorName, blueprintName string, opts services.AddOptions) error {
	ctx := cmd.Context()

	return withDeps(func(d *Deps) error {
		facility, err := d.Facilities.HandleAdd(ctx, globalWorld, actorName, blueprintName, opts)
		if err != nil {
			return fmt.Errorf("adding facility: %w", err)
		}

		if facility.UnderConstruction {
			fmt.Printf("Building %q for %s: %d days until complete\n", facility.Name, actorName, facility.BuildDaysLeft)
		} else {
			fmt.Printf("Added %q to %s's bastion\n", facility.Name, actorName)
		}
		return nil
	})
}

func newFacilityRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove ACTOR FACILITY",
		Short: "Demolish a facility",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFacilityRemove(cmd, args[0], args[1])
		},
	}
}

func runFacilityRemove(cmd *cobra.Command, actorName, facilityName string) error {
	ctx := cmd.Context()

	return withDeps(func(d *Deps) error {
		if err := d.Facilities.HandleRemove(ctx, globalWorld, actorName, facilityName); err != nil {
			return fmt.Errorf("removing facility: %w", err)
		}

		fmt.Printf("Removed %q from %s's bastion\n", facilityName, actorName)
		return nil
	})
}

func newFacilityListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list ACTOR",
		Short: "List an actor's facilities",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFacilityList(cmd, args[0])
		},
	}
}

func runFacilityList(cmd *cobra.Command, actorName string) error {
	ctx := cmd.Context()

	return withDeps(func(d *Deps) error {
		facilities, err := d.Facilities.HandleList(ctx, globalWorld, actorName)
		if err != nil {
			return fmt.Errorf("listing facilities: %w", err)
		}

		if len(facilities) == 0 {
			fmt.Println("No facilities built.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tCATEGORY\tSIZE\tSTATUS")
		for _, f := range facilities {
			status := "idle"
			switch {
			case f.UnderConstruction:
				status = fmt.Sprintf("building (%dd left)", f.BuildDaysLeft)
			case f.Order != "":
				status = fmt.Sprintf("%s (%dd left)", f.Order, f.OrderDaysLeft)
			}
			if f.Free {
				status += " [free]"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", f.Name, f.Category, f.Size, status)
		}
		w.Flush()

		return nil
	})
}

func newFacilityRenameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rename ACTOR FACILITY NEW_NAME",
		Short: "Rename a facility",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFacilityRename(cmd, args[0], args[1], args[2])
		},
	}
}

func runFacilityRename(cmd *cobra.Command, actorName, facilityName, newName string) error {
	ctx := cmd.Context()

	return withDeps(func(d *Deps) error {
		if err := d.Facilities.HandleRename(ctx, globalWorld, actorName, facilityName, newName); err != nil {
			return fmt.Errorf("renaming facility: %w", err)
		}

		fmt.Printf("Renamed %q to %q\n", facilityName, newName)
		return nil
	})
}

func newFacilityResizeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resize ACTOR FACILITY SIZE",
		Short: "Resize a facility",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !entities.ValidFacilitySize(args[2]) {
				return fmt.Errorf("invalid size %q (cramped, roomy, vast)", args[2])
			}
			return runFacilityResize(cmd, args[0], args[1], entities.FacilitySize(args[2]))
		},
	}
}

func runFacilityResize(cmd *cobra.Command, actorName, facilityName string, size entities.FacilitySize) error {
	ctx := cmd.Context()

	return withDeps(func(d *Deps) error {
		if err := d.Facilities.HandleResize(ctx, globalWorld, actorName, facilityName, size); err != nil {
			return fmt.Errorf("resizing facility: %w", err)
		}

		fmt.Printf("Resized %q to %s\n", facilityName, size)
		return nil
	})
}

func newFacilityOrderCmd() *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "order ACTOR FACILITY ORDER",
		Short: "Issue an order to a facility",
		Long:  "Issues an order (craft, empower, harvest, maintain, recruit, research, trade, repair) to an idle facility.",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFacilityOrder(cmd, args[0], args[1], args[2], days)
		},
	}

	cmd.Flags().IntVarP(&days, "days", "d", 7, "Days until the order completes")

	return cmd
}

func runFacilityOrder(cmd *cobra.Command, actorName, facilityName, order string, days int) error {
	ctx := cmd.Context()

	return withDeps(func(d *Deps) error {
		err := d.Facilities.HandleSetOrder(ctx, globalWorld, actorName, facilityName, entities.OrderType(order), days)
		if err != nil {
			return fmt.Errorf("setting order: %w", err)
		}

		fmt.Printf("%s's %s started a %s order (%d days)\n", actorName, facilityName, order, days)
		return nil
	})
}

func newFacilityProgressCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "progress ACTOR DAYS",
		Short: "Advance construction and orders",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			days, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid day count %q", args[1])
			}
			return runFacilityProgress(cmd, args[0], days)
		},
	}
}

func runFacilityProgress(cmd *cobra.Command, actorName string, days int) error {
	ctx := cmd.Context()

	return withDeps(func(d *Deps) error {
		completions, err := d.Facilities.HandleProgress(ctx, globalWorld, actorName, days)
		if err != nil {
			return fmt.Errorf("advancing progress: %w", err)
		}

		if len(completions) == 0 {
			fmt.Printf("Advanced %d days; nothing completed\n", days)
			return nil
		}

		for _, c := range completions {
			if c.Order == entities.OrderBuild {
				fmt.Printf("%s finished construction\n", c.Facility.Name)
			} else {
				fmt.Printf("%s completed its %s order\n", c.Facility.Name, c.Order)
			}
		}

		return nil
	})
}
