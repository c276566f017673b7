package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/AzureCamel/Bastion-Manager/internal/domain/entities"
)

func newOccupantCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "occupant",
		Short: "Manage facility occupants",
	}

	cmd.AddCommand(
		newOccupantAssignCmd(),
		newOccupantDismissCmd(),
		newOccupantListCmd(),
	)

	return cmd
}

func newOccupantAssignCmd() *cobra.Command {
	var (
		kind        string
		creatureRef string
		name        string
	)

	cmd := &cobra.Command{
		Use:   "assign ACTOR FACILITY",
		Short: "Station a creature in a facility",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOccupantAssign(cmd, args[0], args[1], kind, creatureRef, name)
		},
	}

	cmd.Flags().StringVarP(&kind, "kind", "k", "defender", "Occupant kind (defender, hireling)")
	cmd.Flags().StringVarP(&creatureRef, "ref", "r", "", "Creature reference (generated when empty)")
	cmd.Flags().StringVarP(&name, "name", "n", "", "Occupant name")

	return cmd
}

func runOccupantAssign(cmd *cobra.Command, actorName, facilityName, kind, creatureRef, name string) error {
	if !entities.ValidOccupantKind(kind) {
		return fmt.Errorf("invalid kind %q (valid: defender, hireling)", kind)
	}

	ctx := cmd.Context()

	return withDeps(func(d *Deps) error {
		occupant, err := d.Occupants.HandleAssign(ctx, globalWorld, actorName, facilityName, entities.OccupantKind(kind), creatureRef, name)
		if err != nil {
			return fmt.Errorf("assigning occupant: %w", err)
		}

		fmt.Printf("Assigned %s %q to %s (ref %s)\n", occupant.Kind, occupant.Name, facilityName, occupant.CreatureRef)
		return nil
	})
}

func newOccupantDismissCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dismiss ACTOR FACILITY REF_OR_NAME",
		Short: "Dismiss an occupant",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOccupantDismiss(cmd, args[0], args[1], args[2])
		},
	}
}

func runOccupantDismiss(cmd *cobra.Command, actorName, facilityName, refOrName string) error {
	ctx := cmd.Context()

	return withDeps(func(d *Deps) error {
		if err := d.Occupants.HandleDismiss(ctx, globalWorld, actorName, facilityName, refOrName); err != nil {
			return fmt.Errorf("dismissing occupant: %w", err)
		}

		fmt.Printf("Dismissed %q from %s\n", refOrName, facilityName)
		return nil
	})
}

func newOccupantListCmd() *cobra.Command {
	var (
		facility string
		kind     string
	)

	cmd := &cobra.Command{
		Use:   "list ACTOR",
		Short: "List an actor's occupants",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOccupantList(cmd, args[0], facility, kind)
		},
	}

	cmd.Flags().StringVarP(&facility, "facility", "f", "", "Filter by facility name")
	cmd.Flags().StringVarP(&kind, "kind", "k", "", "Filter by kind (defender, hireling)")

	return cmd
}

func runOccupantList(cmd *cobra.Command, actorName, facility, kind string) error {
	if kind != "" && !entities.ValidOccupantKind(kind) {
		return fmt.Errorf("invalid kind %q (valid: defender, hireling)", kind)
	}

	ctx := cmd.Context()

	return withDeps(func(d *Deps) error {
		occupants, err := d.Occupants.HandleList(ctx, globalWorld, actorName, facility, entities.OccupantKind(kind))
		if err != nil {
			return fmt.Errorf("listing occupants: %w", err)
		}

		if len(occupants) == 0 {
			fmt.Println("No occupants found.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tKIND\tREF")
		for _, o := range occupants {
			fmt.Fprintf(w, "%s\t%s\t%s\n", o.Name, o.Kind, o.CreatureRef)
		}
		w.Flush()

		return nil
	})
}
