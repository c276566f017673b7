package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AzureCamel/Bastion-Manager/internal/domain/entities"
)

func newOverrideCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "override",
		Short: "Manage GM slot overrides",
		Long:  "Grants extra facility slots on top of the advancement schedule. Requires --gm.",
	}

	cmd.AddCommand(
		newOverrideSetCmd(),
		newOverrideClearCmd(),
	)

	return cmd
}

func newOverrideSetCmd() *cobra.Command {
	var (
		basic   int
		special int
	)

	cmd := &cobra.Command{
		Use:   "set ACTOR",
		Short: "Grant extra slots to an actor",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOverrideSet(cmd, args[0], entities.SlotOverride{
				Basic:   basic,
				Special: special,
			})
		},
	}

	cmd.Flags().IntVarP(&basic, "basic", "b", 0, "Extra basic slots")
	cmd.Flags().IntVarP(&special, "special", "s", 0, "Extra special slots")

	return cmd
}

func runOverrideSet(cmd *cobra.Command, actorName string, override entities.SlotOverride) error {
	ctx := cmd.Context()

	return withDeps(func(d *Deps) error {
		if err := d.Settings.HandleSetOverride(ctx, globalWorld, actorName, override, globalGM); err != nil {
			return fmt.Errorf("setting override: %w", err)
		}

		fmt.Printf("Granted %s +%d basic and +%d special slots\n", actorName, override.Basic, override.Special)
		return nil
	})
}

func newOverrideClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear ACTOR",
		Short: "Remove an actor's slot override",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOverrideClear(cmd, args[0])
		},
	}
}

func runOverrideClear(cmd *cobra.Command, actorName string) error {
	ctx := cmd.Context()

	return withDeps(func(d *Deps) error {
		if err := d.Settings.HandleClearOverride(ctx, globalWorld, actorName, globalGM); err != nil {
			return fmt.Errorf("clearing override: %w", err)
		}

		fmt.Printf("Cleared slot override for %s\n", actorName)
		return nil
	})
}
