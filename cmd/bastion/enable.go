package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newEnableCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "enable ACTOR",
		Short: "Show a bastion on the overview grid",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSetEnabled(cmd, args[0], true)
		},
	}
}

func newDisableCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "disable ACTOR",
		Short: "Hide a bastion from the overview grid",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSetEnabled(cmd, args[0], false)
		},
	}
}

func runSetEnabled(cmd *cobra.Command, actorName string, enabled bool) error {
	ctx := cmd.Context()

	return withDeps(func(d *Deps) error {
		if err := d.Settings.HandleSetEnabled(ctx, globalWorld, actorName, enabled); err != nil {
			return fmt.Errorf("updating enabled flag: %w", err)
		}

		if enabled {
			fmt.Printf("Enabled %s's bastion\n", actorName)
		} else {
			fmt.Printf("Disabled %s's bastion\n", actorName)
		}
		return nil
	})
}
