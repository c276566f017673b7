package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newVisibilityCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "visibility",
		Short: "Manage who can view a bastion",
	}

	cmd.AddCommand(
		newVisibilityShowCmd(),
		newVisibilityPublicCmd(),
		newVisibilityShareCmd(),
		newVisibilityUnshareCmd(),
	)

	return cmd
}

func newVisibilityShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show ACTOR",
		Short: "Show an actor's visibility rule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVisibilityShow(cmd, args[0])
		},
	}
}

func runVisibilityShow(cmd *cobra.Command, actorName string) error {
	ctx := cmd.Context()

	return withDeps(func(d *Deps) error {
		settings, err := d.Settings.HandleShow(ctx, globalWorld, actorName)
		if err != nil {
			return fmt.Errorf("loading visibility: %w", err)
		}

		fmt.Printf("Public:      %v\n", settings.Visibility.Public)
		fmt.Printf("Shared with: %s\n", orDash(strings.Join(settings.Visibility.Users, ", ")))

		return nil
	})
}

func newVisibilityPublicCmd() *cobra.Command {
	var off bool

	cmd := &cobra.Command{
		Use:   "public ACTOR",
		Short: "Make a bastion visible to everyone",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVisibilityPublic(cmd, args[0], !off)
		},
	}

	cmd.Flags().BoolVar(&off, "off", false, "Make the bastion private again")

	return cmd
}

func runVisibilityPublic(cmd *cobra.Command, actorName string, public bool) error {
	ctx := cmd.Context()

	return withDeps(func(d *Deps) error {
		if err := d.Settings.HandleSetPublic(ctx, globalWorld, actorName, public); err != nil {
			return fmt.Errorf("setting visibility: %w", err)
		}

		if public {
			fmt.Printf("%s's bastion is now public\n", actorName)
		} else {
			fmt.Printf("%s's bastion is now private\n", actorName)
		}
		return nil
	})
}

func newVisibilityShareCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "share ACTOR USER",
		Short: "Grant a user view access",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVisibilityShare(cmd, args[0], args[1])
		},
	}
}

func runVisibilityShare(cmd *cobra.Command, actorName, userID string) error {
	ctx := cmd.Context()

	return withDeps(func(d *Deps) error {
		if err := d.Settings.HandleShare(ctx, globalWorld, actorName, userID); err != nil {
			return fmt.Errorf("sharing bastion: %w", err)
		}

		fmt.Printf("Shared %s's bastion with %s\n", actorName, userID)
		return nil
	})
}

func newVisibilityUnshareCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unshare ACTOR USER",
		Short: "Revoke a user's view access",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVisibilityUnshare(cmd, args[0], args[1])
		},
	}
}

func runVisibilityUnshare(cmd *cobra.Command, actorName, userID string) error {
	ctx := cmd.Context()

	return withDeps(func(d *Deps) error {
		if err := d.Settings.HandleUnshare(ctx, globalWorld, actorName, userID); err != nil {
			return fmt.Errorf("unsharing bastion: %w", err)
		}

		fmt.Printf("Revoked %s's access to %s's bastion\n", userID, actorName)
		return nil
	})
}
