package main

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newActorCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "actor",
		Short: "Manage the actor roster",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runActorList(cmd, DefaultListLimit, 0)
		},
	}

	cmd.AddCommand(
		newActorAddCmd(),
		newActorRemoveCmd(),
		newActorListCmd(),
		newActorLevelCmd(),
	)

	return cmd
}

func newActorAddCmd() *cobra.Command {
	var (
		level int
		owner string
	)

	cmd := &cobra.Command{
		Use:   "add NAME",
		Short: "Register a new actor",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runActorAdd(cmd, args[0], level, owner)
		},
	}

	cmd.Flags().IntVarP(&level, "level", "l", 1, "Actor level (1-20)")
	cmd.Flags().StringVarP(&owner, "owner", "o", "", "Owning user ID")

	return cmd
}

func runActorAdd(cmd *cobra.Command, name string, level int, owner string) error {
	ctx := cmd.Context()

	return withDeps(func(d *Deps) error {
		actor, err := d.Actors.HandleAdd(ctx, globalWorld, name, level, owner)
		if err != nil {
			return fmt.Errorf("adding actor: %w", err)
		}

		fmt.Printf("Added actor %q at level %d\n", actor.Name, actor.Level)
		return nil
	})
}

func newActorRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove NAME",
		Short: "Remove an actor and its bastion",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runActorRemove(cmd, args[0])
		},
	}
}

func runActorRemove(cmd *cobra.Command, name string) error {
	ctx := cmd.Context()

	return withDeps(func(d *Deps) error {
		if err := d.Actors.HandleRemove(ctx, globalWorld, name); err != nil {
			return fmt.Errorf("removing actor: %w", err)
		}

		fmt.Printf("Removed actor %q and everything attached to it\n", name)
		return nil
	})
}

func newActorListCmd() *cobra.Command {
	var (
		limit  int
		offset int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List actors",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runActorList(cmd, limit, offset)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "l", DefaultListLimit, "Maximum number of actors to display")
	cmd.Flags().IntVar(&offset, "offset", 0, "Number of actors to skip")

	return cmd
}

func runActorList(cmd *cobra.Command, limit, offset int) error {
	ctx := cmd.Context()

	return withDeps(func(d *Deps) error {
		result, err := d.Actors.HandleList(ctx, globalWorld, limit, offset)
		if err != nil {
			return fmt.Errorf("listing actors: %w", err)
		}

		if result.Total == 0 {
			fmt.Println("No actors found.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tLEVEL\tOWNER")
		for _, actor := range result.Actors {
			fmt.Fprintf(w, "%s\t%d\t%s\n", actor.Name, actor.Level, actor.OwnerUserID)
		}
		w.Flush()

		fmt.Printf("\nShowing %d of %d actors\n", len(result.Actors), result.Total)

		return nil
	})
}

func newActorLevelCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "level NAME LEVEL",
		Short: "Set an actor's level",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			level, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid level %q", args[1])
			}
			return runActorLevel(cmd, args[0], level)
		},
	}
}

func runActorLevel(cmd *cobra.Command, name string, level int) error {
	ctx := cmd.Context()

	return withDeps(func(d *Deps) error {
		actor, err := d.Actors.HandleSetLevel(ctx, globalWorld, name, level)
		if err != nil {
			return fmt.Errorf("setting level: %w", err)
		}

		fmt.Printf("%s is now level %d\n", actor.Name, actor.Level)
		return nil
	})
}
