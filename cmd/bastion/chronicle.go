package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AzureCamel/Bastion-Manager/internal/domain/entities"
)

func newChronicleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chronicle",
		Short: "Manage the bastion chronicle",
		Long:  "Record, list and semantically search a bastion's chronicle, and roll bastion events.",
	}

	cmd.AddCommand(
		newChronicleAddCmd(),
		newChronicleListCmd(),
		newChronicleSearchCmd(),
		newChronicleEventCmd(),
	)

	return cmd
}

func newChronicleAddCmd() *cobra.Command {
	var kind string

	cmd := &cobra.Command{
		Use:   "add ACTOR TEXT",
		Short: "Record a chronicle entry",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChronicleAdd(cmd, args[0], args[1], kind)
		},
	}

	cmd.Flags().StringVarP(&kind, "kind", "k", "note", "Entry kind (note, event, order)")

	return cmd
}

func runChronicleAdd(cmd *cobra.Command, actorName, text, kind string) error {
	if !entities.ValidChronicleKind(kind) {
		return fmt.Errorf("invalid kind %q (valid: note, event, order)", kind)
	}

	ctx := cmd.Context()

	return withDeps(func(d *Deps) error {
		entry, err := d.Chronicle.HandleAdd(ctx, globalWorld, actorName, entities.ChronicleKind(kind), text)
		if err != nil {
			return fmt.Errorf("recording entry: %w", err)
		}

		indexed := ""
		if len(entry.Embedding) > 0 {
			indexed = " (indexed for search)"
		}
		fmt.Printf("Recorded %s entry %s%s\n", entry.Kind, entry.ID, indexed)
		return nil
	})
}

func newChronicleListCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list ACTOR",
		Short: "List recent chronicle entries",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChronicleList(cmd, args[0], limit)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "l", DefaultChronicleLimit, "Maximum entries to display")

	return cmd
}

func runChronicleList(cmd *cobra.Command, actorName string, limit int) error {
	ctx := cmd.Context()

	return withDeps(func(d *Deps) error {
		entries, err := d.Chronicle.HandleList(ctx, globalWorld, actorName, limit)
		if err != nil {
			return fmt.Errorf("listing entries: %w", err)
		}

		if len(entries) == 0 {
			fmt.Println("No chronicle entries found.")
			return nil
		}

		for _, entry := range entries {
			fmt.Printf("%s  [%s]  %s\n", entry.CreatedAt.Format("2006-01-02"), entry.Kind, entry.Text)
		}

		return nil
	})
}

func newChronicleSearchCmd() *cobra.Command {
	var (
		kind  string
		limit int
	)

	cmd := &cobra.Command{
		Use:   "search QUERY",
		Short: "Search the chronicle semantically",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChronicleSearch(cmd, args[0], kind, limit)
		},
	}

	cmd.Flags().StringVarP(&kind, "kind", "k", "", "Filter by entry kind (note, event, order)")
	cmd.Flags().IntVarP(&limit, "limit", "l", DefaultChronicleLimit, "Maximum results")

	return cmd
}

func runChronicleSearch(cmd *cobra.Command, query, kind string, limit int) error {
	if kind != "" && !entities.ValidChronicleKind(kind) {
		return fmt.Errorf("invalid kind %q (valid: note, event, order)", kind)
	}

	ctx := cmd.Context()

	return withDeps(func(d *Deps) error {
		result, err := d.Chronicle.HandleSearch(ctx, query, entities.ChronicleKind(kind), limit)
		if err != nil {
			return fmt.Errorf("searching chronicle: %w", err)
		}

		if len(result.Entries) == 0 {
			fmt.Printf("No entries matching %q\n", query)
			return nil
		}

		for _, entry := range result.Entries {
			fmt.Printf("%s  [%s]  %s\n", entry.CreatedAt.Format("2006-01-02"), entry.Kind, entry.Text)
		}

		return nil
	})
}

func newChronicleEventCmd() *cobra.Command {
	var narrate bool

	cmd := &cobra.Command{
		Use:   "event ACTOR",
		Short: "Roll a random bastion event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChronicleEvent(cmd, args[0], narrate)
		},
	}

	cmd.Flags().BoolVar(&narrate, "narrate", false, "Narrate the event with the configured LLM")

	return cmd
}

func runChronicleEvent(cmd *cobra.Command, actorName string, narrate bool) error {
	ctx := cmd.Context()

	return withDeps(func(d *Deps) error {
		result, err := d.Chronicle.HandleEvent(ctx, globalWorld, actorName, narrate)
		if err != nil {
			return fmt.Errorf("rolling event: %w", err)
		}

		fmt.Printf("Event: %s\n", result.Event.Name)
		if result.Narration != "" {
			fmt.Printf("\n%s\n", result.Narration)
		} else {
			fmt.Printf("\n%s\n", result.Event.Description)
		}

		return nil
	})
}
