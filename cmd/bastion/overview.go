package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newOverviewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "overview",
		Short: "Show the bastion overview grid",
		Long:  "Lists every enabled bastion the viewer is allowed to see, with display overrides applied.",
		RunE:  runOverview,
	}
}

func runOverview(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	return withDeps(func(d *Deps) error {
		result, err := d.Bastion.HandleOverview(ctx, globalWorld, viewer())
		if err != nil {
			return fmt.Errorf("building overview: %w", err)
		}

		if result.Total == 0 {
			fmt.Println("No bastions to show.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tLEVEL\tBASIC\tSPECIAL\tCOLOR\tFLAGS")
		for _, row := range result.Rows {
			flags := ""
			if row.Fade {
				flags += "fade "
			}
			if row.Outline {
				flags += "outline"
			}
			fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%s\t%s\n",
				row.DisplayName, row.Actor.Level, row.BasicCount, row.SpecialCount, row.Color, flags)
		}
		w.Flush()

		fmt.Printf("\n%d bastions\n", result.Total)

		return nil
	})
}
