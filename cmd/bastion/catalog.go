package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/AzureCamel/Bastion-Manager/internal/domain/entities"
)

func newCatalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Manage the facility blueprint catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCatalogList(cmd)
		},
	}

	cmd.AddCommand(
		newCatalogListCmd(),
		newCatalogAddCmd(),
		newCatalogRemoveCmd(),
		newCatalogDescribeCmd(),
	)

	return cmd
}

func newCatalogListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all blueprints",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCatalogList(cmd)
		},
	}
}

func runCatalogList(cmd *cobra.Command) error {
	ctx := cmd.Context()

	return withDeps(func(d *Deps) error {
		blueprints, err := d.Catalog.HandleList(ctx)
		if err != nil {
			return fmt.Errorf("listing blueprints: %w", err)
		}

		if len(blueprints) == 0 {
			fmt.Println("No blueprints found.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tCATEGORY\tMIN LEVEL\tBUILD DAYS\tDEFAULT")
		for i := range blueprints {
			isDefault := ""
			if entities.IsDefaultBlueprint(blueprints[i].Name) {
				isDefault = "yes"
			}
			fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\n",
				blueprints[i].Name, blueprints[i].Category, blueprints[i].MinLevel, blueprints[i].BuildDays, isDefault)
		}
		w.Flush()

		return nil
	})
}

func newCatalogAddCmd() *cobra.Command {
	var (
		category  string
		minLevel  int
		buildDays int
		defenders int
		hirelings int
		desc      string
	)

	cmd := &cobra.Command{
		Use:   "add NAME",
		Short: "Add a custom blueprint",
		Long:  "Add a custom facility blueprint. Name must be lowercase with underscores.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCatalogAdd(cmd, entities.FacilityBlueprint{
				Name:             args[0],
				Category:         entities.FacilityCategory(category),
				MinLevel:         minLevel,
				BuildDays:        buildDays,
				DefenderCapacity: defenders,
				HirelingCapacity: hirelings,
				Description:      desc,
			})
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "special", "Facility category (basic, special)")
	cmd.Flags().IntVarP(&minLevel, "min-level", "m", 5, "Minimum actor level")
	cmd.Flags().IntVarP(&buildDays, "build-days", "b", 20, "Days of construction")
	cmd.Flags().IntVar(&defenders, "defenders", 0, "Defender capacity")
	cmd.Flags().IntVar(&hirelings, "hirelings", 1, "Hireling capacity")
	cmd.Flags().StringVarP(&desc, "description", "d", "", "Blueprint description")

	return cmd
}

func runCatalogAdd(cmd *cobra.Command, blueprint entities.FacilityBlueprint) error {
	ctx := cmd.Context()

	return withDeps(func(d *Deps) error {
		if err := d.Catalog.HandleAdd(ctx, blueprint); err != nil {
			return fmt.Errorf("adding blueprint: %w", err)
		}

		fmt.Printf("Added blueprint: %s\n", blueprint.Name)
		return nil
	})
}

func newCatalogRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove NAME",
		Short: "Remove a custom blueprint",
		Long:  "Remove a custom blueprint. Default blueprints cannot be removed.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCatalogRemove(cmd, args[0])
		},
	}
}

func runCatalogRemove(cmd *cobra.Command, name string) error {
	ctx := cmd.Context()

	return withDeps(func(d *Deps) error {
		if err := d.Catalog.HandleRemove(ctx, name); err != nil {
			return fmt.Errorf("removing blueprint: %w", err)
		}

		fmt.Printf("Removed blueprint: %s\n", name)
		return nil
	})
}

func newCatalogDescribeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "describe NAME",
		Short: "Show details about a blueprint",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCatalogDescribe(cmd, args[0])
		},
	}
}

func runCatalogDescribe(cmd *cobra.Command, name string) error {
	ctx := cmd.Context()

	return withDeps(func(d *Deps) error {
		bp, err := d.Catalog.HandleDescribe(ctx, name)
		if err != nil {
			return fmt.Errorf("describing blueprint: %w", err)
		}
		if bp == nil {
			return fmt.Errorf("blueprint %q not found", name)
		}

		fmt.Printf("Name:        %s\n", bp.Name)
		fmt.Printf("Category:    %s\n", bp.Category)
		fmt.Printf("Min level:   %d\n", bp.MinLevel)
		fmt.Printf("Build days:  %d\n", bp.BuildDays)
		fmt.Printf("Defenders:   %d\n", bp.DefenderCapacity)
		fmt.Printf("Hirelings:   %d\n", bp.HirelingCapacity)
		if bp.Description != "" {
			fmt.Printf("Description: %s\n", bp.Description)
		}
		fmt.Printf("Default:     %v\n", entities.IsDefaultBlueprint(bp.Name))

		return nil
	})
}
