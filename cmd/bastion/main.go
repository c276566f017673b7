// Package main provides the entry point for the bastion CLI application.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/AzureCamel/Bastion-Manager/internal/domain/services"
)

var (
	version      = "0.1.0-dev"
	globalWorld  string
	globalAsUser string
	globalGM     bool
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	rootCmd := &cobra.Command{
		Use:     "bastion",
		Short:   "Stronghold management for tabletop worlds",
		Version: version,
	}

	rootCmd.PersistentFlags().StringVarP(&globalWorld, "world", "w", "", "World to operate on (required)")
	rootCmd.PersistentFlags().StringVar(&globalAsUser, "as", "", "View as this user ID")
	rootCmd.PersistentFlags().BoolVar(&globalGM, "gm", false, "Act with GM privileges")

	rootCmd.AddCommand(
		newWorldsCmd(),
		newOverviewCmd(),
		newShowCmd(),
		newActorCmd(),
		newFacilityCmd(),
		newOccupantCmd(),
		newCatalogCmd(),
		newSettingsCmd(),
		newOverrideCmd(),
		newVisibilityCmd(),
		newEnableCmd(),
		newDisableCmd(),
		newDescribeCmd(),
		newChronicleCmd(),
		newExportCmd(),
		newImportCmd(),
	)

	return rootCmd.ExecuteContext(ctx)
}

// viewer builds the identity the read surfaces filter by.
func viewer() services.Viewer {
	return services.Viewer{
		UserID: globalAsUser,
		GM:     globalGM,
	}
}
