package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/AzureCamel/Bastion-Manager/internal/domain/entities"
)

func newSettingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Manage per-bastion display settings",
	}

	cmd.AddCommand(
		newSettingsShowCmd(),
		newSettingsSetCmd(),
		newSettingsClearCmd(),
	)

	return cmd
}

func newSettingsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show ACTOR",
		Short: "Show all settings for an actor",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSettingsShow(cmd, args[0])
		},
	}
}

func runSettingsShow(cmd *cobra.Command, actorName string) error {
	ctx := cmd.Context()

	return withDeps(func(d *Deps) error {
		settings, err := d.Settings.HandleShow(ctx, globalWorld, actorName)
		if err != nil {
			return fmt.Errorf("loading settings: %w", err)
		}

		fmt.Printf("Display name:  %s\n", orDash(settings.Display.Name))
		fmt.Printf("Display image: %s\n", orDash(settings.Display.Image))
		fmt.Printf("Color:         %s\n", orDash(settings.Display.Color))
		fmt.Printf("Fade:          %v\n", settings.Display.Fade)
		fmt.Printf("Outline:       %v\n", settings.Display.Outline)
		fmt.Printf("Slot override: basic +%d, special +%d\n", settings.Override.Basic, settings.Override.Special)
		fmt.Printf("Public:        %v\n", settings.Visibility.Public)
		fmt.Printf("Shared with:   %s\n", orDash(strings.Join(settings.Visibility.Users, ", ")))
		fmt.Printf("Enabled:       %v\n", settings.Enabled)

		return nil
	})
}

func newSettingsSetCmd() *cobra.Command {
	var (
		name    string
		image   string
		color   string
		fade    bool
		outline bool
	)

	cmd := &cobra.Command{
		Use:   "set ACTOR",
		Short: "Set display overrides for an actor",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSettingsSet(cmd, args[0], entities.DisplaySettings{
				Name:    name,
				Image:   image,
				Color:   color,
				Fade:    fade,
				Outline: outline,
			})
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "Display name override")
	cmd.Flags().StringVarP(&image, "image", "i", "", "Display image override")
	cmd.Flags().StringVarP(&color, "color", "c", "", "Tile color")
	cmd.Flags().BoolVar(&fade, "fade", false, "Fade the tile")
	cmd.Flags().BoolVar(&outline, "outline", false, "Outline the tile")

	return cmd
}

func runSettingsSet(cmd *cobra.Command, actorName string, display entities.DisplaySettings) error {
	ctx := cmd.Context()

	return withDeps(func(d *Deps) error {
		if err := d.Settings.HandleSetDisplay(ctx, globalWorld, actorName, display); err != nil {
			return fmt.Errorf("saving settings: %w", err)
		}

		fmt.Printf("Updated display settings for %s\n", actorName)
		return nil
	})
}

func newSettingsClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear ACTOR",
		Short: "Clear display overrides for an actor",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSettingsClear(cmd, args[0])
		},
	}
}

func runSettingsClear(cmd *cobra.Command, actorName string) error {
	ctx := cmd.Context()

	return withDeps(func(d *Deps) error {
		if err := d.Settings.HandleClearDisplay(ctx, globalWorld, actorName); err != nil {
			return fmt.Errorf("clearing settings: %w", err)
		}

		fmt.Printf("Cleared display settings for %s\n", actorName)
		return nil
	})
}

// orDash substitutes a dash for empty values in settings output.
func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
