package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newDescribeCmd() *cobra.Command {
	var edit string

	cmd := &cobra.Command{
		Use:   "describe ACTOR",
		Short: "Show or edit a bastion's description",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("edit") {
				return runDescribeEdit(cmd, args[0], edit)
			}
			return runDescribeShow(cmd, args[0])
		},
	}

	cmd.Flags().StringVarP(&edit, "edit", "e", "", "Replace the description with this text")

	return cmd
}

func runDescribeShow(cmd *cobra.Command, actorName string) error {
	ctx := cmd.Context()

	return withDeps(func(d *Deps) error {
		detail, err := d.Bastion.HandleDetail(ctx, globalWorld, actorName, viewer())
		if err != nil {
			return fmt.Errorf("loading bastion: %w", err)
		}

		if detail.Description == "" {
			fmt.Println("No description set.")
			return nil
		}

		fmt.Println(detail.Description)
		return nil
	})
}

func runDescribeEdit(cmd *cobra.Command, actorName, description string) error {
	ctx := cmd.Context()

	return withDeps(func(d *Deps) error {
		if err := d.Bastion.HandleDescribe(ctx, globalWorld, actorName, description); err != nil {
			return fmt.Errorf("saving description: %w", err)
		}

		fmt.Printf("Updated description for %s\n", actorName)
		return nil
	})
}
