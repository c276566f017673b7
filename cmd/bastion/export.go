package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/AzureCamel/Bastion-Manager/internal/application/handlers"
)

type exportFlags struct {
	format string
	output string
	gzip   bool
	limit  int
}

func newExportCmd() *cobra.Command {
	var flags exportFlags

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the actor roster to file",
		Long:  "Exports actors to JSON, CSV, or markdown format, optionally gzipped.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.format, "format", "f", "json", "Output format (json, csv, markdown)")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Output file (default: stdout)")
	cmd.Flags().BoolVarP(&flags.gzip, "gzip", "z", false, "Compress the output")
	cmd.Flags().IntVarP(&flags.limit, "limit", "l", DefaultExportLimit, "Maximum number of actors to export")

	return cmd
}

func runExport(cmd *cobra.Command, flags exportFlags) error {
	if !contains(validFormats, flags.format) {
		return fmt.Errorf("invalid format %q, valid formats: %v", flags.format, validFormats)
	}

	ctx := cmd.Context()

	return withDeps(func(d *Deps) (err error) {
		var w io.Writer = os.Stdout
		var f *os.File

		if flags.output != "" {
			f, err = os.OpenFile(flags.output, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
			if err != nil {
				return fmt.Errorf("creating file: %w", err)
			}
			defer func() {
				if cerr := f.Close(); cerr != nil && err == nil {
					err = fmt.Errorf("closing file: %w", cerr)
				}
			}()
			w = f
		}

		n, err := d.Export.Handle(ctx, globalWorld, w, handlers.ExportOptions{
			Format: flags.format,
			Gzip:   flags.gzip,
			Limit:  flags.limit,
		})
		if err != nil {
			return fmt.Errorf("exporting actors: %w", err)
		}

		if flags.output != "" {
			fmt.Printf("Exported %d actors to %s\n", n, flags.output)
		}

		return nil
	})
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
