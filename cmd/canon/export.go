package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

func newExportCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a world's canon to JSON",
		Long:  "Exports the world's entries and chapters as a single JSON document that 'canon import' can load.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default: stdout)")

	return cmd
}

func runExport(cmd *cobra.Command, output string) (err error) {
	ctx := cmd.Context()

	var w io.Writer = os.Stdout
	if output != "" {
		f, ferr := os.OpenFile(output, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
		if ferr != nil {
			return fmt.Errorf("creating file: %w", ferr)
		}
		defer func() {
			if cerr := f.Close(); cerr != nil && err == nil {
				err = fmt.Errorf("closing file: %w", cerr)
			}
		}()
		w = f
	}

	return withDeps(func(d *Deps) error {
		count, err := d.ExportHandler.Handle(ctx, worldID(), w)
		if err != nil {
			return err
		}
		if output != "" {
			fmt.Printf("Exported %d entries to %s\n", count, output)
		}
		return nil
	})
}
