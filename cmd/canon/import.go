package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ersonp/canon-core/internal/application/handlers"
)

type importFlags struct {
	dryRun    bool
	overwrite bool
}

func newImportCmd() *cobra.Command {
	var flags importFlags

	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Import a world's canon from JSON",
		Long:  "Loads entries and chapters from a 'canon export' document into the active world.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd, args[0], flags)
		},
	}

	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "Validate without saving")
	cmd.Flags().BoolVar(&flags.overwrite, "overwrite", false, "Replace entries whose names already exist")

	return cmd
}

func runImport(cmd *cobra.Command, filePath string, flags importFlags) error {
	ctx := cmd.Context()

	file, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("opening file: %w", err)
	}
	defer file.Close()

	return withDeps(func(d *Deps) error {
		result, err := d.ImportHandler.Handle(ctx, worldID(), file, handlers.ImportOptions{
			DryRun:    flags.dryRun,
			Overwrite: flags.overwrite,
		})
		if err != nil {
			return err
		}

		label := "Imported"
		if flags.dryRun {
			label = "Would import"
		}
		fmt.Printf("%s %d entries and %d chapters (%d skipped)\n", label, result.Imported, result.Chapters, result.Skipped)

		for _, importErr := range result.Errors {
			fmt.Printf("  skipped %s: %s\n", importErr.Name, importErr.Reason)
		}
		return nil
	})
}
