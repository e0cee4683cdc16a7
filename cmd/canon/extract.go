package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ersonp/canon-core/internal/domain/entities"
)

func newExtractCmd() *cobra.Command {
	var (
		format string
		save   bool
	)

	cmd := &cobra.Command{
		Use:   "extract FILE",
		Short: "Extract canon candidates from a planning transcript",
		Long:  "Scans a planning-conversation transcript for characters, locations, systems, and artifacts worth recording as canon.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(cmd, args[0], format, save)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "auto", "Transcript format (json, text, auto)")
	cmd.Flags().BoolVarP(&save, "save", "s", false, "Record candidates as draft canon entries")

	return cmd
}

func runExtract(cmd *cobra.Command, filePath, format string, save bool) error {
	ctx := cmd.Context()

	if !contains(validFormats, format) {
		return fmt.Errorf("invalid format %q, valid formats: %v", format, validFormats)
	}

	return withDeps(func(d *Deps) error {
		result, err := d.ExtractHandler.HandleFile(ctx, filePath, format)
		if err != nil {
			return err
		}

		fmt.Printf("Scanned %d message(s) from %s\n", result.MessageCount, result.FilePath)

		if result.Canon == nil || result.Canon.Total() == 0 {
			fmt.Println("No canon candidates found.")
			return nil
		}

		printCandidates("Characters", result.Canon.Characters)
		printCandidates("Locations", result.Canon.Locations)
		printCandidates("Systems", result.Canon.Systems)
		printCandidates("Artifacts", result.Canon.Artifacts)

		if !save {
			fmt.Println("\nUse 'canon entries add NAME --type TYPE' to record a candidate, or re-run with --save.")
			return nil
		}

		saved, skipped := saveCandidates(cmd, d, result.Canon)
		fmt.Printf("\nRecorded %d draft entries (%d skipped)\n", saved, skipped)
		return nil
	})
}

// saveCandidates records each candidate as a draft canon entry. Candidates
// whose names already exist in the world are skipped.
func saveCandidates(cmd *cobra.Command, d *Deps, canon *entities.AutoGeneratedCanon) (saved, skipped int) {
	ctx := cmd.Context()

	record := func(entryType entities.EntryType, candidates []entities.ExtractedEntity) {
		for _, c := range candidates {
			entry := &entities.Entry{
				WorldID: worldID(),
				Type:    entryType,
				Name:    c.Name,
				Summary: c.Description,
			}
			switch entryType {
			case entities.EntryTypeCharacter:
				entry.Character = &entities.CharacterFacts{Alive: true, Role: c.Role}
			case entities.EntryTypeLocation:
				entry.Location = &entities.LocationFacts{Description: c.Description}
			case entities.EntryTypeSystem:
				entry.System = &entities.SystemFacts{}
			case entities.EntryTypeArtifact:
				entry.Artifact = &entities.ArtifactFacts{}
			}
			if _, err := d.EntryHandler.HandleCreate(ctx, entry); err != nil {
				fmt.Printf("  skipped %s: %v\n", c.Name, err)
				skipped++
				continue
			}
			saved++
		}
	}

	record(entities.EntryTypeCharacter, canon.Characters)
	record(entities.EntryTypeLocation, canon.Locations)
	record(entities.EntryTypeSystem, canon.Systems)
	record(entities.EntryTypeArtifact, canon.Artifacts)
	return saved, skipped
}

func printCandidates(heading string, candidates []entities.ExtractedEntity) {
	if len(candidates) == 0 {
		return
	}
	fmt.Printf("\n%s:\n", heading)
	for _, c := range candidates {
		line := "  " + c.Name
		if c.Role != "" {
			line += " (" + c.Role + ")"
		}
		if c.Description != "" {
			line += ": " + c.Description
		}
		fmt.Println(line)
	}
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
