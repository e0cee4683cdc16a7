package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ersonp/canon-core/internal/domain/entities"
)

type entryAddFlags struct {
	entryType string
	summary   string
	factsFile string
}

func newEntriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "entries",
		Short: "Manage canon entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEntriesList(cmd, DefaultListLimit, 0)
		},
	}

	cmd.AddCommand(
		newEntriesAddCmd(),
		newEntriesShowCmd(),
		newEntriesListCmd(),
		newEntriesRemoveCmd(),
		newEntriesTypesCmd(),
	)

	return cmd
}

func newEntriesAddCmd() *cobra.Command {
	var flags entryAddFlags

	cmd := &cobra.Command{
		Use:   "add NAME",
		Short: "Add a canon entry",
		Long:  "Adds a canon entry of the given type. Typed facts can be supplied as a JSON file.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEntriesAdd(cmd, args[0], flags)
		},
	}

	cmd.Flags().StringVarP(&flags.entryType, "type", "t", "", "Entry type (character, location, system, artifact, rule, event)")
	cmd.Flags().StringVarP(&flags.summary, "summary", "s", "", "One-line summary")
	cmd.Flags().StringVarP(&flags.factsFile, "facts", "f", "", "JSON file with typed facts")

	return cmd
}

func runEntriesAdd(cmd *cobra.Command, name string, flags entryAddFlags) error {
	ctx := cmd.Context()

	if !entities.ValidEntryType(flags.entryType) {
		return fmt.Errorf("unknown entry type %q (use 'canon entries types')", flags.entryType)
	}

	entry := &entities.Entry{
		WorldID: worldID(),
		Type:    entities.EntryType(flags.entryType),
		Name:    name,
		Summary: flags.summary,
	}
	if err := attachFacts(entry, flags.factsFile); err != nil {
		return err
	}

	return withDeps(func(d *Deps) error {
		created, err := d.EntryHandler.HandleCreate(ctx, entry)
		if err != nil {
			return err
		}
		fmt.Printf("Added %s %q (%s)\n", created.Type, created.Name, created.ID)
		return nil
	})
}

// attachFacts populates the typed facts struct for the entry, from the JSON
// file when given, empty otherwise.
func attachFacts(entry *entities.Entry, factsFile string) error {
	var raw []byte
	if factsFile != "" {
		data, err := os.ReadFile(factsFile)
		if err != nil {
			return fmt.Errorf("reading facts file: %w", err)
		}
		raw = data
	} else {
		raw = []byte("{}")
	}

	decode := func(v any) error {
		if err := json.Unmarshal(raw, v); err != nil {
			return fmt.Errorf("parsing facts: %w", err)
		}
		return nil
	}

	switch entry.Type {
	case entities.EntryTypeCharacter:
		facts := &entities.CharacterFacts{Alive: true}
		if err := decode(facts); err != nil {
			return err
		}
		entry.Character = facts
	case entities.EntryTypeLocation:
		facts := &entities.LocationFacts{}
		if err := decode(facts); err != nil {
			return err
		}
		entry.Location = facts
	case entities.EntryTypeSystem:
		facts := &entities.SystemFacts{}
		if err := decode(facts); err != nil {
			return err
		}
		entry.System = facts
	case entities.EntryTypeArtifact:
		facts := &entities.ArtifactFacts{}
		if err := decode(facts); err != nil {
			return err
		}
		entry.Artifact = facts
	case entities.EntryTypeRule:
		facts := &entities.RuleFacts{}
		if err := decode(facts); err != nil {
			return err
		}
		entry.Rule = facts
	case entities.EntryTypeEvent:
		facts := &entities.EventFacts{}
		if err := decode(facts); err != nil {
			return err
		}
		entry.Event = facts
	}
	return nil
}

func newEntriesShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show NAME",
		Short: "Show a canon entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEntriesShow(cmd, args[0])
		},
	}
}

func runEntriesShow(cmd *cobra.Command, name string) error {
	ctx := cmd.Context()

	return withDeps(func(d *Deps) error {
		entry, err := d.EntryHandler.HandleGet(ctx, worldID(), name)
		if err != nil {
			return err
		}

		fmt.Printf("%s [%s]\n", entry.Name, entry.Type)
		if entry.Summary != "" {
			fmt.Printf("  %s\n", entry.Summary)
		}
		fmt.Printf("  id: %s\n", entry.ID)
		fmt.Printf("  updated: %s\n", entry.UpdatedAt.Format("2006-01-02 15:04"))

		data, err := json.MarshalIndent(entryFacts(entry), "  ", "  ")
		if err != nil {
			return fmt.Errorf("formatting facts: %w", err)
		}
		fmt.Printf("  facts: %s\n", data)
		return nil
	})
}

// entryFacts returns the populated typed facts struct.
func entryFacts(entry *entities.Entry) any {
	switch entry.Type {
	case entities.EntryTypeCharacter:
		return entry.Character
	case entities.EntryTypeLocation:
		return entry.Location
	case entities.EntryTypeSystem:
		return entry.System
	case entities.EntryTypeArtifact:
		return entry.Artifact
	case entities.EntryTypeRule:
		return entry.Rule
	case entities.EntryTypeEvent:
		return entry.Event
	}
	return nil
}

func newEntriesListCmd() *cobra.Command {
	var (
		limit  int
		offset int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List canon entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEntriesList(cmd, limit, offset)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "l", DefaultListLimit, "Maximum number of entries")
	cmd.Flags().IntVarP(&offset, "offset", "o", 0, "Number of entries to skip")

	return cmd
}

func runEntriesList(cmd *cobra.Command, limit, offset int) error {
	ctx := cmd.Context()

	return withDeps(func(d *Deps) error {
		result, err := d.EntryHandler.HandleList(ctx, worldID(), limit, offset)
		if err != nil {
			return err
		}

		if result.Total == 0 {
			fmt.Println("No entries yet.")
			return nil
		}

		fmt.Printf("%-25s %-10s %s\n", "NAME", "TYPE", "SUMMARY")
		for _, entry := range result.Entries {
			summary := entry.Summary
			if len(summary) > 50 {
				summary = summary[:47] + "..."
			}
			fmt.Printf("%-25s %-10s %s\n", entry.Name, entry.Type, summary)
		}
		fmt.Printf("\nShowing %d of %d entries\n", len(result.Entries), result.Total)
		return nil
	})
}

func newEntriesRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove NAME",
		Short: "Remove a canon entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEntriesRemove(cmd, args[0])
		},
	}
}

func runEntriesRemove(cmd *cobra.Command, name string) error {
	ctx := cmd.Context()

	return withDeps(func(d *Deps) error {
		entry, err := d.EntryHandler.HandleGet(ctx, worldID(), name)
		if err != nil {
			return err
		}
		if err := d.EntryHandler.HandleDelete(ctx, entry.ID); err != nil {
			return err
		}
		fmt.Printf("Removed %s %q\n", entry.Type, entry.Name)
		return nil
	})
}

func newEntriesTypesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List supported entry types",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Printf("%-10s %s\n", "TYPE", "DESCRIPTION")
			for _, info := range entities.EntryTypes {
				fmt.Printf("%-10s %s\n", info.Type, info.Description)
			}
			return nil
		},
	}
}
