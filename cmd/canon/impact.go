package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ersonp/canon-core/internal/domain/entities"
)

func newImpactCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "impact",
		Short: "Snapshot entries and check edit impact",
	}

	cmd.AddCommand(
		newImpactSnapshotCmd(),
		newImpactCheckCmd(),
		newImpactReportsCmd(),
	)

	return cmd
}

func newImpactSnapshotCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "snapshot NAME",
		Short: "Capture an entry's current state as the comparison baseline",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImpactSnapshot(cmd, args[0])
		},
	}
}

func runImpactSnapshot(cmd *cobra.Command, name string) error {
	ctx := cmd.Context()

	return withDeps(func(d *Deps) error {
		snapshot, err := d.ImpactHandler.HandleSnapshot(ctx, worldID(), name)
		if err != nil {
			return err
		}
		fmt.Printf("Captured snapshot of %q at %s\n", snapshot.Data.Name, snapshot.CapturedAt.Format("15:04:05"))
		return nil
	})
}

func newImpactCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check NAME",
		Short: "Diff an entry against its snapshot and report consequences",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImpactCheck(cmd, args[0])
		},
	}
}

func runImpactCheck(cmd *cobra.Command, name string) error {
	ctx := cmd.Context()

	return withDeps(func(d *Deps) error {
		result, err := d.ImpactHandler.HandleCheck(ctx, worldID(), name)
		if err != nil {
			return err
		}

		if len(result.Changes) == 0 {
			fmt.Printf("No changes to %q since its snapshot.\n", result.Entry.Name)
			return nil
		}

		fmt.Printf("%d change(s) to %q:\n", len(result.Changes), result.Entry.Name)
		for _, change := range result.Changes {
			fmt.Printf("  %s: %v → %v\n", change.Field, change.OldValue, change.NewValue)
		}

		if len(result.Issues) == 0 {
			fmt.Println("\nNo continuity issues detected.")
			return nil
		}

		fmt.Printf("\n%d issue(s):\n", len(result.Issues))
		for _, issue := range result.Issues {
			printIssue(issue)
		}

		if result.Report != nil && len(result.Report.AffectedChapters) > 0 {
			fmt.Println("\nAffected chapters:")
			for _, ch := range result.Report.AffectedChapters {
				title := ch.Title
				if title == "" {
					title = "(untitled)"
				}
				fmt.Printf("  %d. %-40s %s\n", ch.Number, title, severityTag(ch.Severity))
			}
		}
		return nil
	})
}

func newImpactReportsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reports NAME",
		Short: "List an entry's past impact reports",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImpactReports(cmd, args[0])
		},
	}
}

func runImpactReports(cmd *cobra.Command, name string) error {
	ctx := cmd.Context()

	return withDeps(func(d *Deps) error {
		reports, err := d.ImpactHandler.HandleReports(ctx, worldID(), name)
		if err != nil {
			return err
		}

		if len(reports) == 0 {
			fmt.Printf("No impact reports for %q.\n", name)
			return nil
		}

		for _, report := range reports {
			fmt.Printf("%s  %s\n", report.Timestamp.Format("2006-01-02 15:04"), report.ChangeDescription)
			fmt.Printf("  %d issue(s), %d affected chapter(s)\n", len(report.Issues), len(report.AffectedChapters))
		}
		return nil
	})
}

// printIssue renders one issue with its suggestion and affected chapters.
func printIssue(issue entities.ValidationIssue) {
	fmt.Printf("  [%s] %s (%s)\n", severityTag(issue.Severity), issue.Title, issue.Type)
	if issue.Description != "" {
		fmt.Printf("      %s\n", issue.Description)
	}
	if issue.Suggestion != "" {
		fmt.Printf("      Suggestion: %s\n", issue.Suggestion)
	}
	if len(issue.AffectedChapterIDs) > 0 {
		fmt.Printf("      Chapters: %s\n", joinInts(issue.AffectedChapterIDs))
	}
}

func severityTag(s entities.Severity) string {
	return strings.ToUpper(string(s))
}

func joinInts(numbers []int) string {
	parts := make([]string, len(numbers))
	for i, n := range numbers {
		parts[i] = fmt.Sprintf("%d", n)
	}
	return strings.Join(parts, ", ")
}
