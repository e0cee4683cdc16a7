package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newIssuesCmd() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "issues",
		Short: "Manage continuity issues",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIssuesList(cmd, all)
		},
	}

	cmd.Flags().BoolVarP(&all, "all", "a", false, "Include resolved and overridden issues")

	cmd.AddCommand(
		newIssuesResolveCmd(),
		newIssuesOverrideCmd(),
	)

	return cmd
}

func runIssuesList(cmd *cobra.Command, includeClosed bool) error {
	ctx := cmd.Context()

	return withDeps(func(d *Deps) error {
		issues, err := d.IssueHandler.HandleList(ctx, worldID(), includeClosed)
		if err != nil {
			return err
		}

		if len(issues) == 0 {
			fmt.Println("No open issues.")
			return nil
		}

		for _, issue := range issues {
			status := ""
			if issue.Resolved {
				status = " [resolved]"
			} else if issue.Overridden {
				status = " [overridden]"
			}
			fmt.Printf("%s  [%s] %s: %s%s\n", issue.ID, severityTag(issue.Severity), issue.CanonEntryName, issue.Title, status)
		}
		return nil
	})
}

func newIssuesResolveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve ID",
		Short: "Mark an issue as fixed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIssuesResolve(cmd, args[0])
		},
	}
}

func runIssuesResolve(cmd *cobra.Command, issueID string) error {
	ctx := cmd.Context()

	return withDeps(func(d *Deps) error {
		if err := d.IssueHandler.HandleResolve(ctx, issueID); err != nil {
			return err
		}
		fmt.Printf("Resolved issue %s\n", issueID)
		return nil
	})
}

func newIssuesOverrideCmd() *cobra.Command {
	var reason string

	cmd := &cobra.Command{
		Use:   "override ID",
		Short: "Mark an issue as intentional",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIssuesOverride(cmd, args[0], reason)
		},
	}

	cmd.Flags().StringVarP(&reason, "reason", "r", "", "Why the flagged change is intentional (required)")

	return cmd
}

func runIssuesOverride(cmd *cobra.Command, issueID, reason string) error {
	ctx := cmd.Context()

	return withDeps(func(d *Deps) error {
		if err := d.IssueHandler.HandleOverride(ctx, issueID, reason); err != nil {
			return err
		}
		fmt.Printf("Overrode issue %s\n", issueID)
		return nil
	})
}
