package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ersonp/canon-core/internal/application/handlers"
)

func newQueryCmd() *cobra.Command {
	var (
		limit     int
		entryType string
	)

	cmd := &cobra.Command{
		Use:   "query <question>",
		Short: "Search the canon",
		Long:  "Performs semantic search to find canon entries matching your question.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(cmd, args[0], limit, entryType)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "l", DefaultQueryLimit, "Maximum number of results")
	cmd.Flags().StringVarP(&entryType, "type", "t", "", "Filter by entry type (character, location, system, artifact, rule, event)")

	return cmd
}

func runQuery(cmd *cobra.Command, query string, limit int, entryType string) error {
	ctx := cmd.Context()

	return withDeps(func(d *Deps) error {
		var result *handlers.QueryResult
		var err error
		if entryType != "" {
			result, err = d.QueryHandler.HandleByType(ctx, query, entryType, limit)
		} else {
			result, err = d.QueryHandler.Handle(ctx, query, limit)
		}
		if err != nil {
			return err
		}

		if len(result.Matches) == 0 {
			fmt.Println("No entries found.")
			return nil
		}

		fmt.Printf("Found %d entries:\n\n", len(result.Matches))
		for i, match := range result.Matches {
			fmt.Printf("%d. [%s] %s (%.2f)\n", i+1, match.Type, match.Name, match.Score)
			if match.Summary != "" {
				fmt.Printf("   %s\n", match.Summary)
			}
		}
		return nil
	})
}
