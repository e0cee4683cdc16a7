package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newChaptersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chapters",
		Short: "Manage manuscript chapters",
		RunE:  runChaptersList,
	}

	cmd.AddCommand(
		newChaptersAddCmd(),
		newChaptersListCmd(),
		newChaptersRemoveCmd(),
	)

	return cmd
}

func newChaptersAddCmd() *cobra.Command {
	var title string

	cmd := &cobra.Command{
		Use:   "add NUMBER",
		Short: "Register a chapter",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			number, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid chapter number %q", args[0])
			}
			return runChaptersAdd(cmd, number, title)
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "Chapter title")

	return cmd
}

func runChaptersAdd(cmd *cobra.Command, number int, title string) error {
	ctx := cmd.Context()

	return withDeps(func(d *Deps) error {
		chapter, err := d.ChapterHandler.HandleAdd(ctx, worldID(), number, title)
		if err != nil {
			return err
		}
		fmt.Printf("Added chapter %d %q\n", chapter.Number, chapter.Title)
		return nil
	})
}

func newChaptersListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List chapters",
		RunE:  runChaptersList,
	}
}

func runChaptersList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	return withDeps(func(d *Deps) error {
		chapters, err := d.ChapterHandler.HandleList(ctx, worldID())
		if err != nil {
			return err
		}

		if len(chapters) == 0 {
			fmt.Println("No chapters registered.")
			return nil
		}

		fmt.Printf("%-8s %-40s %s\n", "NUMBER", "TITLE", "ID")
		for _, chapter := range chapters {
			fmt.Printf("%-8d %-40s %s\n", chapter.Number, chapter.Title, chapter.ID)
		}
		return nil
	})
}

func newChaptersRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove ID",
		Short: "Remove a chapter",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChaptersRemove(cmd, args[0])
		},
	}
}

func runChaptersRemove(cmd *cobra.Command, chapterID string) error {
	ctx := cmd.Context()

	return withDeps(func(d *Deps) error {
		if err := d.ChapterHandler.HandleRemove(ctx, chapterID); err != nil {
			return err
		}
		fmt.Println("Removed chapter.")
		return nil
	})
}
