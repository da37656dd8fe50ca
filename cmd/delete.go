package cmd

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/graph-gophers/graphql-go"
	"github.com/spf13/cobra"

	"github.com/hmans/tasks/internal/graph"
	"github.com/hmans/tasks/internal/ui"
)

var (
	forceDelete bool
	deleteJSON  bool
)

var deleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete a task",
	Long:    `Deletes a task after confirmation (use -f to skip confirmation).`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmdContext(cmd)
		id := graphql.ID(args[0])

		existing, err := resolver.Task(ctx, graph.IDArgs{ID: id})
		if err != nil {
			return err
		}
		if existing == nil {
			return notFound(args[0])
		}

		// JSON implies force (no prompts for machines)
		if !forceDelete && !deleteJSON {
			confirmed := false
			err := huh.NewConfirm().
				Title(fmt.Sprintf("Delete '%s' (%s)?", existing.Title(), args[0])).
				Affirmative("Delete").
				Negative("Cancel").
				Value(&confirmed).
				Run()
			if err != nil && !errors.Is(err, huh.ErrUserAborted) {
				return err
			}
			if !confirmed {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Warning.Render("Cancelled"))
				return nil
			}
		}

		r, err := resolver.DeleteTask(ctx, graph.IDArgs{ID: id})
		if err != nil {
			return err
		}
		if r == nil {
			return notFound(args[0])
		}

		if deleteJSON {
			return printJSON(cmd.OutOrStdout(), toJSON(r.Task()))
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", ui.Danger.Render("Deleted"), ui.ID.Render(r.Task().ID), r.Task().Title)
		return nil
	},
}

func init() {
	deleteCmd.Flags().BoolVarP(&forceDelete, "force", "f", false, "Skip confirmation")
	deleteCmd.Flags().BoolVar(&deleteJSON, "json", false, "Output as JSON (implies --force)")
	rootCmd.AddCommand(deleteCmd)
}
