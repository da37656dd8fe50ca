package cmd

import (
	"strings"

	"github.com/graph-gophers/graphql-go"
	"github.com/spf13/cobra"

	"github.com/hmans/tasks/internal/graph"
)

var renameJSON bool

var renameCmd = &cobra.Command{
	Use:     "rename <id> <title>...",
	Aliases: []string{"mv"},
	Short:   "Change the title of a task",
	Args:    cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := resolver.UpdateTask(cmdContext(cmd), graph.UpdateTaskArgs{
			ID:    graphql.ID(args[0]),
			Title: strings.Join(args[1:], " "),
		})
		if err != nil {
			return err
		}
		if r == nil {
			return notFound(args[0])
		}

		if renameJSON {
			return printJSON(cmd.OutOrStdout(), toJSON(r.Task()))
		}
		printTaskLine(cmd.OutOrStdout(), "Renamed", r.Task())
		return nil
	},
}

func init() {
	renameCmd.Flags().BoolVar(&renameJSON, "json", false, "Output as JSON")
	rootCmd.AddCommand(renameCmd)
}
