package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/hmans/tasks/internal/graph"
)

var addJSON bool

var addCmd = &cobra.Command{
	Use:     "add <title>...",
	Aliases: []string{"new", "a"},
	Short:   "Add a task",
	Long: `Adds a new, incomplete task. Multiple arguments are joined with spaces.

Examples:
  tasks add Buy milk
  tasks add "Call the plumber" --json`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := resolver.AddTask(cmdContext(cmd), graph.AddTaskArgs{Title: strings.Join(args, " ")})
		if err != nil {
			return err
		}

		if addJSON {
			return printJSON(cmd.OutOrStdout(), toJSON(r.Task()))
		}
		printTaskLine(cmd.OutOrStdout(), "Added", r.Task())
		return nil
	},
}

func init() {
	addCmd.Flags().BoolVar(&addJSON, "json", false, "Output as JSON")
	rootCmd.AddCommand(addCmd)
}
