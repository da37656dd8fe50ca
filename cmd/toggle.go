package cmd

import (
	"github.com/graph-gophers/graphql-go"
	"github.com/spf13/cobra"

	"github.com/hmans/tasks/internal/graph"
)

var toggleJSON bool

var toggleCmd = &cobra.Command{
	Use:     "toggle <id>",
	Aliases: []string{"t", "done"},
	Short:   "Flip a task between open and done",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := resolver.ToggleTask(cmdContext(cmd), graph.IDArgs{ID: graphql.ID(args[0])})
		if err != nil {
			return err
		}
		if r == nil {
			return notFound(args[0])
		}

		t := r.Task()
		if toggleJSON {
			return printJSON(cmd.OutOrStdout(), toJSON(t))
		}
		verb := "Reopened"
		if t.Completed {
			verb = "Completed"
		}
		printTaskLine(cmd.OutOrStdout(), verb, t)
		return nil
	},
}

func init() {
	toggleCmd.Flags().BoolVar(&toggleJSON, "json", false, "Output as JSON")
	rootCmd.AddCommand(toggleCmd)
}
