package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hmans/tasks/internal/graph"
	"github.com/hmans/tasks/internal/ui"
)

var bulkJSON bool

var completeAllCmd = &cobra.Command{
	Use:   "complete-all",
	Short: "Mark every task as done",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return setAllCompleted(cmd, true)
	},
}

var reopenAllCmd = &cobra.Command{
	Use:   "reopen-all",
	Short: "Mark every task as open",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return setAllCompleted(cmd, false)
	},
}

func setAllCompleted(cmd *cobra.Command, completed bool) error {
	rs, err := resolver.ToggleAllTasks(cmdContext(cmd), graph.ToggleAllTasksArgs{Completed: completed})
	if err != nil {
		return err
	}
	tasks := unwrapTasks(rs)

	if bulkJSON {
		return printJSON(cmd.OutOrStdout(), tasksJSON(tasks))
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s %d task(s) as %s\n",
		ui.Success.Render("Marked"), len(tasks), ui.RenderStatusText(completed))
	return nil
}

func init() {
	for _, c := range []*cobra.Command{completeAllCmd, reopenAllCmd} {
		c.Flags().BoolVar(&bulkJSON, "json", false, "Output the updated tasks as JSON")
		rootCmd.AddCommand(c)
	}
}
