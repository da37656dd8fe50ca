package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/hmans/tasks/internal/graph"
	"github.com/hmans/tasks/internal/ui"
)

var (
	listJSON   bool
	listSearch string
	listQuiet  bool
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List tasks",
	Long: `Lists all tasks in creation order.

Use --search to only show tasks whose title contains the given text.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var search *string
		if listSearch != "" {
			search = &listSearch
		}

		rs, err := resolver.Tasks(cmdContext(cmd), graph.TasksArgs{Search: search})
		if err != nil {
			return fmt.Errorf("failed to list tasks: %w", err)
		}
		tasks := unwrapTasks(rs)
		out := cmd.OutOrStdout()

		if listJSON {
			return printJSON(out, tasksJSON(tasks))
		}

		// Quiet mode: just IDs
		if listQuiet {
			for _, t := range tasks {
				fmt.Fprintln(out, t.ID)
			}
			return nil
		}

		if len(tasks) == 0 {
			fmt.Fprintln(out, ui.Muted.Render("No tasks found. Create one with: tasks add <title>"))
			return nil
		}

		maxIDWidth := 2 // minimum for "ID" header
		for _, t := range tasks {
			if len(t.ID) > maxIDWidth {
				maxIDWidth = len(t.ID)
			}
		}
		maxIDWidth += 2

		idStyle := lipgloss.NewStyle().Width(maxIDWidth)
		statusStyle := lipgloss.NewStyle().Width(8)
		titleStyle := lipgloss.NewStyle()

		fmt.Fprintln(out, lipgloss.JoinHorizontal(lipgloss.Top,
			idStyle.Render(ui.Header.Render("ID")),
			statusStyle.Render(ui.Header.Render("STATUS")),
			titleStyle.Render(ui.Header.Render("TITLE")),
		))
		fmt.Fprintln(out, ui.Muted.Render(strings.Repeat("─", maxIDWidth+8+40)))

		for _, t := range tasks {
			fmt.Fprintln(out, lipgloss.JoinHorizontal(lipgloss.Top,
				idStyle.Render(ui.ID.Render(t.ID)),
				statusStyle.Render(ui.RenderStatusText(t.Completed)),
				titleStyle.Render(ui.RenderTitle(ui.Truncate(t.Title, 60), t.Completed)),
			))
		}
		return nil
	},
}

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output as JSON")
	listCmd.Flags().StringVarP(&listSearch, "search", "s", "", "Only list tasks whose title contains this text")
	listCmd.Flags().BoolVarP(&listQuiet, "quiet", "q", false, "Only output IDs (one per line)")
	rootCmd.AddCommand(listCmd)
}
