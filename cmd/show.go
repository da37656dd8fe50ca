package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/graph-gophers/graphql-go"
	"github.com/spf13/cobra"

	"github.com/hmans/tasks/internal/graph"
	"github.com/hmans/tasks/internal/ui"
)

var showJSON bool

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a single task",
	Long:  `Displays one task with its status and timestamps.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := resolver.Task(cmdContext(cmd), graph.IDArgs{ID: graphql.ID(args[0])})
		if err != nil {
			return err
		}
		if r == nil {
			return notFound(args[0])
		}
		t := r.Task()

		if showJSON {
			return printJSON(cmd.OutOrStdout(), toJSON(t))
		}

		var b strings.Builder
		b.WriteString(ui.ID.Render(t.ID))
		b.WriteString(" ")
		b.WriteString(ui.RenderStatusText(t.Completed))
		b.WriteString("\n")
		b.WriteString(ui.Bold.Render(ui.RenderTitle(t.Title, t.Completed)))
		b.WriteString("\n")
		b.WriteString(ui.Muted.Render(strings.Repeat("─", 50)))
		b.WriteString("\n")
		fmt.Fprintf(&b, "%s %s\n", ui.Muted.Render("created"), graph.DateTime{Time: t.CreatedAt})
		fmt.Fprintf(&b, "%s %s", ui.Muted.Render("updated"), graph.DateTime{Time: t.UpdatedAt})

		fmt.Fprintln(cmd.OutOrStdout(), lipgloss.NewStyle().MarginBottom(1).Render(b.String()))
		return nil
	},
}

func init() {
	showCmd.Flags().BoolVar(&showJSON, "json", false, "Output as JSON")
	rootCmd.AddCommand(showCmd)
}
