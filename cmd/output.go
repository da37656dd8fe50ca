package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/hmans/tasks/internal/graph"
	"github.com/hmans/tasks/internal/task"
	"github.com/hmans/tasks/internal/ui"
)

// taskJSON is the CLI's JSON shape of a task; timestamps use the same
// layout as the GraphQL DateTime scalar.
type taskJSON struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

func toJSON(t *task.Task) taskJSON {
	return taskJSON{
		ID:        t.ID,
		Title:     t.Title,
		Completed: t.Completed,
		CreatedAt: graph.DateTime{Time: t.CreatedAt}.String(),
		UpdatedAt: graph.DateTime{Time: t.UpdatedAt}.String(),
	}
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func tasksJSON(tasks []*task.Task) []taskJSON {
	out := make([]taskJSON, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, toJSON(t))
	}
	return out
}

// printTaskLine writes a one-line summary such as "Added abc123 Buy milk".
func printTaskLine(w io.Writer, verb string, t *task.Task) {
	fmt.Fprintf(w, "%s %s %s\n", ui.Success.Render(verb), ui.ID.Render(t.ID), t.Title)
}

func unwrapTasks(rs []*graph.TaskResolver) []*task.Task {
	out := make([]*task.Task, 0, len(rs))
	for _, r := range rs {
		out = append(out, r.Task())
	}
	return out
}

func notFound(id string) error {
	return fmt.Errorf("%w: %s", task.ErrNotFound, id)
}
