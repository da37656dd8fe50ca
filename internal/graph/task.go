package graph

import (
	"github.com/graph-gophers/graphql-go"

	"github.com/hmans/tasks/internal/task"
)

// TaskResolver resolves the fields of the Task type.
type TaskResolver struct {
	t *task.Task
}

func newTaskResolver(t *task.Task) *TaskResolver {
	if t == nil {
		return nil
	}
	return &TaskResolver{t: t}
}

func newTaskResolvers(tasks []*task.Task) []*TaskResolver {
	out := make([]*TaskResolver, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, &TaskResolver{t: t})
	}
	return out
}

// Task returns the underlying task.
func (r *TaskResolver) Task() *task.Task {
	return r.t
}

func (r *TaskResolver) ID() graphql.ID {
	return graphql.ID(r.t.ID)
}

func (r *TaskResolver) Title() string {
	return r.t.Title
}

func (r *TaskResolver) Completed() bool {
	return r.t.Completed
}

func (r *TaskResolver) CreatedAt() DateTime {
	return DateTime{r.t.CreatedAt}
}

func (r *TaskResolver) UpdatedAt() DateTime {
	return DateTime{r.t.UpdatedAt}
}
