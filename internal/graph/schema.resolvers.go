package graph

import (
	"context"
	"errors"

	"github.com/graph-gophers/graphql-go"
	"go.uber.org/zap"

	"github.com/hmans/tasks/internal/task"
)

// TasksArgs are the arguments of the tasks query.
type TasksArgs struct {
	Search *string
}

// IDArgs are the arguments of fields that take a single task ID.
type IDArgs struct {
	ID graphql.ID
}

// AddTaskArgs are the arguments of the addTask mutation.
type AddTaskArgs struct {
	Title string
}

// UpdateTaskArgs are the arguments of the updateTask mutation.
type UpdateTaskArgs struct {
	ID    graphql.ID
	Title string
}

// ToggleAllTasksArgs are the arguments of the toggleAllTasks mutation.
type ToggleAllTasksArgs struct {
	Completed bool
}

// Tasks is the resolver for the tasks field.
func (r *Resolver) Tasks(ctx context.Context, args TasksArgs) ([]*TaskResolver, error) {
	tasks, err := r.Store.List(ctx, args.Search)
	if err != nil {
		return nil, err
	}
	return newTaskResolvers(tasks), nil
}

// Task is the resolver for the task field.
func (r *Resolver) Task(ctx context.Context, args IDArgs) (*TaskResolver, error) {
	t, err := r.Store.Get(ctx, string(args.ID))
	if errors.Is(err, task.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return newTaskResolver(t), nil
}

// AddTask is the resolver for the addTask field.
func (r *Resolver) AddTask(ctx context.Context, args AddTaskArgs) (*TaskResolver, error) {
	if err := task.ValidateTitle(args.Title); err != nil {
		return nil, inputError(err)
	}

	t, err := r.Store.Create(ctx, args.Title)
	if err != nil {
		return nil, err
	}

	r.logger().Debug("task added", zap.String("id", t.ID))
	return newTaskResolver(t), nil
}

// ToggleTask is the resolver for the toggleTask field.
func (r *Resolver) ToggleTask(ctx context.Context, args IDArgs) (*TaskResolver, error) {
	t, err := r.Store.Toggle(ctx, string(args.ID))
	if errors.Is(err, task.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	r.logger().Debug("task toggled", zap.String("id", t.ID), zap.Bool("completed", t.Completed))
	return newTaskResolver(t), nil
}

// DeleteTask is the resolver for the deleteTask field. Only a missing task
// maps to null; storage failures are reported as errors.
func (r *Resolver) DeleteTask(ctx context.Context, args IDArgs) (*TaskResolver, error) {
	t, err := r.Store.Delete(ctx, string(args.ID))
	if errors.Is(err, task.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	r.logger().Debug("task deleted", zap.String("id", t.ID))
	return newTaskResolver(t), nil
}

// UpdateTask is the resolver for the updateTask field.
func (r *Resolver) UpdateTask(ctx context.Context, args UpdateTaskArgs) (*TaskResolver, error) {
	if err := task.ValidateTitle(args.Title); err != nil {
		return nil, inputError(err)
	}

	t, err := r.Store.Rename(ctx, string(args.ID), args.Title)
	if errors.Is(err, task.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	r.logger().Debug("task renamed", zap.String("id", t.ID))
	return newTaskResolver(t), nil
}

// ToggleAllTasks is the resolver for the toggleAllTasks field.
func (r *Resolver) ToggleAllTasks(ctx context.Context, args ToggleAllTasksArgs) ([]*TaskResolver, error) {
	tasks, err := r.Store.SetAllCompleted(ctx, args.Completed)
	if err != nil {
		return nil, err
	}

	r.logger().Debug("all tasks updated", zap.Bool("completed", args.Completed), zap.Int("count", len(tasks)))
	return newTaskResolvers(tasks), nil
}
