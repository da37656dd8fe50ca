package graph

import (
	"context"

	"go.uber.org/zap"

	"github.com/hmans/tasks/internal/task"
)

// TaskStore is the persistence the resolvers need. taskstore.Store
// implements it; tests substitute their own.
type TaskStore interface {
	List(ctx context.Context, search *string) ([]*task.Task, error)
	Get(ctx context.Context, id string) (*task.Task, error)
	Create(ctx context.Context, title string) (*task.Task, error)
	Toggle(ctx context.Context, id string) (*task.Task, error)
	Rename(ctx context.Context, id, title string) (*task.Task, error)
	Delete(ctx context.Context, id string) (*task.Task, error)
	SetAllCompleted(ctx context.Context, completed bool) ([]*task.Task, error)
}

// Resolver is the root resolver for the GraphQL schema.
// It holds the store all queries and mutations go through.
type Resolver struct {
	Store TaskStore
	Log   *zap.Logger
}

// NewResolver returns a Resolver backed by store.
func NewResolver(store TaskStore, log *zap.Logger) *Resolver {
	if log == nil {
		log = zap.NewNop()
	}
	return &Resolver{Store: store, Log: log}
}

func (r *Resolver) logger() *zap.Logger {
	if r.Log == nil {
		return zap.NewNop()
	}
	return r.Log
}
