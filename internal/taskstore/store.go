// Package taskstore persists tasks in a relational database through gorm.
package taskstore

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/hmans/tasks/internal/task"
)

// ErrNotFound is returned when no task has the requested ID.
var ErrNotFound = task.ErrNotFound

// likeEscaper escapes LIKE wildcards so a search matches literally.
// '!' is used as the escape character because it needs no quoting in any
// of the supported dialects.
var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// Store reads and writes task rows. It is safe for concurrent use; the
// underlying connection pool is shared by all callers.
type Store struct {
	db    *gorm.DB
	clock *Clock
}

// Option configures a Store.
type Option func(*Store)

// WithClock replaces the clock used for createdAt/updatedAt.
func WithClock(c *Clock) Option {
	return func(s *Store) {
		s.clock = c
	}
}

// New wraps an open gorm connection.
func New(db *gorm.DB, opts ...Option) *Store {
	s := &Store{
		db:    db,
		clock: NewClock(nil),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Migrate creates or updates the tasks table.
func (s *Store) Migrate(ctx context.Context) error {
	if err := s.db.WithContext(ctx).AutoMigrate(&task.Task{}); err != nil {
		return fmt.Errorf("migrating tasks table: %w", err)
	}
	return nil
}

// Ping checks that the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close releases the connection pool.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// List returns all tasks, or only those whose title contains search when it
// is non-empty. Tasks are ordered by creation time, then ID.
func (s *Store) List(ctx context.Context, search *string) ([]*task.Task, error) {
	return listTasks(s.db.WithContext(ctx), search)
}

func listTasks(db *gorm.DB, search *string) ([]*task.Task, error) {
	q := db.Model(&task.Task{})
	if search != nil && *search != "" {
		q = q.Where("title LIKE ? ESCAPE '!'", "%"+likeEscaper.Replace(*search)+"%")
	}

	tasks := []*task.Task{}
	if err := q.Order("created_at ASC").Order("id ASC").Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	return tasks, nil
}

// Get returns the task with the given ID, or ErrNotFound.
func (s *Store) Get(ctx context.Context, id string) (*task.Task, error) {
	var t task.Task
	if err := s.db.WithContext(ctx).Take(&t, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("loading task %s: %w", id, err)
	}
	return &t, nil
}

// Create inserts a new, incomplete task. createdAt and updatedAt are equal.
func (s *Store) Create(ctx context.Context, title string) (*task.Task, error) {
	now := s.clock.Now()
	t := &task.Task{
		ID:        task.NewID(),
		Title:     title,
		Completed: false,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.db.WithContext(ctx).Create(t).Error; err != nil {
		return nil, fmt.Errorf("creating task: %w", err)
	}
	return t, nil
}

// Toggle flips the completed flag of one task in a single UPDATE statement,
// so concurrent toggles each take effect.
func (s *Store) Toggle(ctx context.Context, id string) (*task.Task, error) {
	return s.updateOne(ctx, id, map[string]any{
		"completed": gorm.Expr("NOT completed"),
	})
}

// Rename replaces the title of one task.
func (s *Store) Rename(ctx context.Context, id, title string) (*task.Task, error) {
	return s.updateOne(ctx, id, map[string]any{
		"title": title,
	})
}

// updateOne applies values plus a fresh updated_at to the row with id and
// returns the row as written. Both steps share one transaction.
func (s *Store) updateOne(ctx context.Context, id string, values map[string]any) (*task.Task, error) {
	values["updated_at"] = s.clock.Now()

	var out task.Task
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&task.Task{}).Where("id = ?", id).Updates(values)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return tx.Take(&out, "id = ?", id).Error
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("updating task %s: %w", id, err)
	}
	return &out, nil
}

// Delete removes one task and returns it as it was. A missing task yields
// ErrNotFound; any other failure is returned as is.
func (s *Store) Delete(ctx context.Context, id string) (*task.Task, error) {
	var out task.Task
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Take(&out, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		res := tx.Delete(&task.Task{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("deleting task %s: %w", id, err)
	}
	return &out, nil
}

// SetAllCompleted sets completed on every task with one UPDATE and returns
// the full, unfiltered list afterwards.
func (s *Store) SetAllCompleted(ctx context.Context, completed bool) ([]*task.Task, error) {
	var tasks []*task.Task
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).
			Model(&task.Task{}).
			Updates(map[string]any{
				"completed":  completed,
				"updated_at": s.clock.Now(),
			}).Error
		if err != nil {
			return err
		}

		tasks, err = listTasks(tx, nil)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("updating all tasks: %w", err)
	}
	return tasks, nil
}
