// Package task defines the Task entity and the rules a task title must satisfy.
package task

import (
	"errors"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// IDAlphabet is the set of characters used for generated task IDs.
const IDAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// IDLength is the length of generated task IDs.
const IDLength = 12

// ErrNotFound is returned when no task has the requested ID.
var ErrNotFound = errors.New("task not found")

// Task is a single to-do item. It doubles as the gorm model for the tasks table.
type Task struct {
	ID        string    `gorm:"primaryKey;size:32" json:"id"`
	Title     string    `gorm:"type:text;not null" json:"title"`
	Completed bool      `gorm:"not null;default:false" json:"completed"`
	CreatedAt time.Time `gorm:"not null;index" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null" json:"updatedAt"`
}

// TableName pins the table name regardless of gorm's naming strategy.
func (Task) TableName() string {
	return "tasks"
}

// NewID returns a fresh random task ID.
func NewID() string {
	return gonanoid.MustGenerate(IDAlphabet, IDLength)
}
