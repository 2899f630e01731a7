// Package service defines the backend-agnostic interfaces the commands use.
// Commands never touch files or the Google SDK directly.
package service

import (
	"context"

	"taskcli/internal/task"
)

// Store loads and saves the whole task collection.
type Store interface {
	// Load returns every task in insertion order.
	// A store that does not exist yet loads as an empty collection.
	Load(ctx context.Context) ([]task.Task, error)

	// Save replaces the stored collection with tasks.
	Save(ctx context.Context, tasks []task.Task) error
}

// Mirror pushes a copy of the local collection to a remote task list.
type Mirror interface {
	// Push makes the remote list named listName match tasks.
	Push(ctx context.Context, listName string, tasks []task.Task) (PushResult, error)
}
