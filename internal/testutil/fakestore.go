// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"sync"

	"taskcli/internal/service"
	"taskcli/internal/task"
)

// FakeStore is an in-memory implementation of service.Store for testing.
type FakeStore struct {
	mu    sync.RWMutex
	tasks []task.Task

	// Error injection for testing
	LoadErr error
	SaveErr error

	// Saves counts successful Save calls.
	Saves int
}

// NewFakeStore creates a FakeStore holding tasks.
func NewFakeStore(tasks ...task.Task) *FakeStore {
	return &FakeStore{tasks: append([]task.Task(nil), tasks...)}
}

// Load implements service.Store.
func (f *FakeStore) Load(ctx context.Context) ([]task.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.LoadErr != nil {
		return nil, f.LoadErr
	}
	return append([]task.Task{}, f.tasks...), nil
}

// Save implements service.Store.
func (f *FakeStore) Save(ctx context.Context, tasks []task.Task) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.SaveErr != nil {
		return f.SaveErr
	}
	f.tasks = append([]task.Task(nil), tasks...)
	f.Saves++
	return nil
}

// Tasks returns the stored collection.
func (f *FakeStore) Tasks() []task.Task {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return append([]task.Task(nil), f.tasks...)
}

// FakeMirror records pushes instead of calling a remote API.
type FakeMirror struct {
	mu sync.Mutex

	// Result is returned from every successful Push.
	Result service.PushResult
	// PushErr, when set, is returned from Push.
	PushErr error

	// Lists and Pushed record each call.
	Lists  []string
	Pushed [][]task.Task
}

// Push implements service.Mirror.
func (f *FakeMirror) Push(ctx context.Context, listName string, tasks []task.Task) (service.PushResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Lists = append(f.Lists, listName)
	f.Pushed = append(f.Pushed, append([]task.Task(nil), tasks...))
	if f.PushErr != nil {
		return service.PushResult{}, f.PushErr
	}
	res := f.Result
	if res.ListTitle == "" {
		res.ListTitle = listName
	}
	return res, nil
}
