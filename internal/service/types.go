package service

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument marks bad command-line input.
var ErrInvalidArgument = errors.New("invalid argument")

// Storage operations reported by StorageError.
const (
	OpRead  = "read"
	OpWrite = "write"
)

// StorageError reports a failure to read or write the task store.
type StorageError struct {
	Op   string // OpRead or OpWrite
	Path string
	Err  error
}

func (e *StorageError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("storage %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// PushResult summarizes a mirror push.
type PushResult struct {
	ListTitle string
	Created   int
	Updated   int
	Deleted   int
}

// Total is the number of local tasks the remote list now reflects.
func (r PushResult) Total() int {
	return r.Created + r.Updated
}
