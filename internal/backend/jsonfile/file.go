// Package jsonfile implements service.Store on top of a local JSON file.
package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"taskcli/internal/logging"
	"taskcli/internal/service"
	"taskcli/internal/task"
)

// DefaultPath is the store location used when nothing else is configured.
// Relative paths resolve against the working directory.
const DefaultPath = "tasks.json"

// File stores the whole collection as a JSON array.
type File struct {
	path   string
	logger *log.Logger
}

// New returns a store backed by the file at path.
// The file does not need to exist.
func New(path string, logger *log.Logger) *File {
	if path == "" {
		path = DefaultPath
	}
	if logger == nil {
		logger = logging.Discard()
	}
	return &File{path: path, logger: logger}
}

// Path returns the file location.
func (f *File) Path() string {
	return f.path
}

// Load implements service.Store.
func (f *File) Load(ctx context.Context) ([]task.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		f.logger.Debug("store file missing, starting empty", "path", f.path)
		return []task.Task{}, nil
	}
	if err != nil {
		return nil, f.readErr(err)
	}

	tasks, err := decode(data)
	if err != nil {
		return nil, f.readErr(err)
	}

	f.logger.Debug("loaded tasks", "path", f.path, "count", len(tasks))
	return tasks, nil
}

// Save implements service.Store.
// The new content is written to a temporary file next to the real file and
// renamed over it. A symlinked path keeps its link, and an existing file
// keeps its permission bits.
func (f *File) Save(ctx context.Context, tasks []task.Task) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := encode(tasks)
	if err != nil {
		return f.writeErr(err)
	}

	target, mode, err := f.resolveTarget()
	if err != nil {
		return f.writeErr(err)
	}

	dir := filepath.Dir(target)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return f.writeErr(fmt.Errorf("create directory: %w", err))
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(target)+".*.tmp")
	if err != nil {
		return f.writeErr(err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return f.writeErr(err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return f.writeErr(err)
	}
	if err := os.Chmod(tmpPath, mode); err != nil {
		os.Remove(tmpPath)
		return f.writeErr(err)
	}
	if err := os.Rename(tmpPath, target); err != nil {
		os.Remove(tmpPath)
		return f.writeErr(err)
	}

	f.logger.Debug("saved tasks", "path", f.path, "count", len(tasks))
	return nil
}

// resolveTarget returns the file that Save replaces and the mode to give it.
// New files get 0644.
func (f *File) resolveTarget() (string, os.FileMode, error) {
	target, err := filepath.EvalSymlinks(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return f.path, 0644, nil
	}
	if err != nil {
		return "", 0, err
	}
	info, err := os.Stat(target)
	if err != nil {
		return "", 0, err
	}
	return target, info.Mode().Perm(), nil
}

func (f *File) readErr(err error) error {
	return &service.StorageError{Op: service.OpRead, Path: f.path, Err: err}
}

func (f *File) writeErr(err error) error {
	return &service.StorageError{Op: service.OpWrite, Path: f.path, Err: err}
}

// record is the on-disk shape of a task.
type record struct {
	ID          int         `json:"id"`
	Description string      `json:"description"`
	Status      task.Status `json:"status"`
	CreatedAt   Timestamp   `json:"created_at"`
	UpdatedAt   Timestamp   `json:"updated_at"`
}

func decode(data []byte) ([]task.Task, error) {
	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	if err := validate(doc); err != nil {
		return nil, err
	}

	var records []record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	tasks := make([]task.Task, 0, len(records))
	seen := make(map[int]bool, len(records))
	for i, r := range records {
		if seen[r.ID] {
			return nil, &ValidationError{Problems: []Problem{{
				Path:    fmt.Sprintf("[%d].id", i),
				Message: fmt.Sprintf("duplicate id %d", r.ID),
			}}}
		}
		seen[r.ID] = true
		tasks = append(tasks, task.Task{
			ID:          r.ID,
			Description: r.Description,
			Status:      r.Status,
			CreatedAt:   r.CreatedAt.Time,
			UpdatedAt:   r.UpdatedAt.Time,
		})
	}
	return tasks, nil
}

// Encode renders tasks in the store file format: an indented JSON array
// followed by a newline.
func Encode(tasks []task.Task) ([]byte, error) {
	return encode(tasks)
}

func encode(tasks []task.Task) ([]byte, error) {
	records := make([]record, 0, len(tasks))
	for _, t := range tasks {
		records = append(records, record{
			ID:          t.ID,
			Description: t.Description,
			Status:      t.Status,
			CreatedAt:   Timestamp{t.CreatedAt},
			UpdatedAt:   Timestamp{t.UpdatedAt},
		})
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal: %w", err)
	}
	return append(data, '\n'), nil
}
