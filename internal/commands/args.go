package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"taskcli/internal/config"
	"taskcli/internal/exitcode"
	"taskcli/internal/service"
	"taskcli/internal/task"
)

// ErrTaskIDRequired indicates no task id was provided.
var ErrTaskIDRequired = fmt.Errorf("%w: task id required", service.ErrInvalidArgument)

// ErrDescriptionRequired indicates the description argument is missing.
var ErrDescriptionRequired = fmt.Errorf("%w: description required", service.ErrInvalidArgument)

// ParseID parses an integer task id. Ids that match no task, such as 0,
// are reported as not found by the caller.
func ParseID(s string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: invalid task id: %s", service.ErrInvalidArgument, s)
	}
	return id, nil
}

// parseIDOnly expects exactly one argument: the task id.
func parseIDOnly(args []string) (int, error) {
	if len(args) == 0 {
		return 0, ErrTaskIDRequired
	}
	if len(args) > 1 {
		return 0, fmt.Errorf("%w: unexpected argument: %s", service.ErrInvalidArgument, args[1])
	}
	return ParseID(args[0])
}

// joinDescription joins args with spaces. An empty description is valid;
// only a missing argument is rejected.
func joinDescription(args []string) (string, error) {
	if len(args) == 0 {
		return "", ErrDescriptionRequired
	}
	return strings.Join(args, " "), nil
}

// usageError prints an invalid-argument error without the sentinel prefix.
func usageError(errOut io.Writer, err error) int {
	msg := strings.TrimPrefix(err.Error(), service.ErrInvalidArgument.Error()+": ")
	fmt.Fprintf(errOut, "error: %s\n", msg)
	return exitcode.UserError
}

// storageFailure reports a load or save failure. These abort the command.
func storageFailure(errOut io.Writer, err error) int {
	var se *service.StorageError
	if errors.As(err, &se) {
		fmt.Fprintf(errOut, "error: %v\n", se)
		return exitcode.StorageError
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		fmt.Fprintln(errOut, "error: cancelled")
		return exitcode.UserError
	}
	fmt.Fprintf(errOut, "error: storage: %v\n", err)
	return exitcode.StorageError
}

// mutation changes the collection and reports whether the target id exists.
type mutation func(tasks []task.Task, cfg *config.Config) ([]task.Task, bool)

// applyByID runs the shared load -> locate -> act -> save -> report flow.
// A missing id is reported on out and is not an error.
func applyByID(ctx context.Context, cfg *config.Config, st service.Store, id int, apply mutation, success string, out, errOut io.Writer) int {
	tasks, err := st.Load(ctx)
	if err != nil {
		return storageFailure(errOut, err)
	}

	updated, found := apply(tasks, cfg)
	if !found {
		cfg.Log().Debug("task not found", "id", id)
		fmt.Fprintf(out, "Task %d not found\n", id)
		return exitcode.Success
	}

	if err := st.Save(ctx, updated); err != nil {
		return storageFailure(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, success)
	}
	return exitcode.Success
}
