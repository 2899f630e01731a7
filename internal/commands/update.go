package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskcli/internal/config"
	"taskcli/internal/service"
	"taskcli/internal/task"
)

func init() {
	Register(&UpdateCmd{})
}

// UpdateCmd implements the update command.
type UpdateCmd struct{}

func (c *UpdateCmd) Name() string      { return "update" }
func (c *UpdateCmd) Aliases() []string { return nil }
func (c *UpdateCmd) Synopsis() string  { return "Change a task's description" }
func (c *UpdateCmd) Usage() string     { return "taskcli update <id> <description...>" }
func (c *UpdateCmd) NeedsStore() bool  { return true }

func (c *UpdateCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *UpdateCmd) Run(ctx context.Context, cfg *config.Config, st service.Store, args []string, out, errOut io.Writer) int {
	if len(args) == 0 {
		return usageError(errOut, ErrTaskIDRequired)
	}
	id, err := ParseID(args[0])
	if err != nil {
		return usageError(errOut, err)
	}
	desc, err := joinDescription(args[1:])
	if err != nil {
		return usageError(errOut, err)
	}

	apply := func(tasks []task.Task, cfg *config.Config) ([]task.Task, bool) {
		return task.Update(tasks, id, desc, cfg.Clock())
	}
	return applyByID(ctx, cfg, st, id, apply, fmt.Sprintf("Task %d updated successfully", id), out, errOut)
}
