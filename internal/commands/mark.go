package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskcli/internal/config"
	"taskcli/internal/output"
	"taskcli/internal/service"
	"taskcli/internal/task"
)

func init() {
	for _, st := range task.Statuses {
		Register(NewMarkCmd(st))
	}
}

// MarkCmd implements mark-todo, mark-in-progress and mark-done.
type MarkCmd struct {
	status task.Status
}

// NewMarkCmd returns the command that moves a task to status.
func NewMarkCmd(status task.Status) *MarkCmd {
	return &MarkCmd{status: status}
}

func (c *MarkCmd) Name() string      { return "mark-" + output.StatusLabel(c.status) }
func (c *MarkCmd) Aliases() []string { return nil }
func (c *MarkCmd) Synopsis() string  { return "Mark a task as " + output.StatusLabel(c.status) }
func (c *MarkCmd) Usage() string     { return "taskcli " + c.Name() + " <id>" }
func (c *MarkCmd) NeedsStore() bool  { return true }

func (c *MarkCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *MarkCmd) Run(ctx context.Context, cfg *config.Config, st service.Store, args []string, out, errOut io.Writer) int {
	id, err := parseIDOnly(args)
	if err != nil {
		return usageError(errOut, err)
	}

	apply := func(tasks []task.Task, cfg *config.Config) ([]task.Task, bool) {
		return task.SetStatus(tasks, id, c.status, cfg.Clock())
	}
	msg := fmt.Sprintf("Task %d marked as %s", id, output.StatusLabel(c.status))
	return applyByID(ctx, cfg, st, id, apply, msg, out, errOut)
}
