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
	Register(&DeleteCmd{})
}

// DeleteCmd implements the delete command.
type DeleteCmd struct{}

func (c *DeleteCmd) Name() string      { return "delete" }
func (c *DeleteCmd) Aliases() []string { return []string{"rm"} }
func (c *DeleteCmd) Synopsis() string  { return "Delete a task" }
func (c *DeleteCmd) Usage() string     { return "taskcli delete <id>" }
func (c *DeleteCmd) NeedsStore() bool  { return true }

func (c *DeleteCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *DeleteCmd) Run(ctx context.Context, cfg *config.Config, st service.Store, args []string, out, errOut io.Writer) int {
	id, err := parseIDOnly(args)
	if err != nil {
		return usageError(errOut, err)
	}

	apply := func(tasks []task.Task, _ *config.Config) ([]task.Task, bool) {
		return task.Delete(tasks, id)
	}
	return applyByID(ctx, cfg, st, id, apply, fmt.Sprintf("Task %d deleted successfully", id), out, errOut)
}
