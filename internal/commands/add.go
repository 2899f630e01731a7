package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskcli/internal/config"
	"taskcli/internal/exitcode"
	"taskcli/internal/service"
	"taskcli/internal/task"
)

func init() {
	Register(&AddCmd{})
}

// AddCmd implements the add command.
type AddCmd struct{}

func (c *AddCmd) Name() string      { return "add" }
func (c *AddCmd) Aliases() []string { return nil }
func (c *AddCmd) Synopsis() string  { return "Add a new task" }
func (c *AddCmd) Usage() string     { return "taskcli add <description...>" }
func (c *AddCmd) NeedsStore() bool  { return true }

func (c *AddCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *AddCmd) Run(ctx context.Context, cfg *config.Config, st service.Store, args []string, out, errOut io.Writer) int {
	desc, err := joinDescription(args)
	if err != nil {
		return usageError(errOut, err)
	}

	tasks, err := st.Load(ctx)
	if err != nil {
		return storageFailure(errOut, err)
	}

	tasks, added := task.Add(tasks, desc, cfg.Clock())
	if err := st.Save(ctx, tasks); err != nil {
		return storageFailure(errOut, err)
	}

	cfg.Log().Debug("task added", "id", added.ID)
	if !cfg.Quiet {
		fmt.Fprintf(out, "Task added successfully (ID: %d)\n", added.ID)
	}
	return exitcode.Success
}
