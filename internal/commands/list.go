package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskcli/internal/config"
	"taskcli/internal/exitcode"
	"taskcli/internal/output"
	"taskcli/internal/service"
	"taskcli/internal/task"
)

func init() {
	Register(&ListCmd{})
}

// ListCmd implements the list command.
// Handles both `taskcli` (no args) and `taskcli list <status>`.
type ListCmd struct{}

func (c *ListCmd) Name() string      { return "list" }
func (c *ListCmd) Aliases() []string { return []string{"ls"} }
func (c *ListCmd) Synopsis() string  { return "List tasks" }
func (c *ListCmd) Usage() string     { return "taskcli list [TODO|IN_PROGRESS|DONE]" }
func (c *ListCmd) NeedsStore() bool  { return true }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ListCmd) Run(ctx context.Context, cfg *config.Config, st service.Store, args []string, out, errOut io.Writer) int {
	filter, err := parseStatusFilter(args)
	if err != nil {
		return usageError(errOut, err)
	}

	tasks, err := st.Load(ctx)
	if err != nil {
		return storageFailure(errOut, err)
	}

	matched := task.Filter(tasks, filter)
	if len(matched) == 0 {
		if !cfg.Quiet {
			fmt.Fprintln(out, output.NoTasks)
		}
		return exitcode.Success
	}

	for _, t := range matched {
		output.FormatTask(out, t)
	}
	return exitcode.Success
}

// parseStatusFilter accepts zero or one status argument.
func parseStatusFilter(args []string) (*task.Status, error) {
	switch len(args) {
	case 0:
		return nil, nil
	case 1:
		st, err := task.ParseStatus(args[0])
		if err != nil {
			return nil, fmt.Errorf("%w: %v", service.ErrInvalidArgument, err)
		}
		return &st, nil
	default:
		return nil, fmt.Errorf("%w: unexpected argument: %s", service.ErrInvalidArgument, args[1])
	}
}
