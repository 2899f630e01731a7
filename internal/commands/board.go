package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"taskcli/internal/config"
	"taskcli/internal/exitcode"
	"taskcli/internal/service"
	"taskcli/internal/ui"
)

func init() {
	Register(&BoardCmd{})
}

// BoardRunner drives an interactive board until the user quits.
type BoardRunner func(ctx context.Context, b *ui.Board, out io.Writer) (*ui.Board, error)

// BoardCmd implements the board command.
type BoardCmd struct {
	runner   BoardRunner
	terminal func(io.Writer) bool
}

// SetRunner replaces the interactive program and terminal check (for testing).
func (c *BoardCmd) SetRunner(r BoardRunner) {
	c.runner = r
	c.terminal = func(io.Writer) bool { return true }
}

func (c *BoardCmd) Name() string      { return "board" }
func (c *BoardCmd) Aliases() []string { return []string{"tui"} }
func (c *BoardCmd) Synopsis() string  { return "Open the interactive task board" }
func (c *BoardCmd) Usage() string     { return "taskcli board" }
func (c *BoardCmd) NeedsStore() bool  { return true }

func (c *BoardCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *BoardCmd) Run(ctx context.Context, cfg *config.Config, st service.Store, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		return usageError(errOut, fmt.Errorf("%w: unexpected argument: %s", service.ErrInvalidArgument, args[0]))
	}

	terminal := c.terminal
	if terminal == nil {
		terminal = ui.IsTTY
	}
	if !terminal(out) {
		fmt.Fprintln(errOut, "error: board requires a terminal")
		return exitcode.UserError
	}

	tasks, err := st.Load(ctx)
	if err != nil {
		return storageFailure(errOut, err)
	}

	runner := c.runner
	if runner == nil {
		runner = func(ctx context.Context, b *ui.Board, out io.Writer) (*ui.Board, error) {
			return ui.Run(ctx, b, os.Stdin, out)
		}
	}

	board, err := runner(ctx, ui.NewBoard(tasks, cfg.Clock), out)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			fmt.Fprintln(errOut, "error: cancelled")
			return exitcode.UserError
		}
		fmt.Fprintf(errOut, "error: board: %v\n", err)
		return exitcode.UserError
	}

	if !board.Changed() {
		cfg.Log().Debug("board closed without changes")
		return exitcode.Success
	}
	if err := st.Save(ctx, board.Tasks()); err != nil {
		return storageFailure(errOut, err)
	}
	if !cfg.Quiet {
		fmt.Fprintln(out, "Board changes saved")
	}
	return exitcode.Success
}
