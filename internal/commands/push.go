package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"taskcli/internal/backend/googletasks"
	"taskcli/internal/config"
	"taskcli/internal/exitcode"
	"taskcli/internal/service"
)

func init() {
	Register(&PushCmd{})
}

// MirrorFactory builds the remote mirror used by push.
var MirrorFactory = func(ctx context.Context, cfg *config.Config) (service.Mirror, error) {
	return googletasks.New(ctx, cfg)
}

// PushCmd implements the push command.
type PushCmd struct {
	listName string
	mirror   service.Mirror
}

// SetListName sets the remote list name (for testing).
func (c *PushCmd) SetListName(name string) {
	c.listName = name
}

// SetMirror bypasses MirrorFactory and the login check (for testing).
func (c *PushCmd) SetMirror(m service.Mirror) {
	c.mirror = m
}

func (c *PushCmd) Name() string      { return "push" }
func (c *PushCmd) Aliases() []string { return nil }
func (c *PushCmd) Synopsis() string  { return "Mirror tasks into a Google Tasks list" }
func (c *PushCmd) Usage() string     { return "taskcli push [--list <list-name>]" }
func (c *PushCmd) NeedsStore() bool  { return true }

func (c *PushCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.listName, "list", "", "")
	fs.StringVar(&c.listName, "l", "", "")
}

func (c *PushCmd) Run(ctx context.Context, cfg *config.Config, st service.Store, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		return usageError(errOut, fmt.Errorf("%w: unexpected argument: %s", service.ErrInvalidArgument, args[0]))
	}

	listName := c.listName
	if listName == "" {
		listName = cfg.GoogleList
	}

	mirror := c.mirror
	if mirror == nil {
		if !cfg.HasToken() {
			fmt.Fprintln(errOut, "error: not logged in (run: taskcli login)")
			return exitcode.AuthError
		}
		m, err := MirrorFactory(ctx, cfg)
		if err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.AuthError
		}
		mirror = m
	}

	tasks, err := st.Load(ctx)
	if err != nil {
		return storageFailure(errOut, err)
	}

	res, err := mirror.Push(ctx, listName, tasks)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		switch {
		case errors.Is(err, googletasks.ErrTokenRejected):
			return exitcode.AuthError
		case errors.Is(err, service.ErrInvalidArgument):
			return exitcode.UserError
		}
		return exitcode.BackendError
	}

	title := res.ListTitle
	if title == "" {
		title = listName
	}
	if cfg.Quiet {
		return exitcode.Success
	}
	fmt.Fprintf(out, "Pushed %d tasks to %s (created %d, updated %d, deleted %d)\n",
		res.Total(), title, res.Created, res.Updated, res.Deleted)
	return exitcode.Success
}
