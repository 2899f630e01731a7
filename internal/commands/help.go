package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"taskcli/internal/config"
	"taskcli/internal/exitcode"
	"taskcli/internal/service"
)

func init() {
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string      { return "help" }
func (c *HelpCmd) Aliases() []string { return nil }
func (c *HelpCmd) Synopsis() string  { return "Print usage" }
func (c *HelpCmd) Usage() string     { return "taskcli help" }
func (c *HelpCmd) NeedsStore() bool  { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, st service.Store, args []string, out, errOut io.Writer) int {
	fmt.Fprint(out, helpText)
	fmt.Fprintln(out, "\nCommands:")
	for _, cmd := range DefaultRegistry.All() {
		name := cmd.Name()
		if aliases := cmd.Aliases(); len(aliases) > 0 {
			name += " (" + strings.Join(aliases, ", ") + ")"
		}
		fmt.Fprintf(out, "  %-20s %s\n", name, cmd.Synopsis())
	}
	return exitcode.Success
}

const helpText = `Usage:
  taskcli                                        List all tasks
  taskcli add [common flags] <description...>
  taskcli update [common flags] <id> <description...>
  taskcli delete [common flags] <id>
  taskcli mark-todo [common flags] <id>
  taskcli mark-in-progress [common flags] <id>
  taskcli mark-done [common flags] <id>
  taskcli list [common flags] [TODO|IN_PROGRESS|DONE]
  taskcli export [common flags] [--format json|csv|pdf] [--status <s>] [--output <path>]
  taskcli board [common flags]
  taskcli push [common flags] [--list <list-name>]
  taskcli login [common flags]
  taskcli logout [common flags]
  taskcli help
  taskcli version

Common flags:
  --file <path>    Task file (default tasks.json in the working directory)
  --config <dir>   Override config directory
  --quiet          Suppress informational output
  --debug          Print debug logs to stderr
`
