package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"taskcli/internal/config"
	"taskcli/internal/exitcode"
	"taskcli/internal/export"
	"taskcli/internal/service"
	"taskcli/internal/task"
)

func init() {
	Register(&ExportCmd{})
}

// ExportCmd implements the export command.
type ExportCmd struct {
	format string
	output string
	status string
}

// SetFormat sets the output format (for testing).
func (c *ExportCmd) SetFormat(format string) {
	c.format = format
}

// SetOutput sets the destination file (for testing).
func (c *ExportCmd) SetOutput(path string) {
	c.output = path
}

// SetStatus sets the status filter (for testing).
func (c *ExportCmd) SetStatus(status string) {
	c.status = status
}

func (c *ExportCmd) Name() string      { return "export" }
func (c *ExportCmd) Aliases() []string { return nil }
func (c *ExportCmd) Synopsis() string  { return "Export tasks as json, csv, or pdf" }
func (c *ExportCmd) Usage() string {
	return "taskcli export [--format json|csv|pdf] [--output <path>] [--status <status>]"
}
func (c *ExportCmd) NeedsStore() bool { return true }

func (c *ExportCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.format, "format", export.FormatJSON, "")
	fs.StringVar(&c.output, "output", "", "")
	fs.StringVar(&c.output, "o", "", "")
	fs.StringVar(&c.status, "status", "", "")
}

func (c *ExportCmd) Run(ctx context.Context, cfg *config.Config, st service.Store, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		return usageError(errOut, fmt.Errorf("%w: unexpected argument: %s", service.ErrInvalidArgument, args[0]))
	}

	name := c.format
	if name == "" {
		name = export.FormatJSON
	}
	format, err := export.ParseFormat(name)
	if err != nil {
		return usageError(errOut, err)
	}
	if export.IsBinary(format) && c.output == "" {
		fmt.Fprintf(errOut, "error: --output is required for %s\n", format)
		return exitcode.UserError
	}

	if c.output != "" && samePath(c.output, cfg.StorePath) {
		fmt.Fprintf(errOut, "error: --output must not be the task file %s\n", cfg.StorePath)
		return exitcode.UserError
	}

	var filter *task.Status
	if c.status != "" {
		s, err := task.ParseStatus(c.status)
		if err != nil {
			return usageError(errOut, err)
		}
		filter = &s
	}

	tasks, err := st.Load(ctx)
	if err != nil {
		return storageFailure(errOut, err)
	}
	tasks = task.Filter(tasks, filter)

	if c.output == "" {
		if err := export.Write(out, format, tasks); err != nil {
			fmt.Fprintf(errOut, "error: export: %v\n", err)
			return exitcode.StorageError
		}
		return exitcode.Success
	}

	if err := writeExportFile(c.output, format, tasks); err != nil {
		return storageFailure(errOut, &service.StorageError{Op: service.OpWrite, Path: c.output, Err: err})
	}
	cfg.Log().Debug("exported tasks", "format", format, "path", c.output, "count", len(tasks))
	if !cfg.Quiet {
		fmt.Fprintf(out, "Exported %d tasks to %s\n", len(tasks), c.output)
	}
	return exitcode.Success
}

// samePath reports whether a and b name the same file, following symlinks
// when both exist.
func samePath(a, b string) bool {
	if filepath.Clean(a) == filepath.Clean(b) {
		return true
	}
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA == nil && errB == nil && absA == absB {
		return true
	}
	infoA, errA := os.Stat(a)
	infoB, errB := os.Stat(b)
	return errA == nil && errB == nil && os.SameFile(infoA, infoB)
}

func writeExportFile(path, format string, tasks []task.Task) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := export.Write(f, format, tasks); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
