package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskdeck/internal/config"
	"taskdeck/internal/exitcode"
	"taskdeck/internal/output"
	"taskdeck/internal/service"
)

func init() {
	Register(&ListCmd{})
}

// ListCmd implements the list command.
// Handles both `taskdeck` (no args) and `taskdeck list`.
type ListCmd struct{}

func (c *ListCmd) Name() string       { return "list" }
func (c *ListCmd) Aliases() []string  { return []string{"ls"} }
func (c *ListCmd) Synopsis() string   { return "List tasks" }
func (c *ListCmd) Usage() string      { return "taskdeck list" }
func (c *ListCmd) NeedsBackend() bool { return true }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ListCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, in io.Reader, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	list := newList(cfg, svc)
	if err := list.Refresh(ctx); err != nil {
		fmt.Fprintf(errOut, "error: %s\n", list.Err())
		return exitCodeFor(err)
	}

	if list.Empty() {
		if !cfg.Quiet {
			output.FormatEmpty(out)
		}
		return exitcode.Success
	}

	if !cfg.Quiet {
		output.FormatSummary(out, list.Counts())
	}
	output.FormatTasks(out, list.Display())
	return exitcode.Success
}
