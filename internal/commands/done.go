package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskdeck/internal/config"
	"taskdeck/internal/exitcode"
	"taskdeck/internal/service"
)

func init() {
	Register(&DoneCmd{})
	Register(&ReopenCmd{})
}

// DoneCmd implements the done command.
type DoneCmd struct {
	byID bool
}

func (c *DoneCmd) Name() string       { return "done" }
func (c *DoneCmd) Aliases() []string  { return nil }
func (c *DoneCmd) Synopsis() string   { return "Mark a task completed" }
func (c *DoneCmd) Usage() string      { return "taskdeck done [--id] <ref>" }
func (c *DoneCmd) NeedsBackend() bool { return true }

func (c *DoneCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.byID, "id", false, "")
}

func (c *DoneCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, in io.Reader, out, errOut io.Writer) int {
	return runToggle(ctx, cfg, svc, args, c.byID, true, out, errOut)
}

// ReopenCmd marks a completed task as not completed.
type ReopenCmd struct {
	byID bool
}

func (c *ReopenCmd) Name() string       { return "reopen" }
func (c *ReopenCmd) Aliases() []string  { return []string{"undone"} }
func (c *ReopenCmd) Synopsis() string   { return "Mark a task not completed" }
func (c *ReopenCmd) Usage() string      { return "taskdeck reopen [--id] <ref>" }
func (c *ReopenCmd) NeedsBackend() bool { return true }

func (c *ReopenCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.byID, "id", false, "")
}

func (c *ReopenCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, in io.Reader, out, errOut io.Writer) int {
	return runToggle(ctx, cfg, svc, args, c.byID, false, out, errOut)
}

// runToggle is the shared implementation for done and reopen.
func runToggle(ctx context.Context, cfg *config.Config, svc service.Service, args []string, byID, completed bool, out, errOut io.Writer) int {
	ref, err := ParseTaskRef(args, byID)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	list := newList(cfg, svc)
	task, err := findTask(ctx, list, ref)
	if err != nil {
		return fail(errOut, err)
	}

	if err := list.Toggle(ctx, task.ID, completed); err != nil {
		return fail(errOut, err)
	}

	printOK(cfg, out)
	return exitcode.Success
}
