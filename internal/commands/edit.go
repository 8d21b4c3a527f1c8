package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"taskdeck/internal/config"
	"taskdeck/internal/editor"
	"taskdeck/internal/exitcode"
	"taskdeck/internal/service"
)

func init() {
	Register(&EditCmd{})
}

// optionalString is a string flag that records whether it was given.
type optionalString struct {
	value string
	set   bool
}

func (s *optionalString) String() string { return s.value }

func (s *optionalString) Set(v string) error {
	s.value = v
	s.set = true
	return nil
}

// EditCmd implements the edit command.
type EditCmd struct {
	title optionalString
	color optionalString
	byID  bool
}

func (c *EditCmd) Name() string       { return "edit" }
func (c *EditCmd) Aliases() []string  { return nil }
func (c *EditCmd) Synopsis() string   { return "Change the title or color of a task" }
func (c *EditCmd) Usage() string      { return "taskdeck edit [--title <title>] [--color <color>] [--id] <ref>" }
func (c *EditCmd) NeedsBackend() bool { return true }

func (c *EditCmd) RegisterFlags(fs *flag.FlagSet) {
	c.title, c.color = optionalString{}, optionalString{}
	fs.Var(&c.title, "title", "")
	fs.Var(&c.title, "t", "")
	fs.Var(&c.color, "color", "")
	fs.Var(&c.color, "c", "")
	fs.BoolVar(&c.byID, "id", false, "")
}

func (c *EditCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, in io.Reader, out, errOut io.Writer) int {
	ref, err := ParseTaskRef(args, c.byID)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	if !c.title.set && !c.color.set {
		fmt.Fprintln(errOut, "error: nothing to change (use --title or --color)")
		return exitcode.UserError
	}

	var ed *editor.Editor
	if ref.ID != "" {
		ed = editor.NewEdit(svc, cfg.Palette, zap.L(), ref.ID)
		if err := ed.Load(ctx); err != nil {
			return fail(errOut, err)
		}
	} else {
		// Seed the form from the listing that resolved the number.
		list := newList(cfg, svc)
		task, err := findTask(ctx, list, ref)
		if err != nil {
			return fail(errOut, err)
		}
		ed = editor.NewEdit(svc, cfg.Palette, zap.L(), task.ID)
		ed.BeginLoad()
		ed.FinishLoad(list.Tasks(), nil)
	}
	if c.title.set {
		ed.SetTitle(c.title.value)
	}
	if c.color.set {
		if err := ed.SetColor(strings.ToLower(c.color.value)); err != nil {
			return fail(errOut, err)
		}
	}

	if _, err := ed.Submit(ctx); err != nil {
		return fail(errOut, err)
	}

	printOK(cfg, out)
	return exitcode.Success
}
