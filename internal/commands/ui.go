package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"go.uber.org/zap"

	"taskdeck/internal/config"
	"taskdeck/internal/exitcode"
	"taskdeck/internal/service"
	"taskdeck/internal/tui"
)

func init() {
	Register(&UICmd{})
}

// UICmd starts the interactive front-end.
type UICmd struct{}

func (c *UICmd) Name() string       { return "ui" }
func (c *UICmd) Aliases() []string  { return []string{"tui"} }
func (c *UICmd) Synopsis() string   { return "Open the interactive task view" }
func (c *UICmd) Usage() string      { return "taskdeck ui" }
func (c *UICmd) NeedsBackend() bool { return true }

func (c *UICmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *UICmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, in io.Reader, out, errOut io.Writer) int {
	opts := tui.Options{
		Palette:        cfg.Palette,
		DefaultColor:   cfg.DefaultColor,
		GroupCompleted: cfg.GroupCompleted,
		Logger:         zap.L(),
	}
	if err := tui.Run(ctx, svc, opts, in, out); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.BackendError
	}
	return exitcode.Success
}
