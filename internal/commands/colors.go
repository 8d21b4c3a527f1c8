package commands

import (
	"context"
	"flag"
	"io"

	"taskdeck/internal/config"
	"taskdeck/internal/exitcode"
	"taskdeck/internal/output"
	"taskdeck/internal/service"
)

func init() {
	Register(&ColorsCmd{})
}

// ColorsCmd lists the configured palette.
type ColorsCmd struct{}

func (c *ColorsCmd) Name() string       { return "colors" }
func (c *ColorsCmd) Aliases() []string  { return []string{"colours"} }
func (c *ColorsCmd) Synopsis() string   { return "List task colors" }
func (c *ColorsCmd) Usage() string      { return "taskdeck colors" }
func (c *ColorsCmd) NeedsBackend() bool { return false }

func (c *ColorsCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ColorsCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, in io.Reader, out, errOut io.Writer) int {
	output.FormatPalette(out, cfg.Palette, cfg.DefaultColor)
	return exitcode.Success
}
