package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"taskdeck/internal/config"
	"taskdeck/internal/exitcode"
	"taskdeck/internal/service"
)

func init() {
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string       { return "help" }
func (c *HelpCmd) Aliases() []string  { return nil }
func (c *HelpCmd) Synopsis() string   { return "Print usage" }
func (c *HelpCmd) Usage() string      { return "taskdeck help" }
func (c *HelpCmd) NeedsBackend() bool { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, in io.Reader, out, errOut io.Writer) int {
	fmt.Fprint(out, usageText)
	writeCommands(out, DefaultRegistry)
	fmt.Fprint(out, referenceText)
	return exitcode.Success
}

// writeCommands lists each registered command with its aliases.
func writeCommands(out io.Writer, r *Registry) {
	fmt.Fprintln(out, "\nCommands:")
	for _, cmd := range r.All() {
		name := cmd.Name()
		if aliases := cmd.Aliases(); len(aliases) > 0 {
			name += " (" + strings.Join(aliases, ", ") + ")"
		}
		fmt.Fprintf(out, "  %-20s %s\n", name, cmd.Synopsis())
	}
}

const usageText = `Usage:
  taskdeck                                      List tasks
  taskdeck list [common flags]                  List tasks
  taskdeck add [common flags] [--color <color>] <title...>
  taskdeck create [common flags] [--color <color>] <title...>
  taskdeck edit [common flags] [--title <title>] [--color <color>] [--id] <ref>
  taskdeck done [common flags] [--id] <ref>
  taskdeck reopen [common flags] [--id] <ref>
  taskdeck rm [common flags] [--yes] [--id] <ref>
  taskdeck show [common flags] [--id] <ref>
  taskdeck colors [common flags]
  taskdeck ui [common flags]                    Interactive task view
  taskdeck login [common flags]                 Google Tasks backend only
  taskdeck logout [common flags]
  taskdeck help
  taskdeck version
`

const referenceText = `
Task references:
  <n>              Task number as printed by list
  <id>, --id <id>  Task ID

Common flags:
  --config <dir>   Override config directory
  --quiet          Suppress informational output
  --debug          Print debug logs to stderr

Environment:
  TASKDECK_API_URL   Task service address (default http://localhost:5000/api)
  TASKDECK_BACKEND   rest or googletasks
  TASKDECK_LOG_FILE  Write JSON logs to this file
`
