// Package commands provides the command interface and implementations.
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
	"taskdeck/internal/tasklist"
)

// Command defines the interface for CLI commands.
type Command interface {
	// Name returns the primary command name.
	Name() string

	// Aliases returns alternative names for the command.
	Aliases() []string

	// Synopsis returns a short description for help output.
	Synopsis() string

	// Usage returns the usage string for help output.
	Usage() string

	// NeedsBackend returns true if the command talks to the task service.
	// Commands like help, version, colors, login and logout return false.
	NeedsBackend() bool

	// RegisterFlags registers command-specific flags.
	RegisterFlags(fs *flag.FlagSet)

	// Run executes the command.
	// cfg is always provided (config dir, paths, palette).
	// svc is nil if NeedsBackend() returns false.
	// args contains positional arguments after flag parsing.
	// in is read for interactive confirmation.
	// Returns exit code.
	Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, in io.Reader, out, errOut io.Writer) int
}

// exitCodeFor maps a service error to an exit code.
func exitCodeFor(err error) int {
	switch service.KindOf(err) {
	case service.KindValidation, service.KindNotFound:
		return exitcode.UserError
	default:
		return exitcode.BackendError
	}
}

// fail prints the user-facing message of err and returns its exit code.
// The underlying cause has already been logged where it occurred.
func fail(errOut io.Writer, err error) int {
	code := exitCodeFor(err)
	if code == exitcode.BackendError {
		fmt.Fprintf(errOut, "error: backend error: %s\n", service.MessageOf(err))
	} else {
		fmt.Fprintf(errOut, "error: %s\n", service.MessageOf(err))
	}
	return code
}

// newList builds a list controller for one command invocation.
func newList(cfg *config.Config, svc service.Service) *tasklist.Controller {
	return tasklist.New(svc, zap.L(), tasklist.WithGroupCompleted(cfg.GroupCompleted))
}

// printOK prints "ok" unless quiet.
func printOK(cfg *config.Config, out io.Writer) {
	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
}
