package tui

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"taskdeck/internal/service"
)

// Run starts the interactive UI and blocks until the user quits or ctx
// is cancelled.
func Run(ctx context.Context, svc service.Service, opts Options, in io.Reader, out io.Writer) error {
	p := tea.NewProgram(New(ctx, svc, opts),
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
