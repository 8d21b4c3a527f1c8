package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"taskdeck/internal/service"
)

// RowState is the per-row view state.
type RowState struct {
	Selected bool
	Deleting bool
}

// Intent is what a key press on a row asks for.
type Intent int

const (
	IntentNone Intent = iota
	IntentToggle
	IntentDelete
	IntentSelect
)

// RowIntent maps a key to a row intent. Toggle and delete are ignored
// while the row's delete is in flight.
func RowIntent(key string, deleting bool) Intent {
	switch key {
	case " ", "space", "x":
		if deleting {
			return IntentNone
		}
		return IntentToggle
	case "d":
		if deleting {
			return IntentNone
		}
		return IntentDelete
	case "enter":
		return IntentSelect
	}
	return IntentNone
}

// TaskRow renders one task: cursor, checkbox, colour marker and title.
// width limits the rendered line when positive.
func TaskRow(task service.Task, state RowState, width int) string {
	cursor := "  "
	if state.Selected {
		cursor = Cursor.Render("> ")
	}

	box := "[ ]"
	if task.Completed {
		box = "[x]"
	}

	marker := lipgloss.NewStyle().Foreground(Swatch(task.Color)).Render(Marker)

	title := strings.ReplaceAll(task.Title, "\n", " ")
	if task.Completed {
		title = Done.Render(title)
	}

	row := cursor + box + " " + marker + " " + title
	if state.Deleting {
		row = Faint.Render(row + " (deleting)")
	}
	if width > 0 {
		row = lipgloss.NewStyle().MaxWidth(width).Render(row)
	}
	return row
}
