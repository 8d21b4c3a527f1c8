package tui

import (
	"fmt"
	"strings"

	"taskdeck/internal/editor"
	"taskdeck/internal/tasklist"
	"taskdeck/internal/tui/components"
)

const (
	listHelp = "j/k move • space toggle • d delete • enter edit • n new • r refresh • q quit"
	formHelp = "enter save • tab/shift+tab color • esc back"
)

// View implements tea.Model.
func (a *App) View() string {
	if a.view == ViewForm && a.form != nil {
		return a.formView()
	}
	return a.listView()
}

func (a *App) listView() string {
	var b strings.Builder

	counts := a.list.Counts()
	b.WriteString(components.Title.Render("Todo App"))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Tasks %d   Completed %s\n\n", counts.Total, counts.CompletedLabel())

	if msg := a.list.Err(); msg != "" {
		b.WriteString(components.ErrorBox.Render(msg))
		b.WriteString("\n\n")
	}

	switch {
	case a.list.State() == tasklist.StateLoading:
		b.WriteString(a.spinner.View() + " Loading tasks...\n")
	case a.list.Empty():
		b.WriteString(components.EmptyState())
		b.WriteString("\n")
	default:
		for i, task := range a.list.Display() {
			state := components.RowState{
				Selected: i == a.cursor,
				Deleting: a.deleting[task.ID],
			}
			b.WriteString(components.TaskRow(task, state, a.width))
			b.WriteString("\n")
		}
	}

	if a.confirmID != "" {
		if task, ok := a.list.Find(a.confirmID); ok {
			fmt.Fprintf(&b, "\nDelete %q? (y/n)\n", task.Title)
		}
	}

	b.WriteString("\n")
	b.WriteString(components.Subtle.Render(listHelp))
	b.WriteString("\n")
	return b.String()
}

func (a *App) formView() string {
	var b strings.Builder

	heading := "New Task"
	if a.form.Mode() == editor.ModeEdit {
		heading = "Edit Task"
	}
	b.WriteString(components.Title.Render(heading))
	b.WriteString("\n\n")

	switch {
	case a.form.Loading():
		b.WriteString(a.spinner.View() + " Loading task...\n")
	case !a.form.HasForm():
		b.WriteString(components.ErrorBox.Render(a.form.Message()))
		b.WriteString("\n")
	default:
		b.WriteString("Title\n")
		b.WriteString(a.input.View())
		b.WriteString("\n\nColor\n")
		b.WriteString(a.picker.View(a.form.Color()))
		b.WriteString("\n")
		if msg := a.form.Message(); msg != "" {
			b.WriteString("\n")
			b.WriteString(components.ErrorBox.Render(msg))
			b.WriteString("\n")
		}
		if a.form.Saving() {
			b.WriteString("\n" + a.spinner.View() + " Saving...\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(components.Subtle.Render(formHelp))
	b.WriteString("\n")
	return b.String()
}
