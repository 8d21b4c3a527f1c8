// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"
	"time"

	"taskdeck/internal/service"
	"taskdeck/internal/tasklist"
)

// Empty-list placeholder lines.
const (
	EmptyTitle = "You don't have any tasks registered yet."
	EmptyHint  = "Create tasks and organize your to-do items."
)

// FormatSummary writes the counts line.
// Format: "Tasks {N}  Completed {label}\n"
func FormatSummary(w io.Writer, counts tasklist.Counts) {
	fmt.Fprintf(w, "Tasks %d  Completed %s\n", counts.Total, counts.CompletedLabel())
}

// FormatTask formats a task line.
// Format: "{N:>4}  [x] {COLOR:<6}  {TITLE}\n"
func FormatTask(w io.Writer, num int, task service.Task) {
	fmt.Fprintf(w, "%4d  %s %-6s  %s\n", num, checkbox(task.Completed), task.Color, normalizeTitle(task.Title))
}

// FormatTasks writes one numbered line per task, numbering from 1.
func FormatTasks(w io.Writer, tasks []service.Task) {
	for i, task := range tasks {
		FormatTask(w, i+1, task)
	}
}

// FormatEmpty writes the empty-list placeholder.
func FormatEmpty(w io.Writer) {
	fmt.Fprintln(w, EmptyTitle)
	fmt.Fprintln(w, EmptyHint)
}

// FormatTaskDetail writes every field of a task, one per line.
func FormatTaskDetail(w io.Writer, task service.Task) {
	completed := "no"
	if task.Completed {
		completed = "yes"
	}
	fmt.Fprintf(w, "ID:         %s\n", task.ID)
	fmt.Fprintf(w, "Title:      %s\n", normalizeTitle(task.Title))
	fmt.Fprintf(w, "Color:      %s\n", task.Color)
	fmt.Fprintf(w, "Completed:  %s\n", completed)
	fmt.Fprintf(w, "Created:    %s\n", formatTime(task.CreatedAt))
	fmt.Fprintf(w, "Updated:    %s\n", formatTime(task.UpdatedAt))
}

// FormatPalette lists the palette, marking the default colour.
func FormatPalette(w io.Writer, palette service.Palette, defaultColor string) {
	for _, color := range palette {
		if color == defaultColor {
			fmt.Fprintf(w, "%s [default]\n", color)
			continue
		}
		fmt.Fprintln(w, color)
	}
}

func checkbox(completed bool) string {
	if completed {
		return "[x]"
	}
	return "[ ]"
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.UTC().Format(time.RFC3339)
}

// normalizeTitle normalizes a task title for display.
// - Empty or whitespace-only titles become "(untitled)"
// - Newlines are replaced with spaces
func normalizeTitle(title string) string {
	title = strings.ReplaceAll(title, "\r", " ")
	title = strings.ReplaceAll(title, "\n", " ")

	if strings.TrimSpace(title) == "" {
		return "(untitled)"
	}
	return title
}
