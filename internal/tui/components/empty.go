package components

import "taskdeck/internal/output"

// EmptyState is shown when the loaded list has no tasks.
func EmptyState() string {
	return output.EmptyTitle + "\n" + Subtle.Render(output.EmptyHint)
}
