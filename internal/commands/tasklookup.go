package commands

import (
	"context"
	"fmt"

	"taskdeck/internal/service"
	"taskdeck/internal/tasklist"
)

// findTask loads the list and resolves ref against it. Numbers follow the
// display order printed by the list command.
func findTask(ctx context.Context, list *tasklist.Controller, ref TaskRef) (service.Task, error) {
	if err := list.Refresh(ctx); err != nil {
		return service.Task{}, err
	}

	if ref.ID != "" {
		task, ok := list.Find(ref.ID)
		if !ok {
			return service.Task{}, service.NotFoundError(fmt.Sprintf("task not found: %s", ref.ID))
		}
		return task, nil
	}

	task, ok := list.At(ref.Num)
	if !ok {
		return service.Task{}, service.NotFoundError(fmt.Sprintf("task number out of range: %d", ref.Num))
	}
	return task, nil
}
