// Package service defines the backend-agnostic interface for task operations.
package service

import "context"

// Service defines the interface for task backend operations.
// Controllers and commands never import a backend package directly;
// the dispatcher injects one.
type Service interface {
	// ListTasks returns the full current set of tasks in service order.
	ListTasks(ctx context.Context) ([]Task, error)

	// CreateTask creates a task and returns it with its assigned ID and timestamps.
	CreateTask(ctx context.Context, in CreateTaskInput) (Task, error)

	// UpdateTask applies a partial patch. Returns a KindNotFound error
	// if id does not exist.
	UpdateTask(ctx context.Context, id string, in UpdateTaskInput) (Task, error)

	// DeleteTask deletes a task. Deleting an absent id is an error (KindNotFound).
	DeleteTask(ctx context.Context, id string) error

	// ToggleTask sets the completion flag. Equivalent to
	// UpdateTask(id, UpdateTaskInput{Completed: &completed}).
	ToggleTask(ctx context.Context, id string, completed bool) (Task, error)
}
