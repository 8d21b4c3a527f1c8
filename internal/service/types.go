// Package service defines the backend-agnostic interface for task operations.
package service

import "time"

// Task represents a single task item as returned by the remote service.
// ID, CreatedAt and UpdatedAt are assigned by the service.
type Task struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Color     string    `json:"color"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CreateTaskInput is the payload for creating a task.
type CreateTaskInput struct {
	Title string `json:"title"`
	Color string `json:"color"`
}

// UpdateTaskInput is a partial patch. Nil fields are left unchanged
// server-side and are not sent on the wire.
type UpdateTaskInput struct {
	Title     *string `json:"title,omitempty"`
	Color     *string `json:"color,omitempty"`
	Completed *bool   `json:"completed,omitempty"`
}

// IsEmpty reports whether the patch carries no fields.
func (in UpdateTaskInput) IsEmpty() bool {
	return in.Title == nil && in.Color == nil && in.Completed == nil
}

// Apply returns a copy of t with the patch fields applied.
// Timestamps are not touched; the service owns them.
func (in UpdateTaskInput) Apply(t Task) Task {
	if in.Title != nil {
		t.Title = *in.Title
	}
	if in.Color != nil {
		t.Color = *in.Color
	}
	if in.Completed != nil {
		t.Completed = *in.Completed
	}
	return t
}
