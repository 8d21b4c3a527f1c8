// Package tasklist holds the client-side task list: its load state, the
// held snapshot of the server's tasks, and the mutate-then-resync flow.
//
// The controller is not safe for concurrent use. An event loop runs the
// network call elsewhere and applies the result through the Begin/Finish/
// Apply methods on the loop; sequential callers use Refresh, Toggle and
// Delete, which compose the same phases.
package tasklist

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"taskdeck/internal/service"
)

// LoadFailedMessage is shown when the list cannot be loaded.
const LoadFailedMessage = "Failed to load tasks"

// State is the load state of the list.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateLoaded
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateLoaded:
		return "loaded"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Controller owns the held task list.
type Controller struct {
	svc    service.Service
	logger *zap.Logger

	state          State
	tasks          []service.Task
	err            string
	groupCompleted bool
}

// Option configures a Controller.
type Option func(*Controller)

// WithGroupCompleted lists incomplete tasks before completed ones in Display.
func WithGroupCompleted(group bool) Option {
	return func(c *Controller) {
		c.groupCompleted = group
	}
}

// New creates a Controller in StateIdle.
func New(svc service.Service, logger *zap.Logger, opts ...Option) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Controller{svc: svc, logger: logger}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns the current load state.
func (c *Controller) State() State { return c.state }

// Err returns the message to display, or "" when there is none.
func (c *Controller) Err() string { return c.err }

// Tasks returns a copy of the held tasks in service order.
func (c *Controller) Tasks() []service.Task {
	out := make([]service.Task, len(c.tasks))
	copy(out, c.tasks)
	return out
}

// Display returns the held tasks in display order. With grouping on,
// incomplete tasks come first, then completed ones, each group keeping
// service order. The held order is never changed.
func (c *Controller) Display() []service.Task {
	if !c.groupCompleted {
		return c.Tasks()
	}
	out := make([]service.Task, 0, len(c.tasks))
	for _, t := range c.tasks {
		if !t.Completed {
			out = append(out, t)
		}
	}
	for _, t := range c.tasks {
		if t.Completed {
			out = append(out, t)
		}
	}
	return out
}

// Empty reports whether the list is loaded and has no tasks,
// which is when the empty placeholder is shown.
func (c *Controller) Empty() bool {
	return c.state == StateLoaded && len(c.tasks) == 0
}

// Find returns the held task with the given ID.
func (c *Controller) Find(id string) (service.Task, bool) {
	for _, t := range c.tasks {
		if t.ID == id {
			return t, true
		}
	}
	return service.Task{}, false
}

// At returns the task at 1-based position num in display order.
func (c *Controller) At(num int) (service.Task, bool) {
	display := c.Display()
	if num < 1 || num > len(display) {
		return service.Task{}, false
	}
	return display[num-1], true
}

// Counts returns the derived totals, computed from the held list.
func (c *Controller) Counts() Counts {
	return CountTasks(c.tasks)
}

// BeginRefresh moves to StateLoading and clears the error.
func (c *Controller) BeginRefresh() {
	c.state = StateLoading
	c.err = ""
}

// FinishRefresh applies the result of ListTasks. On failure the previously
// held tasks stay and the generic message is shown; the cause is logged.
func (c *Controller) FinishRefresh(tasks []service.Task, err error) {
	if err != nil {
		c.logger.Warn("error loading tasks", zap.Error(err))
		c.state = StateFailed
		c.err = LoadFailedMessage
		return
	}
	c.tasks = make([]service.Task, len(tasks))
	copy(c.tasks, tasks)
	c.state = StateLoaded
	c.err = ""
}

// Refresh reloads the list from the service.
func (c *Controller) Refresh(ctx context.Context) error {
	c.BeginRefresh()
	tasks, err := c.svc.ListTasks(ctx)
	c.FinishRefresh(tasks, err)
	return err
}

// ApplyToggle applies the result of ToggleTask. On success the task with
// the same ID is replaced by the server's copy in place. On failure, or when
// the server's copy is for a different task, nothing is patched locally and
// the caller must resync (resync == true).
func (c *Controller) ApplyToggle(id string, updated service.Task, err error) (resync bool) {
	if err = toggleResult(id, updated, err); err != nil {
		c.logger.Warn("error toggling task", zap.String("id", id), zap.Error(err))
		return true
	}
	for i := range c.tasks {
		if c.tasks[i].ID == id {
			c.tasks[i] = updated
		}
	}
	return false
}

// Toggle sets the completion flag of a task, resyncing on failure.
// The returned error is the toggle failure, if any.
func (c *Controller) Toggle(ctx context.Context, id string, completed bool) error {
	updated, err := c.svc.ToggleTask(ctx, id, completed)
	if c.ApplyToggle(id, updated, err) {
		_ = c.Refresh(ctx)
	}
	return toggleResult(id, updated, err)
}

// toggleResult reports a reply that does not carry the toggled task as a
// service error.
func toggleResult(id string, updated service.Task, err error) error {
	if err != nil {
		return err
	}
	if updated.ID != id {
		return &service.Error{
			Kind:    service.KindService,
			Message: "invalid response body",
			Err:     fmt.Errorf("expected task %q, got %q", id, updated.ID),
		}
	}
	return nil
}

// ApplyDelete applies the result of DeleteTask. On success the task is
// removed, keeping the order of the rest. On failure the caller must resync.
func (c *Controller) ApplyDelete(id string, err error) (resync bool) {
	if err != nil {
		c.logger.Warn("error deleting task", zap.String("id", id), zap.Error(err))
		return true
	}
	kept := c.tasks[:0]
	for _, t := range c.tasks {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	c.tasks = kept
	return false
}

// Delete removes a task, resyncing on failure.
// The returned error is the delete failure, if any.
func (c *Controller) Delete(ctx context.Context, id string) error {
	err := c.svc.DeleteTask(ctx, id)
	if c.ApplyDelete(id, err) {
		_ = c.Refresh(ctx)
	}
	return err
}
