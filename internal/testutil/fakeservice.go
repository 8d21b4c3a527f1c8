// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"taskdeck/internal/service"
)

// FakeService is an in-memory implementation of service.Service for testing.
// It behaves like the remote service: it assigns IDs and timestamps, keeps
// insertion order, and returns not-found errors for unknown IDs.
type FakeService struct {
	mu    sync.RWMutex
	tasks []service.Task

	// Now is the clock used for timestamps.
	Now func() time.Time

	// Error injection for testing. While set, the operation returns the
	// error and leaves the in-memory state untouched.
	ListTasksErr  error
	CreateTaskErr error
	UpdateTaskErr error
	DeleteTaskErr error

	calls CallCounts
}

// CallCounts counts the calls made to each FakeService operation.
// ToggleTask counts as an update.
type CallCounts struct {
	List   int
	Create int
	Update int
	Delete int
}

// NewFakeService creates an empty FakeService.
func NewFakeService() *FakeService {
	return &FakeService{
		Now: func() time.Time { return time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC) },
	}
}

// AddTask appends a task with the given ID and returns it.
func (f *FakeService) AddTask(id, title, color string, completed bool) service.Task {
	f.mu.Lock()
	defer f.mu.Unlock()
	now := f.Now()
	task := service.Task{
		ID:        id,
		Title:     title,
		Color:     color,
		Completed: completed,
		CreatedAt: now,
		UpdatedAt: now,
	}
	f.tasks = append(f.tasks, task)
	return task
}

// Tasks returns a copy of the stored tasks.
func (f *FakeService) Tasks() []service.Task {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]service.Task, len(f.tasks))
	copy(out, f.tasks)
	return out
}

// Inject runs fn with the service locked. Use it to change injected errors
// while requests may be in flight (FakeServer).
func (f *FakeService) Inject(fn func(f *FakeService)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fn(f)
}

// Calls returns the call counters.
func (f *FakeService) Calls() CallCounts {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.calls
}

// ListTasks implements service.Service.
func (f *FakeService) ListTasks(ctx context.Context) ([]service.Task, error) {
	f.mu.Lock()
	f.calls.List++
	err := f.ListTasksErr
	f.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return f.Tasks(), nil
}

// CreateTask implements service.Service.
func (f *FakeService) CreateTask(ctx context.Context, in service.CreateTaskInput) (service.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls.Create++
	if f.CreateTaskErr != nil {
		return service.Task{}, f.CreateTaskErr
	}
	if strings.TrimSpace(in.Title) == "" {
		return service.Task{}, service.ValidationError("Title is required")
	}
	if in.Color == "" {
		return service.Task{}, service.ValidationError("Color is required")
	}

	now := f.Now()
	task := service.Task{
		ID:        uuid.NewString(),
		Title:     in.Title,
		Color:     in.Color,
		CreatedAt: now,
		UpdatedAt: now,
	}
	f.tasks = append(f.tasks, task)
	return task, nil
}

// UpdateTask implements service.Service.
func (f *FakeService) UpdateTask(ctx context.Context, id string, in service.UpdateTaskInput) (service.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls.Update++
	if f.UpdateTaskErr != nil {
		return service.Task{}, f.UpdateTaskErr
	}

	i := f.indexOf(id)
	if i < 0 {
		return service.Task{}, service.NotFoundError("Task not found")
	}
	if in.Title != nil && strings.TrimSpace(*in.Title) == "" {
		return service.Task{}, service.ValidationError("Title is required")
	}

	task := in.Apply(f.tasks[i])
	task.UpdatedAt = f.Now()
	f.tasks[i] = task
	return task, nil
}

// DeleteTask implements service.Service.
func (f *FakeService) DeleteTask(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls.Delete++
	if f.DeleteTaskErr != nil {
		return f.DeleteTaskErr
	}

	i := f.indexOf(id)
	if i < 0 {
		return service.NotFoundError("Task not found")
	}
	f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
	return nil
}

// ToggleTask implements service.Service.
func (f *FakeService) ToggleTask(ctx context.Context, id string, completed bool) (service.Task, error) {
	return f.UpdateTask(ctx, id, service.UpdateTaskInput{Completed: &completed})
}

func (f *FakeService) indexOf(id string) int {
	for i, t := range f.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// SeedTasks adds the three tasks used across tests:
// 1 incomplete/blue, 2 completed/green, 3 incomplete/orange.
func SeedTasks(f *FakeService) {
	f.AddTask("1", "Complete project documentation", "blue", false)
	f.AddTask("2", "Review code changes", "green", true)
	f.AddTask("3", "Setup testing environment", "orange", false)
}
