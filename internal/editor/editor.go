// Package editor implements the create/edit form flow for a single task.
package editor

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"taskdeck/internal/service"
)

// Messages shown to the user.
const (
	MsgTitleRequired = "Title is required"
	MsgCreateFailed  = "Failed to create task"
	MsgUpdateFailed  = "Failed to update task"
	MsgNotFound      = "Task not found"
	MsgLoadFailed    = "Failed to load task"
)

// Mode is create or edit.
type Mode int

const (
	ModeCreate Mode = iota
	ModeEdit
)

// Editor holds the draft of a task being created or edited.
// It is not safe for concurrent use.
type Editor struct {
	svc     service.Service
	palette service.Palette
	logger  *zap.Logger

	mode Mode
	id   string

	title string
	color string

	hasForm bool
	loading bool
	saving  bool
	err     error
}

// NewCreate returns an editor with an empty draft in defaultColor.
// The form is available immediately.
func NewCreate(svc service.Service, palette service.Palette, defaultColor string, logger *zap.Logger) *Editor {
	if !palette.Contains(defaultColor) && len(palette) > 0 {
		defaultColor = palette[0]
	}
	return &Editor{
		svc:     svc,
		palette: palette,
		logger:  orNop(logger),
		mode:    ModeCreate,
		color:   defaultColor,
		hasForm: true,
	}
}

// NewEdit returns an editor for the task with the given ID.
// The form appears once Load (or BeginLoad/FinishLoad) finds the task.
func NewEdit(svc service.Service, palette service.Palette, logger *zap.Logger, id string) *Editor {
	return &Editor{
		svc:     svc,
		palette: palette,
		logger:  orNop(logger),
		mode:    ModeEdit,
		id:      id,
	}
}

func orNop(logger *zap.Logger) *zap.Logger {
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

func (e *Editor) Mode() Mode               { return e.mode }
func (e *Editor) ID() string               { return e.id }
func (e *Editor) Title() string            { return e.title }
func (e *Editor) Color() string            { return e.color }
func (e *Editor) Palette() service.Palette { return e.palette }
func (e *Editor) HasForm() bool            { return e.hasForm }
func (e *Editor) Loading() bool            { return e.loading }
func (e *Editor) Saving() bool             { return e.saving }

// Err returns the current error, or nil.
func (e *Editor) Err() error { return e.err }

// Message returns the user-facing text of the current error, or "".
func (e *Editor) Message() string {
	if e.err == nil {
		return ""
	}
	return service.MessageOf(e.err)
}

// SetTitle replaces the draft title. Trimming happens on submit.
func (e *Editor) SetTitle(title string) {
	e.title = title
}

// SetColor replaces the draft colour. Colours outside the palette are rejected.
func (e *Editor) SetColor(color string) error {
	if !e.palette.Contains(color) {
		return service.ValidationError(fmt.Sprintf("unknown color %q", color))
	}
	e.color = color
	return nil
}

// BeginLoad marks the edit target as loading.
func (e *Editor) BeginLoad() {
	e.loading = true
	e.err = nil
}

// FinishLoad looks up the edit target in the listed tasks and seeds the draft.
func (e *Editor) FinishLoad(tasks []service.Task, err error) {
	e.loading = false
	if err != nil {
		e.logger.Warn("error loading task", zap.String("id", e.id), zap.Error(err))
		e.err = &service.Error{Kind: service.KindOf(err), Message: MsgLoadFailed, Err: err}
		e.hasForm = false
		return
	}
	for _, t := range tasks {
		if t.ID == e.id {
			e.title = t.Title
			e.color = t.Color
			e.hasForm = true
			e.err = nil
			return
		}
	}
	e.err = service.NotFoundError(MsgNotFound)
	e.hasForm = false
}

// Load fetches the edit target. The service has no single-task read,
// so the whole list is fetched and searched.
func (e *Editor) Load(ctx context.Context) error {
	e.BeginLoad()
	tasks, err := e.svc.ListTasks(ctx)
	e.FinishLoad(tasks, err)
	return e.err
}

// Submission is a validated request ready to be sent.
type Submission struct {
	Mode   Mode
	ID     string
	Create service.CreateTaskInput
	Update service.UpdateTaskInput
}

// Send performs the request.
func (s Submission) Send(ctx context.Context, svc service.Service) (service.Task, error) {
	if s.Mode == ModeCreate {
		return svc.CreateTask(ctx, s.Create)
	}
	return svc.UpdateTask(ctx, s.ID, s.Update)
}

// Prepare validates the draft and marks the editor as saving.
// An empty title fails without touching the network.
func (e *Editor) Prepare() (Submission, error) {
	if !e.hasForm {
		if e.err != nil {
			return Submission{}, e.err
		}
		return Submission{}, service.ValidationError("form is not ready")
	}
	title := strings.TrimSpace(e.title)
	if title == "" {
		e.err = service.ValidationError(MsgTitleRequired)
		return Submission{}, e.err
	}
	e.err = nil
	e.saving = true

	color := e.color
	if e.mode == ModeCreate {
		return Submission{
			Mode:   ModeCreate,
			Create: service.CreateTaskInput{Title: title, Color: color},
		}, nil
	}
	return Submission{
		Mode:   ModeEdit,
		ID:     e.id,
		Update: service.UpdateTaskInput{Title: &title, Color: &color},
	}, nil
}

// FinishSubmit applies the result of Send. On failure the draft is kept
// and a generic message is shown; the cause is logged.
func (e *Editor) FinishSubmit(task service.Task, err error) error {
	e.saving = false
	if err != nil {
		msg := MsgCreateFailed
		if e.mode == ModeEdit {
			msg = MsgUpdateFailed
		}
		e.logger.Warn("error saving task", zap.String("id", e.id), zap.Error(err))
		e.err = &service.Error{Kind: service.KindOf(err), Message: msg, Err: err}
		return e.err
	}
	e.err = nil
	if e.mode == ModeCreate {
		e.id = task.ID
	}
	return nil
}

// Submit validates and sends the draft.
func (e *Editor) Submit(ctx context.Context) (service.Task, error) {
	sub, err := e.Prepare()
	if err != nil {
		return service.Task{}, err
	}
	task, err := sub.Send(ctx, e.svc)
	if err := e.FinishSubmit(task, err); err != nil {
		return service.Task{}, err
	}
	return task, nil
}
