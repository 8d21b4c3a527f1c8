// Package tui provides the interactive terminal front-end.
//
// Everything runs on the Bubble Tea event loop. Commands only call the
// service and return a message; controllers are changed in Update.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"taskdeck/internal/editor"
	"taskdeck/internal/service"
	"taskdeck/internal/tasklist"
	"taskdeck/internal/tui/components"
)

// View is the current screen.
type View int

const (
	ViewList View = iota
	ViewForm
)

// Options configures an App.
type Options struct {
	Palette        service.Palette
	DefaultColor   string
	GroupCompleted bool
	Logger         *zap.Logger
}

// App is the Bubble Tea model.
type App struct {
	ctx    context.Context
	svc    service.Service
	opts   Options
	logger *zap.Logger

	view View

	// List state
	list      *tasklist.Controller
	cursor    int
	deleting  map[string]bool
	confirmID string

	// Form state
	form   *editor.Editor
	input  textinput.Model
	picker components.ColorPicker

	spinner spinner.Model
	width   int
}

// Message types
type tasksLoadedMsg struct {
	tasks []service.Task
	err   error
}

type taskToggledMsg struct {
	id   string
	task service.Task
	err  error
}

type taskDeletedMsg struct {
	id  string
	err error
}

type editorLoadedMsg struct {
	editor *editor.Editor
	tasks  []service.Task
	err    error
}

type taskSavedMsg struct {
	editor *editor.Editor
	task   service.Task
	err    error
}

// New creates the App. ctx bounds every service call it makes.
func New(ctx context.Context, svc service.Service, opts Options) *App {
	if len(opts.Palette) == 0 {
		opts.Palette = service.DefaultPalette
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = components.Cursor

	input := textinput.New()
	input.Placeholder = "What needs to be done?"
	input.CharLimit = 200
	input.Width = 50
	input.Cursor.SetMode(cursor.CursorStatic)

	return &App{
		ctx:      ctx,
		svc:      svc,
		opts:     opts,
		logger:   opts.Logger,
		list:     tasklist.New(svc, opts.Logger, tasklist.WithGroupCompleted(opts.GroupCompleted)),
		deleting: make(map[string]bool),
		input:    input,
		picker:   components.ColorPicker{Palette: opts.Palette},
		spinner:  s,
	}
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(a.spinner.Tick, a.refresh())
}

// CurrentView returns the screen being shown.
func (a *App) CurrentView() View { return a.view }

// refresh starts a list reload.
func (a *App) refresh() tea.Cmd {
	a.list.BeginRefresh()
	ctx, svc := a.ctx, a.svc
	return func() tea.Msg {
		tasks, err := svc.ListTasks(ctx)
		return tasksLoadedMsg{tasks: tasks, err: err}
	}
}

func (a *App) toggle(task service.Task) tea.Cmd {
	ctx, svc := a.ctx, a.svc
	id, next := task.ID, !task.Completed
	return func() tea.Msg {
		updated, err := svc.ToggleTask(ctx, id, next)
		return taskToggledMsg{id: id, task: updated, err: err}
	}
}

func (a *App) remove(id string) tea.Cmd {
	a.deleting[id] = true
	ctx, svc := a.ctx, a.svc
	return func() tea.Msg {
		return taskDeletedMsg{id: id, err: svc.DeleteTask(ctx, id)}
	}
}

func (a *App) openCreate() tea.Cmd {
	a.form = editor.NewCreate(a.svc, a.opts.Palette, a.opts.DefaultColor, a.logger)
	a.resetInput("")
	a.view = ViewForm
	return nil
}

func (a *App) openEdit(id string) tea.Cmd {
	ed := editor.NewEdit(a.svc, a.opts.Palette, a.logger, id)
	ed.BeginLoad()
	a.form = ed
	a.resetInput("")
	a.view = ViewForm

	ctx, svc := a.ctx, a.svc
	return func() tea.Msg {
		tasks, err := svc.ListTasks(ctx)
		return editorLoadedMsg{editor: ed, tasks: tasks, err: err}
	}
}

func (a *App) submit() tea.Cmd {
	sub, err := a.form.Prepare()
	if err != nil {
		return nil
	}
	ed := a.form
	ctx, svc := a.ctx, a.svc
	return func() tea.Msg {
		task, err := sub.Send(ctx, svc)
		return taskSavedMsg{editor: ed, task: task, err: err}
	}
}

// backToList leaves the form. The list reloads, like opening it anew.
func (a *App) backToList() tea.Cmd {
	a.form = nil
	a.input.Blur()
	a.view = ViewList
	return a.refresh()
}

func (a *App) resetInput(value string) {
	a.input.SetValue(value)
	a.input.CursorEnd()
	a.input.Focus()
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if a.view == ViewForm {
			return a.handleFormKey(msg)
		}
		return a.handleListKey(msg)

	case tea.WindowSizeMsg:
		a.width = msg.Width
		return a, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case tasksLoadedMsg:
		a.list.FinishRefresh(msg.tasks, msg.err)
		a.clampCursor()
		return a, nil

	case taskToggledMsg:
		if a.list.ApplyToggle(msg.id, msg.task, msg.err) {
			return a, a.refresh()
		}
		return a, nil

	case taskDeletedMsg:
		delete(a.deleting, msg.id)
		resync := a.list.ApplyDelete(msg.id, msg.err)
		a.clampCursor()
		if resync {
			return a, a.refresh()
		}
		return a, nil

	case editorLoadedMsg:
		if msg.editor != a.form {
			return a, nil
		}
		a.form.FinishLoad(msg.tasks, msg.err)
		if a.form.HasForm() {
			a.resetInput(a.form.Title())
		}
		return a, nil

	case taskSavedMsg:
		if msg.editor != a.form {
			// The form was left while saving.
			if msg.err == nil && a.view == ViewList {
				return a, a.refresh()
			}
			return a, nil
		}
		if err := a.form.FinishSubmit(msg.task, msg.err); err != nil {
			return a, nil
		}
		return a, a.backToList()
	}

	return a, nil
}

func (a *App) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if a.confirmID != "" {
		id := a.confirmID
		switch key {
		case "y", "Y":
			a.confirmID = ""
			if _, ok := a.list.Find(id); !ok {
				return a, nil
			}
			return a, a.remove(id)
		case "n", "N", "esc":
			a.confirmID = ""
		}
		return a, nil
	}

	switch key {
	case "q":
		return a, tea.Quit
	case "j", "down":
		a.cursor++
		a.clampCursor()
		return a, nil
	case "k", "up":
		a.cursor--
		a.clampCursor()
		return a, nil
	case "r":
		return a, a.refresh()
	case "n":
		return a, a.openCreate()
	}

	task, ok := a.selected()
	if !ok {
		return a, nil
	}
	switch components.RowIntent(key, a.deleting[task.ID]) {
	case components.IntentToggle:
		return a, a.toggle(task)
	case components.IntentDelete:
		a.confirmID = task.ID
	case components.IntentSelect:
		return a, a.openEdit(task.ID)
	}
	return a, nil
}

func (a *App) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "esc" {
		return a, a.backToList()
	}
	if !a.form.HasForm() || a.form.Saving() {
		return a, nil
	}

	switch key {
	case "tab":
		_ = a.form.SetColor(a.picker.Next(a.form.Color()))
		return a, nil
	case "shift+tab":
		_ = a.form.SetColor(a.picker.Prev(a.form.Color()))
		return a, nil
	case "enter":
		a.form.SetTitle(a.input.Value())
		return a, a.submit()
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	a.form.SetTitle(a.input.Value())
	return a, cmd
}

// selected returns the task under the cursor, if rows are shown.
func (a *App) selected() (service.Task, bool) {
	if a.list.State() == tasklist.StateLoading {
		return service.Task{}, false
	}
	return a.list.At(a.cursor + 1)
}

func (a *App) clampCursor() {
	n := len(a.list.Tasks())
	if a.cursor >= n {
		a.cursor = n - 1
	}
	if a.cursor < 0 {
		a.cursor = 0
	}
}
