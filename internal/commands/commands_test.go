package commands_test

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"io"
	"strings"
	"testing"

	"taskdeck/internal/commands"
	"taskdeck/internal/config"
	"taskdeck/internal/exitcode"
	"taskdeck/internal/service"
	"taskdeck/internal/testutil"
)

type runOpts struct {
	quiet   bool
	grouped bool
	stdin   string
}

// runCommand parses args with the command's own flags, then runs it
// against svc the way the dispatcher does.
func runCommand(t *testing.T, cmd commands.Command, svc service.Service, args []string, opts runOpts) (stdout, stderr string, code int) {
	t.Helper()

	fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	cmd.RegisterFlags(fs)
	if err := fs.Parse(args); err != nil {
		t.Fatalf("failed to parse flags %v: %v", args, err)
	}

	cfg := &config.Config{
		Dir:            t.TempDir(),
		Quiet:          opts.quiet,
		Palette:        service.DefaultPalette,
		DefaultColor:   service.DefaultColor,
		GroupCompleted: opts.grouped,
	}

	var outBuf, errBuf bytes.Buffer
	code = cmd.Run(context.Background(), cfg, svc, fs.Args(), strings.NewReader(opts.stdin), &outBuf, &errBuf)
	return outBuf.String(), errBuf.String(), code
}

func seededService() *testutil.FakeService {
	svc := testutil.NewFakeService()
	testutil.SeedTasks(svc)
	return svc
}

func expectCode(t *testing.T, want, got int) {
	t.Helper()
	if got != want {
		t.Errorf("expected exit code %d, got %d", want, got)
	}
}

// Tests for version command
func TestVersionCommand(t *testing.T) {
	stdout, stderr, code := runCommand(t, &commands.VersionCmd{}, nil, nil, runOpts{})

	expectCode(t, exitcode.Success, code)
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if stdout != "taskdeck 0.1.0\n" {
		t.Errorf("expected version output, got %q", stdout)
	}
}

// Tests for help command
func TestHelpCommand(t *testing.T) {
	stdout, _, code := runCommand(t, &commands.HelpCmd{}, nil, nil, runOpts{})

	expectCode(t, exitcode.Success, code)
	if !strings.Contains(stdout, "Usage:") {
		t.Error("help output should contain 'Usage:'")
	}
	if !strings.Contains(stdout, "rm (delete)") {
		t.Error("help output should list command aliases")
	}
	for _, cmd := range commands.DefaultRegistry.All() {
		if !strings.Contains(stdout, "taskdeck "+cmd.Name()) {
			t.Errorf("help output should mention %q", cmd.Name())
		}
	}
}

// Tests for colors command
func TestColorsCommand(t *testing.T) {
	stdout, _, code := runCommand(t, &commands.ColorsCmd{}, nil, nil, runOpts{})

	expectCode(t, exitcode.Success, code)
	expected := "red\norange\nyellow\ngreen\nblue [default]\npurple\npink\nbrown\n"
	if stdout != expected {
		t.Errorf("expected %q, got %q", expected, stdout)
	}
}

// Tests for list command
func TestListCommand_WithTasks(t *testing.T) {
	stdout, stderr, code := runCommand(t, &commands.ListCmd{}, seededService(), nil, runOpts{})

	expectCode(t, exitcode.Success, code)
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	expected := "Tasks 3  Completed 1 of 3\n" +
		"   1  [ ] blue    Complete project documentation\n" +
		"   2  [x] green   Review code changes\n" +
		"   3  [ ] orange  Setup testing environment\n"
	if stdout != expected {
		t.Errorf("expected %q, got %q", expected, stdout)
	}
}

func TestListCommand_Grouped(t *testing.T) {
	stdout, _, code := runCommand(t, &commands.ListCmd{}, seededService(), nil, runOpts{grouped: true})

	expectCode(t, exitcode.Success, code)
	expected := "Tasks 3  Completed 1 of 3\n" +
		"   1  [ ] blue    Complete project documentation\n" +
		"   2  [ ] orange  Setup testing environment\n" +
		"   3  [x] green   Review code changes\n"
	if stdout != expected {
		t.Errorf("expected %q, got %q", expected, stdout)
	}
}

func TestListCommand_Quiet(t *testing.T) {
	stdout, _, code := runCommand(t, &commands.ListCmd{}, seededService(), nil, runOpts{quiet: true})

	expectCode(t, exitcode.Success, code)
	if strings.Contains(stdout, "Tasks 3") {
		t.Errorf("quiet mode should suppress the summary, got %q", stdout)
	}
	if strings.Count(stdout, "\n") != 3 {
		t.Errorf("expected 3 task lines, got %q", stdout)
	}
}

func TestListCommand_Empty(t *testing.T) {
	stdout, stderr, code := runCommand(t, &commands.ListCmd{}, testutil.NewFakeService(), nil, runOpts{})

	expectCode(t, exitcode.Success, code)
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	expected := "You don't have any tasks registered yet.\nCreate tasks and organize your to-do items.\n"
	if stdout != expected {
		t.Errorf("expected %q, got %q", expected, stdout)
	}
}

func TestListCommand_EmptyQuiet(t *testing.T) {
	stdout, _, code := runCommand(t, &commands.ListCmd{}, testutil.NewFakeService(), nil, runOpts{quiet: true})

	expectCode(t, exitcode.Success, code)
	if stdout != "" {
		t.Errorf("expected empty stdout in quiet mode, got %q", stdout)
	}
}

func TestListCommand_LoadFailure(t *testing.T) {
	svc := seededService()
	svc.ListTasksErr = service.NetworkError(errors.New("connection refused"))

	stdout, stderr, code := runCommand(t, &commands.ListCmd{}, svc, nil, runOpts{})

	expectCode(t, exitcode.BackendError, code)
	if stdout != "" {
		t.Errorf("expected no stdout, got %q", stdout)
	}
	expected := "error: Failed to load tasks\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestListCommand_UnexpectedArg(t *testing.T) {
	_, stderr, code := runCommand(t, &commands.ListCmd{}, seededService(), []string{"extra"}, runOpts{})

	expectCode(t, exitcode.UserError, code)
	if stderr != "error: unexpected argument: extra\n" {
		t.Errorf("unexpected stderr: %q", stderr)
	}
}

// Tests for add command
func TestAddCommand_Success(t *testing.T) {
	svc := testutil.NewFakeService()

	stdout, stderr, code := runCommand(t, &commands.AddCmd{}, svc, []string{"Buy", "milk"}, runOpts{})

	expectCode(t, exitcode.Success, code)
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if stdout != "ok\n" {
		t.Errorf("expected 'ok\\n', got %q", stdout)
	}

	tasks := svc.Tasks()
	if len(tasks) != 1 {
		t.Fatalf("expected 1 task, got %d", len(tasks))
	}
	if tasks[0].Title != "Buy milk" {
		t.Errorf("expected title 'Buy milk', got %q", tasks[0].Title)
	}
	if tasks[0].Color != "blue" {
		t.Errorf("expected default color blue, got %q", tasks[0].Color)
	}
}

func TestAddCommand_Color(t *testing.T) {
	svc := testutil.NewFakeService()

	_, _, code := runCommand(t, &commands.AddCmd{}, svc, []string{"--color", "Green", "Water plants"}, runOpts{})

	expectCode(t, exitcode.Success, code)
	if got := svc.Tasks()[0].Color; got != "green" {
		t.Errorf("expected color green, got %q", got)
	}
}

func TestAddCommand_UnknownColor(t *testing.T) {
	svc := testutil.NewFakeService()

	_, stderr, code := runCommand(t, &commands.AddCmd{}, svc, []string{"-c", "teal", "Water plants"}, runOpts{})

	expectCode(t, exitcode.UserError, code)
	if stderr != "error: unknown color \"teal\"\n" {
		t.Errorf("unexpected stderr: %q", stderr)
	}
	if svc.Calls().Create != 0 {
		t.Error("expected no create call")
	}
}

func TestAddCommand_Quiet(t *testing.T) {
	stdout, _, code := runCommand(t, &commands.AddCmd{}, testutil.NewFakeService(), []string{"Buy milk"}, runOpts{quiet: true})

	expectCode(t, exitcode.Success, code)
	if stdout != "" {
		t.Errorf("expected no stdout in quiet mode, got %q", stdout)
	}
}

func TestAddCommand_NoTitle(t *testing.T) {
	_, stderr, code := runCommand(t, &commands.AddCmd{}, testutil.NewFakeService(), nil, runOpts{})

	expectCode(t, exitcode.UserError, code)
	if stderr != "error: title required\n" {
		t.Errorf("unexpected stderr: %q", stderr)
	}
}

func TestAddCommand_BlankTitle(t *testing.T) {
	svc := testutil.NewFakeService()

	_, stderr, code := runCommand(t, &commands.AddCmd{}, svc, []string{"   "}, runOpts{})

	expectCode(t, exitcode.UserError, code)
	if stderr != "error: Title is required\n" {
		t.Errorf("unexpected stderr: %q", stderr)
	}
	if svc.Calls().Create != 0 {
		t.Error("blank title must not reach the service")
	}
}

func TestAddCommand_ServiceFailure(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.CreateTaskErr = service.ServiceError(500, "boom")

	_, stderr, code := runCommand(t, &commands.AddCmd{}, svc, []string{"Buy milk"}, runOpts{})

	expectCode(t, exitcode.BackendError, code)
	if stderr != "error: backend error: Failed to create task\n" {
		t.Errorf("unexpected stderr: %q", stderr)
	}
}

// Tests for done and reopen commands
func TestDoneCommand_Success(t *testing.T) {
	svc := seededService()

	stdout, stderr, code := runCommand(t, &commands.DoneCmd{}, svc, []string{"1"}, runOpts{})

	expectCode(t, exitcode.Success, code)
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if stdout != "ok\n" {
		t.Errorf("expected 'ok\\n', got %q", stdout)
	}
	if !svc.Tasks()[0].Completed {
		t.Error("task 1 should be completed")
	}
}

func TestDoneCommand_NumbersFollowDisplayOrder(t *testing.T) {
	svc := seededService()

	// Grouped order is 1, 3, 2, so number 2 is task "3".
	_, _, code := runCommand(t, &commands.DoneCmd{}, svc, []string{"2"}, runOpts{grouped: true})

	expectCode(t, exitcode.Success, code)
	if !svc.Tasks()[2].Completed {
		t.Error("task 3 should be completed")
	}
}

func TestDoneCommand_ByID(t *testing.T) {
	svc := seededService()

	_, _, code := runCommand(t, &commands.DoneCmd{}, svc, []string{"--id", "3"}, runOpts{})

	expectCode(t, exitcode.Success, code)
	if !svc.Tasks()[2].Completed {
		t.Error("task 3 should be completed")
	}
}

func TestDoneCommand_NoRef(t *testing.T) {
	_, stderr, code := runCommand(t, &commands.DoneCmd{}, seededService(), nil, runOpts{})

	expectCode(t, exitcode.UserError, code)
	if stderr != "error: task reference required\n" {
		t.Errorf("unexpected stderr: %q", stderr)
	}
}

func TestDoneCommand_OutOfRange(t *testing.T) {
	_, stderr, code := runCommand(t, &commands.DoneCmd{}, seededService(), []string{"9"}, runOpts{})

	expectCode(t, exitcode.UserError, code)
	if stderr != "error: task number out of range: 9\n" {
		t.Errorf("unexpected stderr: %q", stderr)
	}
}

func TestDoneCommand_UnknownID(t *testing.T) {
	_, stderr, code := runCommand(t, &commands.DoneCmd{}, seededService(), []string{"nope"}, runOpts{})

	expectCode(t, exitcode.UserError, code)
	if stderr != "error: task not found: nope\n" {
		t.Errorf("unexpected stderr: %q", stderr)
	}
}

func TestDoneCommand_FailureResyncs(t *testing.T) {
	svc := seededService()
	svc.UpdateTaskErr = service.ServiceError(500, "boom")

	_, stderr, code := runCommand(t, &commands.DoneCmd{}, svc, []string{"1"}, runOpts{})

	expectCode(t, exitcode.BackendError, code)
	if stderr != "error: backend error: boom\n" {
		t.Errorf("unexpected stderr: %q", stderr)
	}
	// One list to resolve the number, one to resync.
	if got := svc.Calls().List; got != 2 {
		t.Errorf("expected 2 list calls, got %d", got)
	}
}

func TestReopenCommand_Success(t *testing.T) {
	svc := seededService()

	_, _, code := runCommand(t, &commands.ReopenCmd{}, svc, []string{"2"}, runOpts{})

	expectCode(t, exitcode.Success, code)
	if svc.Tasks()[1].Completed {
		t.Error("task 2 should no longer be completed")
	}
}

// Tests for rm command
func TestRmCommand_Yes(t *testing.T) {
	svc := seededService()

	stdout, stderr, code := runCommand(t, &commands.RmCmd{}, svc, []string{"--yes", "2"}, runOpts{})

	expectCode(t, exitcode.Success, code)
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if stdout != "ok\n" {
		t.Errorf("expected 'ok\\n', got %q", stdout)
	}
	tasks := svc.Tasks()
	if len(tasks) != 2 || tasks[0].ID != "1" || tasks[1].ID != "3" {
		t.Errorf("expected tasks 1 and 3 to remain in order, got %#v", tasks)
	}
}

func TestRmCommand_Confirmed(t *testing.T) {
	svc := seededService()

	_, stderr, code := runCommand(t, &commands.RmCmd{}, svc, []string{"1"}, runOpts{stdin: "y\n"})

	expectCode(t, exitcode.Success, code)
	if stderr != "Delete \"Complete project documentation\"? [y/N] " {
		t.Errorf("unexpected prompt: %q", stderr)
	}
	if len(svc.Tasks()) != 2 {
		t.Errorf("expected 2 tasks left, got %d", len(svc.Tasks()))
	}
}

func TestRmCommand_Declined(t *testing.T) {
	svc := seededService()

	_, stderr, code := runCommand(t, &commands.RmCmd{}, svc, []string{"1"}, runOpts{stdin: "n\n"})

	expectCode(t, exitcode.UserError, code)
	if !strings.HasSuffix(stderr, "error: cancelled\n") {
		t.Errorf("unexpected stderr: %q", stderr)
	}
	if svc.Calls().Delete != 0 {
		t.Error("declined delete must not reach the service")
	}
}

func TestRmCommand_NoAnswer(t *testing.T) {
	svc := seededService()

	_, _, code := runCommand(t, &commands.RmCmd{}, svc, []string{"1"}, runOpts{})

	expectCode(t, exitcode.UserError, code)
	if len(svc.Tasks()) != 3 {
		t.Error("no task should be deleted without an answer")
	}
}

func TestRmCommand_NoRef(t *testing.T) {
	_, stderr, code := runCommand(t, &commands.RmCmd{}, seededService(), nil, runOpts{})

	expectCode(t, exitcode.UserError, code)
	if stderr != "error: task reference required\n" {
		t.Errorf("unexpected stderr: %q", stderr)
	}
}

func TestRmCommand_ServiceFailure(t *testing.T) {
	svc := seededService()
	svc.DeleteTaskErr = service.NetworkError(errors.New("connection reset"))

	_, stderr, code := runCommand(t, &commands.RmCmd{}, svc, []string{"-y", "1"}, runOpts{})

	expectCode(t, exitcode.BackendError, code)
	if stderr != "error: backend error: network error: connection reset\n" {
		t.Errorf("unexpected stderr: %q", stderr)
	}
}

// Tests for edit command
func TestEditCommand_Title(t *testing.T) {
	svc := seededService()

	stdout, stderr, code := runCommand(t, &commands.EditCmd{}, svc, []string{"--title", "  Write docs  ", "1"}, runOpts{})

	expectCode(t, exitcode.Success, code)
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if stdout != "ok\n" {
		t.Errorf("expected 'ok\\n', got %q", stdout)
	}
	task := svc.Tasks()[0]
	if task.Title != "Write docs" {
		t.Errorf("expected trimmed title, got %q", task.Title)
	}
	if task.Color != "blue" {
		t.Errorf("color should be unchanged, got %q", task.Color)
	}
}

func TestEditCommand_FetchesListOnce(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"by number", []string{"--title", "x", "1"}},
		{"by id", []string{"--title", "x", "--id", "1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := seededService()

			_, stderr, code := runCommand(t, &commands.EditCmd{}, svc, tt.args, runOpts{})

			expectCode(t, exitcode.Success, code)
			if stderr != "" {
				t.Errorf("expected no stderr, got %q", stderr)
			}
			if got := svc.Calls().List; got != 1 {
				t.Errorf("expected 1 list call, got %d", got)
			}
			if got := svc.Calls().Update; got != 1 {
				t.Errorf("expected 1 update call, got %d", got)
			}
		})
	}
}

func TestEditCommand_ColorKeepsCompletion(t *testing.T) {
	svc := seededService()

	_, _, code := runCommand(t, &commands.EditCmd{}, svc, []string{"-c", "pink", "--id", "2"}, runOpts{})

	expectCode(t, exitcode.Success, code)
	task := svc.Tasks()[1]
	if task.Color != "pink" {
		t.Errorf("expected color pink, got %q", task.Color)
	}
	if !task.Completed {
		t.Error("editing must not change completion")
	}
}

func TestEditCommand_NothingToChange(t *testing.T) {
	_, stderr, code := runCommand(t, &commands.EditCmd{}, seededService(), []string{"1"}, runOpts{})

	expectCode(t, exitcode.UserError, code)
	if stderr != "error: nothing to change (use --title or --color)\n" {
		t.Errorf("unexpected stderr: %q", stderr)
	}
}

func TestEditCommand_BlankTitle(t *testing.T) {
	svc := seededService()

	_, stderr, code := runCommand(t, &commands.EditCmd{}, svc, []string{"--title", " ", "1"}, runOpts{})

	expectCode(t, exitcode.UserError, code)
	if stderr != "error: Title is required\n" {
		t.Errorf("unexpected stderr: %q", stderr)
	}
	if svc.Calls().Update != 0 {
		t.Error("blank title must not reach the service")
	}
}

func TestEditCommand_MissingID(t *testing.T) {
	_, stderr, code := runCommand(t, &commands.EditCmd{}, seededService(), []string{"--title", "x", "missing"}, runOpts{})

	expectCode(t, exitcode.UserError, code)
	if stderr != "error: Task not found\n" {
		t.Errorf("unexpected stderr: %q", stderr)
	}
}

func TestEditCommand_ServiceFailure(t *testing.T) {
	svc := seededService()
	svc.UpdateTaskErr = service.ServiceError(500, "boom")

	_, stderr, code := runCommand(t, &commands.EditCmd{}, svc, []string{"--title", "x", "1"}, runOpts{})

	expectCode(t, exitcode.BackendError, code)
	if stderr != "error: backend error: Failed to update task\n" {
		t.Errorf("unexpected stderr: %q", stderr)
	}
}

// Tests for show command
func TestShowCommand(t *testing.T) {
	stdout, _, code := runCommand(t, &commands.ShowCmd{}, seededService(), []string{"2"}, runOpts{})

	expectCode(t, exitcode.Success, code)
	expected := "ID:         2\n" +
		"Title:      Review code changes\n" +
		"Color:      green\n" +
		"Completed:  yes\n" +
		"Created:    2025-01-15T10:00:00Z\n" +
		"Updated:    2025-01-15T10:00:00Z\n"
	if stdout != expected {
		t.Errorf("expected %q, got %q", expected, stdout)
	}
}

func TestShowCommand_LoadFailure(t *testing.T) {
	svc := seededService()
	svc.ListTasksErr = service.ServiceError(503, "HTTP error! status: 503")

	_, stderr, code := runCommand(t, &commands.ShowCmd{}, svc, []string{"1"}, runOpts{})

	expectCode(t, exitcode.BackendError, code)
	if stderr != "error: backend error: HTTP error! status: 503\n" {
		t.Errorf("unexpected stderr: %q", stderr)
	}
}

// Registry
func TestDefaultRegistry_Aliases(t *testing.T) {
	for alias, name := range map[string]string{
		"ls":      "list",
		"create":  "add",
		"delete":  "rm",
		"undone":  "reopen",
		"colours": "colors",
		"tui":     "ui",
	} {
		cmd, ok := commands.DefaultRegistry.Find(alias)
		if !ok {
			t.Errorf("alias %q not registered", alias)
			continue
		}
		if cmd.Name() != name {
			t.Errorf("alias %q resolves to %q, want %q", alias, cmd.Name(), name)
		}
	}
}

func TestRegistry_DuplicateName(t *testing.T) {
	r := commands.NewRegistry()
	if err := r.Register(&commands.VersionCmd{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := r.Register(&commands.VersionCmd{}); err == nil {
		t.Error("expected error for duplicate registration")
	}
}
