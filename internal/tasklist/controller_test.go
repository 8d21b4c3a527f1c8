package tasklist_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"taskdeck/internal/service"
	"taskdeck/internal/tasklist"
	"taskdeck/internal/testutil"
)

func newController(t *testing.T, svc service.Service, opts ...tasklist.Option) *tasklist.Controller {
	t.Helper()
	return tasklist.New(svc, zaptest.NewLogger(t), opts...)
}

func loaded(t *testing.T, opts ...tasklist.Option) (*tasklist.Controller, *testutil.FakeService) {
	t.Helper()
	svc := testutil.NewFakeService()
	testutil.SeedTasks(svc)
	c := newController(t, svc, opts...)
	require.NoError(t, c.Refresh(context.Background()))
	return c, svc
}

func ids(tasks []service.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.ID
	}
	return out
}

func TestController_InitialState(t *testing.T) {
	c := newController(t, testutil.NewFakeService())

	assert.Equal(t, tasklist.StateIdle, c.State())
	assert.Empty(t, c.Tasks())
	assert.False(t, c.Empty())
	assert.Equal(t, "", c.Err())
}

func TestController_Refresh(t *testing.T) {
	c, _ := loaded(t)

	assert.Equal(t, tasklist.StateLoaded, c.State())
	assert.Equal(t, []string{"1", "2", "3"}, ids(c.Tasks()))
	assert.False(t, c.Empty())
}

func TestController_BeginRefreshClearsError(t *testing.T) {
	c := newController(t, testutil.NewFakeService())
	c.FinishRefresh(nil, service.NetworkError(errors.New("connection refused")))
	require.Equal(t, tasklist.LoadFailedMessage, c.Err())

	c.BeginRefresh()

	assert.Equal(t, tasklist.StateLoading, c.State())
	assert.Equal(t, "", c.Err())
}

func TestController_RefreshFailureKeepsTasks(t *testing.T) {
	c, svc := loaded(t)
	svc.ListTasksErr = service.ServiceError(500, "boom")

	err := c.Refresh(context.Background())

	require.Error(t, err)
	assert.Equal(t, tasklist.StateFailed, c.State())
	assert.Equal(t, "Failed to load tasks", c.Err())
	assert.Equal(t, []string{"1", "2", "3"}, ids(c.Tasks()))
}

func TestController_EmptyList(t *testing.T) {
	c := newController(t, testutil.NewFakeService())

	require.NoError(t, c.Refresh(context.Background()))

	assert.True(t, c.Empty())
	assert.Equal(t, tasklist.Counts{Total: 0, Completed: 0}, c.Counts())
	assert.Equal(t, "0", c.Counts().CompletedLabel())
}

func TestController_Counts(t *testing.T) {
	c, _ := loaded(t)

	counts := c.Counts()
	assert.Equal(t, 3, counts.Total)
	assert.Equal(t, 1, counts.Completed)
	assert.Equal(t, "1 of 3", counts.CompletedLabel())
}

func TestCounts_CompletedLabel(t *testing.T) {
	tests := []struct {
		counts tasklist.Counts
		want   string
	}{
		{tasklist.Counts{Total: 3, Completed: 0}, "0"},
		{tasklist.Counts{Total: 3, Completed: 1}, "1 of 3"},
		{tasklist.Counts{Total: 2, Completed: 2}, "2 of 2"},
		{tasklist.Counts{}, "0"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.counts.CompletedLabel())
		})
	}
}

func TestController_TogglePreservesPositions(t *testing.T) {
	c, _ := loaded(t)

	require.NoError(t, c.Toggle(context.Background(), "1", true))

	tasks := c.Tasks()
	assert.Equal(t, []string{"1", "2", "3"}, ids(tasks))
	assert.True(t, tasks[0].Completed)
	assert.True(t, tasks[1].Completed)
	assert.False(t, tasks[2].Completed)
	assert.Equal(t, "2 of 3", c.Counts().CompletedLabel())
}

func TestController_ToggleUsesServerCopy(t *testing.T) {
	c, svc := loaded(t)
	later := time.Date(2025, 2, 1, 9, 30, 0, 0, time.UTC)
	svc.Now = func() time.Time { return later }

	require.NoError(t, c.Toggle(context.Background(), "3", true))

	task, ok := c.Find("3")
	require.True(t, ok)
	assert.Equal(t, later, task.UpdatedAt)
}

func TestController_ToggleFailureResyncs(t *testing.T) {
	c, svc := loaded(t)
	// Another client deletes task 3 and the toggle itself fails.
	require.NoError(t, svc.DeleteTask(context.Background(), "3"))
	svc.UpdateTaskErr = service.ServiceError(500, "boom")
	listsBefore := svc.Calls().List

	err := c.Toggle(context.Background(), "1", true)

	require.Error(t, err)
	assert.Equal(t, service.KindService, service.KindOf(err))
	assert.Equal(t, listsBefore+1, svc.Calls().List)
	assert.Equal(t, svc.Tasks(), c.Tasks())
	assert.Equal(t, tasklist.StateLoaded, c.State())
}

func TestController_ApplyToggleFailureDoesNotPatch(t *testing.T) {
	c, _ := loaded(t)

	resync := c.ApplyToggle("1", service.Task{ID: "1", Completed: true}, service.NetworkError(errors.New("down")))

	assert.True(t, resync)
	task, _ := c.Find("1")
	assert.False(t, task.Completed)
}

// misreportingService answers every toggle with a copy of another task.
type misreportingService struct {
	*testutil.FakeService
}

func (s misreportingService) ToggleTask(ctx context.Context, id string, completed bool) (service.Task, error) {
	if _, err := s.FakeService.ToggleTask(ctx, id, completed); err != nil {
		return service.Task{}, err
	}
	return service.Task{}, nil
}

func TestController_ToggleReplyForOtherTaskResyncs(t *testing.T) {
	fake := testutil.NewFakeService()
	testutil.SeedTasks(fake)
	c := newController(t, misreportingService{fake})
	require.NoError(t, c.Refresh(context.Background()))
	listsBefore := fake.Calls().List

	err := c.Toggle(context.Background(), "1", true)

	require.Error(t, err)
	assert.Equal(t, service.KindService, service.KindOf(err))
	assert.Equal(t, listsBefore+1, fake.Calls().List)
	assert.Equal(t, []string{"1", "2", "3"}, ids(c.Tasks()))
	assert.Equal(t, fake.Tasks(), c.Tasks())
	assert.Equal(t, 2, c.Counts().Completed)
}

func TestController_ApplyToggleIgnoresMismatchedCopy(t *testing.T) {
	c, _ := loaded(t)

	resync := c.ApplyToggle("1", service.Task{}, nil)

	assert.True(t, resync)
	task, ok := c.Find("1")
	require.True(t, ok)
	assert.Equal(t, "Complete project documentation", task.Title)
	assert.False(t, task.Completed)
}

func TestController_DeleteRemovesOne(t *testing.T) {
	c, _ := loaded(t)

	require.NoError(t, c.Delete(context.Background(), "2"))

	assert.Equal(t, []string{"1", "3"}, ids(c.Tasks()))
	assert.Equal(t, "0", c.Counts().CompletedLabel())
}

func TestController_ApplyDeleteNotFound(t *testing.T) {
	c, _ := loaded(t)

	resync := c.ApplyDelete("42", service.NotFoundError("Task not found"))

	assert.True(t, resync)
	assert.Equal(t, []string{"1", "2", "3"}, ids(c.Tasks()))
}

func TestController_DeleteNotFoundResyncs(t *testing.T) {
	c, svc := loaded(t)
	svc.AddTask("4", "Added elsewhere", "red", false)

	err := c.Delete(context.Background(), "42")

	assert.True(t, errors.Is(err, service.ErrNotFound))
	assert.Equal(t, []string{"1", "2", "3", "4"}, ids(c.Tasks()))
}

func TestController_FailedResyncLeavesFailedState(t *testing.T) {
	c, svc := loaded(t)
	svc.DeleteTaskErr = service.NetworkError(errors.New("down"))
	svc.ListTasksErr = service.NetworkError(errors.New("down"))

	err := c.Delete(context.Background(), "1")

	require.Error(t, err)
	assert.Equal(t, tasklist.StateFailed, c.State())
	assert.Equal(t, tasklist.LoadFailedMessage, c.Err())
	assert.Equal(t, 2, svc.Calls().List)
}

func TestController_CountsMatchRecomputed(t *testing.T) {
	c, _ := loaded(t)
	ctx := context.Background()

	require.NoError(t, c.Toggle(ctx, "1", true))
	require.NoError(t, c.Toggle(ctx, "2", false))
	require.NoError(t, c.Delete(ctx, "3"))
	require.NoError(t, c.Toggle(ctx, "2", true))

	assert.Equal(t, tasklist.CountTasks(c.Tasks()), c.Counts())
	assert.Equal(t, "2 of 2", c.Counts().CompletedLabel())
}

func TestController_DisplayGrouping(t *testing.T) {
	grouped, _ := loaded(t, tasklist.WithGroupCompleted(true))
	plain, _ := loaded(t)

	assert.Equal(t, []string{"1", "3", "2"}, ids(grouped.Display()))
	assert.Equal(t, []string{"1", "2", "3"}, ids(grouped.Tasks()))
	assert.Equal(t, []string{"1", "2", "3"}, ids(plain.Display()))
}

func TestController_At(t *testing.T) {
	c, _ := loaded(t, tasklist.WithGroupCompleted(true))

	task, ok := c.At(2)
	require.True(t, ok)
	assert.Equal(t, "3", task.ID)

	_, ok = c.At(0)
	assert.False(t, ok)
	_, ok = c.At(4)
	assert.False(t, ok)
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "loaded", tasklist.StateLoaded.String())
	assert.Equal(t, "State(9)", tasklist.State(9).String())
}
