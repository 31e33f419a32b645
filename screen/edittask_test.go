package screen

import (
	"context"
	"net/http"
	"testing"

	"github.com/ncobase/taskmate/api"
	"github.com/ncobase/taskmate/stubapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mountEdit(t *testing.T, h *harness, task any) *EditTask {
	t.Helper()
	h.env.Nav.Navigate(RouteEditTask, map[string]any{ParamTask: task})
	e, err := NewEditTask(context.Background(), h.env)
	require.NoError(t, err)
	t.Cleanup(e.Close)
	return e
}

func TestEditTaskStatusToggle(t *testing.T) {
	h := newHarness(t)
	h.loginAs(t, userMobile, userPass)

	e := mountEdit(t, h, api.Task{ID: "t1", Title: "a"})
	assert.Equal(t, api.StatusPending, e.Form.Status)

	for _, s := range api.Statuses {
		require.NoError(t, e.SetStatus(s))
		selected := 0
		for _, other := range api.Statuses {
			if e.Selected(other) {
				selected++
				assert.Equal(t, s, other)
			}
		}
		assert.Equal(t, 1, selected)
	}
	assert.Error(t, e.SetStatus("done"))
	assert.Equal(t, api.StatusInProgress, e.Form.Status)
}

func TestEditTaskRoundTrip(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.loginAs(t, userMobile, userPass)
	h.seedTask(t, "orig")

	tasks, err := h.env.API.ListTasks(ctx)
	require.NoError(t, err)
	fetched := tasks[0]

	e := mountEdit(t, h, &fetched)
	assert.Equal(t, api.UpdateTaskRequest{Title: fetched.Title, Description: fetched.Description, Status: fetched.Status}, e.Request())

	require.NoError(t, e.Submit(ctx))
	assert.Equal(t, "Task updated successfully", e.Notice().Message)
	assert.Equal(t, RouteTaskList, h.env.Nav.Current().Name)

	after, err := h.env.API.ListTasks(ctx)
	require.NoError(t, err)
	assert.Equal(t, fetched.Title, after[0].Title)
	assert.Equal(t, fetched.Description, after[0].Description)
	assert.Equal(t, fetched.Status, after[0].Status)
}

func TestEditTaskUpdate(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.loginAs(t, userMobile, userPass)
	task := h.seedTask(t, "orig")

	e := mountEdit(t, h, task)
	e.Form.Title = "renamed"
	require.NoError(t, e.SetStatus(api.StatusCompleted))
	require.NoError(t, e.Submit(ctx))

	after, err := h.env.API.ListTasks(ctx)
	require.NoError(t, err)
	assert.Equal(t, "renamed", after[0].Title)
	assert.Equal(t, api.StatusCompleted, after[0].Status)
}

func TestEditTaskFailures(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.loginAs(t, userMobile, userPass)

	e := mountEdit(t, h, api.Task{ID: "missing", Title: "x"})
	e.Form.Title = ""
	assert.ErrorIs(t, e.Submit(ctx), ErrInvalidForm)
	assert.Equal(t, "Title is required", e.Errors()["title"])

	e.Form.Title = "x"
	require.Error(t, e.Submit(ctx))
	assert.Equal(t, "Task not found", e.Notice().Message)

	h.stub.Fail(stubapi.RouteUpdateTask, stubFault(http.StatusBadRequest, ""))
	require.Error(t, e.Submit(ctx))
	assert.NotEmpty(t, e.Notice().Message)

	e.env.API = deadAPI(h)
	require.Error(t, e.Submit(ctx))
	assert.Equal(t, "Server not reachable", e.Notice().Message)
}

func TestEditTaskNeedsTask(t *testing.T) {
	h := newHarness(t)
	h.loginAs(t, userMobile, userPass)
	h.env.Nav.Navigate(RouteEditTask, nil)
	_, err := NewEditTask(context.Background(), h.env)
	assert.ErrorIs(t, err, ErrNoTask)
}
