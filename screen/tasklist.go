package screen

import (
	"context"
	"errors"
	"fmt"

	"github.com/ncobase/taskmate/api"
	"github.com/ncobase/taskmate/net/client"
)

const (
	msgTasksEmpty       = "No tasks found"
	msgTasksLoadFailed  = "Failed to load tasks. Please try again."
	msgTaskDeleted      = "Task deleted successfully"
	msgTaskDeleteFailed = "Failed to delete task"
	msgUnreachable      = "Server not reachable"
)

// ErrNoPendingDelete is returned by ConfirmDelete without a prior RequestDelete.
var ErrNoPendingDelete = errors.New("screen: no delete pending")

// TaskList shows the visible tasks and handles deletion.
type TaskList struct {
	base
	tasks         []api.Task
	loaded        bool
	loading       bool
	pendingDelete string
}

// NewTaskList mounts TaskList and fetches the tasks.
func NewTaskList(ctx context.Context, env Env) (*TaskList, error) {
	l := &TaskList{base: newBase(env, RouteTaskList)}
	if _, err := l.requireSession(ctx); err != nil {
		return l, err
	}
	return l, l.Refresh(ctx)
}

// Tasks returns the cached list.
func (l *TaskList) Tasks() []api.Task { return l.tasks }

// Loading reports whether a fetch is running.
func (l *TaskList) Loading() bool { return l.loading }

// Empty reports a successfully loaded empty collection.
func (l *TaskList) Empty() bool { return l.loaded && len(l.tasks) == 0 }

// EmptyMessage is shown when Empty.
func (l *TaskList) EmptyMessage() string { return msgTasksEmpty }

// Refresh refetches and replaces the cached list. On failure the cache is kept.
func (l *TaskList) Refresh(ctx context.Context) (err error) {
	ctx, end := l.begin(ctx, "refresh")
	defer func() { end(err) }()

	l.loading = true
	tasks, err := l.env.API.ListTasks(ctx)
	l.loading = false
	if l.Closed() {
		return context.Canceled
	}
	if err != nil {
		if !l.guard(ctx, err) {
			l.notice = errorNotice(msgTasksLoadFailed)
		}
		l.env.log().Warnf(ctx, "list tasks: %v", err)
		return err
	}
	l.tasks = tasks
	l.loaded = true
	return nil
}

// Focus is called when the screen becomes visible again; it refetches.
func (l *TaskList) Focus(ctx context.Context) error {
	l.loaded = false
	return l.Refresh(ctx)
}

// Edit opens EditTask for t.
func (l *TaskList) Edit(t api.Task) {
	l.env.Nav.Navigate(RouteEditTask, map[string]any{ParamTask: t})
}

// RequestDelete asks for confirmation before deleting id.
func (l *TaskList) RequestDelete(id string) {
	l.pendingDelete = id
}

// PendingDelete returns the id awaiting confirmation, if any.
func (l *TaskList) PendingDelete() (string, bool) {
	return l.pendingDelete, l.pendingDelete != ""
}

// CancelDelete drops the pending confirmation.
func (l *TaskList) CancelDelete() {
	l.pendingDelete = ""
}

// ConfirmDelete deletes the pending task. On success exactly that task is
// removed from the cache without a refetch.
func (l *TaskList) ConfirmDelete(ctx context.Context) (err error) {
	id := l.pendingDelete
	if id == "" {
		return ErrNoPendingDelete
	}
	l.pendingDelete = ""

	ctx, end := l.begin(ctx, "delete")
	defer func() { end(err) }()

	err = l.env.API.DeleteTask(ctx, id)
	if l.Closed() {
		return context.Canceled
	}
	if err != nil {
		if !l.guard(ctx, err) {
			if client.Kind(err) == client.KindServerRejected {
				l.notice = errorNotice(msgTaskDeleteFailed)
			} else {
				l.notice = errorNotice(msgUnreachable)
			}
		}
		l.env.log().Warnf(ctx, "delete task %s: %v", id, err)
		return fmt.Errorf("delete task %s: %w", id, err)
	}

	kept := l.tasks[:0:0]
	for _, t := range l.tasks {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	l.tasks = kept
	l.notice = successNotice(msgTaskDeleted)
	return nil
}
