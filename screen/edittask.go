package screen

import (
	"context"
	"errors"

	"github.com/ncobase/taskmate/api"
	"github.com/ncobase/taskmate/net/client"
	"github.com/ncobase/taskmate/validator"
)

const (
	msgTaskUpdated      = "Task updated successfully"
	msgTaskUpdateFailed = "Task update failed"
)

// ErrNoTask is returned when EditTask is mounted without a task parameter.
var ErrNoTask = errors.New("screen: no task to edit")

// EditTaskForm is the edit form. Status is one of api.Statuses.
type EditTaskForm struct {
	Title       string     `json:"title" validate:"notblank"`
	Description string     `json:"description"`
	Status      api.Status `json:"status"`
}

func (EditTaskForm) ValidationMessages() map[string]string {
	return map[string]string{"title.notblank": msgTitleRequired}
}

// EditTask edits an existing task.
type EditTask struct {
	base
	Form   EditTaskForm
	taskID string
	errors FieldErrors
}

// NewEditTask mounts EditTask with the task from the current route.
func NewEditTask(ctx context.Context, env Env) (*EditTask, error) {
	e := &EditTask{base: newBase(env, RouteEditTask), errors: FieldErrors{}}
	if _, err := e.requireSession(ctx); err != nil {
		return e, err
	}

	var t api.Task
	switch v := env.Nav.Current().Params[ParamTask].(type) {
	case api.Task:
		t = v
	case *api.Task:
		if v != nil {
			t = *v
		}
	}
	if t.ID == "" {
		return e, ErrNoTask
	}

	status := t.Status
	if status == "" {
		status = api.StatusPending
	}
	e.taskID = t.ID
	e.Form = EditTaskForm{Title: t.Title, Description: t.Description, Status: status}
	return e, nil
}

// TaskID returns the id being edited.
func (e *EditTask) TaskID() string { return e.taskID }

func (e *EditTask) Errors() FieldErrors { return e.errors }

// SetStatus selects s, deselecting the previous status.
func (e *EditTask) SetStatus(s api.Status) error {
	if _, err := api.ParseStatus(string(s)); err != nil {
		return err
	}
	e.Form.Status = s
	return nil
}

// Selected reports whether s is the chosen status.
func (e *EditTask) Selected(s api.Status) bool { return e.Form.Status == s }

// Request is the body Submit sends.
func (e *EditTask) Request() api.UpdateTaskRequest {
	return api.UpdateTaskRequest{Title: e.Form.Title, Description: e.Form.Description, Status: e.Form.Status}
}

// Submit saves the full form and moves to TaskList.
func (e *EditTask) Submit(ctx context.Context) (err error) {
	e.errors = FieldErrors(validator.ValidateStruct(&e.Form))
	if len(e.errors) > 0 {
		e.notice = errorNotice(msgTitleRequired)
		return ErrInvalidForm
	}

	ctx, end := e.begin(ctx, "submit")
	defer func() { end(err) }()

	e.notice = nil
	err = e.env.API.UpdateTask(ctx, e.taskID, e.Request())
	if e.Closed() {
		return context.Canceled
	}
	if err != nil {
		if !e.guard(ctx, err) {
			if client.Kind(err) == client.KindServerRejected {
				e.notice = errorNotice(rejectedOr(err, msgTaskUpdateFailed))
			} else {
				e.notice = errorNotice(msgUnreachable)
			}
		}
		e.env.log().Warnf(ctx, "update task %s: %v", e.taskID, err)
		return err
	}

	e.notice = successNotice(msgTaskUpdated)
	e.env.Nav.Navigate(RouteTaskList, nil)
	return nil
}
