package screen

import (
	"context"
	"errors"
	"fmt"

	"github.com/ncobase/taskmate/api"
	"github.com/ncobase/taskmate/net/client"
	"github.com/ncobase/taskmate/session"
	"github.com/ncobase/taskmate/validator"
)

const (
	msgTitleRequired    = "Title is required"
	msgTaskCreated      = "Task created successfully"
	msgTaskCreateFailed = "Task creation failed"
	msgUsersLoadFailed  = "Failed to load users"
)

var (
	// ErrNotAdmin is returned when a non-admin tries an admin-only action.
	ErrNotAdmin = errors.New("screen: only admins can assign tasks")
	// ErrUnknownUser is returned by SelectUser for an id not in Users.
	ErrUnknownUser = errors.New("screen: unknown user")
)

// CreateTaskForm is the new-task form.
type CreateTaskForm struct {
	Title       string `json:"title" validate:"notblank"`
	Description string `json:"description"`
}

func (CreateTaskForm) ValidationMessages() map[string]string {
	return map[string]string{"title.notblank": msgTitleRequired}
}

// CreateTask creates a task, optionally assigned by an admin.
type CreateTask struct {
	base
	Form     CreateTaskForm
	session  *session.Session
	users    []api.User
	selected string
	errors   FieldErrors
}

// NewCreateTask mounts CreateTask. Admin sessions fetch the user list once; a
// failed fetch only leaves a notice.
func NewCreateTask(ctx context.Context, env Env) (*CreateTask, error) {
	c := &CreateTask{base: newBase(env, RouteCreateTask), errors: FieldErrors{}}
	s, err := c.requireSession(ctx)
	if err != nil {
		return c, err
	}
	c.session = s
	if s.CanListUsers() {
		if err := c.loadUsers(ctx); err != nil && client.IsAuthFailure(err) {
			return c, err
		}
	}
	return c, nil
}

func (c *CreateTask) loadUsers(ctx context.Context) (err error) {
	ctx, end := c.begin(ctx, "users")
	defer func() { end(err) }()

	users, err := c.env.API.ListUsers(ctx)
	if c.Closed() {
		return context.Canceled
	}
	if err != nil {
		if !c.guard(ctx, err) {
			c.notice = errorNotice(msgUsersLoadFailed)
		}
		c.env.log().Warnf(ctx, "list users: %v", err)
		return err
	}
	c.users = users
	return nil
}

// CanAssign reports whether the assignee picker is shown.
func (c *CreateTask) CanAssign() bool { return c.session.CanAssignTasks() }

// Users returns the assignable users fetched at mount.
func (c *CreateTask) Users() []api.User { return c.users }

// Selected returns the chosen assignee id, if any.
func (c *CreateTask) Selected() string { return c.selected }

func (c *CreateTask) Errors() FieldErrors { return c.errors }

// SelectUser picks an assignee among the fetched users. Admin only.
func (c *CreateTask) SelectUser(id string) error {
	if !c.CanAssign() {
		return ErrNotAdmin
	}
	for _, u := range c.users {
		if u.ID == id {
			c.selected = id
			return nil
		}
	}
	return fmt.Errorf("%w %q", ErrUnknownUser, id)
}

// ClearUser removes the assignee.
func (c *CreateTask) ClearUser() { c.selected = "" }

// Submit creates the task and moves to TaskList.
func (c *CreateTask) Submit(ctx context.Context) (err error) {
	c.errors = FieldErrors(validator.ValidateStruct(&c.Form))
	if len(c.errors) > 0 {
		c.notice = errorNotice(msgTitleRequired)
		return ErrInvalidForm
	}

	ctx, end := c.begin(ctx, "submit")
	defer func() { end(err) }()

	req := api.CreateTaskRequest{Title: c.Form.Title, Description: c.Form.Description}
	if c.CanAssign() && c.selected != "" {
		req.AssignedUserID = c.selected
	}

	c.notice = nil
	_, err = c.env.API.CreateTask(ctx, req)
	if c.Closed() {
		return context.Canceled
	}
	if err != nil {
		if !c.guard(ctx, err) {
			if client.Kind(err) == client.KindServerRejected {
				c.notice = errorNotice(rejectedOr(err, msgTaskCreateFailed))
			} else {
				c.notice = errorNotice(msgUnreachable)
			}
		}
		c.env.log().Warnf(ctx, "create task: %v", err)
		return err
	}

	c.notice = successNotice(msgTaskCreated)
	c.Form = CreateTaskForm{}
	c.selected = ""
	c.env.Nav.Navigate(RouteTaskList, nil)
	return nil
}
