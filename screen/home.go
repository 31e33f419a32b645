package screen

import (
	"context"
	"fmt"

	"github.com/ncobase/taskmate/session"
)

// Home greets the user and links to the task screens.
type Home struct {
	base
	session *session.Session
}

// NewHome mounts Home. Without a session the navigator is reset to Login and
// ErrNoSession is returned.
func NewHome(ctx context.Context, env Env) (*Home, error) {
	h := &Home{base: newBase(env, RouteHome)}
	s, err := h.requireSession(ctx)
	if err != nil {
		return h, err
	}
	h.session = s
	return h, nil
}

// Session returns the session read at mount.
func (h *Home) Session() *session.Session { return h.session }

// Greeting is the welcome line.
func (h *Home) Greeting() string {
	name := "User"
	if h.session != nil && h.session.Name != "" {
		name = h.session.Name
	}
	return fmt.Sprintf("Welcome, %s!", name)
}

// OpenCreateTask navigates to CreateTask.
func (h *Home) OpenCreateTask() { h.env.Nav.Navigate(RouteCreateTask, nil) }

// OpenTaskList navigates to TaskList.
func (h *Home) OpenTaskList() { h.env.Nav.Navigate(RouteTaskList, nil) }

// Logout clears the session and replaces Home with Login.
func (h *Home) Logout(ctx context.Context) error {
	if err := h.env.Sessions.Clear(ctx); err != nil {
		h.notice = errorNotice(err.Error())
		return err
	}
	h.session = nil
	h.env.Nav.Reset(Route{Name: RouteLogin})
	return nil
}
