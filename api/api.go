// Package api binds the task API endpoints to typed requests and responses.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/ncobase/taskmate/net/client"
)

// Endpoint paths.
const (
	PathLogin      = "/users/login"
	PathSignup     = "/users/signup"
	PathListUsers  = "/users/all-users"
	PathCreateTask = "/tasks/createTask"
	PathListTasks  = "/tasks/getTask"
	PathUpdateTask = "/tasks/updateTask/"
	PathDeleteTask = "/tasks/deleteTask/"
)

// Caller performs a classified request; *client.Client implements it.
type Caller interface {
	Call(ctx context.Context, req client.Request, out any) error
}

// API is the typed endpoint set.
type API struct {
	c Caller
}

// New wraps a caller.
func New(c Caller) *API {
	return &API{c: c}
}

// Login exchanges credentials for a token. It is not authenticated.
func (a *API) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	var out LoginResponse
	if err := a.c.Call(ctx, client.Request{Method: http.MethodPost, Path: PathLogin, Body: req}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Signup registers a user. Any JSON body counts as confirmation.
func (a *API) Signup(ctx context.Context, req SignupRequest) error {
	var out json.RawMessage
	return a.c.Call(ctx, client.Request{Method: http.MethodPost, Path: PathSignup, Body: req}, &out)
}

// ListUsers returns the assignable users. Admin only.
func (a *API) ListUsers(ctx context.Context) ([]User, error) {
	var out UserList
	if err := a.c.Call(ctx, client.Request{Method: http.MethodGet, Path: PathListUsers, RequiresAuth: true}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListTasks returns the tasks visible to the session.
func (a *API) ListTasks(ctx context.Context) ([]Task, error) {
	var out TaskList
	if err := a.c.Call(ctx, client.Request{Method: http.MethodGet, Path: PathListTasks, RequiresAuth: true}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateTask creates a task.
func (a *API) CreateTask(ctx context.Context, req CreateTaskRequest) (*CreatedTask, error) {
	var out CreatedTask
	if err := a.c.Call(ctx, client.Request{Method: http.MethodPost, Path: PathCreateTask, Body: req, RequiresAuth: true}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateTask replaces title, description and status of task id.
func (a *API) UpdateTask(ctx context.Context, id string, req UpdateTaskRequest) error {
	var out map[string]any
	return a.c.Call(ctx, client.Request{
		Method:       http.MethodPut,
		Path:         PathUpdateTask + url.PathEscape(id),
		Body:         req,
		RequiresAuth: true,
	}, &out)
}

// DeleteTask deletes task id. The response body is ignored.
func (a *API) DeleteTask(ctx context.Context, id string) error {
	return a.c.Call(ctx, client.Request{
		Method:       http.MethodDelete,
		Path:         PathDeleteTask + url.PathEscape(id),
		RequiresAuth: true,
	}, nil)
}
