package api

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/ncobase/taskmate/session"
	"github.com/ncobase/taskmate/validator"
)

// Status is a task's progress state.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "inProgress"
	StatusCompleted  Status = "completed"
)

// Statuses lists every status in display order.
var Statuses = []Status{StatusPending, StatusCompleted, StatusInProgress}

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	for _, v := range Statuses {
		if s == v {
			return true
		}
	}
	return false
}

// Label is the human form shown in lists.
func (s Status) Label() string {
	switch s {
	case StatusInProgress:
		return "In Progress"
	case StatusCompleted:
		return "Completed"
	default:
		return "Pending"
	}
}

// ParseStatus accepts a wire value, case-sensitively.
func ParseStatus(v string) (Status, error) {
	s := Status(v)
	if !s.Valid() {
		return "", fmt.Errorf("unknown status %q, want one of %v", v, Statuses)
	}
	return s, nil
}

// UserRef is a task's assignee. The wire form is either a bare id string or a
// populated {_id, name} object.
type UserRef struct {
	ID   string `json:"_id,omitempty"`
	Name string `json:"name,omitempty"`
}

// UnmarshalJSON accepts both wire forms.
func (u *UserRef) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, &u.ID)
	}
	type plain UserRef
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*u = UserRef(p)
	return nil
}

// Task is a unit of work.
type Task struct {
	ID           string   `json:"_id" validate:"required"`
	Title        string   `json:"title" validate:"required"`
	Description  string   `json:"description"`
	Status       Status   `json:"status"`
	AssignedUser *UserRef `json:"userId,omitempty"`
}

// AssigneeLabel is the assignee's name, or "self" when unassigned.
func (t *Task) AssigneeLabel() string {
	if t.AssignedUser != nil && t.AssignedUser.Name != "" {
		return t.AssignedUser.Name
	}
	return "self"
}

func (t *Task) normalize() error {
	if t.Status == "" {
		t.Status = StatusPending
	}
	if !t.Status.Valid() {
		return fmt.Errorf("task %s: unknown status %q", t.ID, t.Status)
	}
	return nil
}

// Validate checks the task schema.
func (t *Task) Validate() error {
	if err := validator.Struct(t); err != nil {
		return err
	}
	return t.normalize()
}

// TaskList is the ListTasks payload.
type TaskList []Task

// Validate checks every element.
func (l *TaskList) Validate() error {
	if *l == nil {
		return fmt.Errorf("task list: expected an array")
	}
	for i := range *l {
		if err := (*l)[i].Validate(); err != nil {
			return fmt.Errorf("task list[%d]: %w", i, err)
		}
	}
	return nil
}

// CreatedTask is the CreateTask payload; only the id is required.
type CreatedTask struct {
	ID          string `json:"_id" validate:"required"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      Status `json:"status"`
}

func (t *CreatedTask) Validate() error { return validator.Struct(t) }

// User is an assignable account.
type User struct {
	ID   string `json:"_id" validate:"required"`
	Name string `json:"name"`
}

// UserList is the ListUsers payload.
type UserList []User

// Validate checks every element.
func (l *UserList) Validate() error {
	if *l == nil {
		return fmt.Errorf("user list: expected an array")
	}
	for i := range *l {
		if err := validator.Struct(&(*l)[i]); err != nil {
			return fmt.Errorf("user list[%d]: %w", i, err)
		}
	}
	return nil
}

// LoginRequest is the credentials body.
type LoginRequest struct {
	Mobile   string `json:"mobile"`
	Password string `json:"password"`
}

// LoginResponse is the successful login body.
type LoginResponse struct {
	JWTToken string       `json:"jwtToken" validate:"required"`
	Role     session.Role `json:"role" validate:"required,oneof=admin user"`
	Name     string       `json:"name" validate:"required"`
	Mobile   string       `json:"mobile" validate:"required"`
}

func (r *LoginResponse) Validate() error { return validator.Struct(r) }

// Session converts the response into the record that gets persisted.
func (r *LoginResponse) Session() *session.Session {
	return &session.Session{Token: r.JWTToken, Role: r.Role, Name: r.Name, Mobile: r.Mobile}
}

// SignupRequest registers a user.
type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Mobile   string `json:"mobile"`
	Password string `json:"password"`
}

// CreateTaskRequest creates a task. AssignedUserID is admin-only.
type CreateTaskRequest struct {
	Title          string `json:"title"`
	Description    string `json:"description"`
	AssignedUserID string `json:"assignedUserId,omitempty"`
}

// UpdateTaskRequest replaces a task's editable fields.
type UpdateTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      Status `json:"status"`
}
