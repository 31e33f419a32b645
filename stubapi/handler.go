package stubapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ncobase/taskmate/api"
	"github.com/ncobase/taskmate/net/resp"
	"github.com/ncobase/taskmate/session"
	"github.com/ncobase/taskmate/validator"
)

type signupBody struct {
	Name     string `json:"name" validate:"notblank"`
	Email    string `json:"email" validate:"required,loose_email"`
	Mobile   string `json:"mobile" validate:"required,mobile"`
	Password string `json:"password" validate:"required,min=6"`
}

type loginBody struct {
	Mobile   string `json:"mobile" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type createTaskBody struct {
	Title          string `json:"title" validate:"notblank"`
	Description    string `json:"description"`
	AssignedUserID string `json:"assignedUserId"`
}

func (createTaskBody) ValidationMessages() map[string]string {
	return map[string]string{"title.notblank": "Title is required"}
}

type updateTaskBody struct {
	Title       string     `json:"title" validate:"notblank"`
	Description string     `json:"description"`
	Status      api.Status `json:"status" validate:"required,oneof=pending inProgress completed"`
}

func (updateTaskBody) ValidationMessages() map[string]string {
	return map[string]string{"title.notblank": "Title is required"}
}

// bind decodes and validates the body; on failure the response is written.
func bind(c *gin.Context, v any) bool {
	if err := c.ShouldBindJSON(v); err != nil {
		resp.BadRequest(c.Writer, "Invalid request body")
		return false
	}
	if errs := validator.ValidateStruct(v); len(errs) > 0 {
		msg := "Validation failed"
		if len(errs) == 1 {
			for _, m := range errs {
				msg = m
			}
		}
		resp.BadRequest(c.Writer, msg, errs)
		return false
	}
	return true
}

// fail maps service errors onto status codes and messages.
func fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrUserExists):
		resp.Fail(c.Writer, &resp.Exception{Status: http.StatusConflict, Message: "User already exists"})
	case errors.Is(err, ErrInvalidCredentials):
		resp.Unauthorized(c.Writer, "Invalid credentials")
	case errors.Is(err, ErrTaskNotFound):
		resp.NotFound(c.Writer, "Task not found")
	case errors.Is(err, ErrUserNotFound):
		resp.BadRequest(c.Writer, "Assigned user not found")
	case errors.Is(err, ErrAssignForbidden):
		resp.Forbidden(c.Writer, "Only admins can assign tasks")
	case errors.Is(err, ErrAccessDenied):
		resp.Forbidden(c.Writer, "Access denied")
	default:
		resp.ServerError(c.Writer, "Internal server error")
	}
}

func (s *Server) signup(c *gin.Context) {
	var body signupBody
	if !bind(c, &body) {
		return
	}
	if _, err := s.svc.CreateUser(c.Request.Context(), body.Name, body.Email, body.Mobile, body.Password, session.RoleUser); err != nil {
		fail(c, err)
		return
	}
	resp.WithStatusCode(c.Writer, http.StatusCreated, "User registered successfully")
}

func (s *Server) login(c *gin.Context) {
	var body loginBody
	if !bind(c, &body) {
		return
	}
	out, err := s.svc.Login(c.Request.Context(), body.Mobile, body.Password)
	if err != nil {
		fail(c, err)
		return
	}
	resp.Success(c.Writer, out)
}

func (s *Server) listUsers(c *gin.Context) {
	resp.Success(c.Writer, s.svc.Users(c.Request.Context()))
}

func (s *Server) listTasks(c *gin.Context) {
	resp.Success(c.Writer, s.svc.Tasks(c.Request.Context(), currentPrincipal(c)))
}

func (s *Server) createTask(c *gin.Context) {
	var body createTaskBody
	if !bind(c, &body) {
		return
	}
	t, err := s.svc.CreateTask(c.Request.Context(), currentPrincipal(c), api.CreateTaskRequest{
		Title:          body.Title,
		Description:    body.Description,
		AssignedUserID: body.AssignedUserID,
	})
	if err != nil {
		fail(c, err)
		return
	}
	resp.WithStatusCode(c.Writer, http.StatusCreated, t)
}

func (s *Server) updateTask(c *gin.Context) {
	var body updateTaskBody
	if !bind(c, &body) {
		return
	}
	t, err := s.svc.UpdateTask(c.Request.Context(), currentPrincipal(c), c.Param("id"), api.UpdateTaskRequest{
		Title:       body.Title,
		Description: body.Description,
		Status:      body.Status,
	})
	if err != nil {
		fail(c, err)
		return
	}
	resp.Success(c.Writer, t)
}

func (s *Server) deleteTask(c *gin.Context) {
	if err := s.svc.DeleteTask(c.Request.Context(), currentPrincipal(c), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	resp.Success(c.Writer, "Task deleted successfully")
}
