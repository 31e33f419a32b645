package stubapi

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/ncobase/taskmate/api"
	"github.com/ncobase/taskmate/nanoid"
	"github.com/ncobase/taskmate/security/jwt"
	"github.com/ncobase/taskmate/session"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrUserExists         = errors.New("stubapi: user already exists")
	ErrInvalidCredentials = errors.New("stubapi: invalid credentials")
	ErrTaskNotFound       = errors.New("stubapi: task not found")
	ErrUserNotFound       = errors.New("stubapi: assigned user not found")
	ErrAssignForbidden    = errors.New("stubapi: only admins can assign tasks")
	ErrAccessDenied       = errors.New("stubapi: access denied")
)

type user struct {
	ID           string
	Name         string
	Email        string
	Mobile       string
	PasswordHash []byte
	Role         session.Role
}

type task struct {
	ID          string
	Title       string
	Description string
	Status      api.Status
	CreatedBy   string
	AssignedTo  string
	CreatedAt   time.Time
}

// principal is the authenticated caller.
type principal struct {
	UserID string
	Role   session.Role
}

func (p principal) isAdmin() bool { return p.Role == session.RoleAdmin }

// Service keeps users and tasks in memory.
type Service struct {
	mu       sync.RWMutex
	users    map[string]*user
	byMobile map[string]string
	tasks    map[string]*task

	tokens *jwt.TokenManager
	newID  func() string
	cost   int
}

// NewService creates an empty service signing tokens with tokens.
func NewService(tokens *jwt.TokenManager) *Service {
	return &Service{
		users:    make(map[string]*user),
		byMobile: make(map[string]string),
		tasks:    make(map[string]*task),
		tokens:   tokens,
		newID:    nanoid.PrimaryKey(),
		cost:     bcrypt.DefaultCost,
	}
}

// CreateUser registers an account and returns its id.
func (s *Service) CreateUser(_ context.Context, name, email, mobile, password string, role session.Role) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.byMobile[mobile]; exists {
		return "", ErrUserExists
	}
	u := &user{
		ID:           s.newID(),
		Name:         strings.TrimSpace(name),
		Email:        strings.TrimSpace(email),
		Mobile:       mobile,
		PasswordHash: hash,
		Role:         role,
	}
	s.users[u.ID] = u
	s.byMobile[mobile] = u.ID
	return u.ID, nil
}

// Login checks credentials and issues a token.
func (s *Service) Login(_ context.Context, mobile, password string) (*api.LoginResponse, error) {
	s.mu.RLock()
	u, ok := s.users[s.byMobile[mobile]]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateAccessToken(s.newID(), u.ID, string(u.Role))
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}
	return &api.LoginResponse{JWTToken: token, Role: u.Role, Name: u.Name, Mobile: u.Mobile}, nil
}

// Authenticate resolves a bearer token to a principal. Tokens of deleted
// accounts are rejected.
func (s *Service) Authenticate(token string) (principal, error) {
	claims, err := s.tokens.DecodeToken(token)
	if err != nil {
		return principal{}, err
	}
	s.mu.RLock()
	u, ok := s.users[claims.Subject]
	s.mu.RUnlock()
	if !ok {
		return principal{}, jwt.ErrInvalidToken
	}
	return principal{UserID: u.ID, Role: u.Role}, nil
}

// Users lists accounts ordered by name.
func (s *Service) Users(_ context.Context) []api.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]api.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, api.User{ID: u.ID, Name: u.Name})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name == out[j].Name {
			return out[i].ID < out[j].ID
		}
		return out[i].Name < out[j].Name
	})
	return out
}

func (s *Service) canSee(p principal, t *task) bool {
	return p.isAdmin() || t.CreatedBy == p.UserID || t.AssignedTo == p.UserID
}

// view renders t with its assignee populated.
func (s *Service) view(t *task) api.Task {
	out := api.Task{ID: t.ID, Title: t.Title, Description: t.Description, Status: t.Status}
	if u, ok := s.users[t.AssignedTo]; ok {
		out.AssignedUser = &api.UserRef{ID: u.ID, Name: u.Name}
	}
	return out
}

// Tasks lists the tasks visible to p, oldest first.
func (s *Service) Tasks(_ context.Context, p principal) []api.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	visible := make([]*task, 0, len(s.tasks))
	for _, t := range s.tasks {
		if s.canSee(p, t) {
			visible = append(visible, t)
		}
	}
	sort.Slice(visible, func(i, j int) bool {
		if visible[i].CreatedAt.Equal(visible[j].CreatedAt) {
			return visible[i].ID < visible[j].ID
		}
		return visible[i].CreatedAt.Before(visible[j].CreatedAt)
	})
	out := make([]api.Task, 0, len(visible))
	for _, t := range visible {
		out = append(out, s.view(t))
	}
	return out
}

// CreateTask stores a pending task owned by p.
func (s *Service) CreateTask(_ context.Context, p principal, req api.CreateTaskRequest) (api.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if req.AssignedUserID != "" {
		if !p.isAdmin() {
			return api.Task{}, ErrAssignForbidden
		}
		if _, ok := s.users[req.AssignedUserID]; !ok {
			return api.Task{}, ErrUserNotFound
		}
	}
	t := &task{
		ID:          s.newID(),
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Status:      api.StatusPending,
		CreatedBy:   p.UserID,
		AssignedTo:  req.AssignedUserID,
		CreatedAt:   time.Now(),
	}
	s.tasks[t.ID] = t
	return s.view(t), nil
}

// UpdateTask replaces title, description and status.
func (s *Service) UpdateTask(_ context.Context, p principal, id string, req api.UpdateTaskRequest) (api.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tasks[id]
	if !ok {
		return api.Task{}, ErrTaskNotFound
	}
	if !s.canSee(p, t) {
		return api.Task{}, ErrAccessDenied
	}
	t.Title = strings.TrimSpace(req.Title)
	t.Description = req.Description
	t.Status = req.Status
	return s.view(t), nil
}

// DeleteTask removes a task.
func (s *Service) DeleteTask(_ context.Context, p principal, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tasks[id]
	if !ok {
		return ErrTaskNotFound
	}
	if !s.canSee(p, t) {
		return ErrAccessDenied
	}
	delete(s.tasks, id)
	return nil
}
