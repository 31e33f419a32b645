// Package stubapi is an in-process implementation of the task API, used by
// tests and by `taskmate stub` for local development.
package stubapi

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ncobase/taskmate/api"
	"github.com/ncobase/taskmate/config"
	"github.com/ncobase/taskmate/logging/logger"
	"github.com/ncobase/taskmate/security/jwt"
	"github.com/ncobase/taskmate/session"
)

// Route keys for parameterised endpoints, as used by Hits and Fail.
const (
	RouteUpdateTask = api.PathUpdateTask + ":id"
	RouteDeleteTask = api.PathDeleteTask + ":id"
)

// Fault is a canned answer for a route. A non-empty Body is sent verbatim as
// text/html, otherwise a JSON failure with Message is sent.
type Fault struct {
	Status  int
	Message string
	Body    string
}

// Server wires the service to gin routes.
type Server struct {
	svc    *Service
	log    *logger.Logger
	engine *gin.Engine

	mu     sync.Mutex
	hits   map[string]int
	faults map[string]Fault
}

// Option configures a Server.
type Option func(*Server)

// WithBcryptCost lowers hashing cost, for tests.
func WithBcryptCost(cost int) Option {
	return func(s *Server) { s.svc.cost = cost }
}

// New builds a server and seeds the configured admin account.
func New(cfg *config.Stub, l *logger.Logger, opts ...Option) (*Server, error) {
	if l == nil {
		l = logger.StdLogger()
	}
	gin.SetMode(gin.ReleaseMode)

	s := &Server{
		svc:    NewService(jwt.NewTokenManager(cfg.JWTSecret, cfg.TokenExpire)),
		log:    l,
		hits:   make(map[string]int),
		faults: make(map[string]Fault),
	}
	for _, opt := range opts {
		opt(s)
	}

	if a := cfg.Admin; a != nil && a.Mobile != "" {
		if _, err := s.svc.CreateUser(context.Background(), a.Name, "", a.Mobile, a.Password, session.RoleAdmin); err != nil {
			return nil, fmt.Errorf("stubapi: seed admin: %w", err)
		}
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(s.loggerMiddleware(), s.faultMiddleware())
	s.registerRoutes(router)
	s.engine = router
	return s, nil
}

func (s *Server) registerRoutes(r *gin.Engine) {
	r.POST(api.PathSignup, s.signup)
	r.POST(api.PathLogin, s.login)
	r.GET(api.PathListUsers, s.authMiddleware(), s.requireAdmin(), s.listUsers)

	r.GET(api.PathListTasks, s.authMiddleware(), s.listTasks)
	r.POST(api.PathCreateTask, s.authMiddleware(), s.createTask)
	r.PUT(RouteUpdateTask, s.authMiddleware(), s.updateTask)
	r.DELETE(RouteDeleteTask, s.authMiddleware(), s.deleteTask)
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler { return s.engine }

// Service exposes the backing store, for seeding.
func (s *Server) Service() *Service { return s.svc }

// Hits returns how many requests reached route. An empty route counts
// requests that matched nothing.
func (s *Server) Hits(route string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits[route]
}

// TotalHits returns the number of requests received.
func (s *Server) TotalHits() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, v := range s.hits {
		n += v
	}
	return n
}

// Fail makes route answer with f until cleared.
func (s *Server) Fail(route string, f Fault) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.faults[route] = f
}

// ClearFaults restores normal answers on every route.
func (s *Server) ClearFaults() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.faults = make(map[string]Fault)
}

// ListenAndServe serves on addr until ctx is done, then shuts down gracefully.
// ready, if non-nil, receives the bound address.
func (s *Server) ListenAndServe(ctx context.Context, addr string, ready func(string)) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("stubapi: listen %s: %w", addr, err)
	}
	srv := &http.Server{
		Handler:      s.engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Infof(ctx, "stub api listening on %s", ln.Addr())
		errCh <- srv.Serve(ln)
	}()
	if ready != nil {
		ready(ln.Addr().String())
	}

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("stubapi: shutdown: %w", err)
	}
	s.log.Infof(context.Background(), "stub api stopped")
	return nil
}
