package stubapi

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ncobase/taskmate/ctxutil"
	"github.com/ncobase/taskmate/net/client"
	"github.com/ncobase/taskmate/net/resp"
)

const principalKey = "principal"

// loggerMiddleware logs each request with the caller's request id.
func (s *Server) loggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		ctx := c.Request.Context()
		if id := c.GetHeader(client.RequestIDHeader); id != "" {
			ctx = ctxutil.SetTraceID(ctx, id)
		}

		c.Next()

		s.log.Debugf(ctx, "%s %s -> %d (%s)", c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start))
	}
}

// faultMiddleware counts hits and answers with an injected fault, if any.
func (s *Server) faultMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		route := c.FullPath()
		s.mu.Lock()
		s.hits[route]++
		f, faulty := s.faults[route]
		s.mu.Unlock()

		if !faulty {
			c.Next()
			return
		}
		if f.Body != "" {
			status := f.Status
			if status == 0 {
				status = 200
			}
			resp.Raw(c.Writer, status, "text/html; charset=utf-8", []byte(f.Body))
		} else {
			resp.Fail(c.Writer, &resp.Exception{Status: f.Status, Message: f.Message})
		}
		c.Abort()
	}
}

// authMiddleware resolves the bearer token to a principal.
func (s *Server) authMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		parts := strings.SplitN(c.GetHeader("Authorization"), " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			resp.Unauthorized(c.Writer, "Unauthorized")
			c.Abort()
			return
		}

		p, err := s.svc.Authenticate(parts[1])
		if err != nil {
			s.log.Debugf(c.Request.Context(), "rejecting token: %v", err)
			resp.Unauthorized(c.Writer, "Invalid token")
			c.Abort()
			return
		}
		c.Set(principalKey, p)
		c.Next()
	}
}

// requireAdmin rejects non-admin principals with 403.
func (s *Server) requireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !currentPrincipal(c).isAdmin() {
			resp.Forbidden(c.Writer, "Access denied")
			c.Abort()
			return
		}
		c.Next()
	}
}

func currentPrincipal(c *gin.Context) principal {
	v, _ := c.Get(principalKey)
	p, _ := v.(principal)
	return p
}
