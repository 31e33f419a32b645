// Package session holds the logged-in user's record and the store it is
// persisted in.
package session

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Role is the user's role as reported by the login endpoint.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

// Session is the authenticated user. It is written once at login and replaced
// wholesale, never patched.
type Session struct {
	Token  string `json:"token" validate:"required"`
	Role   Role   `json:"role" validate:"required,oneof=admin user"`
	Name   string `json:"name" validate:"required"`
	Mobile string `json:"mobile" validate:"required"`
}

// IsAdmin reports whether the session belongs to an admin.
func (s *Session) IsAdmin() bool {
	return s != nil && s.Role == RoleAdmin
}

// CanAssignTasks reports whether tasks may be created on behalf of other users.
func (s *Session) CanAssignTasks() bool { return s.IsAdmin() }

// CanListUsers reports whether the user directory may be fetched.
func (s *Session) CanListUsers() bool { return s.IsAdmin() }

// Claims is what the bearer token says about itself.
type Claims struct {
	Subject   string
	Issuer    string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Expired reports whether the token carries an expiry that has passed.
func (c *Claims) Expired(now time.Time) bool {
	return c != nil && !c.ExpiresAt.IsZero() && now.After(c.ExpiresAt)
}

// Claims decodes the token payload without verifying the signature. Opaque
// tokens yield false. The result is informational only.
func (s *Session) Claims() (*Claims, bool) {
	if s == nil || strings.Count(s.Token, ".") != 2 {
		return nil, false
	}
	var rc jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(s.Token, &rc); err != nil {
		return nil, false
	}
	c := &Claims{Subject: rc.Subject, Issuer: rc.Issuer}
	if rc.IssuedAt != nil {
		c.IssuedAt = rc.IssuedAt.Time
	}
	if rc.ExpiresAt != nil {
		c.ExpiresAt = rc.ExpiresAt.Time
	}
	return c, true
}
