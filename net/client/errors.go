package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/ncobase/taskmate/ecode"
)

// ErrAuthMissing is returned for a privileged call made without a session.
var ErrAuthMissing = errors.New("client: no session token")

// ServerRejected is a response outside 2xx.
type ServerRejected struct {
	StatusCode int
	Message    string
}

func (e *ServerRejected) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server rejected request: %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("server rejected request: %d: %s", e.StatusCode, e.Message)
}

// Unreachable means no response was obtained.
type Unreachable struct {
	Method string
	URL    string
	Err    error
}

func (e *Unreachable) Error() string {
	return fmt.Sprintf("%s %s: server not reachable: %v", e.Method, e.URL, e.Err)
}

func (e *Unreachable) Unwrap() error { return e.Err }

// MalformedResponse is a 2xx whose body does not match the expected shape.
type MalformedResponse struct {
	StatusCode int
	Err        error
}

func (e *MalformedResponse) Error() string {
	return fmt.Sprintf("malformed response (%d): %v", e.StatusCode, e.Err)
}

func (e *MalformedResponse) Unwrap() error { return e.Err }

// ErrorKind classifies the outcome of a call.
type ErrorKind int

const (
	KindSuccess ErrorKind = iota
	KindAuthMissing
	KindServerRejected
	KindUnreachable
	KindMalformedResponse
	// KindUnknown covers errors raised before a request could be built.
	KindUnknown
)

func (k ErrorKind) String() string {
	switch k {
	case KindSuccess:
		return "success"
	case KindAuthMissing:
		return "auth_missing"
	case KindServerRejected:
		return "server_rejected"
	case KindUnreachable:
		return "unreachable"
	case KindMalformedResponse:
		return "malformed_response"
	default:
		return "unknown"
	}
}

// Code maps the kind onto the ecode table.
func (k ErrorKind) Code() int {
	switch k {
	case KindSuccess:
		return ecode.OK
	case KindAuthMissing:
		return ecode.NoLogin
	case KindServerRejected:
		return ecode.RequestErr
	case KindUnreachable:
		return ecode.Unreachable
	case KindMalformedResponse:
		return ecode.MalformedResponse
	default:
		return ecode.Unknown
	}
}

// Kind reports the classification of err.
func Kind(err error) ErrorKind {
	if err == nil {
		return KindSuccess
	}
	var (
		rejected    *ServerRejected
		unreachable *Unreachable
		malformed   *MalformedResponse
	)
	switch {
	case errors.Is(err, ErrAuthMissing):
		return KindAuthMissing
	case errors.As(err, &rejected):
		return KindServerRejected
	case errors.As(err, &unreachable):
		return KindUnreachable
	case errors.As(err, &malformed):
		return KindMalformedResponse
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return KindUnreachable
	default:
		return KindUnknown
	}
}

// IsAuthFailure reports whether err means the session is missing or no longer
// accepted: ErrAuthMissing, or a 401/403 rejection.
func IsAuthFailure(err error) bool {
	if errors.Is(err, ErrAuthMissing) {
		return true
	}
	var rejected *ServerRejected
	if errors.As(err, &rejected) {
		return rejected.StatusCode == http.StatusUnauthorized || rejected.StatusCode == http.StatusForbidden
	}
	return false
}

// RejectionMessage returns the server-provided message of a rejection, or "".
func RejectionMessage(err error) string {
	var rejected *ServerRejected
	if errors.As(err, &rejected) {
		return rejected.Message
	}
	return ""
}
