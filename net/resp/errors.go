package resp

import (
	"net/http"

	"github.com/ncobase/taskmate/ecode"
)

// BadRequest writes 400 with optional field errors.
func BadRequest(w http.ResponseWriter, message string, errs ...any) {
	r := &Exception{Status: http.StatusBadRequest, Code: ecode.RequestErr, Message: message}
	if len(errs) > 0 {
		r.Errors = errs[0]
	}
	Fail(w, r)
}

// Unauthorized writes 401.
func Unauthorized(w http.ResponseWriter, message string) {
	Fail(w, &Exception{Status: http.StatusUnauthorized, Code: ecode.NoLogin, Message: message})
}

// Forbidden writes 403.
func Forbidden(w http.ResponseWriter, message string) {
	Fail(w, &Exception{Status: http.StatusForbidden, Code: ecode.AccessDenied, Message: message})
}

// NotFound writes 404.
func NotFound(w http.ResponseWriter, message string) {
	Fail(w, &Exception{Status: http.StatusNotFound, Code: ecode.NotFound, Message: message})
}

// ServerError writes 500.
func ServerError(w http.ResponseWriter, message string) {
	Fail(w, &Exception{Status: http.StatusInternalServerError, Code: ecode.ServerErr, Message: message})
}
