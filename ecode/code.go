package ecode

import (
	"net/http"
)

// Client outcome codes.
const (
	OK      = 0
	Unknown = -1

	// -100 range: session / authorization
	NoLogin      = -101
	AccessDenied = -103

	// -200 range: client-side validation
	ValidationErr = -200

	// -300 range: server answered with a failure
	RequestErr = -300
	NotFound   = -304

	// -500 range: transport
	Unreachable       = -500
	MalformedResponse = -502
	StorageErr        = -510

	// -600 range: server side (stub API)
	ServerErr = -600
)

var (
	texts = map[int]string{
		OK:                "ok",
		Unknown:           "Unexpected error. Please try again.",
		NoLogin:           "Authentication failed. Please log in again.",
		AccessDenied:      "Access denied",
		ValidationErr:     "Invalid input",
		RequestErr:        "Request rejected by server",
		NotFound:          "Resource not found",
		Unreachable:       "Server not reachable",
		MalformedResponse: "Server error: Invalid response format.",
		StorageErr:        "Local storage failure",
		ServerErr:         "Internal server error",
	}
	statuses = map[int]int{
		OK:           http.StatusOK,
		NoLogin:      http.StatusUnauthorized,
		AccessDenied: http.StatusForbidden,
		RequestErr:   http.StatusBadRequest,
		NotFound:     http.StatusNotFound,
	}
)

// Text returns the human readable message for a code.
func Text(code int) string {
	if t, ok := texts[code]; ok {
		return t
	}
	return texts[Unknown]
}

// ToHTTPStatus maps a code to the HTTP status the stub server answers with.
func ToHTTPStatus(code int) int {
	if s, ok := statuses[code]; ok {
		return s
	}
	return http.StatusInternalServerError
}
