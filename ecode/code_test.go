package ecode

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestText(t *testing.T) {
	assert.Equal(t, "Server not reachable", Text(Unreachable))
	assert.Equal(t, Text(Unknown), Text(12345))
}

func TestToHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusUnauthorized, ToHTTPStatus(NoLogin))
	assert.Equal(t, http.StatusForbidden, ToHTTPStatus(AccessDenied))
	assert.Equal(t, http.StatusInternalServerError, ToHTTPStatus(ServerErr))
}
