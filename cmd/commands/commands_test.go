package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ncobase/taskmate/api"
	"github.com/ncobase/taskmate/config"
	"github.com/ncobase/taskmate/logging/logger"
	"github.com/ncobase/taskmate/session"
	"github.com/ncobase/taskmate/stubapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type cli struct {
	conf string
	stub *stubapi.Server
	bo   string
}

func newCLI(t *testing.T) *cli {
	t.Helper()
	stub, err := stubapi.New(&config.Stub{
		JWTSecret:   "test",
		TokenExpire: time.Hour,
		Admin:       &config.StubAdmin{Name: "Admin", Mobile: "9999999999", Password: "admin123"},
	}, logger.NewNop(), stubapi.WithBcryptCost(bcrypt.MinCost))
	require.NoError(t, err)
	bo, err := stub.Service().CreateUser(context.Background(), "Bo", "bo@x.io", "1234567890", "secret1", session.RoleUser)
	require.NoError(t, err)

	hs := httptest.NewServer(stub.Handler())
	t.Cleanup(hs.Close)

	dir := t.TempDir()
	conf := filepath.Join(dir, "config.yaml")
	body := fmt.Sprintf(`api:
  base_url: %s
  timeout: 2s
session:
  driver: file
  file:
    path: %s
logger:
  output: discard
`, hs.URL, filepath.Join(dir, "session.json"))
	require.NoError(t, os.WriteFile(conf, []byte(body), 0o600))

	return &cli{conf: conf, stub: stub, bo: bo}
}

// run executes one invocation, feeding stdin.
func (c *cli) run(t *testing.T, stdin string, args ...string) (string, string, int) {
	t.Helper()
	root := NewRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetIn(strings.NewReader(stdin))
	code := execute(context.Background(), root, append([]string{"--conf", c.conf}, args...))
	return out.String(), errOut.String(), code
}

func TestLoginWhoamiLogout(t *testing.T) {
	c := newCLI(t)

	_, stderr, code := c.run(t, "", "login", "-m", "12345", "-p", "x")
	assert.Equal(t, ExitValidation, code)
	assert.Contains(t, stderr, "mobile")
	assert.Zero(t, c.stub.Hits(api.PathLogin))

	_, stderr, code = c.run(t, "", "login", "-m", "1234567890", "-p", "wrong1")
	assert.Equal(t, ExitAuth, code)
	assert.Contains(t, stderr, "Invalid credentials")

	out, _, code := c.run(t, "secret1\n", "login", "-m", "1234567890")
	require.Equal(t, ExitOK, code)
	assert.Contains(t, out, "Logged in as Bo (user)")

	out, _, code = c.run(t, "", "whoami")
	require.Equal(t, ExitOK, code)
	assert.Contains(t, out, "Welcome, Bo!")
	assert.Contains(t, out, "Token expires:")

	out, _, code = c.run(t, "", "logout")
	require.Equal(t, ExitOK, code)
	assert.Contains(t, out, "Logged out")

	_, _, code = c.run(t, "", "whoami")
	assert.Equal(t, ExitAuth, code)
}

func TestPrivilegedCommandWithoutSession(t *testing.T) {
	c := newCLI(t)
	_, stderr, code := c.run(t, "", "task", "list")
	assert.Equal(t, ExitAuth, code)
	assert.Contains(t, stderr, "log in")
	assert.Zero(t, c.stub.TotalHits())
}

func TestSignup(t *testing.T) {
	c := newCLI(t)
	args := []string{"signup", "--name", "Cy", "--email", "cy@x.io", "-m", "5555555555", "-p", "secret1"}

	out, _, code := c.run(t, "", args...)
	require.Equal(t, ExitOK, code)
	assert.Contains(t, out, "Signup Successful!")

	_, stderr, code := c.run(t, "", args...)
	assert.Equal(t, ExitRejected, code)
	assert.Contains(t, stderr, "User already exists")

	_, stderr, code = c.run(t, "", "signup", "--name", "Cy", "--email", "bad", "-m", "5555555555", "-p", "secret1")
	assert.Equal(t, ExitValidation, code)
	assert.Contains(t, stderr, "Please enter a valid email.")
}

func TestTaskLifecycle(t *testing.T) {
	c := newCLI(t)
	_, _, code := c.run(t, "", "login", "-m", "9999999999", "-p", "admin123")
	require.Equal(t, ExitOK, code)

	out, _, code := c.run(t, "", "task", "list")
	require.Equal(t, ExitOK, code)
	assert.Contains(t, out, "No tasks found")

	_, _, code = c.run(t, "", "task", "create", "--title", " ")
	assert.Equal(t, ExitValidation, code)

	_, _, code = c.run(t, "", "task", "create", "--title", "x", "--assign", "nobody")
	assert.Equal(t, ExitValidation, code)

	out, _, code = c.run(t, "", "task", "create", "--title", "Ship it", "--description", "v1", "--assign", c.bo)
	require.Equal(t, ExitOK, code)
	assert.Contains(t, out, "Task created successfully")

	out, _, code = c.run(t, "", "task", "list", "-o", "json")
	require.Equal(t, ExitOK, code)
	var tasks []api.Task
	require.NoError(t, json.Unmarshal([]byte(out), &tasks))
	require.Len(t, tasks, 1)
	id := tasks[0].ID
	assert.Equal(t, "Bo", tasks[0].AssigneeLabel())

	_, _, code = c.run(t, "", "task", "edit", id, "--status", "done")
	assert.Equal(t, ExitValidation, code)

	out, _, code = c.run(t, "", "task", "edit", id, "--status", "inProgress")
	require.Equal(t, ExitOK, code)
	assert.Contains(t, out, "Task updated successfully")

	out, _, code = c.run(t, "", "task", "list")
	require.Equal(t, ExitOK, code)
	assert.Contains(t, out, "Ship it")
	assert.Contains(t, out, api.StatusInProgress.Label())

	out, _, code = c.run(t, "n\n", "task", "delete", id)
	require.Equal(t, ExitOK, code)
	assert.Contains(t, out, "Cancelled")
	assert.Zero(t, c.stub.Hits(stubapi.RouteDeleteTask))

	out, _, code = c.run(t, "", "task", "delete", id, "--yes")
	require.Equal(t, ExitOK, code)
	assert.Contains(t, out, "Task deleted successfully")
	assert.Equal(t, 1, c.stub.Hits(stubapi.RouteDeleteTask))

	_, _, code = c.run(t, "", "task", "delete", id, "--yes")
	assert.Equal(t, ExitValidation, code)
}

func TestUserList(t *testing.T) {
	c := newCLI(t)
	_, _, code := c.run(t, "", "user", "list")
	assert.Equal(t, ExitAuth, code)

	_, _, code = c.run(t, "", "login", "-m", "1234567890", "-p", "secret1")
	require.Equal(t, ExitOK, code)
	_, stderr, code := c.run(t, "", "user", "list")
	assert.Equal(t, ExitAuth, code)
	assert.Contains(t, stderr, "Access denied")

	_, _, code = c.run(t, "", "login", "-m", "9999999999", "-p", "admin123")
	require.Equal(t, ExitOK, code)
	out, _, code := c.run(t, "", "user", "list")
	require.Equal(t, ExitOK, code)
	assert.Contains(t, out, "Bo")
	assert.Contains(t, out, c.bo)
}

func TestUnreachable(t *testing.T) {
	c := newCLI(t)
	_, stderr, code := c.run(t, "", "--base-url", "http://127.0.0.1:1", "login", "-m", "1234567890", "-p", "secret1")
	assert.Equal(t, ExitUnreachable, code)
	assert.NotEmpty(t, stderr)

	_, _, code = c.run(t, "", "--base-url", "ftp://x", "task", "list")
	assert.Equal(t, ExitValidation, code)
}

func TestEphemeralKeepsNothing(t *testing.T) {
	c := newCLI(t)
	_, _, code := c.run(t, "", "--ephemeral", "login", "-m", "1234567890", "-p", "secret1")
	require.Equal(t, ExitOK, code)
	_, _, code = c.run(t, "", "whoami")
	assert.Equal(t, ExitAuth, code)
}

func TestVersion(t *testing.T) {
	c := newCLI(t)
	out, _, code := c.run(t, "", "version", "--json")
	require.Equal(t, ExitOK, code)
	assert.Contains(t, out, `"goVersion"`)

	_, _, code = c.run(t, "", "version", "--bogus")
	assert.Equal(t, ExitValidation, code)
}
