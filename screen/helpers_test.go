package screen

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ncobase/taskmate/api"
	"github.com/ncobase/taskmate/config"
	"github.com/ncobase/taskmate/data/kv"
	"github.com/ncobase/taskmate/logging/logger"
	"github.com/ncobase/taskmate/net/client"
	"github.com/ncobase/taskmate/session"
	"github.com/ncobase/taskmate/stubapi"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const (
	adminMobile = "9999999999"
	adminPass   = "admin123"
	userMobile  = "1234567890"
	userPass    = "secret1"
)

type harness struct {
	env      Env
	stub     *stubapi.Server
	sessions *session.Store
	userID   string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	stub, err := stubapi.New(&config.Stub{
		JWTSecret:   "test",
		TokenExpire: time.Hour,
		Admin:       &config.StubAdmin{Name: "Admin", Mobile: adminMobile, Password: adminPass},
	}, logger.NewNop(), stubapi.WithBcryptCost(bcrypt.MinCost))
	require.NoError(t, err)
	userID, err := stub.Service().CreateUser(context.Background(), "Bo", "bo@x.io", userMobile, userPass, session.RoleUser)
	require.NoError(t, err)

	hs := httptest.NewServer(stub.Handler())
	t.Cleanup(hs.Close)

	return newHarnessFor(t, hs.URL, stub, userID)
}

func newHarnessFor(t *testing.T, baseURL string, stub *stubapi.Server, userID string) *harness {
	t.Helper()
	log := logger.NewNop()
	sessions := session.NewStore(kv.NewMemory(), session.WithLogger(log))
	c := client.New(baseURL, client.WithTokenSource(sessions), client.WithLogger(log), client.WithTimeout(2*time.Second))
	return &harness{
		env: Env{
			API:      api.New(c),
			Sessions: sessions,
			Nav:      NewNavigator(),
			Logger:   log,
		},
		stub:     stub,
		sessions: sessions,
		userID:   userID,
	}
}

// loginAs logs in through the Login controller.
func (h *harness) loginAs(t *testing.T, mobile, password string) *session.Session {
	t.Helper()
	l := NewLogin(h.env)
	defer l.Close()
	l.Form = LoginForm{Mobile: mobile, Password: password}
	require.NoError(t, l.Submit(context.Background()))
	s, ok := h.sessions.Load(context.Background())
	require.True(t, ok)
	return s
}

func (h *harness) seedTask(t *testing.T, title string) api.Task {
	t.Helper()
	out, err := h.env.API.CreateTask(context.Background(), api.CreateTaskRequest{Title: title, Description: title + " desc"})
	require.NoError(t, err)
	return api.Task{ID: out.ID, Title: out.Title, Description: out.Description, Status: out.Status}
}

type brokenSessions struct {
	SessionStore
	err error
}

func (b brokenSessions) Save(context.Context, *session.Session) error { return b.err }

func routeNames(n *Navigator) []RouteName {
	var out []RouteName
	for _, r := range n.Stack() {
		out = append(out, r.Name)
	}
	return out
}

func stubBody(body string) stubapi.Fault {
	return stubapi.Fault{Body: body}
}

func stubFault(status int, message string) stubapi.Fault {
	return stubapi.Fault{Status: status, Message: message}
}
