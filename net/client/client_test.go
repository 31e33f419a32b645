package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ncobase/taskmate/config"
	"github.com/ncobase/taskmate/logging/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticToken string

func (s staticToken) Token(context.Context) (string, bool) { return string(s), s != "" }

type item struct {
	ID string `json:"_id"`
}

func (i *item) Validate() error {
	if i.ID == "" {
		return errors.New("_id required")
	}
	return nil
}

func newServer(t *testing.T, hits *int32) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		atomic.AddInt32(hits, 1)
		c.Next()
	})
	r.GET("/echo", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"_id":    "1",
			"auth":   c.GetHeader("Authorization"),
			"reqid":  c.GetHeader(RequestIDHeader),
			"agent":  c.GetHeader("User-Agent"),
			"accept": c.GetHeader("Accept"),
		})
	})
	r.POST("/echo", func(c *gin.Context) {
		var body map[string]any
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}
		body["_id"] = "2"
		body["ctype"] = c.GetHeader("Content-Type")
		c.JSON(http.StatusCreated, body)
	})
	r.GET("/reject/message", func(c *gin.Context) {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid credentials", "error": "ignored"})
	})
	r.GET("/reject/error", func(c *gin.Context) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
	})
	r.GET("/reject/plain", func(c *gin.Context) {
		c.String(http.StatusInternalServerError, "boom")
	})
	r.GET("/malformed/text", func(c *gin.Context) {
		c.String(http.StatusOK, "<html>")
	})
	r.GET("/malformed/schema", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"name": "no id"})
	})
	r.GET("/slow", func(c *gin.Context) {
		time.Sleep(200 * time.Millisecond)
		c.JSON(http.StatusOK, gin.H{"_id": "x"})
	})
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func TestCallAttachesHeaders(t *testing.T) {
	var hits int32
	srv := newServer(t, &hits)
	c := New(srv.URL+"/", WithTokenSource(staticToken("abc")), WithUserAgent("taskmate-test"), WithLogger(logger.NewNop()))

	var out map[string]string
	require.NoError(t, c.Call(context.Background(), Request{Method: http.MethodGet, Path: "/echo", RequiresAuth: true}, &out))
	assert.Equal(t, "Bearer abc", out["auth"])
	assert.NotEmpty(t, out["reqid"])
	assert.Equal(t, "taskmate-test", out["agent"])
	assert.Equal(t, "application/json", out["accept"])

	// unauthenticated calls never send the token
	require.NoError(t, c.Call(context.Background(), Request{Method: http.MethodGet, Path: "/echo"}, &out))
	assert.Empty(t, out["auth"])
}

func TestCallEncodesBody(t *testing.T) {
	var hits int32
	srv := newServer(t, &hits)
	c := New(srv.URL, WithLogger(logger.NewNop()))

	var out map[string]string
	err := c.Call(context.Background(), Request{Method: http.MethodPost, Path: "/echo", Body: map[string]string{"title": "t"}}, &out)
	require.NoError(t, err)
	assert.Equal(t, "t", out["title"])
	assert.Equal(t, "application/json", out["ctype"])
}

func TestAuthMissingMakesNoNetworkCall(t *testing.T) {
	var hits int32
	srv := newServer(t, &hits)

	for _, ts := range []TokenSource{nil, staticToken("")} {
		c := New(srv.URL, WithTokenSource(ts), WithLogger(logger.NewNop()))
		err := c.Call(context.Background(), Request{Method: http.MethodGet, Path: "/echo", RequiresAuth: true}, nil)
		assert.ErrorIs(t, err, ErrAuthMissing)
		assert.Equal(t, KindAuthMissing, Kind(err))
		assert.True(t, IsAuthFailure(err))
	}
	assert.Zero(t, atomic.LoadInt32(&hits))
}

func TestServerRejected(t *testing.T) {
	var hits int32
	srv := newServer(t, &hits)
	c := New(srv.URL, WithLogger(logger.NewNop()))

	cases := []struct {
		path    string
		status  int
		message string
		auth    bool
	}{
		{"/reject/message", http.StatusUnauthorized, "Invalid credentials", true},
		{"/reject/error", http.StatusForbidden, "Forbidden", true},
		{"/reject/plain", http.StatusInternalServerError, "", false},
		{"/missing", http.StatusNotFound, "", false},
	}
	for _, tc := range cases {
		t.Run(tc.path, func(t *testing.T) {
			err := c.Call(context.Background(), Request{Method: http.MethodGet, Path: tc.path}, nil)
			var rejected *ServerRejected
			require.ErrorAs(t, err, &rejected)
			assert.Equal(t, tc.status, rejected.StatusCode)
			assert.Equal(t, tc.message, rejected.Message)
			assert.Equal(t, tc.message, RejectionMessage(err))
			assert.Equal(t, KindServerRejected, Kind(err))
			assert.Equal(t, tc.auth, IsAuthFailure(err))
		})
	}
}

func TestMalformedResponse(t *testing.T) {
	var hits int32
	srv := newServer(t, &hits)
	c := New(srv.URL, WithLogger(logger.NewNop()))

	for _, path := range []string{"/malformed/text", "/malformed/schema"} {
		var out item
		err := c.Call(context.Background(), Request{Method: http.MethodGet, Path: path}, &out)
		assert.Equal(t, KindMalformedResponse, Kind(err), path)
		assert.False(t, IsAuthFailure(err))
	}

	// a nil out ignores the body entirely
	assert.NoError(t, c.Call(context.Background(), Request{Method: http.MethodGet, Path: "/malformed/text"}, nil))
}

func TestUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := New(url, WithLogger(logger.NewNop()))
	err := c.Call(context.Background(), Request{Method: http.MethodGet, Path: "/echo"}, nil)
	var unreachable *Unreachable
	require.ErrorAs(t, err, &unreachable)
	assert.Equal(t, KindUnreachable, Kind(err))
	assert.Contains(t, err.Error(), "server not reachable")
}

func TestTimeoutAndCancelAreUnreachable(t *testing.T) {
	var hits int32
	srv := newServer(t, &hits)

	c := New(srv.URL, WithTimeout(20*time.Millisecond), WithLogger(logger.NewNop()))
	err := c.Call(context.Background(), Request{Method: http.MethodGet, Path: "/slow"}, nil)
	assert.Equal(t, KindUnreachable, Kind(err))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = New(srv.URL, WithLogger(logger.NewNop())).Call(ctx, Request{Method: http.MethodGet, Path: "/echo"}, nil)
	assert.Equal(t, KindUnreachable, Kind(err))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBreakerOpensOnServerFailures(t *testing.T) {
	var hits int32
	srv := newServer(t, &hits)
	c := New(srv.URL, WithLogger(logger.NewNop()), WithBreaker(&config.Breaker{
		Enabled:      true,
		MaxRequests:  1,
		Interval:     time.Minute,
		Timeout:      time.Minute,
		MinRequests:  2,
		FailureRatio: 0.5,
	}))

	for i := 0; i < 2; i++ {
		err := c.Call(context.Background(), Request{Method: http.MethodGet, Path: "/reject/plain"}, nil)
		assert.Equal(t, KindServerRejected, Kind(err))
	}
	before := atomic.LoadInt32(&hits)

	err := c.Call(context.Background(), Request{Method: http.MethodGet, Path: "/echo"}, nil)
	assert.Equal(t, KindUnreachable, Kind(err))
	assert.Equal(t, before, atomic.LoadInt32(&hits))
}

func TestBreakerIgnoresClientRejections(t *testing.T) {
	var hits int32
	srv := newServer(t, &hits)
	c := New(srv.URL, WithLogger(logger.NewNop()), WithBreaker(&config.Breaker{
		Enabled: true, MaxRequests: 1, Interval: time.Minute, Timeout: time.Minute, MinRequests: 2, FailureRatio: 0.5,
	}))

	for i := 0; i < 5; i++ {
		err := c.Call(context.Background(), Request{Method: http.MethodGet, Path: "/reject/message"}, nil)
		assert.Equal(t, KindServerRejected, Kind(err), fmt.Sprint(i))
	}
	assert.NoError(t, c.Call(context.Background(), Request{Method: http.MethodGet, Path: "/echo"}, nil))
}

func TestKindCodes(t *testing.T) {
	assert.Equal(t, KindSuccess, Kind(nil))
	assert.Equal(t, KindUnknown, Kind(errors.New("x")))
	assert.Equal(t, "unreachable", KindUnreachable.String())
	assert.NotEqual(t, KindSuccess.Code(), KindUnreachable.Code())
}
