package screen

import (
	"context"
	"testing"

	"github.com/ncobase/taskmate/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validSignup() SignupForm {
	return SignupForm{
		FullName:        "Cy",
		Email:           "cy@x.io",
		Mobile:          "5555555555",
		Password:        "hunter2",
		ConfirmPassword: "hunter2",
	}
}

func TestSignupRules(t *testing.T) {
	h := newHarness(t)
	s := NewSignup(h.env)
	defer s.Close()

	cases := []struct {
		name  string
		edit  func(*SignupForm)
		field string
		msg   string
	}{
		{"blank name", func(f *SignupForm) { f.FullName = "   " }, "name", "Full name is required."},
		{"bad email", func(f *SignupForm) { f.Email = "cy@x" }, "email", "Please enter a valid email."},
		{"short mobile", func(f *SignupForm) { f.Mobile = "555" }, "mobile", "Please enter a valid 10-digit mobile number."},
		{"no password", func(f *SignupForm) { f.Password = ""; f.ConfirmPassword = "" }, "password", "Password is required."},
		{"short password", func(f *SignupForm) { f.Password = "12345"; f.ConfirmPassword = "12345" }, "password", "Password must be at least 6 characters."},
		{"no confirm", func(f *SignupForm) { f.ConfirmPassword = "" }, "confirmPassword", "Confirm Password is required."},
		{"mismatch", func(f *SignupForm) { f.ConfirmPassword = "hunter3" }, "confirmPassword", "Passwords do not match."},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s.Form = validSignup()
			tc.edit(&s.Form)
			assert.ErrorIs(t, s.Submit(context.Background()), ErrInvalidForm)
			assert.Equal(t, tc.msg, s.Errors()[tc.field])
		})
	}
	assert.Zero(t, h.stub.TotalHits())

	s.Form = validSignup()
	s.Form.Password, s.Form.ConfirmPassword = "123456", "123456"
	assert.True(t, s.Validate())
}

func TestSignupSuccess(t *testing.T) {
	h := newHarness(t)
	h.env.Nav.Navigate(RouteSignup, nil)
	s := NewSignup(h.env)
	defer s.Close()

	s.Form = validSignup()
	s.Form.FullName = "  Cy  "
	require.NoError(t, s.Submit(context.Background()))

	assert.Equal(t, NoticeSuccess, s.Notice().Kind)
	assert.Equal(t, "Signup Successful!", s.Notice().Message)
	assert.Equal(t, SignupForm{}, s.Form)
	assert.Equal(t, []RouteName{RouteLogin}, routeNames(h.env.Nav))

	_, ok := h.sessions.Load(context.Background())
	assert.False(t, ok)

	// the trimmed name was stored
	h.loginAs(t, "5555555555", "hunter2")
	sess, _ := h.sessions.Load(context.Background())
	assert.Equal(t, "Cy", sess.Name)
}

func TestSignupFailuresKeepValues(t *testing.T) {
	h := newHarness(t)
	s := NewSignup(h.env)
	defer s.Close()

	s.Form = validSignup()
	s.Form.Mobile = userMobile
	require.Error(t, s.Submit(context.Background()))
	assert.Equal(t, "User already exists", s.Notice().Message)
	assert.Equal(t, userMobile, s.Form.Mobile)
	assert.Equal(t, StateFailed, s.State())

	h.stub.Fail(api.PathSignup, stubBody("<html>"))
	s.Form = validSignup()
	require.Error(t, s.Submit(context.Background()))
	assert.Equal(t, "Server error: Invalid response format.", s.Notice().Message)
	assert.Equal(t, "Cy", s.Form.FullName)
}

func TestSignupUnreachable(t *testing.T) {
	h := newHarnessFor(t, "http://127.0.0.1:1", nil, "")
	s := NewSignup(h.env)
	defer s.Close()
	s.Form = validSignup()
	require.Error(t, s.Submit(context.Background()))
	assert.Equal(t, "Server not reachable. Check your internet or backend.", s.Notice().Message)
}
