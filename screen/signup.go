package screen

import (
	"context"
	"strings"

	"github.com/ncobase/taskmate/api"
	"github.com/ncobase/taskmate/ecode"
	"github.com/ncobase/taskmate/net/client"
	"github.com/ncobase/taskmate/validator"
)

const (
	msgSignupSuccess     = "Signup Successful!"
	msgSignupFailed      = "Signup failed!"
	msgSignupUnreachable = "Server not reachable. Check your internet or backend."
	msgSignupMalformed   = "Server error: Invalid response format."
)

// SignupForm is the registration form.
type SignupForm struct {
	FullName        string `json:"name" validate:"notblank"`
	Email           string `json:"email" validate:"loose_email"`
	Mobile          string `json:"mobile" validate:"mobile"`
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
}

func (SignupForm) ValidationMessages() map[string]string {
	return map[string]string{
		"name.notblank":            "Full name is required.",
		"email.loose_email":        "Please enter a valid email.",
		"mobile.mobile":            msgMobileInvalid,
		"password.required":        msgPasswordRequired,
		"password.min":             "Password must be at least 6 characters.",
		"confirmPassword.required": "Confirm Password is required.",
		"confirmPassword.eqfield":  "Passwords do not match.",
	}
}

// Signup registers an account. It never starts a session.
type Signup struct {
	base
	Form   SignupForm
	state  State
	errors FieldErrors
}

// NewSignup mounts the Signup screen.
func NewSignup(env Env) *Signup {
	return &Signup{base: newBase(env, RouteSignup), errors: FieldErrors{}}
}

func (s *Signup) State() State        { return s.state }
func (s *Signup) Errors() FieldErrors { return s.errors }

// Validate runs the form rules and records the field errors.
func (s *Signup) Validate() bool {
	s.errors = FieldErrors(validator.ValidateStruct(&s.Form))
	return len(s.errors) == 0
}

// Submit validates and registers. On success the form is cleared and the
// navigator returns to Login.
func (s *Signup) Submit(ctx context.Context) (err error) {
	if !s.Validate() {
		s.state = StateEditing
		return ErrInvalidForm
	}

	ctx, end := s.begin(ctx, "submit")
	defer func() { end(err) }()

	s.state = StateSubmitting
	s.notice = nil
	err = s.env.API.Signup(ctx, api.SignupRequest{
		Name:     strings.TrimSpace(s.Form.FullName),
		Email:    strings.TrimSpace(s.Form.Email),
		Mobile:   strings.TrimSpace(s.Form.Mobile),
		Password: strings.TrimSpace(s.Form.Password),
	})
	if s.Closed() {
		return context.Canceled
	}
	if err != nil {
		s.state = StateFailed
		switch client.Kind(err) {
		case client.KindServerRejected:
			s.notice = errorNotice(rejectedOr(err, msgSignupFailed))
		case client.KindUnreachable:
			s.notice = errorNotice(msgSignupUnreachable)
		case client.KindMalformedResponse:
			s.notice = errorNotice(msgSignupMalformed)
		default:
			s.notice = errorNotice(ecode.Text(ecode.Unknown))
		}
		s.env.log().Infof(ctx, "signup failed: %v", err)
		return err
	}

	s.state = StateSuccess
	s.notice = successNotice(msgSignupSuccess)
	s.Form = SignupForm{}
	s.errors = FieldErrors{}
	s.env.Nav.Navigate(RouteLogin, nil)
	return nil
}
