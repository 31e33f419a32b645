package screen

import (
	"context"
	"fmt"

	"github.com/ncobase/taskmate/api"
	"github.com/ncobase/taskmate/ecode"
	"github.com/ncobase/taskmate/net/client"
	"github.com/ncobase/taskmate/validator"
)

// State is a form's submission state.
type State int

const (
	StateEditing State = iota
	StateSubmitting
	StateSuccess
	StateFailed
)

func (s State) String() string {
	return [...]string{"Editing", "Submitting", "Success", "Failed"}[s]
}

const (
	msgMobileInvalid    = "Please enter a valid 10-digit mobile number."
	msgPasswordRequired = "Password is required."
	msgLoginFailed      = "Login failed!"
)

// LoginForm holds the credentials being typed.
type LoginForm struct {
	Mobile   string `json:"mobile" validate:"mobile"`
	Password string `json:"password" validate:"required"`
}

func (LoginForm) ValidationMessages() map[string]string {
	return map[string]string{
		"mobile.mobile":     msgMobileInvalid,
		"password.required": msgPasswordRequired,
	}
}

// Login authenticates and starts the session.
type Login struct {
	base
	Form   LoginForm
	state  State
	errors FieldErrors
}

// NewLogin mounts the Login screen.
func NewLogin(env Env) *Login {
	return &Login{base: newBase(env, RouteLogin), errors: FieldErrors{}}
}

func (l *Login) State() State        { return l.state }
func (l *Login) Errors() FieldErrors { return l.errors }

// DismissNotice clears the notice and leaves the Failed state.
func (l *Login) DismissNotice() {
	l.notices.DismissNotice()
	if l.state == StateFailed {
		l.state = StateEditing
	}
}

// GoToSignup opens the Signup screen.
func (l *Login) GoToSignup() {
	l.env.Nav.Navigate(RouteSignup, nil)
}

// Submit validates the form, logs in and persists the session. On success the
// navigation root becomes Home.
func (l *Login) Submit(ctx context.Context) (err error) {
	if l.state == StateSubmitting {
		return fmt.Errorf("screen: login already in progress")
	}
	l.errors = FieldErrors(validator.ValidateStruct(&l.Form))
	if len(l.errors) > 0 {
		l.state = StateEditing
		return ErrInvalidForm
	}

	ctx, end := l.begin(ctx, "submit")
	defer func() { end(err) }()

	l.state = StateSubmitting
	l.notice = nil
	out, err := l.env.API.Login(ctx, api.LoginRequest{Mobile: l.Form.Mobile, Password: l.Form.Password})
	if l.Closed() {
		return context.Canceled
	}
	if err != nil {
		l.state = StateFailed
		switch client.Kind(err) {
		case client.KindServerRejected:
			l.notice = errorNotice(rejectedOr(err, msgLoginFailed))
		default:
			l.notice = errorNotice(ecode.Text(ecode.Unknown))
		}
		l.env.log().Infof(ctx, "login failed: %v", err)
		return err
	}

	if err := l.env.Sessions.Save(ctx, out.Session()); err != nil {
		l.state = StateFailed
		l.notice = errorNotice(fmt.Sprintf("%s: %v", ecode.Text(ecode.StorageErr), err))
		l.env.log().Errorf(ctx, "login: save session: %v", err)
		return err
	}

	l.state = StateSuccess
	l.Form = LoginForm{}
	l.env.Nav.Reset(Route{Name: RouteHome})
	return nil
}
