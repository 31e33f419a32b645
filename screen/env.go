// Package screen holds the per-screen controllers: form state, validation,
// API calls and navigation. Controllers expose state only; rendering is up to
// the caller.
package screen

import (
	"context"
	"errors"

	"github.com/ncobase/taskmate/api"
	"github.com/ncobase/taskmate/ctxutil"
	"github.com/ncobase/taskmate/ecode"
	"github.com/ncobase/taskmate/logging/logger"
	"github.com/ncobase/taskmate/logging/observes"
	"github.com/ncobase/taskmate/net/client"
	"github.com/ncobase/taskmate/session"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// ErrInvalidForm is returned by Submit when local validation fails; the
// details are in the controller's FieldErrors.
var ErrInvalidForm = errors.New("screen: form has invalid fields")

// ErrNoSession is returned when a screen that needs a session is mounted
// without one.
var ErrNoSession = errors.New("screen: not logged in")

// SessionStore is the subset of *session.Store controllers use.
type SessionStore interface {
	Save(ctx context.Context, s *session.Session) error
	Load(ctx context.Context) (*session.Session, bool)
	Clear(ctx context.Context) error
}

// Env is shared by every controller.
type Env struct {
	API      *api.API
	Sessions SessionStore
	Nav      *Navigator
	Logger   *logger.Logger
}

func (e Env) log() *logger.Logger {
	if e.Logger == nil {
		return logger.StdLogger()
	}
	return e.Logger
}

// base carries the controller lifetime. Close cancels every request started
// through it.
type base struct {
	notices
	env    Env
	name   RouteName
	ctx    context.Context
	cancel context.CancelFunc
}

func newBase(env Env, name RouteName) base {
	ctx, cancel := context.WithCancel(ctxutil.SetScreen(context.Background(), string(name)))
	return base{env: env, name: name, ctx: ctx, cancel: cancel}
}

// Close cancels in-flight requests. Results arriving afterwards are dropped.
func (b *base) Close() { b.cancel() }

// Closed reports whether Close was called.
func (b *base) Closed() bool { return b.ctx.Err() != nil }

// begin derives a request context bound to both the caller and the controller
// and starts a span for op.
func (b *base) begin(ctx context.Context, op string) (context.Context, func(error)) {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = ctxutil.SetScreen(ctx, string(b.name))
	ctx, cancel := context.WithCancel(ctx)
	stop := context.AfterFunc(b.ctx, cancel)

	var span trace.Span
	ctx, span = observes.StartSpan(ctx, observes.LayerScreen, string(b.name)+"."+op,
		attribute.String("screen", string(b.name)))
	return ctx, func(err error) {
		observes.EndSpan(span, err)
		stop()
		cancel()
	}
}

// guard handles authorization failures of privileged calls: the session is
// cleared and navigation returns to Login. It reports whether err was one.
func (b *base) guard(ctx context.Context, err error) bool {
	if !client.IsAuthFailure(err) {
		return false
	}
	b.env.log().Warnf(ctx, "%s: authorization failed: %v", b.name, err)
	if cerr := b.env.Sessions.Clear(ctx); cerr != nil {
		b.env.log().Errorf(ctx, "%s: clear session: %v", b.name, cerr)
	}
	b.env.Nav.Reset(Route{Name: RouteLogin})
	b.notice = errorNotice(ecode.Text(ecode.NoLogin))
	return true
}

// requireSession loads the session or redirects to Login.
func (b *base) requireSession(ctx context.Context) (*session.Session, error) {
	s, ok := b.env.Sessions.Load(ctx)
	if !ok {
		b.env.Nav.Reset(Route{Name: RouteLogin})
		b.notice = errorNotice(ecode.Text(ecode.NoLogin))
		return nil, ErrNoSession
	}
	return s, nil
}

// rejectedOr returns the server's message for a rejection, or fallback.
func rejectedOr(err error, fallback string) string {
	if msg := client.RejectionMessage(err); msg != "" {
		return msg
	}
	return fallback
}
