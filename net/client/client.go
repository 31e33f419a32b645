// Package client is the HTTP client for the task API. It attaches the session
// token to privileged calls and classifies every outcome as success,
// ErrAuthMissing, *ServerRejected, *Unreachable or *MalformedResponse.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ncobase/taskmate/config"
	"github.com/ncobase/taskmate/ctxutil"
	"github.com/ncobase/taskmate/logging/logger"
	"github.com/ncobase/taskmate/logging/observes"
	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"
)

// RequestIDHeader carries the per-call trace id.
const RequestIDHeader = "X-Request-ID"

// maxBodySize bounds how much of a response is read.
const maxBodySize = 4 << 20

// TokenSource yields the bearer token of the current session.
type TokenSource interface {
	Token(ctx context.Context) (string, bool)
}

// Validator is implemented by response types that check their own schema.
type Validator interface {
	Validate() error
}

// Request describes one API call.
type Request struct {
	Method       string
	Path         string
	Body         any
	RequiresAuth bool
}

// Client performs requests against one API origin.
type Client struct {
	baseURL   string
	http      *http.Client
	userAgent string
	tokens    TokenSource
	breaker   *gobreaker.CircuitBreaker
	log       *logger.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// WithTokenSource sets where bearer tokens come from.
func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) { c.tokens = ts }
}

// WithLogger sets the logger.
func WithLogger(l *logger.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

// WithBreaker enables a circuit breaker. Disabled or nil settings are ignored.
func WithBreaker(b *config.Breaker) Option {
	return func(c *Client) {
		if b == nil || !b.Enabled {
			return
		}
		c.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        "taskmate-api",
			MaxRequests: b.MaxRequests,
			Interval:    b.Interval,
			Timeout:     b.Timeout,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				if counts.Requests == 0 {
					return false
				}
				failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
				return counts.Requests >= b.MinRequests && failureRatio >= b.FailureRatio
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				c.log.Warnf(context.Background(), "circuit breaker %s: %s -> %s", name, from, to)
			},
		})
	}
}

// New creates a client for baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		http:      &http.Client{Timeout: 15 * time.Second},
		userAgent: "taskmate",
		log:       logger.StdLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewFromConfig creates a client from the api config section.
func NewFromConfig(cfg *config.API, tokens TokenSource, l *logger.Logger) *Client {
	return New(cfg.BaseURL,
		WithTimeout(cfg.Timeout),
		WithUserAgent(cfg.UserAgent),
		WithBreaker(cfg.Breaker),
		WithTokenSource(tokens),
		WithLogger(l),
	)
}

// BaseURL returns the API origin.
func (c *Client) BaseURL() string { return c.baseURL }

// errServerFailure marks 5xx answers so the breaker counts them.
var errServerFailure = errors.New("server failure")

// Call performs req and decodes a 2xx body into out. A nil out discards the
// body. Calls are never retried.
func (c *Client) Call(ctx context.Context, req Request, out any) (err error) {
	ctx, traceID := ctxutil.EnsureTraceID(ctx)
	url := c.baseURL + req.Path

	ctx, span := observes.StartSpan(ctx, observes.LayerClient, req.Method+" "+req.Path,
		attribute.String("http.method", req.Method),
		attribute.String("http.route", req.Path),
		attribute.String("request.id", traceID),
	)
	status := 0
	defer func() {
		span.SetAttributes(
			attribute.Int("http.status_code", status),
			attribute.String("outcome", Kind(err).String()),
		)
		observes.EndSpan(span, err)
	}()

	var token string
	if req.RequiresAuth {
		var ok bool
		if c.tokens != nil {
			token, ok = c.tokens.Token(ctx)
		}
		if !ok || token == "" {
			c.log.Debugf(ctx, "%s %s: no session, not sending", req.Method, req.Path)
			return ErrAuthMissing
		}
	}

	var body io.Reader
	if req.Body != nil {
		raw, err := json.Marshal(req.Body)
		if err != nil {
			return fmt.Errorf("client: encode request body: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, url, body)
	if err != nil {
		return fmt.Errorf("client: build request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if c.userAgent != "" {
		httpReq.Header.Set("User-Agent", c.userAgent)
	}
	httpReq.Header.Set(RequestIDHeader, traceID)
	if token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}
	observes.InjectHeaders(ctx, propagation.HeaderCarrier(httpReq.Header))

	started := time.Now()
	resp, err := c.do(httpReq)
	if err != nil {
		c.log.Warnf(ctx, "%s %s: %v", req.Method, req.Path, err)
		return &Unreachable{Method: req.Method, URL: url, Err: err}
	}
	defer resp.Body.Close()
	status = resp.StatusCode

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		c.log.Warnf(ctx, "%s %s: read body: %v", req.Method, req.Path, err)
		return &Unreachable{Method: req.Method, URL: url, Err: err}
	}
	c.log.Debugf(ctx, "%s %s -> %d in %s", req.Method, req.Path, resp.StatusCode, time.Since(started))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &ServerRejected{StatusCode: resp.StatusCode, Message: rejectionMessage(raw)}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		c.log.Warnf(ctx, "%s %s: undecodable body: %v", req.Method, req.Path, err)
		return &MalformedResponse{StatusCode: resp.StatusCode, Err: err}
	}
	if v, ok := out.(Validator); ok {
		if err := v.Validate(); err != nil {
			c.log.Warnf(ctx, "%s %s: schema: %v", req.Method, req.Path, err)
			return &MalformedResponse{StatusCode: resp.StatusCode, Err: err}
		}
	}
	return nil
}

// do sends the request, through the breaker when one is configured. Only
// transport errors and 5xx answers count against the breaker.
func (c *Client) do(req *http.Request) (*http.Response, error) {
	if c.breaker == nil {
		return c.http.Do(req)
	}
	result, err := c.breaker.Execute(func() (interface{}, error) {
		resp, err := c.http.Do(req)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode >= 500 {
			return resp, errServerFailure
		}
		return resp, nil
	})
	if errors.Is(err, errServerFailure) {
		return result.(*http.Response), nil
	}
	if err != nil {
		return nil, err
	}
	return result.(*http.Response), nil
}

// rejectionMessage extracts "message", else "error", from an error body.
func rejectionMessage(raw []byte) string {
	var body struct {
		Message any `json:"message"`
		Error   any `json:"error"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return ""
	}
	if s, ok := body.Message.(string); ok && s != "" {
		return s
	}
	if s, ok := body.Error.(string); ok && s != "" {
		return s
	}
	return ""
}
