package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/ncobase/taskmate/api"
	"github.com/ncobase/taskmate/config"
	"github.com/ncobase/taskmate/logging/logger"
	"github.com/ncobase/taskmate/logging/observes"
	"github.com/ncobase/taskmate/net/client"
	"github.com/ncobase/taskmate/screen"
	"github.com/ncobase/taskmate/session"
	"github.com/ncobase/taskmate/version"
	"github.com/spf13/cobra"

	_ "github.com/ncobase/taskmate/data/kv/redis"
	_ "github.com/ncobase/taskmate/data/kv/sqlite"
)

// app holds the global flags and, once opened, the wiring shared by every
// API command.
type app struct {
	conf      string
	baseURL   string
	ephemeral bool

	cfg     *config.Config
	log     *logger.Logger
	env     screen.Env
	cleanup []func()
}

// loadConfig reads the config file and applies the global flag overrides.
func (a *app) loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(a.conf)
	if err != nil {
		return nil, err
	}
	if a.baseURL != "" {
		cfg.API.BaseURL = strings.TrimRight(a.baseURL, "/")
		if err := cfg.API.Validate(); err != nil {
			return nil, usageError{err}
		}
	}
	if a.ephemeral {
		cfg.Session.Driver = "memory"
	}
	return cfg, nil
}

func (a *app) open(ctx context.Context) error {
	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}
	a.cfg = cfg

	l, closeLog, err := logger.New(cfg.Logger)
	if err != nil {
		return fmt.Errorf("failed to init logger: %w", err)
	}
	l.SetVersion(version.GetVersionInfo().Version)
	a.log = l
	a.onClose(closeLog)

	shutdown, err := observes.NewTracer(ctx, cfg.Observes.Tracer)
	if err != nil {
		l.Warnf(ctx, "tracing disabled: %v", err)
	}
	a.onClose(func() { _ = shutdown(context.Background()) })

	sessions, err := session.Open(ctx, cfg.Session, l)
	if err != nil {
		return fmt.Errorf("failed to open session store: %w", err)
	}
	a.onClose(func() { _ = sessions.Close() })

	c := client.NewFromConfig(cfg.API, sessions, l)
	a.env = screen.Env{
		API:      api.New(c),
		Sessions: sessions,
		Nav:      screen.NewNavigator(),
		Logger:   l,
	}
	return nil
}

func (a *app) onClose(fn func()) { a.cleanup = append(a.cleanup, fn) }

func (a *app) close() {
	for i := len(a.cleanup) - 1; i >= 0; i-- {
		a.cleanup[i]()
	}
	a.cleanup = nil
}

// run opens the app around fn.
func (a *app) run(fn func(ctx context.Context, cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		defer a.close()
		if err := a.open(ctx); err != nil {
			return err
		}
		return fn(ctx, cmd, args)
	}
}
