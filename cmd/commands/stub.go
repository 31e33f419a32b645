package commands

import (
	"context"
	"fmt"

	"github.com/ncobase/taskmate/config"
	"github.com/ncobase/taskmate/logging/logger"
	"github.com/ncobase/taskmate/stubapi"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newStubCommand(a *app) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "stub",
		Short: "Run the in-memory task API for local development",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			cfg, err := config.Init(a.conf)
			if err != nil {
				return fmt.Errorf("failed to load config: %v", err)
			}
			if addr != "" {
				cfg.Stub.Addr = addr
			}

			l, cleanup, err := logger.New(cfg.Logger)
			if err != nil {
				return fmt.Errorf("failed to init logger: %v", err)
			}
			defer cleanup()
			if l.GetLevel() < logrus.InfoLevel {
				l.SetLevel(logrus.InfoLevel)
			}

			srv, err := stubapi.New(cfg.Stub, l)
			if err != nil {
				return err
			}

			// stub.* settings apply on restart; the log level follows the file
			config.Watch(func(c *config.Config) {
				l.SetLevel(max(logrus.Level(c.Logger.Level), logrus.InfoLevel))
				l.Infof(ctx, "config reloaded")
			})

			return srv.ListenAndServe(ctx, cfg.Stub.Addr, func(bound string) {
				fmt.Fprintf(cmd.OutOrStdout(), "Stub API listening on http://%s\n", bound)
				if cfg.Stub.Admin != nil && cfg.Stub.Admin.Mobile != "" {
					fmt.Fprintf(cmd.OutOrStdout(), "Seeded admin: mobile %s\n", cfg.Stub.Admin.Mobile)
				}
			})
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address, overrides stub.addr")
	return cmd
}
