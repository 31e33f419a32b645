package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ncobase/taskmate/screen"
	"github.com/spf13/cobra"
)

func newLoginCommand(a *app) *cobra.Command {
	var form screen.LoginForm

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and store the session",
		Args:  cobra.NoArgs,
		RunE: a.run(func(ctx context.Context, cmd *cobra.Command, _ []string) error {
			if form.Password == "" {
				pw, err := prompt(cmd, "Password: ")
				if err != nil {
					return err
				}
				form.Password = pw
			}

			l := screen.NewLogin(a.env)
			defer l.Close()
			l.Form = form
			if err := l.Submit(ctx); err != nil {
				return failed(l, l.Errors(), err)
			}

			if s, ok := a.env.Sessions.Load(ctx); ok {
				fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s (%s)\n", s.Name, s.Role)
			}
			return nil
		}),
	}

	cmd.Flags().StringVarP(&form.Mobile, "mobile", "m", "", "10-digit mobile number")
	cmd.Flags().StringVarP(&form.Password, "password", "p", "", "password (prompted when omitted)")
	return cmd
}

func newSignupCommand(a *app) *cobra.Command {
	var form screen.SignupForm

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Register a new account",
		Args:  cobra.NoArgs,
		RunE: a.run(func(ctx context.Context, cmd *cobra.Command, _ []string) error {
			if form.ConfirmPassword == "" {
				form.ConfirmPassword = form.Password
			}

			s := screen.NewSignup(a.env)
			defer s.Close()
			s.Form = form
			mobile := form.Mobile
			if err := s.Submit(ctx); err != nil {
				return failed(s, s.Errors(), err)
			}

			out := cmd.OutOrStdout()
			if note := s.Notice(); note != nil {
				fmt.Fprintln(out, note.Message)
			}
			fmt.Fprintf(out, "Log in with: taskmate login -m %s\n", mobile)
			return nil
		}),
	}

	cmd.Flags().StringVar(&form.FullName, "name", "", "full name")
	cmd.Flags().StringVar(&form.Email, "email", "", "email address")
	cmd.Flags().StringVarP(&form.Mobile, "mobile", "m", "", "10-digit mobile number")
	cmd.Flags().StringVarP(&form.Password, "password", "p", "", "password, at least 6 characters")
	cmd.Flags().StringVar(&form.ConfirmPassword, "confirm-password", "", "password confirmation (defaults to --password)")
	return cmd
}

func newLogoutCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		Args:  cobra.NoArgs,
		RunE: a.run(func(ctx context.Context, cmd *cobra.Command, _ []string) error {
			h, err := screen.NewHome(ctx, a.env)
			defer h.Close()
			if errors.Is(err, screen.ErrNoSession) {
				fmt.Fprintln(cmd.OutOrStdout(), "Not logged in")
				return nil
			}
			if err != nil {
				return failed(h, nil, err)
			}
			if err := h.Logout(ctx); err != nil {
				return failed(h, nil, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return nil
		}),
	}
}

func newWhoamiCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged-in account",
		Args:  cobra.NoArgs,
		RunE: a.run(func(ctx context.Context, cmd *cobra.Command, _ []string) error {
			h, err := screen.NewHome(ctx, a.env)
			defer h.Close()
			if err != nil {
				return failed(h, nil, err)
			}

			s := h.Session()
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, h.Greeting())
			fmt.Fprintf(out, "Role:   %s\n", s.Role)
			fmt.Fprintf(out, "Mobile: %s\n", s.Mobile)
			if c, ok := s.Claims(); ok && !c.ExpiresAt.IsZero() {
				exp := c.ExpiresAt.Local().Format(time.RFC1123)
				if c.Expired(time.Now()) {
					exp += " (expired)"
				}
				fmt.Fprintf(out, "Token expires: %s\n", exp)
			}
			return nil
		}),
	}
}
