package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"text/tabwriter"

	"github.com/ncobase/taskmate/net/client"
	"github.com/spf13/cobra"
)

func newUserCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "user",
		Aliases: []string{"users"},
		Short:   "User commands (admins only)",
	}
	cmd.AddCommand(newUserListCommand(a))
	return cmd
}

func newUserListCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List assignable users",
		Args:    cobra.NoArgs,
		RunE: a.run(func(ctx context.Context, cmd *cobra.Command, _ []string) error {
			users, err := a.env.API.ListUsers(ctx)
			if err != nil {
				// 403 is a plain user on an admin route; only 401 drops the session
				var rejected *client.ServerRejected
				if errors.As(err, &rejected) && rejected.StatusCode == http.StatusUnauthorized {
					_ = a.env.Sessions.Clear(ctx)
				}
				return apiFailed(err)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME")
			for _, u := range users {
				fmt.Fprintf(tw, "%s\t%s\n", u.ID, u.Name)
			}
			return tw.Flush()
		}),
	}
}
