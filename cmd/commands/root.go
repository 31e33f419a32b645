package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:           "taskmate",
		Short:         "Manage tasks on a taskmate API from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{err}
	})

	f := rootCmd.PersistentFlags()
	f.StringVarP(&a.conf, "conf", "c", "", "config file path (default searches $HOME/.taskmate and .)")
	f.StringVar(&a.baseURL, "base-url", "", "API origin, overrides api.base_url")
	f.BoolVar(&a.ephemeral, "ephemeral", false, "keep the session in memory for this invocation only")

	// Add subcommands
	rootCmd.AddCommand(
		newLoginCommand(a),
		newSignupCommand(a),
		newLogoutCommand(a),
		newWhoamiCommand(a),
		newTaskCommand(a),
		newUserCommand(a),
		newStubCommand(a),
		newVersionCommand(),
	)

	return rootCmd
}

// Execute runs the CLI with args and returns the process exit code.
func Execute(ctx context.Context, args []string) int {
	return execute(ctx, NewRootCmd(), args)
}

func execute(ctx context.Context, root *cobra.Command, args []string) int {
	root.SetArgs(args)
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(root.ErrOrStderr(), "Error:", err)
		return ExitCode(err)
	}
	return ExitOK
}
