package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/ncobase/taskmate/api"
	"github.com/ncobase/taskmate/screen"
	"github.com/spf13/cobra"
)

func newTaskCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "task",
		Aliases: []string{"tasks", "t"},
		Short:   "List, create, edit and delete tasks",
	}

	cmd.AddCommand(
		newTaskListCommand(a),
		newTaskCreateCommand(a),
		newTaskEditCommand(a),
		newTaskDeleteCommand(a),
	)

	return cmd
}

func newTaskListCommand(a *app) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List the tasks visible to you",
		Args:    cobra.NoArgs,
		RunE: a.run(func(ctx context.Context, cmd *cobra.Command, _ []string) error {
			if output != "table" && output != "json" {
				return usageError{fmt.Errorf("unsupported output %q", output)}
			}
			l, err := screen.NewTaskList(ctx, a.env)
			defer l.Close()
			if err != nil {
				return failed(l, nil, err)
			}

			out := cmd.OutOrStdout()
			if output == "json" {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				tasks := l.Tasks()
				if tasks == nil {
					tasks = []api.Task{}
				}
				return enc.Encode(tasks)
			}
			if l.Empty() {
				fmt.Fprintln(out, l.EmptyMessage())
				return nil
			}
			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tTITLE\tSTATUS\tASSIGNED TO")
			for _, t := range l.Tasks() {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", t.ID, t.Title, t.Status.Label(), t.AssigneeLabel())
			}
			return tw.Flush()
		}),
	}

	cmd.Flags().StringVarP(&output, "output", "o", "table", "output format (table or json)")
	return cmd
}

func newTaskCreateCommand(a *app) *cobra.Command {
	var (
		form   screen.CreateTaskForm
		assign string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a task",
		Args:  cobra.NoArgs,
		RunE: a.run(func(ctx context.Context, cmd *cobra.Command, _ []string) error {
			c, err := screen.NewCreateTask(ctx, a.env)
			defer c.Close()
			if err != nil {
				return failed(c, nil, err)
			}
			if note := c.Notice(); note != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), note.Message)
			}
			if assign != "" {
				if err := c.SelectUser(assign); err != nil {
					return usageError{err}
				}
			}

			c.Form = form
			if err := c.Submit(ctx); err != nil {
				return failed(c, c.Errors(), err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), c.Notice().Message)
			return nil
		}),
	}

	cmd.Flags().StringVar(&form.Title, "title", "", "task title")
	cmd.Flags().StringVar(&form.Description, "description", "", "task description")
	cmd.Flags().StringVar(&assign, "assign", "", "assignee user id (admins only)")
	return cmd
}

func newTaskEditCommand(a *app) *cobra.Command {
	var title, description, status string

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a task; unset flags keep the current values",
		Args:  cobra.ExactArgs(1),
		RunE: a.run(func(ctx context.Context, cmd *cobra.Command, args []string) error {
			if err := openTask(ctx, a, args[0]); err != nil {
				return err
			}

			e, err := screen.NewEditTask(ctx, a.env)
			defer e.Close()
			if err != nil {
				return failed(e, nil, err)
			}
			flags := cmd.Flags()
			if flags.Changed("title") {
				e.Form.Title = title
			}
			if flags.Changed("description") {
				e.Form.Description = description
			}
			if flags.Changed("status") {
				if err := e.SetStatus(api.Status(status)); err != nil {
					return usageError{err}
				}
			}

			if err := e.Submit(ctx); err != nil {
				return failed(e, e.Errors(), err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), e.Notice().Message)
			return nil
		}),
	}

	cmd.Flags().StringVar(&title, "title", "", "new title")
	cmd.Flags().StringVar(&description, "description", "", "new description")
	cmd.Flags().StringVar(&status, "status", "", "new status (pending, inProgress, completed)")
	return cmd
}

// openTask loads the task list and navigates to the edit screen for id.
func openTask(ctx context.Context, a *app, id string) error {
	l, err := screen.NewTaskList(ctx, a.env)
	defer l.Close()
	if err != nil {
		return failed(l, nil, err)
	}
	for _, t := range l.Tasks() {
		if t.ID == id {
			l.Edit(t)
			return nil
		}
	}
	return usageError{fmt.Errorf("task %s not found", id)}
}

func newTaskDeleteCommand(a *app) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a task",
		Args:    cobra.ExactArgs(1),
		RunE: a.run(func(ctx context.Context, cmd *cobra.Command, args []string) error {
			l, err := screen.NewTaskList(ctx, a.env)
			defer l.Close()
			if err != nil {
				return failed(l, nil, err)
			}

			id := args[0]
			var title string
			for _, t := range l.Tasks() {
				if t.ID == id {
					title = t.Title
				}
			}
			if title == "" {
				return usageError{fmt.Errorf("task %s not found", id)}
			}

			l.RequestDelete(id)
			if !yes {
				ok, err := confirm(cmd, fmt.Sprintf("Delete task %q?", title))
				if err != nil {
					return err
				}
				if !ok {
					l.CancelDelete()
					fmt.Fprintln(cmd.OutOrStdout(), "Cancelled")
					return nil
				}
			}

			if err := l.ConfirmDelete(ctx); err != nil {
				return failed(l, nil, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), l.Notice().Message)
			return nil
		}),
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}
