package main

import (
	"errors"

	"github.com/SscSPs/invoice_workflow_app/internal/core/services"
	"github.com/SscSPs/invoice_workflow_app/internal/middleware"
	"github.com/SscSPs/invoice_workflow_app/internal/seed"
	"github.com/spf13/cobra"
)

func newTodosCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "todos",
		Short: "Print the derived to-do list of an identity as JSON",
		Example: `  iwactl todos --id 5 --role finance
  STORE_DRIVER=memory iwactl todos --id 3 --role department_leader --demo`,
		RunE: runTodos,
	}
	addIdentityFlags(cmd)
	cmd.Flags().Bool("demo", false, "Load the demo data set first when the store is empty")
	return cmd
}

func runTodos(cmd *cobra.Command, _ []string) error {
	who, err := identityFromFlags(cmd)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	_, repos, closeFn, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer closeFn()

	if demo, _ := cmd.Flags().GetBool("demo"); demo {
		if _, err := seed.Load(ctx, repos, seed.DefaultStart); err != nil && !errors.Is(err, seed.ErrNotEmpty) {
			return err
		}
	}

	container := services.NewServiceContainer(repos, middleware.ContextIdentityProvider{})
	resp, err := container.Todo.ListTodos(middleware.WithIdentity(ctx, who))
	if err != nil {
		return err
	}
	return printJSON(cmd.OutOrStdout(), resp)
}
