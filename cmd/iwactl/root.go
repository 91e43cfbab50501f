package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/SscSPs/invoice_workflow_app/internal/core/domain"
	portsrepo "github.com/SscSPs/invoice_workflow_app/internal/core/ports/repositories"
	"github.com/SscSPs/invoice_workflow_app/internal/platform/config"
	"github.com/SscSPs/invoice_workflow_app/internal/repositories"
	"github.com/spf13/cobra"
)

var version = "1.0.0"

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "iwactl",
		Short: "Operator CLI for the invoice workflow service",
		Long: `iwactl mints development tokens, loads the demo data set, prints
derived to-do lists and applies database migrations.

The store and JWT settings are read from the same environment variables
(and .env file) as the server: STORE_DRIVER, PGSQL_URL, SQLITE_PATH,
MIGRATIONS_PATH, JWT_SECRET, JWT_ISSUER, JWT_EXPIRY_DURATION.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newTokenCmd(), newSeedCmd(), newTodosCmd(), newDashboardCmd(), newMigrateCmd())
	return root
}

// addIdentityFlags registers --id, --name and --role on cmd.
func addIdentityFlags(cmd *cobra.Command) {
	cmd.Flags().String("id", "", "User ID (token subject)")
	cmd.Flags().String("name", "", "Display name")
	cmd.Flags().String("role", "", "Role: customer_manager, department_leader, finance, business_support or admin")
	_ = cmd.MarkFlagRequired("id")
	_ = cmd.MarkFlagRequired("role")
}

func identityFromFlags(cmd *cobra.Command) (domain.Identity, error) {
	id, _ := cmd.Flags().GetString("id")
	name, _ := cmd.Flags().GetString("name")
	role, _ := cmd.Flags().GetString("role")
	who := domain.Identity{ID: id, Name: name, Role: domain.Role(role)}
	if who.ID == "" {
		return domain.Identity{}, fmt.Errorf("--id must not be empty")
	}
	if !who.Role.IsValid() {
		return domain.Identity{}, fmt.Errorf("unknown role %q", role)
	}
	if who.Name == "" {
		who.Name = who.ID
	}
	return who, nil
}

// openStore loads configuration and opens the configured store.
func openStore(ctx context.Context) (*config.Config, portsrepo.RepositoryProvider, func(), error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, portsrepo.RepositoryProvider{}, nil, fmt.Errorf("failed to load config: %w", err)
	}
	repos, closeFn, err := repositories.Open(ctx, cfg, slog.Default())
	if err != nil {
		return nil, portsrepo.RepositoryProvider{}, nil, err
	}
	return cfg, repos, closeFn, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
