package main

import (
	"fmt"
	"log/slog"

	"github.com/SscSPs/invoice_workflow_app/internal/platform/config"
	"github.com/SscSPs/invoice_workflow_app/pkg/database"
	"github.com/spf13/cobra"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending SQL migrations to the PostgreSQL store",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if cfg.StoreDriver != config.StoreDriverPostgres {
				return fmt.Errorf("migrate needs STORE_DRIVER=%s, got %q", config.StoreDriverPostgres, cfg.StoreDriver)
			}
			applied, err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, slog.Default())
			if err != nil {
				return err
			}
			if applied {
				fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "no change")
			}
			return nil
		},
	}
}
