// Package repositories opens the workflow store selected by configuration.
package repositories

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/invoice_workflow_app/internal/adapters/memory"
	portsrepo "github.com/SscSPs/invoice_workflow_app/internal/core/ports/repositories"
	"github.com/SscSPs/invoice_workflow_app/internal/platform/config"
	"github.com/SscSPs/invoice_workflow_app/internal/repositories/database/pgsql"
	"github.com/SscSPs/invoice_workflow_app/internal/repositories/database/sqlite"
	"github.com/SscSPs/invoice_workflow_app/pkg/database"
)

// Open connects to the store named by cfg.StoreDriver, bringing its schema
// up to date, and returns the repositories with a func that releases the
// underlying connections.
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger) (portsrepo.RepositoryProvider, func(), error) {
	switch cfg.StoreDriver {
	case config.StoreDriverMemory:
		logger.Warn("Using the in-memory store; data is lost on restart")
		return portsrepo.NewRepositoryProvider(memory.NewStore()), func() {}, nil

	case config.StoreDriverPostgres:
		logger.Info("Running database migrations...", slog.String("path", cfg.MigrationsPath))
		if _, err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, logger); err != nil {
			return portsrepo.RepositoryProvider{}, nil, err
		}
		pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
		if err != nil {
			return portsrepo.RepositoryProvider{}, nil, fmt.Errorf("failed to initialize database pool: %w", err)
		}
		return pgsql.NewRepositoryProvider(pool), func() { database.ClosePgxPool(pool) }, nil

	case config.StoreDriverSQLite:
		db, err := database.NewSQLiteDB(cfg.SQLitePath)
		if err != nil {
			return portsrepo.RepositoryProvider{}, nil, err
		}
		store := sqlite.NewWorkflowStore(db)
		if err := store.AutoMigrate(); err != nil {
			return portsrepo.RepositoryProvider{}, nil, fmt.Errorf("failed to migrate sqlite schema: %w", err)
		}
		closeFn := func() {
			if sqlDB, err := db.DB(); err == nil {
				if err := sqlDB.Close(); err != nil {
					logger.Error("Error closing sqlite database", slog.String("error", err.Error()))
				}
			}
		}
		logger.Info("Opened SQLite database", slog.String("path", cfg.SQLitePath))
		return portsrepo.NewRepositoryProvider(store), closeFn, nil
	}
	return portsrepo.RepositoryProvider{}, nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
}
