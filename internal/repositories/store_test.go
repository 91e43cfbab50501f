package repositories_test

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/SscSPs/invoice_workflow_app/internal/platform/config"
	"github.com/SscSPs/invoice_workflow_app/internal/repositories"
	"github.com/SscSPs/invoice_workflow_app/internal/seed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func TestOpen_MemoryAndSQLite(t *testing.T) {
	tests := []struct {
		name string
		cfg  *config.Config
	}{
		{"memory", &config.Config{StoreDriver: config.StoreDriverMemory}},
		{"sqlite", &config.Config{StoreDriver: config.StoreDriverSQLite, SQLitePath: filepath.Join(t.TempDir(), "iwa.db")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			repos, closeFn, err := repositories.Open(ctx, tt.cfg, discard)
			require.NoError(t, err)
			defer closeFn()

			summary, err := seed.Load(ctx, repos, seed.DefaultStart)
			require.NoError(t, err)
			assert.Equal(t, 6, summary.Invoices)

			approvals, err := repos.ApprovalRepo.LoadApprovals(ctx)
			require.NoError(t, err)
			assert.Len(t, approvals, summary.Approvals)
		})
	}
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, _, err := repositories.Open(context.Background(), &config.Config{StoreDriver: "mongo"}, discard)
	assert.ErrorContains(t, err, "unknown store driver")
}
