package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/SscSPs/invoice_workflow_app/internal/core/workflow"
	"github.com/SscSPs/invoice_workflow_app/internal/dto"
	"github.com/SscSPs/invoice_workflow_app/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("JWT_SECRET", "cli-test-secret")
	t.Setenv("JWT_ISSUER", "iwa-cli-test")

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestTokenCommand(t *testing.T) {
	out, err := run(t, "token", "--id", "5", "--name", "王财务", "--role", "finance")
	require.NoError(t, err)

	claims, err := utils.ParseAndValidateJWT(string(bytes.TrimSpace([]byte(out))), "cli-test-secret", "iwa-cli-test")
	require.NoError(t, err)
	assert.Equal(t, "5", claims.Identity().ID)
	assert.Equal(t, "王财务", claims.Identity().Name)
}

func TestTokenCommand_RejectsUnknownRole(t *testing.T) {
	_, err := run(t, "token", "--id", "5", "--role", "auditor")
	assert.ErrorContains(t, err, "unknown role")
}

func TestTodosCommand_WithDemoData(t *testing.T) {
	out, err := run(t, "todos", "--id", "3", "--role", "department_leader", "--demo")
	require.NoError(t, err)

	var resp dto.TodoListResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.NotEmpty(t, resp.Todos)
}

func TestDashboardCommand_WithDemoData(t *testing.T) {
	out, err := run(t, "dashboard", "--id", "5", "--role", "finance", "--demo")
	require.NoError(t, err)

	var stats workflow.DashboardStats
	require.NoError(t, json.Unmarshal([]byte(out), &stats))
	assert.Equal(t, 6, stats.TotalInvoices)
	assert.Equal(t, 2, stats.PendingApproval)
	assert.Equal(t, 1, stats.PendingPayments)
	assert.True(t, stats.PaidAmount.IsPositive())
}

func TestMigrateCommand_RequiresPostgres(t *testing.T) {
	_, err := run(t, "migrate")
	assert.ErrorContains(t, err, "STORE_DRIVER=postgres")
}
