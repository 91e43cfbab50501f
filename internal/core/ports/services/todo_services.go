package services

import (
	"context"

	"github.com/SscSPs/invoice_workflow_app/internal/core/workflow"
	"github.com/SscSPs/invoice_workflow_app/internal/dto"
)

// TodoSvc derives the current identity's task queue and dashboard from fresh state.
type TodoSvc interface {
	ListTodos(ctx context.Context) (*dto.TodoListResponse, error)
	GetDashboard(ctx context.Context) (*workflow.DashboardStats, error)
}
