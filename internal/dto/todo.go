package dto

import (
	"github.com/SscSPs/invoice_workflow_app/internal/core/domain"
	"github.com/SscSPs/invoice_workflow_app/internal/core/workflow"
)

// TodoListResponse is the caller's derived task queue.
type TodoListResponse struct {
	Todos   []domain.TodoItem    `json:"todos"`
	Summary workflow.TodoSummary `json:"summary"`
}
