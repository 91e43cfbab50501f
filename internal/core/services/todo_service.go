package services

import (
	"context"
	"log/slog"

	"github.com/SscSPs/invoice_workflow_app/internal/core/domain"
	portsrepo "github.com/SscSPs/invoice_workflow_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/invoice_workflow_app/internal/core/ports/services"
	"github.com/SscSPs/invoice_workflow_app/internal/core/workflow"
	"github.com/SscSPs/invoice_workflow_app/internal/dto"
)

type todoService struct {
	BaseService
	invoiceRepo portsrepo.InvoiceReader
	paymentRepo portsrepo.PaymentReader
}

// NewTodoService creates the to-do service. To-dos are never stored; each
// call derives them from the current invoices and payments.
func NewTodoService(repos portsrepo.RepositoryProvider, identity portssvc.IdentityProvider, options ...ServiceOption) portssvc.TodoSvc {
	return &todoService{
		BaseService: newBaseService(identity, options...),
		invoiceRepo: repos.InvoiceRepo,
		paymentRepo: repos.PaymentRepo,
	}
}

var _ portssvc.TodoSvc = (*todoService)(nil)

func (s *todoService) ListTodos(ctx context.Context) (*dto.TodoListResponse, error) {
	who, err := s.RequireIdentity(ctx)
	if err != nil {
		return nil, err
	}
	invoices, err := s.invoiceRepo.LoadInvoices(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to load invoices for to-dos")
		return nil, err
	}
	payments, err := s.paymentRepo.LoadPayments(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to load payments for to-dos")
		return nil, err
	}

	todos := workflow.DeriveTodos(invoices, payments, who)
	if todos == nil {
		todos = []domain.TodoItem{}
	}
	s.LogDebug(ctx, "Derived to-dos", slog.String("role", string(who.Role)), slog.Int("count", len(todos)))
	return &dto.TodoListResponse{Todos: todos, Summary: workflow.Summarize(todos)}, nil
}

func (s *todoService) GetDashboard(ctx context.Context) (*workflow.DashboardStats, error) {
	who, err := s.RequireIdentity(ctx)
	if err != nil {
		return nil, err
	}
	invoices, err := s.invoiceRepo.LoadInvoices(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to load invoices for dashboard")
		return nil, err
	}
	payments, err := s.paymentRepo.LoadPayments(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to load payments for dashboard")
		return nil, err
	}
	stats := workflow.ComputeDashboard(invoices, payments, who)
	return &stats, nil
}
