package services_test

import (
	"context"

	"github.com/SscSPs/invoice_workflow_app/internal/core/domain"
	portsrepo "github.com/SscSPs/invoice_workflow_app/internal/core/ports/repositories"
	"github.com/stretchr/testify/mock"
)

// MockWorkflowStore is a mock type for the WorkflowStoreWithTx interface.
// WithinTx hands the mock itself to the callback.
type MockWorkflowStore struct {
	mock.Mock
}

var _ portsrepo.WorkflowStoreWithTx = (*MockWorkflowStore)(nil)

func (m *MockWorkflowStore) LoadInvoices(ctx context.Context) ([]domain.Invoice, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Invoice), args.Error(1)
}

func (m *MockWorkflowStore) FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	args := m.Called(ctx, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockWorkflowStore) SaveInvoices(ctx context.Context, invoices []domain.Invoice) error {
	args := m.Called(ctx, invoices)
	return args.Error(0)
}

func (m *MockWorkflowStore) LoadPayments(ctx context.Context) ([]domain.Payment, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Payment), args.Error(1)
}

func (m *MockWorkflowStore) FindPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error) {
	args := m.Called(ctx, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

func (m *MockWorkflowStore) SavePayments(ctx context.Context, payments []domain.Payment) error {
	args := m.Called(ctx, payments)
	return args.Error(0)
}

func (m *MockWorkflowStore) LoadApprovals(ctx context.Context) ([]domain.InvoiceApproval, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.InvoiceApproval), args.Error(1)
}

func (m *MockWorkflowStore) FindApprovalsByInvoiceID(ctx context.Context, invoiceID string) ([]domain.InvoiceApproval, error) {
	args := m.Called(ctx, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.InvoiceApproval), args.Error(1)
}

func (m *MockWorkflowStore) SaveApprovals(ctx context.Context, approvals []domain.InvoiceApproval) error {
	args := m.Called(ctx, approvals)
	return args.Error(0)
}

func (m *MockWorkflowStore) WithinTx(ctx context.Context, fn func(ctx context.Context, store portsrepo.WorkflowStore) error) error {
	m.Called(ctx)
	return fn(ctx, m)
}
