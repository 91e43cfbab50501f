package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/invoice_workflow_app/internal/adapters/memory"
	"github.com/SscSPs/invoice_workflow_app/internal/apperrors"
	"github.com/SscSPs/invoice_workflow_app/internal/core/domain"
	portsrepo "github.com/SscSPs/invoice_workflow_app/internal/core/ports/repositories"
	"github.com/SscSPs/invoice_workflow_app/internal/core/services"
	"github.com/SscSPs/invoice_workflow_app/internal/dto"
	"github.com/SscSPs/invoice_workflow_app/internal/middleware"
	"github.com/SscSPs/invoice_workflow_app/internal/platform/clock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestTodoService_FollowsTheWorkflow(t *testing.T) {
	store := memory.NewStore()
	fake := clock.NewFakeClock(t0)
	container := services.NewServiceContainer(portsrepo.NewRepositoryProvider(store), middleware.ContextIdentityProvider{},
		services.WithClock(fake))

	big, err := container.Invoice.CreateInvoice(as(manager), createRequest(600000))
	require.NoError(t, err)
	fake.Advance(time.Minute)
	small, err := container.Invoice.CreateInvoice(as(manager), createRequest(1000))
	require.NoError(t, err)

	resp, err := container.Todo.ListTodos(as(leader))
	require.NoError(t, err)
	require.Len(t, resp.Todos, 2)
	assert.Equal(t, "invoice-"+big.ID, resp.Todos[0].ID, "high priority first")
	assert.Equal(t, domain.PriorityHigh, resp.Todos[0].Priority)
	assert.Equal(t, "invoice-"+small.ID, resp.Todos[1].ID)
	assert.Equal(t, 2, resp.Summary.Total)
	assert.Equal(t, 2, resp.Summary.InvoiceApproval)

	_, err = container.Invoice.ApproveInvoice(as(leader), small.ID, "")
	require.NoError(t, err)

	resp, err = container.Todo.ListTodos(as(leader))
	require.NoError(t, err)
	require.Len(t, resp.Todos, 1)

	resp, err = container.Todo.ListTodos(as(financeUser))
	require.NoError(t, err)
	require.Len(t, resp.Todos, 1)
	assert.Equal(t, "invoice-finance-approval-"+small.ID, resp.Todos[0].ID)

	resp, err = container.Todo.ListTodos(as(supportUser))
	require.NoError(t, err)
	assert.NotNil(t, resp.Todos)
	assert.Empty(t, resp.Todos)
}

func TestTodoService_Errors(t *testing.T) {
	_, err := services.NewTodoService(portsrepo.NewRepositoryProvider(memory.NewStore()), middleware.ContextIdentityProvider{}).
		ListTodos(context.Background())
	assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)

	store := new(MockWorkflowStore)
	dbErr := apperrors.NewPersistenceError("failed to load invoices", errors.New("timeout"))
	store.On("LoadInvoices", mock.Anything).Return(nil, dbErr).Once()

	_, err = services.NewTodoService(portsrepo.NewRepositoryProvider(store), middleware.ContextIdentityProvider{}).
		ListTodos(as(leader))
	assert.ErrorIs(t, err, apperrors.ErrPersistence)
	store.AssertNotCalled(t, "LoadPayments", mock.Anything)
}

func TestTodoService_Dashboard(t *testing.T) {
	store := memory.NewStore()
	container := services.NewServiceContainer(portsrepo.NewRepositoryProvider(store), middleware.ContextIdentityProvider{},
		services.WithClock(clock.NewFakeClock(t0)))

	mine, err := container.Invoice.CreateInvoice(as(manager), createRequest(300000))
	require.NoError(t, err)
	_, err = container.Invoice.CreateInvoice(as(otherMgr), createRequest(1000))
	require.NoError(t, err)
	_, err = container.Invoice.ApproveInvoice(as(leader), mine.ID, "")
	require.NoError(t, err)
	_, err = container.Invoice.ApproveInvoice(as(financeUser), mine.ID, "")
	require.NoError(t, err)

	pay, err := container.Payment.RegisterPayment(as(supportUser), dto.RegisterPaymentRequest{
		InvoiceID: mine.ID, Amount: decimal.NewFromInt(120000), PaymentDate: "2024-03-05",
	})
	require.NoError(t, err)
	_, err = container.Payment.RegisterPayment(as(supportUser), dto.RegisterPaymentRequest{
		InvoiceID: mine.ID, Amount: decimal.NewFromInt(80000), PaymentDate: "2024-03-06",
	})
	require.NoError(t, err)
	_, err = container.Payment.ConfirmPayment(as(financeUser), pay.ID)
	require.NoError(t, err)

	all, err := container.Todo.GetDashboard(as(financeUser))
	require.NoError(t, err)
	assert.Equal(t, 2, all.TotalInvoices)
	assert.Equal(t, 1, all.PendingApproval)
	assert.Equal(t, 1, all.Approved)
	assert.Equal(t, "301000", all.TotalAmount.String())
	assert.Equal(t, "120000", all.PaidAmount.String())
	assert.Equal(t, 1, all.PendingPayments)

	theirs, err := container.Todo.GetDashboard(as(otherMgr))
	require.NoError(t, err)
	assert.Equal(t, 1, theirs.TotalInvoices)
	assert.Equal(t, "1000", theirs.TotalAmount.String())
	assert.Equal(t, "0", theirs.PaidAmount.String())
	assert.Zero(t, theirs.PendingPayments)

	_, err = container.Todo.GetDashboard(context.Background())
	assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)
}
