package memory_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/SscSPs/invoice_workflow_app/internal/adapters/memory"
	"github.com/SscSPs/invoice_workflow_app/internal/apperrors"
	"github.com/SscSPs/invoice_workflow_app/internal/core/domain"
	portsrepo "github.com/SscSPs/invoice_workflow_app/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

func sampleInvoice(id string) domain.Invoice {
	return domain.Invoice{
		ID:     id,
		Status: domain.InvoiceStatusPendingDeptLeaderApproval,
		Amount: decimal.NewFromInt(100),
		InvoiceItems: []domain.InvoiceItem{
			{ID: "1", Category: "service", Amount: decimal.NewFromInt(100), TaxRate: decimal.NewFromInt(6)},
		},
		CreatedAt: t0,
		UpdatedAt: t0,
	}
}

func TestStore_InvoicesUpsertAndOrder(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()

	require.NoError(t, s.SaveInvoices(ctx, []domain.Invoice{sampleInvoice("a"), sampleInvoice("b")}))
	changed := sampleInvoice("a")
	changed.Status = domain.InvoiceStatusRejected
	require.NoError(t, s.SaveInvoices(ctx, []domain.Invoice{changed}))

	all, err := s.LoadInvoices(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "a", all[0].ID)
	assert.Equal(t, domain.InvoiceStatusRejected, all[0].Status)
	assert.Equal(t, "b", all[1].ID)

	_, err = s.FindInvoiceByID(ctx, "missing")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestStore_ReadsAreCopies(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	require.NoError(t, s.SaveInvoices(ctx, []domain.Invoice{sampleInvoice("a")}))

	got, err := s.FindInvoiceByID(ctx, "a")
	require.NoError(t, err)
	got.InvoiceItems[0].Category = "changed"
	got.Status = domain.InvoiceStatusSettled

	again, err := s.FindInvoiceByID(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "service", again.InvoiceItems[0].Category)
	assert.Equal(t, domain.InvoiceStatusPendingDeptLeaderApproval, again.Status)
}

func TestStore_ApprovalsAreAppendOnly(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()

	first := domain.InvoiceApproval{ID: "r1", InvoiceID: "a", Action: domain.ApprovalActionApproved, CreatedAt: t0}
	require.NoError(t, s.SaveApprovals(ctx, []domain.InvoiceApproval{first}))

	rewrite := first
	rewrite.Action = domain.ApprovalActionRejected
	second := domain.InvoiceApproval{ID: "r2", InvoiceID: "b", Action: domain.ApprovalActionRejected, CreatedAt: t0}
	require.NoError(t, s.SaveApprovals(ctx, []domain.InvoiceApproval{rewrite, second}))

	all, err := s.LoadApprovals(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, domain.ApprovalActionApproved, all[0].Action)

	forA, err := s.FindApprovalsByInvoiceID(ctx, "a")
	require.NoError(t, err)
	require.Len(t, forA, 1)
	assert.Equal(t, "r1", forA[0].ID)
}

func TestStore_Payments(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()

	p := domain.Payment{ID: "p1", InvoiceID: "a", Amount: decimal.NewFromInt(10), Status: domain.PaymentStatusPending}
	require.NoError(t, s.SavePayments(ctx, []domain.Payment{p}))
	p.Status = domain.PaymentStatusConfirmed
	require.NoError(t, s.SavePayments(ctx, []domain.Payment{p}))

	got, err := s.FindPaymentByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusConfirmed, got.Status)

	all, err := s.LoadPayments(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	_, err = s.FindPaymentByID(ctx, "nope")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestStore_WithinTxCommitsOnSuccess(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()

	err := s.WithinTx(ctx, func(ctx context.Context, store portsrepo.WorkflowStore) error {
		if err := store.SaveInvoices(ctx, []domain.Invoice{sampleInvoice("a")}); err != nil {
			return err
		}
		inv, err := store.FindInvoiceByID(ctx, "a")
		if err != nil {
			return err
		}
		assert.Equal(t, "a", inv.ID, "writes are visible inside the transaction")
		return store.SaveApprovals(ctx, []domain.InvoiceApproval{{ID: "r1", InvoiceID: "a", Action: domain.ApprovalActionApproved}})
	})
	require.NoError(t, err)

	invoices, _ := s.LoadInvoices(ctx)
	approvals, _ := s.LoadApprovals(ctx)
	assert.Len(t, invoices, 1)
	assert.Len(t, approvals, 1)
}

func TestStore_WithinTxDiscardsOnError(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	require.NoError(t, s.SaveInvoices(ctx, []domain.Invoice{sampleInvoice("a")}))

	boom := errors.New("boom")
	err := s.WithinTx(ctx, func(ctx context.Context, store portsrepo.WorkflowStore) error {
		inv, err := store.FindInvoiceByID(ctx, "a")
		require.NoError(t, err)
		inv.Status = domain.InvoiceStatusRejected
		require.NoError(t, store.SaveInvoices(ctx, []domain.Invoice{*inv}))
		require.NoError(t, store.SaveApprovals(ctx, []domain.InvoiceApproval{{ID: "r1", InvoiceID: "a", Action: domain.ApprovalActionRejected}}))
		return boom
	})
	require.ErrorIs(t, err, boom)

	inv, err := s.FindInvoiceByID(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, domain.InvoiceStatusPendingDeptLeaderApproval, inv.Status)
	approvals, _ := s.LoadApprovals(ctx)
	assert.Empty(t, approvals)
}

func TestStore_WithinTxCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := memory.NewStore()

	err := s.WithinTx(ctx, func(ctx context.Context, store portsrepo.WorkflowStore) error {
		cancel()
		return store.SaveInvoices(ctx, []domain.Invoice{sampleInvoice("a")})
	})
	require.ErrorIs(t, err, apperrors.ErrPersistence)

	invoices, _ := s.LoadInvoices(context.Background())
	assert.Empty(t, invoices)
}

func TestStore_ConcurrentTransactions(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_ = s.WithinTx(ctx, func(ctx context.Context, store portsrepo.WorkflowStore) error {
				all, err := store.LoadInvoices(ctx)
				if err != nil {
					return err
				}
				inv := sampleInvoice(string(rune('a' + n)))
				inv.InvoiceNumber = string(rune('0' + len(all)%10))
				return store.SaveInvoices(ctx, []domain.Invoice{inv})
			})
		}(i)
	}
	wg.Wait()

	all, err := s.LoadInvoices(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 20)
}
