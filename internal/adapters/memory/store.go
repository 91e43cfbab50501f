// Package memory is an in-process WorkflowStore. It backs the default
// development server, the CLI and the service tests.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/SscSPs/invoice_workflow_app/internal/apperrors"
	"github.com/SscSPs/invoice_workflow_app/internal/core/domain"
	portsrepo "github.com/SscSPs/invoice_workflow_app/internal/core/ports/repositories"
)

// Store keeps every collection in memory. All reads return copies, so
// callers can never mutate stored state without saving it.
type Store struct {
	mu   sync.RWMutex
	data collections
}

var _ portsrepo.WorkflowStoreWithTx = (*Store)(nil)

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{}
}

func (s *Store) LoadInvoices(ctx context.Context) ([]domain.Invoice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.loadInvoices(), nil
}

func (s *Store) FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.findInvoice(invoiceID)
}

func (s *Store) SaveInvoices(ctx context.Context, invoices []domain.Invoice) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.saveInvoices(invoices)
	return nil
}

func (s *Store) LoadPayments(ctx context.Context) ([]domain.Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.loadPayments(), nil
}

func (s *Store) FindPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.findPayment(paymentID)
}

func (s *Store) SavePayments(ctx context.Context, payments []domain.Payment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.savePayments(payments)
	return nil
}

func (s *Store) LoadApprovals(ctx context.Context) ([]domain.InvoiceApproval, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.loadApprovals(""), nil
}

func (s *Store) FindApprovalsByInvoiceID(ctx context.Context, invoiceID string) ([]domain.InvoiceApproval, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.loadApprovals(invoiceID), nil
}

func (s *Store) SaveApprovals(ctx context.Context, approvals []domain.InvoiceApproval) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.appendApprovals(approvals)
	return nil
}

// WithinTx runs fn against a staged copy of the data and publishes the copy
// only when fn succeeds. Transactions are serialised. fn must use the store
// it is given; calling back into s from fn deadlocks.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, store portsrepo.WorkflowStore) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	staged := &txStore{data: s.data.clone()}
	if err := fn(ctx, staged); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: transaction abandoned: %w", apperrors.ErrPersistence, err)
	}
	s.data = staged.data
	return nil
}

// txStore is the view handed to WithinTx callbacks. The outer lock is held.
type txStore struct {
	data collections
}

func (t *txStore) LoadInvoices(ctx context.Context) ([]domain.Invoice, error) {
	return t.data.loadInvoices(), nil
}

func (t *txStore) FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	return t.data.findInvoice(invoiceID)
}

func (t *txStore) SaveInvoices(ctx context.Context, invoices []domain.Invoice) error {
	t.data.saveInvoices(invoices)
	return nil
}

func (t *txStore) LoadPayments(ctx context.Context) ([]domain.Payment, error) {
	return t.data.loadPayments(), nil
}

func (t *txStore) FindPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error) {
	return t.data.findPayment(paymentID)
}

func (t *txStore) SavePayments(ctx context.Context, payments []domain.Payment) error {
	t.data.savePayments(payments)
	return nil
}

func (t *txStore) LoadApprovals(ctx context.Context) ([]domain.InvoiceApproval, error) {
	return t.data.loadApprovals(""), nil
}

func (t *txStore) FindApprovalsByInvoiceID(ctx context.Context, invoiceID string) ([]domain.InvoiceApproval, error) {
	return t.data.loadApprovals(invoiceID), nil
}

func (t *txStore) SaveApprovals(ctx context.Context, approvals []domain.InvoiceApproval) error {
	t.data.appendApprovals(approvals)
	return nil
}
