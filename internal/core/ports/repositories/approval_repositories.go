package repositories

import (
	"context"

	"github.com/SscSPs/invoice_workflow_app/internal/core/domain"
)

// ApprovalReader defines read operations for the approval ledger
type ApprovalReader interface {
	// LoadApprovals returns every ledger row in append order.
	LoadApprovals(ctx context.Context) ([]domain.InvoiceApproval, error)

	// FindApprovalsByInvoiceID returns the rows of one invoice in append order.
	FindApprovalsByInvoiceID(ctx context.Context, invoiceID string) ([]domain.InvoiceApproval, error)
}

// ApprovalWriter defines write operations for the approval ledger.
// The ledger is append-only: rows whose ID is already stored are left untouched.
type ApprovalWriter interface {
	SaveApprovals(ctx context.Context, approvals []domain.InvoiceApproval) error
}

// ApprovalRepositoryFacade combines all ledger repository interfaces
type ApprovalRepositoryFacade interface {
	ApprovalReader
	ApprovalWriter
}
