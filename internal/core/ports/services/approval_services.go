package services

import (
	"context"

	"github.com/SscSPs/invoice_workflow_app/internal/core/domain"
)

// ApprovalSvc exposes the approval ledger.
type ApprovalSvc interface {
	// RecordApproval appends a decision by the current identity without
	// changing the invoice status.
	RecordApproval(ctx context.Context, invoiceID string, action domain.ApprovalAction, notes string) (*domain.InvoiceApproval, error)

	// LatestApproval returns the most recent decision on an invoice.
	LatestApproval(ctx context.Context, invoiceID string) (*domain.InvoiceApproval, error)

	// ListApprovals returns the decisions on an invoice, oldest first.
	ListApprovals(ctx context.Context, invoiceID string) ([]domain.InvoiceApproval, error)
}
