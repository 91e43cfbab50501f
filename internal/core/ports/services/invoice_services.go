package services

import (
	"context"

	"github.com/SscSPs/invoice_workflow_app/internal/core/domain"
	"github.com/SscSPs/invoice_workflow_app/internal/dto"
)

// InvoiceReaderSvc defines read operations for invoice data
type InvoiceReaderSvc interface {
	// GetInvoice retrieves one invoice. Customer managers only see their own.
	GetInvoice(ctx context.Context, invoiceID string) (*domain.Invoice, error)

	// ListInvoices returns a page of invoices, newest first. Customer managers only see their own.
	ListInvoices(ctx context.Context, params dto.ListInvoicesParams) (*dto.ListInvoicesResponse, error)

	// ListApplications returns the caller's own invoices with their progress.
	ListApplications(ctx context.Context) (*dto.ListApplicationsResponse, error)
}

// InvoiceWriterSvc defines the lifecycle operations on invoices. Each one
// checks the transition guard for the current identity and fails with a
// guard violation, leaving storage untouched, when the guard refuses.
type InvoiceWriterSvc interface {
	CreateInvoice(ctx context.Context, req dto.CreateInvoiceRequest) (*domain.Invoice, error)
	UpdateInvoiceItems(ctx context.Context, invoiceID string, req dto.UpdateInvoiceItemsRequest) (*domain.Invoice, error)
	ApproveInvoice(ctx context.Context, invoiceID string, notes string) (*domain.Invoice, error)
	RejectInvoice(ctx context.Context, invoiceID string, notes string) (*domain.Invoice, error)
	UploadInvoice(ctx context.Context, invoiceID string, req dto.UploadInvoiceRequest) (*domain.Invoice, error)
	SubmitToCustomer(ctx context.Context, invoiceID string) (*domain.Invoice, error)
	ConfirmInvoice(ctx context.Context, invoiceID string, applyGroupBilling bool) (*domain.Invoice, error)
	SubmitGroupBilling(ctx context.Context, invoiceID string, req dto.GroupBillingRequest) (*domain.Invoice, error)
	UploadGroupInvoice(ctx context.Context, invoiceID string, req dto.UploadInvoiceRequest) (*domain.Invoice, error)
	WithdrawInvoice(ctx context.Context, invoiceID string, reason string) (*domain.Invoice, error)
	ResubmitInvoice(ctx context.Context, invoiceID string) (*domain.Invoice, error)
}

// InvoiceSvcFacade combines all invoice-related service interfaces
type InvoiceSvcFacade interface {
	InvoiceReaderSvc
	InvoiceWriterSvc
}
