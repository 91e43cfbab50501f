package repositories

import (
	"context"

	"github.com/SscSPs/invoice_workflow_app/internal/core/domain"
)

// InvoiceReader defines read operations for invoice data
type InvoiceReader interface {
	// LoadInvoices returns every invoice in creation order.
	LoadInvoices(ctx context.Context) ([]domain.Invoice, error)

	// FindInvoiceByID retrieves a specific invoice. Missing invoices yield apperrors.ErrNotFound.
	FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error)
}

// InvoiceWriter defines write operations for invoice data
type InvoiceWriter interface {
	// SaveInvoices inserts or replaces the given invoices by ID.
	SaveInvoices(ctx context.Context, invoices []domain.Invoice) error
}

// InvoiceRepositoryFacade combines all invoice-related repository interfaces
type InvoiceRepositoryFacade interface {
	InvoiceReader
	InvoiceWriter
}
