package repositories

import (
	"context"

	"github.com/SscSPs/invoice_workflow_app/internal/core/domain"
)

// PaymentReader defines read operations for payment data
type PaymentReader interface {
	// LoadPayments returns every payment in registration order.
	LoadPayments(ctx context.Context) ([]domain.Payment, error)

	// FindPaymentByID retrieves a specific payment. Missing payments yield apperrors.ErrNotFound.
	FindPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error)
}

// PaymentWriter defines write operations for payment data
type PaymentWriter interface {
	// SavePayments inserts or replaces the given payments by ID.
	SavePayments(ctx context.Context, payments []domain.Payment) error
}

// PaymentRepositoryFacade combines all payment-related repository interfaces
type PaymentRepositoryFacade interface {
	PaymentReader
	PaymentWriter
}
