package services

import (
	"context"

	"github.com/SscSPs/invoice_workflow_app/internal/core/domain"
	"github.com/SscSPs/invoice_workflow_app/internal/dto"
)

// PaymentReaderSvc defines read operations for payments
type PaymentReaderSvc interface {
	GetPayment(ctx context.Context, paymentID string) (*domain.Payment, error)
	ListPayments(ctx context.Context) ([]domain.Payment, error)
}

// PaymentWriterSvc drives the payment reconciliation lifecycle
type PaymentWriterSvc interface {
	RegisterPayment(ctx context.Context, req dto.RegisterPaymentRequest) (*domain.Payment, error)
	ConfirmPayment(ctx context.Context, paymentID string) (*domain.Payment, error)
	ReconcilePayment(ctx context.Context, paymentID string) (*domain.Payment, error)
}

// PaymentSvcFacade combines all payment-related service interfaces
type PaymentSvcFacade interface {
	PaymentReaderSvc
	PaymentWriterSvc
}
