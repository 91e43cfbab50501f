package dto

import (
	"github.com/SscSPs/invoice_workflow_app/internal/core/domain"
	"github.com/SscSPs/invoice_workflow_app/internal/core/workflow"
	"github.com/shopspring/decimal"
)

// RegisterPaymentRequest records an incoming bank payment.
type RegisterPaymentRequest struct {
	InvoiceID     string          `json:"invoiceId" binding:"required"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentDate   string          `json:"paymentDate" binding:"required,datetime=2006-01-02"`
	BankReference string          `json:"bankReference"`
	Notes         string          `json:"notes"`
}

// ToRegistration converts the request to the workflow input.
func (r RegisterPaymentRequest) ToRegistration() workflow.PaymentRegistration {
	return workflow.PaymentRegistration{
		InvoiceID:     r.InvoiceID,
		Amount:        r.Amount,
		PaymentDate:   r.PaymentDate,
		BankReference: r.BankReference,
		Notes:         r.Notes,
	}
}

// ListPaymentsResponse lists payments in registration order.
type ListPaymentsResponse struct {
	Payments []domain.Payment `json:"payments"`
}
