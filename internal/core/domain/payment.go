package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus is a position in the payment reconciliation lifecycle.
// It only ever moves forward: pending -> confirmed -> reconciled.
type PaymentStatus string

const (
	PaymentStatusPending    PaymentStatus = "pending"
	PaymentStatusConfirmed  PaymentStatus = "confirmed"
	PaymentStatusReconciled PaymentStatus = "reconciled"
)

// Rank orders payment statuses; a higher rank is further along.
func (s PaymentStatus) Rank() int {
	switch s {
	case PaymentStatusPending:
		return 0
	case PaymentStatusConfirmed:
		return 1
	case PaymentStatusReconciled:
		return 2
	}
	return -1
}

// Payment is a registered bank receipt, loosely linked to an invoice.
type Payment struct {
	ID            string          `json:"id"`
	InvoiceID     string          `json:"invoiceId"`
	InvoiceNumber string          `json:"invoiceNumber,omitempty"` // snapshot taken at registration
	Amount        decimal.Decimal `json:"amount"`
	PaymentDate   string          `json:"paymentDate"`
	Status        PaymentStatus   `json:"status"`
	BankReference string          `json:"bankReference,omitempty"`
	ConfirmedBy   string          `json:"confirmedBy,omitempty"`
	Notes         string          `json:"notes,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// DisplayNumber is the invoice number snapshot, falling back to the payment ID.
func (p *Payment) DisplayNumber() string {
	if p.InvoiceNumber != "" {
		return p.InvoiceNumber
	}
	return p.ID
}
