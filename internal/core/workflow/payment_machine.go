package workflow

import (
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/invoice_workflow_app/internal/apperrors"
	"github.com/SscSPs/invoice_workflow_app/internal/core/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	// PaymentRegisterRoles may record an incoming payment.
	PaymentRegisterRoles = []domain.Role{domain.RoleCustomerManager, domain.RoleBusinessSupport}
	// PaymentConfirmRoles may confirm a pending payment.
	PaymentConfirmRoles = []domain.Role{domain.RoleFinance}
	// PaymentReconcileRoles may reconcile a confirmed payment.
	PaymentReconcileRoles = []domain.Role{domain.RoleFinance}
)

// PaymentRegistration is the input of a payment registration.
type PaymentRegistration struct {
	InvoiceID     string
	Amount        decimal.Decimal
	PaymentDate   string
	BankReference string
	Notes         string
}

// Validate checks the mandatory registration fields.
func (r PaymentRegistration) Validate() error {
	var problems []string
	if strings.TrimSpace(r.InvoiceID) == "" {
		problems = append(problems, "invoiceId is required")
	}
	if strings.TrimSpace(r.PaymentDate) == "" {
		problems = append(problems, "paymentDate is required")
	} else if _, err := time.Parse(time.DateOnly, r.PaymentDate); err != nil {
		problems = append(problems, "paymentDate must be YYYY-MM-DD")
	}
	if !r.Amount.IsPositive() {
		problems = append(problems, "amount must be greater than zero")
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", apperrors.ErrValidation, strings.Join(problems, "; "))
	}
	return nil
}

// NewPayment creates a pending payment. The related invoice is optional;
// when present its number is snapshotted onto the payment.
func NewPayment(reg PaymentRegistration, related *domain.Invoice, who domain.Identity, now time.Time) (domain.Payment, error) {
	if !hasRole(PaymentRegisterRoles, who.Role) {
		return domain.Payment{}, fmt.Errorf("%w: %s may not register payments", apperrors.ErrForbidden, describe(who))
	}
	if err := reg.Validate(); err != nil {
		return domain.Payment{}, err
	}
	p := domain.Payment{
		ID:            uuid.NewString(),
		InvoiceID:     reg.InvoiceID,
		Amount:        reg.Amount,
		PaymentDate:   reg.PaymentDate,
		Status:        domain.PaymentStatusPending,
		BankReference: reg.BankReference,
		Notes:         reg.Notes,
		CreatedAt:     now,
	}
	if related != nil {
		p.InvoiceNumber = related.InvoiceNumber
	}
	return p, nil
}

// ConfirmPayment moves a pending payment to confirmed and records who confirmed it.
func ConfirmPayment(p *domain.Payment, who domain.Identity) error {
	if !hasRole(PaymentConfirmRoles, who.Role) {
		return fmt.Errorf("%w: %s may not confirm payments", apperrors.ErrForbidden, describe(who))
	}
	if p.Status != domain.PaymentStatusPending {
		return fmt.Errorf("%w: payment %s is %s, expected %s", apperrors.ErrInvalidState, p.ID, p.Status, domain.PaymentStatusPending)
	}
	p.Status = domain.PaymentStatusConfirmed
	if p.ConfirmedBy == "" {
		p.ConfirmedBy = who.ID
	}
	return nil
}

// ReconcilePayment moves a confirmed payment to reconciled.
func ReconcilePayment(p *domain.Payment, who domain.Identity) error {
	if !hasRole(PaymentReconcileRoles, who.Role) {
		return fmt.Errorf("%w: %s may not reconcile payments", apperrors.ErrForbidden, describe(who))
	}
	if p.Status != domain.PaymentStatusConfirmed {
		return fmt.Errorf("%w: payment %s is %s, expected %s", apperrors.ErrInvalidState, p.ID, p.Status, domain.PaymentStatusConfirmed)
	}
	p.Status = domain.PaymentStatusReconciled
	return nil
}
