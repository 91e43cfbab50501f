package memory

import (
	"fmt"

	"github.com/SscSPs/invoice_workflow_app/internal/apperrors"
	"github.com/SscSPs/invoice_workflow_app/internal/core/domain"
)

// collections holds the entity slices in insertion order. It does no locking.
type collections struct {
	invoices  []domain.Invoice
	payments  []domain.Payment
	approvals []domain.InvoiceApproval
}

func (c *collections) clone() collections {
	out := collections{
		invoices:  make([]domain.Invoice, len(c.invoices)),
		payments:  append([]domain.Payment(nil), c.payments...),
		approvals: append([]domain.InvoiceApproval(nil), c.approvals...),
	}
	for i := range c.invoices {
		out.invoices[i] = c.invoices[i].Clone()
	}
	return out
}

func (c *collections) loadInvoices() []domain.Invoice {
	out := make([]domain.Invoice, len(c.invoices))
	for i := range c.invoices {
		out[i] = c.invoices[i].Clone()
	}
	return out
}

func (c *collections) findInvoice(id string) (*domain.Invoice, error) {
	for i := range c.invoices {
		if c.invoices[i].ID == id {
			inv := c.invoices[i].Clone()
			return &inv, nil
		}
	}
	return nil, fmt.Errorf("%w: invoice %s", apperrors.ErrNotFound, id)
}

func (c *collections) saveInvoices(invoices []domain.Invoice) {
	for _, inv := range invoices {
		replaced := false
		for i := range c.invoices {
			if c.invoices[i].ID == inv.ID {
				c.invoices[i] = inv.Clone()
				replaced = true
				break
			}
		}
		if !replaced {
			c.invoices = append(c.invoices, inv.Clone())
		}
	}
}

func (c *collections) loadPayments() []domain.Payment {
	return append(make([]domain.Payment, 0, len(c.payments)), c.payments...)
}

func (c *collections) findPayment(id string) (*domain.Payment, error) {
	for i := range c.payments {
		if c.payments[i].ID == id {
			p := c.payments[i]
			return &p, nil
		}
	}
	return nil, fmt.Errorf("%w: payment %s", apperrors.ErrNotFound, id)
}

func (c *collections) savePayments(payments []domain.Payment) {
	for _, p := range payments {
		replaced := false
		for i := range c.payments {
			if c.payments[i].ID == p.ID {
				c.payments[i] = p
				replaced = true
				break
			}
		}
		if !replaced {
			c.payments = append(c.payments, p)
		}
	}
}

// loadApprovals returns all rows, or only the rows of invoiceID when it is non-empty.
func (c *collections) loadApprovals(invoiceID string) []domain.InvoiceApproval {
	out := make([]domain.InvoiceApproval, 0, len(c.approvals))
	for _, a := range c.approvals {
		if invoiceID == "" || a.InvoiceID == invoiceID {
			out = append(out, a)
		}
	}
	return out
}

func (c *collections) appendApprovals(approvals []domain.InvoiceApproval) {
	for _, a := range approvals {
		exists := false
		for i := range c.approvals {
			if c.approvals[i].ID == a.ID {
				exists = true
				break
			}
		}
		if !exists {
			c.approvals = append(c.approvals, a)
		}
	}
}
