package mapping

import (
	"encoding/json"
	"fmt"

	"github.com/SscSPs/invoice_workflow_app/internal/core/domain"
	"github.com/SscSPs/invoice_workflow_app/internal/models"
)

// ToModelInvoice converts a domain Invoice to its stored row. seq is the
// insertion position and is only meaningful for new rows.
func ToModelInvoice(d domain.Invoice, seq int64) (models.Invoice, error) {
	doc, err := json.Marshal(d)
	if err != nil {
		return models.Invoice{}, fmt.Errorf("failed to encode invoice %s: %w", d.ID, err)
	}
	return models.Invoice{
		Seq:         seq,
		InvoiceID:   d.ID,
		Status:      string(d.Status),
		SubmittedBy: d.SubmittedBy,
		Amount:      d.Amount,
		Document:    doc,
		AuditFields: ToModelAuditFields(d.CreatedAt, d.UpdatedAt),
	}, nil
}

// ToDomainInvoice converts a stored row back to a domain Invoice. The flat
// columns win over the document should they ever disagree.
func ToDomainInvoice(m models.Invoice) (domain.Invoice, error) {
	var d domain.Invoice
	if err := json.Unmarshal(m.Document, &d); err != nil {
		return domain.Invoice{}, fmt.Errorf("failed to decode invoice %s: %w", m.InvoiceID, err)
	}
	d.ID = m.InvoiceID
	d.Status = domain.InvoiceStatus(m.Status)
	d.SubmittedBy = m.SubmittedBy
	d.CreatedAt = m.CreatedAt.UTC()
	d.UpdatedAt = m.UpdatedAt.UTC()
	return d, nil
}

// ToModelPayment converts a domain Payment to its stored row.
func ToModelPayment(d domain.Payment, seq int64) models.Payment {
	return models.Payment{
		Seq:           seq,
		PaymentID:     d.ID,
		InvoiceID:     d.InvoiceID,
		InvoiceNumber: d.InvoiceNumber,
		Amount:        d.Amount,
		PaymentDate:   d.PaymentDate,
		Status:        string(d.Status),
		BankReference: d.BankReference,
		ConfirmedBy:   d.ConfirmedBy,
		Notes:         d.Notes,
		AuditFields:   ToModelAuditFields(d.CreatedAt, d.CreatedAt),
	}
}

// ToDomainPayment converts a stored row to a domain Payment.
func ToDomainPayment(m models.Payment) domain.Payment {
	return domain.Payment{
		ID:            m.PaymentID,
		InvoiceID:     m.InvoiceID,
		InvoiceNumber: m.InvoiceNumber,
		Amount:        m.Amount,
		PaymentDate:   m.PaymentDate,
		Status:        domain.PaymentStatus(m.Status),
		BankReference: m.BankReference,
		ConfirmedBy:   m.ConfirmedBy,
		Notes:         m.Notes,
		CreatedAt:     m.CreatedAt.UTC(),
	}
}

// ToModelApproval converts a ledger row to its stored form.
func ToModelApproval(d domain.InvoiceApproval, seq int64) models.InvoiceApproval {
	return models.InvoiceApproval{
		Seq:          seq,
		ApprovalID:   d.ID,
		InvoiceID:    d.InvoiceID,
		ApproverID:   d.ApproverID,
		ApproverName: d.ApproverName,
		Action:       string(d.Action),
		Notes:        d.Notes,
		AuditFields:  ToModelAuditFields(d.CreatedAt, d.CreatedAt),
	}
}

// ToDomainApproval converts a stored ledger row to the domain type.
func ToDomainApproval(m models.InvoiceApproval) domain.InvoiceApproval {
	return domain.InvoiceApproval{
		ID:           m.ApprovalID,
		InvoiceID:    m.InvoiceID,
		ApproverID:   m.ApproverID,
		ApproverName: m.ApproverName,
		Action:       domain.ApprovalAction(m.Action),
		Notes:        m.Notes,
		CreatedAt:    m.CreatedAt.UTC(),
	}
}
