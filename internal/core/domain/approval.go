package domain

import "time"

// ApprovalAction is the decision recorded in the approval ledger.
type ApprovalAction string

const (
	ApprovalActionApproved ApprovalAction = "approved"
	ApprovalActionRejected ApprovalAction = "rejected"
)

// IsValid reports whether a is a known decision.
func (a ApprovalAction) IsValid() bool {
	return a == ApprovalActionApproved || a == ApprovalActionRejected
}

// InvoiceApproval is an append-only ledger row recording one human decision on an invoice.
type InvoiceApproval struct {
	ID           string         `json:"id"`
	InvoiceID    string         `json:"invoiceId"`
	ApproverID   string         `json:"approverId"`
	ApproverName string         `json:"approverName,omitempty"`
	Action       ApprovalAction `json:"action"`
	Notes        string         `json:"notes,omitempty"`
	CreatedAt    time.Time      `json:"createdAt"`
}
