package workflow

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/SscSPs/invoice_workflow_app/internal/apperrors"
	"github.com/SscSPs/invoice_workflow_app/internal/core/domain"
	"github.com/google/uuid"
)

// NewApproval builds a ledger row for one human decision.
func NewApproval(invoiceID, approverID, approverName string, action domain.ApprovalAction, notes string, now time.Time) (domain.InvoiceApproval, error) {
	if strings.TrimSpace(invoiceID) == "" {
		return domain.InvoiceApproval{}, fmt.Errorf("%w: approval requires an invoice id", apperrors.ErrValidation)
	}
	if !action.IsValid() {
		return domain.InvoiceApproval{}, fmt.Errorf("%w: unknown approval action %q", apperrors.ErrValidation, action)
	}
	return domain.InvoiceApproval{
		ID:           uuid.NewString(),
		InvoiceID:    invoiceID,
		ApproverID:   approverID,
		ApproverName: approverName,
		Action:       action,
		Notes:        notes,
		CreatedAt:    now,
	}, nil
}

// LatestFor returns the row with the greatest CreatedAt for the invoice.
// On equal timestamps the row appearing later in approvals wins.
func LatestFor(approvals []domain.InvoiceApproval, invoiceID string) (domain.InvoiceApproval, error) {
	var latest *domain.InvoiceApproval
	for i := range approvals {
		a := &approvals[i]
		if a.InvoiceID != invoiceID {
			continue
		}
		if latest == nil || !a.CreatedAt.Before(latest.CreatedAt) {
			latest = a
		}
	}
	if latest == nil {
		return domain.InvoiceApproval{}, fmt.Errorf("%w: no approvals for invoice %s", apperrors.ErrNotFound, invoiceID)
	}
	return *latest, nil
}

// History returns the invoice's ledger rows ordered by CreatedAt ascending,
// keeping append order for equal timestamps.
func History(approvals []domain.InvoiceApproval, invoiceID string) []domain.InvoiceApproval {
	out := make([]domain.InvoiceApproval, 0)
	for _, a := range approvals {
		if a.InvoiceID == invoiceID {
			out = append(out, a)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}
