package workflow

import (
	"github.com/SscSPs/invoice_workflow_app/internal/core/domain"
	"github.com/SscSPs/invoice_workflow_app/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// DashboardStats are the headline figures of the home page.
type DashboardStats struct {
	TotalInvoices   int             `json:"totalInvoices"`
	PendingApproval int             `json:"pendingApproval"`
	Approved        int             `json:"approved"`
	TotalAmount     decimal.Decimal `json:"totalAmount"`
	PaidAmount      decimal.Decimal `json:"paidAmount"`
	PendingPayments int             `json:"pendingPayments"`
}

// ComputeDashboard aggregates the invoices and payments who can see.
// A customer manager only counts their own invoices and the payments
// against them; every other role counts everything.
func ComputeDashboard(invoices []domain.Invoice, payments []domain.Payment, who domain.Identity) DashboardStats {
	scoped := who.Role == domain.RoleCustomerManager
	own := make(map[string]bool)

	var stats DashboardStats
	amounts := make([]decimal.Decimal, 0, len(invoices))
	for i := range invoices {
		inv := &invoices[i]
		if scoped && !inv.IsOwnedBy(who.ID) {
			continue
		}
		own[inv.ID] = true
		stats.TotalInvoices++
		amounts = append(amounts, inv.Amount)
		switch inv.Status {
		case domain.InvoiceStatusPendingDeptLeaderApproval, domain.InvoiceStatusPendingFinanceApproval:
			stats.PendingApproval++
		case domain.InvoiceStatusApproved, domain.InvoiceStatusSubmittedToCustomer:
			stats.Approved++
		}
	}
	stats.TotalAmount = accounting.Sum(amounts...)

	var paid []decimal.Decimal
	for i := range payments {
		p := &payments[i]
		if scoped && !own[p.InvoiceID] {
			continue
		}
		switch p.Status {
		case domain.PaymentStatusConfirmed, domain.PaymentStatusReconciled:
			paid = append(paid, p.Amount)
		case domain.PaymentStatusPending:
			stats.PendingPayments++
		}
	}
	stats.PaidAmount = accounting.Sum(paid...)
	return stats
}
