package workflow

import (
	"time"

	"github.com/SscSPs/invoice_workflow_app/internal/core/domain"
)

// ProgressResult is the coarse outcome of an application.
type ProgressResult string

const (
	ProgressPending  ProgressResult = "pending"
	ProgressApproved ProgressResult = "approved"
	ProgressRejected ProgressResult = "rejected"
)

var stepLabels = map[domain.InvoiceStatus]string{
	domain.InvoiceStatusDraft:                       "未提交",
	domain.InvoiceStatusPendingDeptLeaderApproval:   "待部门领导审批",
	domain.InvoiceStatusPendingFinanceApproval:      "待财务审批",
	domain.InvoiceStatusApproved:                    "待上传发票",
	domain.InvoiceStatusPendingUpload:               "待上传发票",
	domain.InvoiceStatusSubmittedToCustomer:         "已提交客户",
	domain.InvoiceStatusPendingCustomerConfirmation: "待客户确认",
	domain.InvoiceStatusGroupBillingPending:         "待提交集团开票",
	domain.InvoiceStatusGroupBillingReviewed:        "待上传集团发票",
	domain.InvoiceStatusCompleted:                   "已完成",
	domain.InvoiceStatusSettled:                     "已结清",
	domain.InvoiceStatusRejected:                    "已驳回",
}

// Progress is the requester-facing view of where an application stands.
type Progress struct {
	CurrentStep string         `json:"currentStep"`
	Result      ProgressResult `json:"result"`
	ResultTime  *time.Time     `json:"resultTime,omitempty"`
	CanWithdraw bool           `json:"canWithdraw"`
}

// DescribeProgress summarises inv for who. ResultTime is the time of the
// latest ledger decision, if any.
func DescribeProgress(inv *domain.Invoice, approvals []domain.InvoiceApproval, who domain.Identity) Progress {
	p := Progress{CurrentStep: "未知", Result: resultFor(inv.Status)}
	if label, ok := stepLabels[inv.Status]; ok {
		p.CurrentStep = label
	}
	if latest, err := LatestFor(approvals, inv.ID); err == nil {
		at := latest.CreatedAt
		p.ResultTime = &at
	}
	_, err := Resolve(inv, TriggerWithdraw, who)
	p.CanWithdraw = err == nil
	return p
}

func resultFor(status domain.InvoiceStatus) ProgressResult {
	switch status {
	case domain.InvoiceStatusRejected:
		return ProgressRejected
	case domain.InvoiceStatusDraft,
		domain.InvoiceStatusPendingDeptLeaderApproval,
		domain.InvoiceStatusPendingFinanceApproval:
		return ProgressPending
	}
	if status.IsValid() {
		return ProgressApproved
	}
	return ProgressPending
}
