package workflow_test

import (
	"testing"
	"time"

	"github.com/SscSPs/invoice_workflow_app/internal/core/domain"
	"github.com/SscSPs/invoice_workflow_app/internal/core/workflow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescribeProgress(t *testing.T) {
	approvals := []domain.InvoiceApproval{
		{ID: "a1", InvoiceID: "inv1", Action: domain.ApprovalActionApproved, CreatedAt: t0.Add(time.Hour)},
		{ID: "a2", InvoiceID: "inv1", Action: domain.ApprovalActionApproved, CreatedAt: t0.Add(3 * time.Hour)},
	}

	tests := []struct {
		status      domain.InvoiceStatus
		step        string
		result      workflow.ProgressResult
		canWithdraw bool
	}{
		{domain.InvoiceStatusPendingDeptLeaderApproval, "待部门领导审批", workflow.ProgressPending, true},
		{domain.InvoiceStatusPendingFinanceApproval, "待财务审批", workflow.ProgressPending, true},
		{domain.InvoiceStatusApproved, "待上传发票", workflow.ProgressApproved, true},
		{domain.InvoiceStatusSubmittedToCustomer, "已提交客户", workflow.ProgressApproved, true},
		{domain.InvoiceStatusSettled, "已结清", workflow.ProgressApproved, false},
		{domain.InvoiceStatusRejected, "已驳回", workflow.ProgressRejected, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			inv := invoiceIn(tt.status)
			p := workflow.DescribeProgress(&inv, approvals, manager)
			assert.Equal(t, tt.step, p.CurrentStep)
			assert.Equal(t, tt.result, p.Result)
			assert.Equal(t, tt.canWithdraw, p.CanWithdraw)
			require.NotNil(t, p.ResultTime)
			assert.Equal(t, t0.Add(3*time.Hour), *p.ResultTime)
		})
	}
}

func TestDescribeProgress_NoLedgerAndForeignViewer(t *testing.T) {
	inv := invoiceIn(domain.InvoiceStatusPendingDeptLeaderApproval)
	p := workflow.DescribeProgress(&inv, nil, leader)
	assert.Nil(t, p.ResultTime)
	assert.False(t, p.CanWithdraw)
}
