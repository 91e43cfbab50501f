package workflow_test

import (
	"testing"
	"time"

	"github.com/SscSPs/invoice_workflow_app/internal/core/domain"
	"github.com/SscSPs/invoice_workflow_app/internal/core/workflow"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixtureInvoices() []domain.Invoice {
	uploadedAt := t0.Add(30 * time.Hour)
	return []domain.Invoice{
		{ID: "inv1", Status: domain.InvoiceStatusPendingDeptLeaderApproval, Amount: decimal.NewFromInt(500000),
			SubmittedBy: "1", SubmittedByName: "Zhang", ProjectName: "Project A", CustomerName: "ABC",
			CreatedAt: t0, UpdatedAt: t0},
		{ID: "inv2", Status: domain.InvoiceStatusPendingDeptLeaderApproval, Amount: decimal.NewFromInt(500001),
			SubmittedBy: "2", SubmittedByName: "Li", CreatedAt: t0.Add(-time.Hour), UpdatedAt: t0},
		{ID: "inv3", Status: domain.InvoiceStatusPendingFinanceApproval, Amount: decimal.NewFromInt(300000),
			SubmittedBy: "1", SubmittedByName: "Zhang", CreatedAt: t0, UpdatedAt: t0.Add(2 * time.Hour)},
		{ID: "inv4", InvoiceNumber: "INV-2024-004", Status: domain.InvoiceStatusApproved, Amount: decimal.NewFromInt(800000),
			SubmittedBy: "1", SubmittedByName: "Zhang", CreatedAt: t0, UpdatedAt: t0.Add(3 * time.Hour)},
		{ID: "inv5", Status: domain.InvoiceStatusRejected, Amount: decimal.NewFromInt(100000),
			SubmittedBy: "1", SubmittedByName: "Zhang", CreatedAt: t0, UpdatedAt: t0.Add(4 * time.Hour)},
		{ID: "inv6", Status: domain.InvoiceStatusPendingCustomerConfirmation, Amount: decimal.NewFromInt(200000),
			SubmittedBy: "1", SubmittedByName: "Zhang", UploadedBy: "6", UploadedByName: "Zhao", UploadedAt: &uploadedAt,
			UploadedInvoiceNumber: "FP-6", CreatedAt: t0, UpdatedAt: t0.Add(31 * time.Hour)},
		{ID: "inv7", Status: domain.InvoiceStatusPendingCustomerConfirmation, Amount: decimal.NewFromInt(200000),
			SubmittedBy: "1", SubmittedByName: "Zhang", CreatedAt: t0, UpdatedAt: t0.Add(5 * time.Hour)},
		{ID: "inv8", Status: domain.InvoiceStatusRejected, SubmittedBy: "2", SubmittedByName: "Li",
			CreatedAt: t0, UpdatedAt: t0},
		{ID: "inv9", Status: domain.InvoiceStatusGroupBillingReviewed, Amount: decimal.NewFromInt(400000),
			SubmittedBy: "1", SubmittedByName: "Zhang", ProjectName: "Project B", CustomerName: "XYZ",
			GroupBillingData: &domain.GroupBillingData{BillingAmount: decimal.NewFromInt(380000)},
			CreatedAt:        t0, UpdatedAt: t0.Add(6 * time.Hour)},
		{ID: "inv10", Status: domain.InvoiceStatusGroupBillingPending, Amount: decimal.NewFromInt(10),
			SubmittedBy: "1", SubmittedByName: "Zhang", CreatedAt: t0.Add(-48 * time.Hour), UpdatedAt: t0},
		{ID: "inv11", Status: domain.InvoiceStatusSettled, SubmittedBy: "1", CreatedAt: t0, UpdatedAt: t0},
	}
}

func fixturePayments() []domain.Payment {
	return []domain.Payment{
		{ID: "pay1", InvoiceID: "inv4", InvoiceNumber: "INV-2024-004", Amount: decimal.NewFromInt(300000),
			Status: domain.PaymentStatusPending, BankReference: "BANK-1", CreatedAt: t0.Add(7 * time.Hour)},
		{ID: "pay2", InvoiceID: "ghost", Amount: decimal.NewFromInt(1000),
			Status: domain.PaymentStatusPending, CreatedAt: t0.Add(8 * time.Hour)},
		{ID: "pay3", InvoiceID: "inv4", Amount: decimal.NewFromInt(1000),
			Status: domain.PaymentStatusConfirmed, CreatedAt: t0},
	}
}

func ids(items []domain.TodoItem) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

func TestDeriveTodos_DepartmentLeader(t *testing.T) {
	items := workflow.DeriveTodos(fixtureInvoices(), fixturePayments(), leader)

	assert.Equal(t, []string{"invoice-inv2", "group-billing-inv10", "invoice-inv1"}, ids(items))

	byID := map[string]domain.TodoItem{}
	for _, it := range items {
		byID[it.ID] = it
	}
	assert.Equal(t, domain.PriorityMedium, byID["invoice-inv1"].Priority, "500000 is not above the threshold")
	assert.Equal(t, domain.PriorityHigh, byID["invoice-inv2"].Priority)
	assert.Equal(t, domain.PriorityHigh, byID["group-billing-inv10"].Priority)
	assert.Equal(t, "发票审批流程-部门领导审批", byID["invoice-inv1"].ProcessName)
	assert.Equal(t, "项目：Project A，客户：ABC，金额：¥500,000", byID["invoice-inv1"].Description)
	assert.Equal(t, leader.ID, byID["invoice-inv1"].Assignee)
	assert.Equal(t, "1", byID["invoice-inv1"].Initiator)
	assert.Equal(t, t0, byID["invoice-inv1"].CreatedAt)
	assert.Equal(t, domain.TodoTypeInvoiceApproval, byID["group-billing-inv10"].Type)
}

func TestDeriveTodos_Finance(t *testing.T) {
	items := workflow.DeriveTodos(fixtureInvoices(), fixturePayments(), financeUser)

	assert.Equal(t, []string{"invoice-upload-inv4", "payment-pay2", "payment-pay1", "invoice-finance-approval-inv3"}, ids(items))

	upload := items[0]
	assert.Equal(t, domain.TodoTypeInvoiceUpload, upload.Type)
	assert.Equal(t, "INV-2024-004", upload.Title)
	assert.Equal(t, domain.PriorityHigh, upload.Priority)
	assert.Equal(t, t0.Add(3*time.Hour), upload.CreatedAt)

	ghost := items[1]
	assert.Equal(t, domain.TodoTypePaymentConfirmation, ghost.Type)
	assert.Equal(t, "unknown", ghost.Initiator)
	assert.Equal(t, "未知", ghost.InitiatorName)
	assert.Equal(t, "pay2", ghost.Title)
	assert.Equal(t, "金额：¥1,000，银行流水：无", ghost.Description)

	pay1 := items[2]
	assert.Equal(t, "1", pay1.Initiator)
	assert.Equal(t, domain.PriorityMedium, pay1.Priority)
	assert.Equal(t, "回款确认流程", pay1.ProcessName)

	approval := items[3]
	assert.Equal(t, domain.PriorityMedium, approval.Priority)
	assert.Equal(t, t0.Add(2*time.Hour), approval.CreatedAt)
}

func TestDeriveTodos_CustomerManager(t *testing.T) {
	items := workflow.DeriveTodos(fixtureInvoices(), fixturePayments(), manager)

	assert.Equal(t, []string{"invoice-confirm-inv6", "invoice-confirm-inv7", "invoice-inv5"}, ids(items))

	confirmUploaded := items[0]
	assert.Equal(t, "6", confirmUploaded.Initiator)
	assert.Equal(t, "Zhao", confirmUploaded.InitiatorName)
	assert.Equal(t, t0.Add(30*time.Hour), confirmUploaded.CreatedAt)
	assert.Equal(t, "发票确认流程", confirmUploaded.ProcessName)

	confirmNoUploader := items[1]
	assert.Equal(t, "1", confirmNoUploader.Initiator)
	assert.Equal(t, t0.Add(5*time.Hour), confirmNoUploader.CreatedAt)

	rejected := items[2]
	assert.Equal(t, domain.TodoStatusRejected, rejected.Status)
	assert.Equal(t, domain.PriorityHigh, rejected.Priority)

	other := workflow.DeriveTodos(fixtureInvoices(), fixturePayments(), otherMgr)
	assert.Equal(t, []string{"invoice-inv8"}, ids(other))
}

func TestDeriveTodos_BusinessSupport(t *testing.T) {
	items := workflow.DeriveTodos(fixtureInvoices(), fixturePayments(), supportUser)

	require.Len(t, items, 1)
	assert.Equal(t, "group-billing-upload-inv9", items[0].ID)
	assert.Equal(t, domain.TodoTypeInvoiceUpload, items[0].Type)
	assert.Equal(t, "项目：Project B，客户：XYZ，开票金额：¥380,000", items[0].Description)
}

func TestDeriveTodos_OtherRolesAndEmpty(t *testing.T) {
	assert.Empty(t, workflow.DeriveTodos(fixtureInvoices(), fixturePayments(), adminUser))
	assert.Empty(t, workflow.DeriveTodos(nil, nil, financeUser))
}

func TestDeriveTodos_Deterministic(t *testing.T) {
	invoices := fixtureInvoices()
	payments := fixturePayments()

	for _, who := range []domain.Identity{leader, financeUser, manager, supportUser} {
		first := workflow.DeriveTodos(invoices, payments, who)
		second := workflow.DeriveTodos(invoices, payments, who)
		assert.Equal(t, ids(first), ids(second))
		assert.Equal(t, first, second)
	}
	assert.Equal(t, fixtureInvoices(), invoices, "inputs are not mutated")
}

func TestDeriveTodos_RelatedDataIsACopy(t *testing.T) {
	invoices := fixtureInvoices()
	items := workflow.DeriveTodos(invoices, nil, supportUser)
	require.Len(t, items, 1)

	related, ok := items[0].RelatedData.(domain.Invoice)
	require.True(t, ok)
	related.GroupBillingData.ProjectName = "changed"
	assert.Empty(t, invoices[8].GroupBillingData.ProjectName)
}

func TestDeriveTodos_ThresholdScenario(t *testing.T) {
	invoices := []domain.Invoice{
		{ID: "a", Status: domain.InvoiceStatusPendingFinanceApproval, Amount: decimal.NewFromInt(500000), UpdatedAt: t0},
		{ID: "b", Status: domain.InvoiceStatusPendingFinanceApproval, Amount: decimal.RequireFromString("500000.01"), UpdatedAt: t0},
	}
	items := workflow.DeriveTodos(invoices, nil, financeUser)
	require.Len(t, items, 2)
	assert.Equal(t, "invoice-finance-approval-b", items[0].ID)
	assert.Equal(t, domain.PriorityHigh, items[0].Priority)
	assert.Equal(t, domain.PriorityMedium, items[1].Priority)
}

func TestSummarize(t *testing.T) {
	items := workflow.DeriveTodos(fixtureInvoices(), fixturePayments(), financeUser)
	s := workflow.Summarize(items)
	assert.Equal(t, workflow.TodoSummary{Total: 4, InvoiceApproval: 1, InvoiceUpload: 1, PaymentConfirmation: 2}, s)
}
