package workflow_test

import (
	"testing"
	"time"

	"github.com/SscSPs/invoice_workflow_app/internal/apperrors"
	"github.com/SscSPs/invoice_workflow_app/internal/core/domain"
	"github.com/SscSPs/invoice_workflow_app/internal/core/workflow"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	manager     = domain.Identity{ID: "1", Name: "Zhang", Role: domain.RoleCustomerManager}
	otherMgr    = domain.Identity{ID: "2", Name: "Li", Role: domain.RoleCustomerManager}
	leader      = domain.Identity{ID: "3", Name: "Liu", Role: domain.RoleDepartmentLeader}
	financeUser = domain.Identity{ID: "5", Name: "Wang", Role: domain.RoleFinance}
	supportUser = domain.Identity{ID: "6", Name: "Zhao", Role: domain.RoleBusinessSupport}
	adminUser   = domain.Identity{ID: "9", Name: "Root", Role: domain.RoleAdmin}

	t0 = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
)

func invoiceIn(status domain.InvoiceStatus) domain.Invoice {
	return domain.Invoice{
		ID:              "inv1",
		Status:          status,
		SubmittedBy:     manager.ID,
		SubmittedByName: manager.Name,
		Amount:          decimal.NewFromInt(300000),
		CreatedAt:       t0,
		UpdatedAt:       t0,
	}
}

func TestResolve_Table(t *testing.T) {
	tests := []struct {
		name    string
		status  domain.InvoiceStatus
		trigger workflow.Trigger
		who     domain.Identity
		wantTo  domain.InvoiceStatus
		wantErr error
	}{
		{"leader approves", domain.InvoiceStatusPendingDeptLeaderApproval, workflow.TriggerApprove, leader, domain.InvoiceStatusPendingFinanceApproval, nil},
		{"leader rejects", domain.InvoiceStatusPendingDeptLeaderApproval, workflow.TriggerReject, leader, domain.InvoiceStatusRejected, nil},
		{"finance approves", domain.InvoiceStatusPendingFinanceApproval, workflow.TriggerApprove, financeUser, domain.InvoiceStatusApproved, nil},
		{"finance rejects", domain.InvoiceStatusPendingFinanceApproval, workflow.TriggerReject, financeUser, domain.InvoiceStatusRejected, nil},
		{"finance uploads", domain.InvoiceStatusApproved, workflow.TriggerUpload, financeUser, domain.InvoiceStatusPendingCustomerConfirmation, nil},
		{"support uploads", domain.InvoiceStatusApproved, workflow.TriggerUpload, supportUser, domain.InvoiceStatusPendingCustomerConfirmation, nil},
		{"support submits to customer", domain.InvoiceStatusApproved, workflow.TriggerSubmitToCustomer, supportUser, domain.InvoiceStatusSubmittedToCustomer, nil},
		{"owner confirms", domain.InvoiceStatusPendingCustomerConfirmation, workflow.TriggerConfirm, manager, domain.InvoiceStatusSettled, nil},
		{"owner requests group billing", domain.InvoiceStatusPendingCustomerConfirmation, workflow.TriggerRequestGroupBilling, manager, domain.InvoiceStatusGroupBillingPending, nil},
		{"owner submits group billing", domain.InvoiceStatusGroupBillingPending, workflow.TriggerSubmitGroupBilling, manager, domain.InvoiceStatusGroupBillingReviewed, nil},
		{"support uploads group invoice", domain.InvoiceStatusGroupBillingReviewed, workflow.TriggerUploadGroupInvoice, supportUser, domain.InvoiceStatusPendingCustomerConfirmation, nil},
		{"owner resubmits", domain.InvoiceStatusRejected, workflow.TriggerResubmit, manager, domain.InvoiceStatusPendingDeptLeaderApproval, nil},
		{"owner withdraws pending", domain.InvoiceStatusPendingFinanceApproval, workflow.TriggerWithdraw, manager, domain.InvoiceStatusRejected, nil},

		{"finance approving dept stage", domain.InvoiceStatusPendingDeptLeaderApproval, workflow.TriggerApprove, financeUser, "", apperrors.ErrForbidden},
		{"leader approving finance stage", domain.InvoiceStatusPendingFinanceApproval, workflow.TriggerApprove, leader, "", apperrors.ErrForbidden},
		{"approve already approved", domain.InvoiceStatusApproved, workflow.TriggerApprove, financeUser, "", apperrors.ErrInvalidState},
		{"leader uploads", domain.InvoiceStatusApproved, workflow.TriggerUpload, leader, "", apperrors.ErrForbidden},
		{"finance submits to customer", domain.InvoiceStatusApproved, workflow.TriggerSubmitToCustomer, financeUser, "", apperrors.ErrForbidden},
		{"other manager confirms", domain.InvoiceStatusPendingCustomerConfirmation, workflow.TriggerConfirm, otherMgr, "", apperrors.ErrForbidden},
		{"non owner withdraws", domain.InvoiceStatusPendingDeptLeaderApproval, workflow.TriggerWithdraw, leader, "", apperrors.ErrForbidden},
		{"withdraw settled", domain.InvoiceStatusSettled, workflow.TriggerWithdraw, manager, "", apperrors.ErrInvalidState},
		{"withdraw rejected", domain.InvoiceStatusRejected, workflow.TriggerWithdraw, manager, "", apperrors.ErrInvalidState},
		{"resubmit pending", domain.InvoiceStatusPendingDeptLeaderApproval, workflow.TriggerResubmit, manager, "", apperrors.ErrInvalidState},
		{"admin approves", domain.InvoiceStatusPendingDeptLeaderApproval, workflow.TriggerApprove, adminUser, "", apperrors.ErrForbidden},
		{"unknown trigger", domain.InvoiceStatusDraft, workflow.Trigger("teleport"), manager, "", apperrors.ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := invoiceIn(tt.status)
			tr, err := workflow.Resolve(&inv, tt.trigger, tt.who)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				if tt.wantErr != apperrors.ErrValidation {
					assert.ErrorIs(t, err, apperrors.ErrGuardViolation)
				}
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantTo, tr.To)
		})
	}
}

func TestApply_DecisionAppendsOneRow(t *testing.T) {
	inv := invoiceIn(domain.InvoiceStatusPendingDeptLeaderApproval)
	tr, err := workflow.Resolve(&inv, workflow.TriggerApprove, leader)
	require.NoError(t, err)

	now := t0.Add(time.Hour)
	row, err := workflow.Apply(&inv, tr, leader, "", now)
	require.NoError(t, err)
	require.NotNil(t, row)

	assert.Equal(t, domain.InvoiceStatusPendingFinanceApproval, inv.Status)
	assert.Equal(t, now, inv.UpdatedAt)
	assert.Equal(t, t0, inv.CreatedAt)
	assert.Equal(t, domain.ApprovalActionApproved, row.Action)
	assert.Equal(t, leader.ID, row.ApproverID)
	assert.Equal(t, leader.Name, row.ApproverName)
	assert.Equal(t, inv.ID, row.InvoiceID)
	assert.NotEmpty(t, row.ID)
}

func TestApply_NonDecisionHasNoRow(t *testing.T) {
	inv := invoiceIn(domain.InvoiceStatusPendingCustomerConfirmation)
	tr, err := workflow.Resolve(&inv, workflow.TriggerConfirm, manager)
	require.NoError(t, err)

	row, err := workflow.Apply(&inv, tr, manager, "", t0.Add(time.Minute))
	require.NoError(t, err)
	assert.Nil(t, row)
	assert.Equal(t, domain.InvoiceStatusSettled, inv.Status)
}

func TestApply_RejectKeepsNotes(t *testing.T) {
	inv := invoiceIn(domain.InvoiceStatusPendingFinanceApproval)
	tr, err := workflow.Resolve(&inv, workflow.TriggerReject, financeUser)
	require.NoError(t, err)

	row, err := workflow.Apply(&inv, tr, financeUser, "amount mismatch", t0.Add(time.Hour))
	require.NoError(t, err)
	require.NotNil(t, row)
	assert.Equal(t, domain.ApprovalActionRejected, row.Action)
	assert.Equal(t, "amount mismatch", row.Notes)
	assert.Equal(t, "amount mismatch", inv.Notes)
	assert.Equal(t, domain.InvoiceStatusRejected, inv.Status)
}

func TestApply_WithdrawDefaultsNote(t *testing.T) {
	for _, reason := range []string{"", "   "} {
		inv := invoiceIn(domain.InvoiceStatusPendingDeptLeaderApproval)
		tr, err := workflow.Resolve(&inv, workflow.TriggerWithdraw, manager)
		require.NoError(t, err)

		row, err := workflow.Apply(&inv, tr, manager, reason, t0.Add(time.Hour))
		require.NoError(t, err)
		require.NotNil(t, row)
		assert.Equal(t, workflow.DefaultWithdrawNote, row.Notes)
		assert.Equal(t, domain.ApprovalActionRejected, row.Action)
		assert.Equal(t, domain.InvoiceStatusRejected, inv.Status)
	}
}

func TestApply_StaleTransitionRefused(t *testing.T) {
	inv := invoiceIn(domain.InvoiceStatusPendingDeptLeaderApproval)
	tr, err := workflow.Resolve(&inv, workflow.TriggerApprove, leader)
	require.NoError(t, err)
	inv.Status = domain.InvoiceStatusApproved

	row, err := workflow.Apply(&inv, tr, leader, "", t0)
	assert.ErrorIs(t, err, apperrors.ErrInvalidState)
	assert.Nil(t, row)
	assert.Equal(t, domain.InvoiceStatusApproved, inv.Status)
}

func TestWithdrawAvailableFromEveryNonTerminalStatus(t *testing.T) {
	for _, status := range domain.InvoiceStatuses {
		inv := invoiceIn(status)
		_, err := workflow.Resolve(&inv, workflow.TriggerWithdraw, manager)
		if status.IsTerminal() {
			assert.ErrorIs(t, err, apperrors.ErrInvalidState, string(status))
		} else {
			assert.NoError(t, err, string(status))
		}
	}
}

func TestAvailableTriggers(t *testing.T) {
	inv := invoiceIn(domain.InvoiceStatusPendingCustomerConfirmation)
	assert.ElementsMatch(t,
		[]workflow.Trigger{workflow.TriggerConfirm, workflow.TriggerRequestGroupBilling, workflow.TriggerWithdraw},
		workflow.AvailableTriggers(&inv, manager))
	assert.Empty(t, workflow.AvailableTriggers(&inv, otherMgr))
	assert.Empty(t, workflow.AvailableTriggers(&inv, financeUser))
}

func TestCanCreateAndEdit(t *testing.T) {
	assert.NoError(t, workflow.CanCreate(manager))
	assert.ErrorIs(t, workflow.CanCreate(financeUser), apperrors.ErrForbidden)

	draft := invoiceIn(domain.InvoiceStatusDraft)
	assert.NoError(t, workflow.CanEditItems(&draft, manager))
	assert.ErrorIs(t, workflow.CanEditItems(&draft, otherMgr), apperrors.ErrForbidden)

	pending := invoiceIn(domain.InvoiceStatusPendingFinanceApproval)
	assert.ErrorIs(t, workflow.CanEditItems(&pending, manager), apperrors.ErrInvalidState)
}

func TestNextInvoiceNumber(t *testing.T) {
	assert.Equal(t, "INV-2024-001", workflow.NextInvoiceNumber(0, t0))
	assert.Equal(t, "INV-2024-007", workflow.NextInvoiceNumber(6, t0))
	assert.Equal(t, "INV-2024-1000", workflow.NextInvoiceNumber(999, t0))
}

func TestUploadDetails(t *testing.T) {
	assert.ErrorIs(t, workflow.UploadDetails{}.Validate(), apperrors.ErrValidation)
	assert.ErrorIs(t, workflow.UploadDetails{InvoiceNumber: "FP1", InvoiceDate: "16/03/2024"}.Validate(), apperrors.ErrValidation)

	u := workflow.UploadDetails{InvoiceNumber: "FP-001", InvoiceDate: "2024-03-16", FileURL: "/f.pdf"}
	require.NoError(t, u.Validate())

	inv := invoiceIn(domain.InvoiceStatusApproved)
	now := t0.Add(2 * time.Hour)
	workflow.StampUpload(&inv, u, supportUser, now)
	assert.Equal(t, "FP-001", inv.UploadedInvoiceNumber)
	assert.Equal(t, "2024-03-16", inv.UploadedInvoiceDate)
	assert.Equal(t, supportUser.ID, inv.UploadedBy)
	assert.Equal(t, supportUser.Name, inv.UploadedByName)
	require.NotNil(t, inv.UploadedAt)
	assert.Equal(t, now, *inv.UploadedAt)
}
